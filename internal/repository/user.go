package repository

import (
	"context"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, password_hash, is_active, last_login, created_at, updated_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateWithAuth - создаем пользователя с email и хешем пароля
func (r *UserRepository) CreateWithAuth(ctx context.Context, name, email, passwordHash string) (*entity.User, error) {
	query := `
	INSERT INTO "user" (name, email, password_hash)
	VALUES ($1, $2, $3)
	RETURNING ` + userColumns

	user, err := scanUser(querier(ctx, r.db).QueryRow(ctx, query, name, email, passwordHash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// получаем данные по id
func (r *UserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	user, err := scanUser(querier(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := scanUser(querier(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// UpdateName - обновляем имя пользователя
func (r *UserRepository) UpdateName(ctx context.Context, id int, name string) (*entity.User, error) {
	query := `
	UPDATE "user"
	SET name = $1, updated_at = CURRENT_TIMESTAMP
	WHERE id = $2
	RETURNING ` + userColumns

	user, err := scanUser(querier(ctx, r.db).QueryRow(ctx, query, name, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int) error {
	_, err := querier(ctx, r.db).Exec(ctx, `UPDATE "user" SET last_login = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

// Delete - удаляем пользователя вместе со всеми его данными
func (r *UserRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM "user" WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
