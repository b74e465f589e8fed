package auth

import "context"

type userIDKey struct{}

// WithUserID кладёт id аутентифицированного пользователя в контекст
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey{}).(int)
	return id, ok && id > 0
}
