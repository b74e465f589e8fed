package handlers

import (
	"net/http"
	"strings"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/infrastructure/auth"
)

type Authenticator interface {
	Authenticate(accessToken string) (int, error)
}

// AuthMiddleware проверяет заголовок Authorization: Bearer <access token>
func AuthMiddleware(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				writeError(w, entity.ErrInvalidToken)
				return
			}

			userID, err := authenticator.Authenticate(token)
			if err != nil {
				writeError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
