package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/bookshop/bookshop-go/internal/crypto"
	"github.com/bookshop/bookshop-go/internal/model"
	"github.com/bookshop/bookshop-go/internal/repository"
)

type contextKey string

const userKey contextKey = "user"

// UserResolver resolves a token's user ID to a live user record.
// Implemented by repository.UserRepository.
type UserResolver interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Auth returns middleware that validates a Bearer token from the
// Authorization header and attaches the resolved user identity to the
// request context. A missing, malformed, expired or badly signed token
// is rejected with one uniform message; a valid token whose user no
// longer exists is rejected separately.
func Auth(secret string, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeUnauthorized(w, "Not authorized to access this route")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeUnauthorized(w, "Not authorized to access this route")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					writeUnauthorized(w, "User not found")
					return
				}
				writeJSONMessage(w, http.StatusInternalServerError, "Server Error")
				return
			}

			identity := model.UserResponse{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
			}
			setLogUser(r.Context(), user.ID)
			ctx := context.WithValue(r.Context(), userKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user identity from the
// request context.
func UserFromContext(ctx context.Context) (model.UserResponse, bool) {
	user, ok := ctx.Value(userKey).(model.UserResponse)
	return user, ok
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	writeJSONMessage(w, http.StatusUnauthorized, msg)
}

func writeJSONMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.Response{Success: false, Message: msg})
}
