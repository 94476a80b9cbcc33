package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Nehal2048/book-hive/configs"
	"github.com/Nehal2048/book-hive/internal/httputil"
	"github.com/Nehal2048/book-hive/internal/logger"
	"github.com/Nehal2048/book-hive/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDContextKey contextKey = "userID"
	RoleContextKey   contextKey = "role"
)

func Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.WriteError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httputil.WriteError(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		tokenStr := parts[1]

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(configs.AppConfig.JWT.SECRET), nil
		})
		if err != nil || !token.Valid {
			httputil.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httputil.WriteError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			logger.Log.Error("jwt subject missing or wrong type")
			httputil.WriteError(w, http.StatusUnauthorized, "invalid token payload")
			return
		}

		userID, err := uuid.Parse(sub)
		if err != nil {
			httputil.WriteError(w, http.StatusUnauthorized, "invalid token payload")
			return
		}

		role, _ := claims["role"].(string)

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		ctx = context.WithValue(ctx, RoleContextKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly gates a route behind the admin capability carried in the token.
// Must be stacked after Authenticated.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(RoleContextKey).(string)
		if role != string(models.UserAdmin) {
			httputil.WriteError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CallerID returns the authenticated user id placed by Authenticated.
func CallerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	return id, ok
}
