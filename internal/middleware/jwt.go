package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"taskchat/internal/httputil"
	"taskchat/internal/logging"
)

// ContextKey is a type for context keys
type ContextKey string

// UserIDKey is the context key for the authenticated user ID
const UserIDKey ContextKey = "userId"

// ErrInvalidToken is returned when token validation fails
var ErrInvalidToken = &tokenError{message: "invalid token"}

type tokenError struct {
	message string
}

func (e *tokenError) Error() string {
	return e.message
}

// JWTAuth creates middleware that validates a Bearer token signed with the
// given secret and puts the subject claim into the request context.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.Unauthorized(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				httputil.Unauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := ValidateToken(parts[1], secret)
			if err != nil {
				logging.Debugf("token validation failed: %v", err)
				httputil.Unauthorized(w, "invalid token")
				return
			}

			subject, err := claims.GetSubject()
			if err != nil || subject == "" {
				httputil.Unauthorized(w, "token missing subject")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateToken verifies an HS256 token signature and returns its claims.
func ValidateToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}
