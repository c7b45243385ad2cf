package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "некорректный или просроченный токен"
	msgForbidden    = "доступ запрещен"
)

// ErrBadToken токен не прошел проверку
var ErrBadToken = errors.New("middleware: invalid token")

type subjectKey struct{}

// Claims полезная нагрузка токена администратора
// Токены выпускает внешний сервис, здесь они только проверяются
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken проверяет подпись HS256 и срок действия
func ParseToken(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	return claims, nil
}

// AdminAuth пропускает только запросы с валидным Bearer токеном и ролью role
func AdminAuth(secret, role string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := ParseToken(raw, secret)
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			if claims.Role != role {
				logger.Warn("%s %s - Role %q is not allowed, subject=%s", r.Method, r.URL.Path, claims.Role, claims.Subject)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject идентификатор администратора из токена
func GetSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey{}).(string)
	return subject, ok
}
