package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/d4shko/salon-booking-service/internal/api/handlers"
)

type contextKey string

const clientIDKey contextKey = "clientID"

// HeaderClientID заголовок, в котором gateway передает ID аутентифицированного клиента
const HeaderClientID = "X-Client-ID"

// Auth проверяет наличие заголовка X-Client-ID и кладет ID клиента в контекст.
// Аутентификацию выполняет вышестоящий gateway, сервис доверяет заголовку.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIDStr := r.Header.Get(HeaderClientID)
		if clientIDStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-Client-ID")
			return
		}

		clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
		if err != nil || clientID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-Client-ID")
			return
		}

		ctx := context.WithValue(r.Context(), clientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientID извлекает ID клиента из контекста
func GetClientID(ctx context.Context) (int64, bool) {
	clientID, ok := ctx.Value(clientIDKey).(int64)
	return clientID, ok
}
