package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

const operatorIDHeader = "X-Operator-ID"

const msgOperatorIDRequired = "требуется заголовок X-Operator-ID"

type ctxKey string

const operatorIDKey ctxKey = "operatorID"

// Auth проверяет наличие заголовка X-Operator-ID и кладет его в контекст.
// Операции, меняющие состояние парковки, требуют идентификации оператора
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operatorID := r.Header.Get(operatorIDHeader)
		if operatorID == "" {
			handlers.RespondUnauthorized(w, msgOperatorIDRequired)
			return
		}

		ctx := context.WithValue(r.Context(), operatorIDKey, operatorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOperatorID возвращает ID оператора из контекста
func GetOperatorID(ctx context.Context) (string, bool) {
	operatorID, ok := ctx.Value(operatorIDKey).(string)
	return operatorID, ok
}
