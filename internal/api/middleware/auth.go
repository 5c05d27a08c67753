package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

// AdminIDHeader заголовок с ID администратора, выставляется шлюзом после аутентификации
const AdminIDHeader = "X-Admin-ID"

const msgMissingAdminID = "отсутствует или некорректен заголовок X-Admin-ID"

type adminIDKey struct{}

// Auth пропускает только запросы с корректным X-Admin-ID и кладёт ID в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID, err := strconv.ParseInt(r.Header.Get(AdminIDHeader), 10, 64)
		if err != nil || adminID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingAdminID)
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey{}, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminID достаёт ID администратора из контекста
func GetAdminID(ctx context.Context) (int64, bool) {
	adminID, ok := ctx.Value(adminIDKey{}).(int64)
	return adminID, ok
}

// WithAdminID кладёт ID администратора в контекст
func WithAdminID(ctx context.Context, adminID int64) context.Context {
	return context.WithValue(ctx, adminIDKey{}, adminID)
}
