package middleware

import (
	"net/http"
	"strconv"

	"github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers"
)

// HeaderUserID заголовок идентификации администратора
const HeaderUserID = "X-User-ID"

// Auth проверяет наличие корректного заголовка X-User-ID.
// Запросы без заголовка или с нечисловым значением отклоняются.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный X-User-ID")
			return
		}

		next.ServeHTTP(w, r)
	})
}
