package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/tutorhub/tutorhub-api/internal/pkg/errorhandler"
)

// Recover is a middleware that recovers from panics
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				errorhandler.HandlePanic(r.Context(), w, rec, string(debug.Stack()))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
