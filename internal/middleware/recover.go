package middleware

import (
	"net/http"
	"runtime/debug"
)

// Recover превращает panic в ответ 500 {"error"}.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				if sugar != nil {
					sugar.Errorw("panic recovered", "panic", rec, "path", r.URL.Path, "stack", string(debug.Stack()))
				}
				WriteError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
