package middleware

import (
	"net/http"
	"runtime/debug"

	"remedio-solidario/internal/platform/logger"
	"remedio-solidario/internal/platform/respond"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover loguea el panic con el request id y responde el mensaje genérico.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"panic":      rec,
					"stack":      string(debug.Stack()),
				})
				respond.Message(w, http.StatusInternalServerError, respond.GenericFailure)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
