package middleware

import (
	"net/http"
	"time"

	"remedio-solidario/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog expone el request id de chi en X-Request-ID y loguea cada request al terminar.
// Va después de chimw.RequestID.
func RequestLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := chimw.GetReqID(r.Context())
			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			fields := map[string]any{
				"request_id":  reqID,
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
			}
			if c, ok := GetClaims(r.Context()); ok {
				fields["user_id"] = c.UserID
			}

			switch {
			case ww.Status() >= 500:
				log.Error("request failed", fields)
			case ww.Status() >= 400:
				log.Warn("request rejected", fields)
			default:
				log.Info("request", fields)
			}
		})
	}
}
