package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// internalErrorBody is the fixed envelope returned for unexpected failures.
// Internal details are logged, never sent to the caller.
const internalErrorBody = `{"success":false,"error":"Internal Server Error"}`

// WithRecovery returns middleware that converts panics into a generic 500
// response with the fixed error envelope.
func WithRecovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					LoggerFromRequest(r, logger).Error("panic in handler",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(internalErrorBody))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
