package middleware

import (
	"net/http"
	"runtime"
	"time"

	"github.com/vfg2006/order-manager-api/pkg/log"
)

// Requisições acima deste tempo geram um aviso de lentidão
const slowRequestThreshold = 500 * time.Millisecond

// LoggingMiddleware registra cada requisição HTTP com um ID de correlação
// próprio, propagado pelo contexto para as demais camadas
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)

			recorder := newStatusRecorder(w)
			started := time.Now()

			next.ServeHTTP(recorder, r)

			elapsed := time.Since(started)
			logger := log.L.WithFields(log.Fields{
				"correlation_id": correlationID,
				"method":         r.Method,
				"path":           r.URL.Path,
				"status_code":    recorder.status,
				"duration_ms":    elapsed.Milliseconds(),
			})

			switch {
			case recorder.status >= http.StatusInternalServerError:
				logger.Error("Requisição finalizada com erro")
			case recorder.status >= http.StatusBadRequest:
				logger.Warn("Requisição finalizada com aviso")
			default:
				logger.Info("Requisição finalizada")
			}

			if elapsed > slowRequestThreshold {
				logger.Warnf("Requisição lenta: %s %s levou %s", r.Method, r.URL.Path, elapsed)
			}
		})
	}
}

// statusRecorder captura o status code escrito pelo handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware captura panics dos handlers, registra o stack trace e
// responde 500 sem derrubar o processo
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stackSize := runtime.Stack(stack, false)

					log.ForContext(r.Context()).WithFields(log.Fields{
						"error":  err,
						"method": r.Method,
						"path":   r.URL.Path,
					}).Error("Panic não tratado na aplicação")

					log.L.WithField("stack_trace", string(stack[:stackSize])).Error("Stack trace do panic")

					http.Error(w, "Erro interno no servidor", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
