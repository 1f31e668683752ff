package handler

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"nodosml-similar/internal/config"
	"nodosml-similar/internal/logging"
)

// CORS permite los orígenes configurados (el front local corre en 127.0.0.1:5501).
func CORS(cfg config.HTTPConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	})
}

// RateLimit limita por IP; RateLimitRequests == 0 lo deshabilita.
func RateLimit(cfg config.HTTPConfig) func(http.Handler) http.Handler {
	if cfg.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusTooManyRequests, "demasiadas solicitudes")
		}),
	)
}

// RequestLogger loguea cada request con zerolog al terminar.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			ev := logging.Info()
			if status >= http.StatusInternalServerError {
				ev = logging.Error()
			}
			ev.Str("request_id", chimiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("[http] request")
		})
	}
}

// Recoverer convierte un panic en 400 {"error"}, igual que cualquier otra falla interna.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				logging.Error().
					Str("request_id", chimiddleware.GetReqID(r.Context())).
					Str("panic", fmt.Sprint(rvr)).
					Str("stack", string(debug.Stack())).
					Msg("[http] panic recuperado")
				// una conexión ya hijackeada (WebSocket) no acepta respuesta HTTP
				if r.Header.Get("Upgrade") != "" {
					return
				}
				writeError(w, http.StatusBadRequest, fmt.Sprint(rvr))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
