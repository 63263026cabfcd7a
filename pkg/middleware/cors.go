package middleware

import (
	"net/http"
	"os"
	"strings"
)

var allowedOrigins = buildOriginSet()

// CORS_ALLOWED_ORIGINS sobrescreve a lista padrão (separado por vírgula).
func buildOriginSet() map[string]struct{} {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:4001",
		"https://order-manager-web.vercel.app",
	}

	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	set := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		set[strings.TrimSpace(o)] = struct{}{}
	}

	return set
}

// Cors libera chamadas dos front-ends conhecidos e responde preflights sem
// repassar ao handler.
func Cors() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				h.Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
