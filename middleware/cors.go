// Package middleware provides HTTP middlewares for wrapping an App handler.
package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists origins a cross-domain request may come from.
	// "*" allows all origins. Default: ["*"].
	AllowOrigins []string

	// AllowMethods lists the methods the client may use.
	// Default: GET, POST, PUT, DELETE, OPTIONS.
	AllowMethods []string

	// AllowHeaders lists the headers the client may send.
	// Default: Content-Type, Authorization.
	AllowHeaders []string

	// ExposeHeaders lists response headers exposed to the client.
	ExposeHeaders []string

	// AllowCredentials permits requests with credentials.
	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds. Zero leaves the
	// header unset.
	MaxAge int
}

// CORSAllowAll is a permissive configuration suitable for development: all
// origins, the default methods, and common headers.
var CORSAllowAll *CORSConfig = nil

// CORS returns a middleware that answers preflight requests and sets CORS
// headers on every response.
func CORS(cfg *CORSConfig) func(http.Handler) http.Handler {
	if cfg == nil {
		cfg = &CORSConfig{}
	}

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	methods := cfg.AllowMethods
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	headers := cfg.AllowHeaders
	if len(headers) == 0 {
		headers = []string{"Content-Type", "Authorization"}
	}

	methodsHeader := strings.Join(methods, ", ")
	headersHeader := strings.Join(headers, ", ")
	exposeHeader := strings.Join(cfg.ExposeHeaders, ", ")
	wildcard := slices.Contains(origins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := wildcard || (origin != "" && slices.Contains(origins, origin))

			if allowed {
				// "Access-Control-Allow-Origin: *" cannot be combined with
				// credentials, so echo the requesting origin in that case.
				if origin != "" && (!wildcard || cfg.AllowCredentials) {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				} else {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				}
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methodsHeader)
				w.Header().Set("Access-Control-Allow-Headers", headersHeader)
				if exposeHeader != "" {
					w.Header().Set("Access-Control-Expose-Headers", exposeHeader)
				}
				if cfg.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
