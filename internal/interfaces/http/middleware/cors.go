package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var corsBaseHeaders = []string{
	"Accept", "Accept-Language", "Cache-Control", "Content-Length", "Content-Type",
	"Origin", "X-Requested-With", RequestIDHeader,
}

// CORS answers preflight requests and echoes back origins listed in
// allowedOrigins. A single "*" entry allows any origin.
func CORS(allowedOrigins []string, actorHeader string) gin.HandlerFunc {
	if actorHeader == "" {
		actorHeader = DefaultActorHeader
	}

	origins := make(map[string]struct{}, len(allowedOrigins))
	anyOrigin := false
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			anyOrigin = true
			continue
		}
		if o != "" {
			origins[o] = struct{}{}
		}
	}

	allowHeaders := strings.Join(append(append([]string{}, corsBaseHeaders...), actorHeader), ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			_, listed := origins[origin]
			if listed || anyOrigin {
				h := c.Writer.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Expose-Headers", "Content-Length, "+RequestIDHeader)
				h.Add("Vary", "Origin")
			}
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", allowHeaders)
		h.Set("Access-Control-Max-Age", "86400")
		c.AbortWithStatus(http.StatusNoContent)
	}
}

// SecurityHeaders sets the browser hardening headers on every response.
func SecurityHeaders() gin.HandlerFunc {
	headers := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'self'",
	}
	return func(c *gin.Context) {
		for k, v := range headers {
			c.Header(k, v)
		}
		c.Next()
	}
}
