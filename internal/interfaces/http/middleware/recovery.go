package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"
	"sort"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/hotline-inc/hotline/internal/shared/logger"
	"github.com/hotline-inc/hotline/internal/shared/utils"
)

// Recovery turns a handler panic into a 500 envelope and logs the stack.
// Panics caused by the client hanging up are logged without a response.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		fields := []any{
			"request_id", RequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", recovered,
		}

		if clientGone(recovered) {
			log.Warnw("client connection lost", fields...)
			c.Abort()
			return
		}

		fields = append(fields, "headers", headerNames(c.Request.Header), "stack", string(debug.Stack()))
		log.Errorw("panic recovered", fields...)

		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error occurred")
		c.Abort()
	})
}

func clientGone(recovered any) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}

// headerNames lists the request header names; values are never logged.
func headerNames(h http.Header) []string {
	names := make([]string, 0, len(h))
	for k := range h {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
