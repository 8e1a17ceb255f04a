package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotline-inc/hotline/internal/shared/errors"
)

// APIResponse is the envelope of every JSON body the API returns.
type APIResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

const internalErrorMessage = "Internal server error occurred"

// SuccessResponse writes data with statusCode.
func SuccessResponse(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, APIResponse{Success: true, Data: data, Message: message})
}

// CreatedResponse writes a 201. The message defaults to "Resource created successfully".
func CreatedResponse(c *gin.Context, data any, message ...string) {
	msg := "Resource created successfully"
	if len(message) > 0 {
		msg = message[0]
	}
	SuccessResponse(c, http.StatusCreated, msg, data)
}

// ErrorResponse writes a plain error with statusCode.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	writeError(c, statusCode, ErrorInfo{Type: "error", Message: message})
}

// ErrorResponseWithError renders err. AppErrors keep their type, status and
// message; anything else becomes a generic 500. The error is attached to the
// gin context so the request logger records the cause.
func ErrorResponseWithError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}

	appErr := errors.GetAppError(err)
	if appErr == nil {
		writeError(c, http.StatusInternalServerError, ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: internalErrorMessage,
		})
		return
	}

	info := ErrorInfo{Type: string(appErr.Type), Message: appErr.Message}
	// Internal details stay in the logs.
	if appErr.Code < http.StatusInternalServerError {
		info.Details = appErr.Details
	}
	writeError(c, appErr.Code, info)
}

func writeError(c *gin.Context, statusCode int, info ErrorInfo) {
	c.JSON(statusCode, APIResponse{Success: false, Error: &info})
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
