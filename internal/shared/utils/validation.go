package utils

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/hotline-inc/hotline/internal/shared/errors"
)

func init() {
	// gin validates bound requests with its own engine; configure that one.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// BindJSON decodes the request body into obj and validates it. Every
// failure comes back as a validation *errors.AppError.
func BindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}

	var (
		fieldErrs validator.ValidationErrors
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case stderrors.As(err, &fieldErrs):
		return describeFieldErrors(fieldErrs)
	case stderrors.Is(err, io.EOF):
		return errors.NewValidationError("Request body is required")
	case stderrors.As(err, &syntaxErr), stderrors.Is(err, io.ErrUnexpectedEOF):
		return errors.NewValidationError("Malformed JSON body")
	case stderrors.As(err, &typeErr):
		return errors.NewValidationError("Invalid request body", typeErr.Field+" has the wrong type")
	default:
		return errors.NewValidationError("Invalid request body")
	}
}

func describeFieldErrors(fieldErrs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.NewValidationError("Validation failed", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters long"
	}

	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "datetime":
		return fmt.Sprintf("%s must match the layout %s", field, param)
	case "dive":
		return field + " contains an invalid entry"
	default:
		return fmt.Sprintf("%s failed the %q check", field, fe.Tag())
	}
}

// ValidateID rejects an empty or blank path id.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewValidationError("ID cannot be empty")
	}
	return nil
}
