package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of a 400 response's field-level error list
type FieldError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

func fieldErrors(err error) []FieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}
	details := make([]FieldError, 0, len(validationErrs))
	for _, vErr := range validationErrs {
		issue := fmt.Sprintf("failed on tag '%s'", vErr.Tag())
		if vErr.Param() != "" {
			issue = fmt.Sprintf("failed on tag '%s' with param '%s'", vErr.Tag(), vErr.Param())
		}
		details = append(details, FieldError{Field: vErr.Field(), Issue: issue})
	}
	return details
}

// respondValidationError maps a binding failure to the 400 contract:
// a message plus one entry per failed field (empty for malformed JSON).
func respondValidationError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": message,
		"errors":  fieldErrors(err),
	})
}
