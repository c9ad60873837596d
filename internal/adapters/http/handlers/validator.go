package handlers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request body"
	}

	parts := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		parts = append(parts, fmt.Sprintf("%s failed on '%s'", fieldErr.Field(), fieldErr.Tag()))
	}
	return strings.Join(parts, "; ")
}
