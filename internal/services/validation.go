package services

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// isbnPattern is the catalog ISBN format, e.g. 12-345-678.
var isbnPattern = regexp.MustCompile(`^\d{2}-\d{3}-\d{3}$`)

// check runs the rules against value and converts a failure into a ValidationError.
func check(value any, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

// requireText fails with message when value is empty or whitespace.
func requireText(value, message string) error {
	return check(strings.TrimSpace(value), validation.Required.Error(message))
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
