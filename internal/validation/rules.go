// Package validation provides custom validation rules for the application.
package validation

import (
	"net/url"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/impactrealty/backoffice/internal/errors"
)

var (
	// destinationNameRegex matches lowercase agent destination names.
	destinationNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

	// entityNameRegex matches back-office record entity names.
	entityNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// DestinationName validates agent destination names: lowercase, starting with a
// letter, with digits, underscores and hyphens allowed after.
var DestinationName = validation.NewStringRuleWithError(
	func(s string) bool {
		return destinationNameRegex.MatchString(s)
	},
	validation.NewError("validation_destination_name", "must be a lowercase destination name"),
)

// EntityName validates record entity names: lowercase snake_case identifiers.
var EntityName = validation.NewStringRuleWithError(
	func(s string) bool {
		return entityNameRegex.MatchString(s)
	},
	validation.NewError("validation_entity_name", "must be a lowercase snake_case entity name"),
)

// HTTPAddress validates that a string is an absolute http or https URL.
var HTTPAddress = validation.NewStringRuleWithError(
	func(s string) bool {
		u, err := url.Parse(s)
		if err != nil {
			return false
		}
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	},
	validation.NewError("validation_http_address", "must be an absolute http or https URL"),
)
