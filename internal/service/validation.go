package service

import (
	"strings"
	"unicode/utf8"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const maxNameLength = 255

// requireName trims value and rejects empty or oversized names.
func requireName(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperrors.NewValidationError(field+" is required", map[string]any{"field": field})
	}
	if utf8.RuneCountInString(value) > maxNameLength {
		return "", apperrors.NewValidationError(field+" is too long", map[string]any{"field": field, "max": maxNameLength})
	}
	return value, nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError(field+" must be positive", map[string]any{"field": field, "value": id})
	}
	return nil
}
