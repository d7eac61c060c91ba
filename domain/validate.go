package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsValidRoomID reports whether s is a canonical room identifier:
// 32 hex digits grouped 8-4-4-4-12, hyphen-separated, case-insensitive.
func IsValidRoomID(s string) bool {
	return validate.Var(s, "uuid") == nil
}

// IsNonEmptyText reports whether s still has content once leading and
// trailing whitespace is removed.
func IsNonEmptyText(s string) bool {
	return strings.TrimSpace(s) != ""
}
