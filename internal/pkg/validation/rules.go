package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/yigit/lrms/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// Student numbers: letters, digits and dashes, e.g. S100 or 901234-22
	StudentNumberPattern = `^[A-Za-z0-9-]{2,32}$`

	// Course and module codes, e.g. DIWA2110
	CodePattern = `^[A-Za-z0-9-]{2,32}$`

	PasswordMinLength = 8

	NameMinLength = 2
	NameMaxLength = 255
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	StudentNumber *regexp.Regexp
	Code          *regexp.Regexp
}{
	StudentNumber: regexp.MustCompile(StudentNumberPattern),
	Code:          regexp.MustCompile(CodePattern),
}

func invalid(format string, args ...interface{}) error {
	return apperrors.NewValidationError(fmt.Sprintf(format, args...))
}

// Password requires the minimum length plus at least one letter and one digit.
func Password(password string) error {
	if len(password) < PasswordMinLength {
		return invalid("password must be at least %d characters long", PasswordMinLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return invalid("password must contain at least one letter")
	}
	if !hasDigit {
		return invalid("password must contain at least one digit")
	}
	return nil
}

// StudentNumber checks the student number format.
func StudentNumber(number string) error {
	if !CompiledPatterns.StudentNumber.MatchString(number) {
		return invalid("student number %q is not valid", number)
	}
	return nil
}

// Code checks a course or module code.
func Code(field, code string) error {
	if !CompiledPatterns.Code.MatchString(code) {
		return invalid("%s must be 2-32 letters, digits or dashes", field)
	}
	return nil
}

// Name checks a display name after trimming.
func Name(field, name string) error {
	n := len([]rune(strings.TrimSpace(name)))
	if n < NameMinLength || n > NameMaxLength {
		return invalid("%s must be between %d and %d characters", field, NameMinLength, NameMaxLength)
	}
	return nil
}
