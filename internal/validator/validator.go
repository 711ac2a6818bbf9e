package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Length bounds for signup fields, counted in characters.
const (
	UsernameMin = 2
	UsernameMax = 50
	LoginIDMin  = 3
	LoginIDMax  = 30
	PasswordMin = 6
	// PasswordMaxBytes is bcrypt's input limit, counted in bytes.
	PasswordMaxBytes = 72
)

// ValidationErrors maps a JSON field name to a human-readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	if _, ok := v[field]; !ok {
		v[field] = message
	}
}

func ValidateSignup(username, loginID, password string) ValidationErrors {
	errs := make(ValidationErrors)

	requireLength(errs, "username", "username", username, UsernameMin, UsernameMax)
	requireLength(errs, "loginId", "login ID", loginID, LoginIDMin, LoginIDMax)

	if isBlank(password) {
		errs.Add("password", "password is required")
	} else if utf8.RuneCountInString(password) < PasswordMin {
		errs.Add("password", fmt.Sprintf("password must be at least %d characters", PasswordMin))
	} else if len(password) > PasswordMaxBytes {
		errs.Add("password", fmt.Sprintf("password must be at most %d bytes", PasswordMaxBytes))
	}

	return errs
}

func ValidateLogin(loginID, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if isBlank(loginID) {
		errs.Add("loginId", "login ID is required")
	}
	if isBlank(password) {
		errs.Add("password", "password is required")
	}

	return errs
}

func requireLength(errs ValidationErrors, field, label, value string, min, max int) {
	if isBlank(value) {
		errs.Add(field, label+" is required")
		return
	}
	if n := utf8.RuneCountInString(value); n < min || n > max {
		errs.Add(field, fmt.Sprintf("%s must be between %d and %d characters", label, min, max))
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
