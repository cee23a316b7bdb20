// Package validate holds syntactic checks for account identifiers and passwords.
package validate

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 6
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Error describes why a field was rejected.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// Username checks that s is 3 to 30 characters of letters, digits, hyphens or underscores.
func Username(s string) error {
	switch {
	case s == "":
		return &Error{Field: "username", Reason: "username is required"}
	case len(s) < MinUsernameLength:
		return &Error{Field: "username", Reason: fmt.Sprintf("username must be at least %d characters", MinUsernameLength)}
	case len(s) > MaxUsernameLength:
		return &Error{Field: "username", Reason: fmt.Sprintf("username must be at most %d characters", MaxUsernameLength)}
	case !usernamePattern.MatchString(s):
		return &Error{Field: "username", Reason: "username may only contain letters, numbers, hyphens and underscores"}
	}
	return nil
}

// Password checks length bounds only; there are no composition rules.
// The minimum counts characters, the maximum counts bytes.
func Password(s string) error {
	switch {
	case s == "":
		return &Error{Field: "password", Reason: "password is required"}
	case utf8.RuneCountInString(s) < MinPasswordLength:
		return &Error{Field: "password", Reason: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)}
	case len(s) > MaxPasswordBytes:
		return &Error{Field: "password", Reason: fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes)}
	}
	return nil
}
