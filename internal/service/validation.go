package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/house-rentals/internal/domain"
)

// Messages shown to the user when a form rule fails.
const (
	MsgFullNameRequired = "Full name is required."
	MsgInvalidPhone     = "Enter a valid phone number."
	MsgInvalidEmail     = "Enter a valid email address."
	MsgShortPassword    = "Password must be at least 6 characters long."
	MsgContactRequired  = "Please enter your email and phone number."
)

const minPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Optional "+", then 2-15 digits with no leading zero (E.164 shape).
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// ValidationError carries a message fit to show the user. It matches
// domain.ErrInvalidInput under errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// ValidEmail reports whether s has a local part, an "@" and a dotted domain.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether s is an optional "+" followed by 2-15 digits.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidPassword reports whether s is at least six characters long.
func ValidPassword(s string) bool {
	return utf8.RuneCountInString(s) >= minPasswordLength
}

// SignupInput is the account registration form.
type SignupInput struct {
	FullName string
	Phone    string
	Email    string
	Password string
}

// ValidateSignup returns the first failing rule's message, or "".
func ValidateSignup(in SignupInput) string {
	if strings.TrimSpace(in.FullName) == "" {
		return MsgFullNameRequired
	}
	if !ValidPhone(in.Phone) {
		return MsgInvalidPhone
	}
	return ValidateLogin(in.Email, in.Password)
}

// ValidateLogin returns the first failing rule's message, or "".
func ValidateLogin(email, password string) string {
	if !ValidEmail(email) {
		return MsgInvalidEmail
	}
	if !ValidPassword(password) {
		return MsgShortPassword
	}
	return ""
}

// ValidateContact checks the contact details collected before checkout.
func ValidateContact(email, phone string) string {
	if email == "" || phone == "" {
		return MsgContactRequired
	}
	if !ValidEmail(email) {
		return MsgInvalidEmail
	}
	if !ValidPhone(phone) {
		return MsgInvalidPhone
	}
	return ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
