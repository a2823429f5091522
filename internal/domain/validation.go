package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidName  = errors.New("invalid rider name")
	ErrInvalidEmail = errors.New("invalid email format")
	ErrInvalidLabel = errors.New("invalid route label")
	ErrInvalidPrice = errors.New("invalid offering price")
)

// Validation constants
const (
	MaxNameLength  = 100
	MaxLabelLength = 100
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateName validates a rider display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateLabel validates an origin or destination label.
func ValidateLabel(label string) error {
	label = strings.TrimSpace(label)

	if label == "" {
		return fmt.Errorf("%w: label cannot be empty", ErrInvalidLabel)
	}

	if len(label) > MaxLabelLength {
		return fmt.Errorf("%w: label exceeds %d characters", ErrInvalidLabel, MaxLabelLength)
	}

	return nil
}

// ValidatePrice validates an offering price in minor units.
func ValidatePrice(price int64) error {
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidPrice)
	}

	return nil
}
