package utils

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Report ids are UUIDs and seeded ids are short numerics; route ids may
	// come from a GTFS feed and carry underscores or dots.
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// MaxTextLength bounds free-text fields such as descriptions and addresses.
const MaxTextLength = 1000

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateLatitude validates latitude values
func ValidateLatitude(lat float64) error {
	if math.IsNaN(lat) || lat < -90.0 || lat > 90.0 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates longitude values
func ValidateLongitude(lng float64) error {
	if math.IsNaN(lng) || lng < -180.0 || lng > 180.0 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateRequiredText checks that a free-text field is present and not
// oversized. Whitespace-only input counts as missing.
func ValidateRequiredText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(field + " is required")
	}
	return ValidateOptionalText(field, value)
}

// ValidateOptionalText checks the length of a free-text field that may be empty.
func ValidateOptionalText(field, value string) error {
	if utf8.RuneCountInString(value) > MaxTextLength {
		return errors.New(field + " too long (max 1000 characters)")
	}
	return nil
}
