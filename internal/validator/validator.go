package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"time"
	"unicode"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-().]{5,19}$`)

func ValidateString(value string, minLength int, maxLength int) error {
	n := len(value)
	if n < minLength || n > maxLength {
		return fmt.Errorf("must contain from %d to %d characters", minLength, maxLength)
	}

	return nil
}

func ValidatePassword(value string) error {
	if len(value) < 8 || len(value) > 30 {
		return fmt.Errorf("must be between 8 and 30 characters long")
	}

	var hasDigit, hasLetter bool
	for _, r := range value {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}
	if !hasDigit || !hasLetter {
		return fmt.Errorf("must contain at least one letter and one digit")
	}

	return nil
}

func ValidateEmail(value string) error {
	if err := ValidateString(value, 6, 200); err != nil {
		return err
	}

	if _, err := mail.ParseAddress(value); err != nil {
		return fmt.Errorf("is not a valid email address")
	}

	return nil
}

func ValidateFullName(value string) error {
	if err := ValidateString(value, 2, 100); err != nil {
		return err
	}

	for _, r := range value {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '\'' && r != '-' {
			return fmt.Errorf("must contain only letters, spaces, apostrophes or hyphens")
		}
	}

	return nil
}

func ValidatePhoneNumber(value string) error {
	if value == "" {
		return nil
	}
	if !phonePattern.MatchString(value) {
		return fmt.Errorf("is not a valid phone number")
	}

	return nil
}

// ValidateReminderTime rejects reminder times unreasonably far in the past;
// the console only schedules future follow-ups.
func ValidateReminderTime(value time.Time, now time.Time) error {
	if value.Before(now.Add(-time.Minute)) {
		return fmt.Errorf("must not be in the past")
	}

	return nil
}
