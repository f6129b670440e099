package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level problems so the caller can report
// all of them at once instead of one per round trip.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

func ValidateCaptureLeadInput(input CaptureLeadInput) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if strings.TrimSpace(input.Email) != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")
	return len(cleaned) >= 8 && len(cleaned) <= 15
}
