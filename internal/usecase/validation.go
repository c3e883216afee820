package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/casereach/intake-api/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var nonDigits = regexp.MustCompile(`\D`)

// ApplyDefaults fills the optional fields the client may omit. Runs once,
// before validation, so the rest of the pipeline only sees complete input.
func ApplyDefaults(input *SubmitLeadInput) {
	if input.PreferredContact == "" {
		input.PreferredContact = entity.ContactPhone
	}
	if input.Urgency == "" {
		input.Urgency = entity.UrgencyNormal
	}
	if input.Source == "" {
		input.Source = entity.DefaultSource
	}
}

// NormalizePhone reduces a raw phone string to its significant digits. An
// 11-digit number with a leading US country code "1" is stripped to 10.
func NormalizePhone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) == 11 && digits[0] == '1' {
		return digits[1:]
	}
	return digits
}

// ValidateSubmitLeadInput checks every field and reports every failure, not
// just the first one.
func ValidateSubmitLeadInput(input SubmitLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FirstName) == "" {
		errors = append(errors, ValidationError{"firstName", "is required"})
	} else if len(input.FirstName) > 100 {
		errors = append(errors, ValidationError{"firstName", "must not exceed 100 characters"})
	}

	if strings.TrimSpace(input.LastName) == "" {
		errors = append(errors, ValidationError{"lastName", "is required"})
	} else if len(input.LastName) > 100 {
		errors = append(errors, ValidationError{"lastName", "must not exceed 100 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if len(input.Phone) < 10 || len(input.Phone) > 20 {
		errors = append(errors, ValidationError{"phone", "must be between 10 and 20 characters"})
	} else if len(NormalizePhone(input.Phone)) != 10 {
		errors = append(errors, ValidationError{"phone", "must be a valid 10-digit phone number"})
	}

	if !entity.ValidContactMethod(input.PreferredContact) {
		errors = append(errors, ValidationError{"preferredContact", "must be phone, email or text"})
	}

	if !entity.ValidUrgency(input.Urgency) {
		errors = append(errors, ValidationError{"urgency", "must be urgent, normal or informational"})
	}

	if len(input.PracticeArea) > 100 {
		errors = append(errors, ValidationError{"practiceArea", "must not exceed 100 characters"})
	}

	if len(input.Description) > 5000 {
		errors = append(errors, ValidationError{"description", "must not exceed 5000 characters"})
	}

	return errors
}
