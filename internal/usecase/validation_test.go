package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casereach/intake-api/internal/entity"
)

func validInput() SubmitLeadInput {
	return SubmitLeadInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "5551234567",
	}
}

func fieldsOf(errs []ValidationError) []string {
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	return fields
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5551234567", NormalizePhone("5551234567"))
	assert.Equal(t, "5551234567", NormalizePhone("(555) 123-4567"))
	assert.Equal(t, "5551234567", NormalizePhone("15551234567"))
	assert.Equal(t, "5551234567", NormalizePhone("+1 555-123-4567"))

	// Only a leading "1" country code is stripped.
	assert.Equal(t, "25551234567", NormalizePhone("25551234567"))
	assert.Equal(t, "555123456", NormalizePhone("555123456"))
}

func TestValidateAcceptsEquivalentPhoneForms(t *testing.T) {
	for _, phone := range []string{"5551234567", "(555) 123-4567", "15551234567"} {
		input := validInput()
		input.Phone = phone
		ApplyDefaults(&input)
		assert.Empty(t, ValidateSubmitLeadInput(input), "phone %q should validate", phone)
	}
}

func TestValidateRejectsBadPhones(t *testing.T) {
	for _, phone := range []string{"555123456", "25551234567"} {
		input := validInput()
		input.Phone = phone
		ApplyDefaults(&input)
		errs := ValidateSubmitLeadInput(input)
		assert.Contains(t, fieldsOf(errs), "phone", "phone %q should fail", phone)
	}
}

func TestValidateRejectsBadEmail(t *testing.T) {
	input := validInput()
	input.Email = "not-an-email"
	ApplyDefaults(&input)

	errs := ValidateSubmitLeadInput(input)
	assert.Contains(t, fieldsOf(errs), "email")
}

func TestValidateReportsEveryFailingField(t *testing.T) {
	input := SubmitLeadInput{
		FirstName: "",
		LastName:  "",
		Email:     "not-an-email",
		Phone:     "123",
	}
	ApplyDefaults(&input)

	fields := fieldsOf(ValidateSubmitLeadInput(input))
	assert.Contains(t, fields, "firstName")
	assert.Contains(t, fields, "lastName")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "phone")
}

func TestValidateBounds(t *testing.T) {
	input := validInput()
	input.FirstName = strings.Repeat("a", 101)
	input.Description = strings.Repeat("d", 5001)
	input.PracticeArea = strings.Repeat("p", 101)
	ApplyDefaults(&input)

	fields := fieldsOf(ValidateSubmitLeadInput(input))
	assert.Contains(t, fields, "firstName")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "practiceArea")
}

func TestValidateEnumMembership(t *testing.T) {
	input := validInput()
	input.PreferredContact = "carrier-pigeon"
	input.Urgency = "whenever"

	fields := fieldsOf(ValidateSubmitLeadInput(input))
	assert.Contains(t, fields, "preferredContact")
	assert.Contains(t, fields, "urgency")
}

func TestApplyDefaults(t *testing.T) {
	input := validInput()
	ApplyDefaults(&input)

	assert.Equal(t, entity.ContactPhone, input.PreferredContact)
	assert.Equal(t, entity.UrgencyNormal, input.Urgency)
	assert.Equal(t, entity.DefaultSource, input.Source)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	input := validInput()
	input.PreferredContact = entity.ContactText
	input.Urgency = entity.UrgencyUrgent
	input.Source = "web_demo"
	ApplyDefaults(&input)

	assert.Equal(t, entity.ContactText, input.PreferredContact)
	assert.Equal(t, entity.UrgencyUrgent, input.Urgency)
	assert.Equal(t, "web_demo", input.Source)
}
