package entity

import (
	"context"
	"errors"
	"time"
)

// Preferred contact channels accepted from the intake form.
const (
	ContactPhone = "phone"
	ContactEmail = "email"
	ContactText  = "text"
)

// Urgency levels reported by the questionnaire.
const (
	UrgencyUrgent        = "urgent"
	UrgencyNormal        = "normal"
	UrgencyInformational = "informational"
)

// Statuses a lead moves through during intake review. Transitions are not
// constrained: staff may correct any status to any other via the admin patch.
const (
	StatusNew         = "new"
	StatusUnderReview = "under_review"
	StatusQualified   = "qualified"
	StatusMatched     = "matched"
	StatusRetained    = "retained"
	StatusClosed      = "closed"
)

const DefaultSource = "ios_app"

var (
	ErrLeadNotFound  = errors.New("lead not found")
	ErrDuplicateLead = errors.New("lead id already exists")
)

// Lead is the unit of persistence. Email, Phone and Description are held as
// ciphertext envelopes at rest and as plaintext everywhere else.
type Lead struct {
	ID                   string         `json:"id"`
	FirstName            string         `json:"firstName"`
	LastName             string         `json:"lastName"`
	Email                string         `json:"email"`
	Phone                string         `json:"phone"`
	PreferredContact     string         `json:"preferredContact"`
	PracticeArea         string         `json:"practiceArea,omitempty"`
	PracticeAreaCategory string         `json:"practiceAreaCategory,omitempty"`
	Urgency              string         `json:"urgency"`
	Description          string         `json:"description,omitempty"`
	QuizAnswers          map[string]any `json:"quizAnswers,omitempty"`
	Source               string         `json:"source"`
	Status               string         `json:"status"`
	Notes                string         `json:"notes,omitempty"`
	AssignedTo           string         `json:"assignedTo,omitempty"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

// LeadFilter narrows a listing. Zero values mean "no filter"; Limit of zero
// falls back to the repository default.
type LeadFilter struct {
	Status       string
	PracticeArea string
	Limit        int
	Offset       int
}

// LeadPatch is the admin-mutable subset. Nil pointers mean "don't touch".
type LeadPatch struct {
	Status     *string
	Notes      *string
	AssignedTo *string
}

type LeadRepositoryInterface interface {
	Insert(ctx context.Context, lead *Lead) error
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	UpdateAdminFields(ctx context.Context, id string, patch LeadPatch) (*Lead, error)
	Delete(ctx context.Context, id string) error
}

func ValidContactMethod(m string) bool {
	return m == ContactPhone || m == ContactEmail || m == ContactText
}

func ValidUrgency(u string) bool {
	return u == UrgencyUrgent || u == UrgencyNormal || u == UrgencyInformational
}

func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusUnderReview, StatusQualified, StatusMatched, StatusRetained, StatusClosed:
		return true
	}
	return false
}
