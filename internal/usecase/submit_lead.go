package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/casereach/intake-api/internal/entity"
	"github.com/casereach/intake-api/internal/infra/crypto"
)

const notifyTimeout = 15 * time.Second

var (
	leadsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_submitted_total",
			Help: "Total number of leads accepted by the submission pipeline",
		},
		[]string{"urgency"},
	)

	notificationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_errors_total",
			Help: "Total number of failed post-submission notifications",
		},
		[]string{"channel"},
	)
)

// SubmitLeadUseCase is the single entry point for turning a raw submission
// into a persisted, notified lead.
type SubmitLeadUseCase struct {
	Repo         entity.LeadRepositoryInterface
	Codec        *crypto.FieldCodec
	EmailService EmailService
	CRMService   CRMService

	notifications sync.WaitGroup
}

func NewSubmitLeadUseCase(
	repo entity.LeadRepositoryInterface,
	codec *crypto.FieldCodec,
	emailService EmailService,
	crmService CRMService,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Repo:         repo,
		Codec:        codec,
		EmailService: emailService,
		CRMService:   crmService,
	}
}

// Execute runs the pipeline: validate, assign identity, encrypt, persist,
// then fire the three notification branches. The success response depends on
// persistence alone; the branches are detached and individually isolated.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	ApplyDefaults(&input)

	if validationErrors := ValidateSubmitLeadInput(input); len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "lead submission failed validation",
			Fields:  validationErrors,
		}
	}

	now := time.Now()
	lead := &entity.Lead{
		ID:                   uuid.New().String(),
		FirstName:            strings.TrimSpace(input.FirstName),
		LastName:             strings.TrimSpace(input.LastName),
		Email:                input.Email,
		Phone:                NormalizePhone(input.Phone),
		PreferredContact:     input.PreferredContact,
		PracticeArea:         input.PracticeArea,
		PracticeAreaCategory: input.PracticeAreaCategory,
		Urgency:              input.Urgency,
		Description:          input.Description,
		QuizAnswers:          input.QuizAnswers,
		Source:               input.Source,
		Status:               entity.StatusNew,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	encrypted, err := uc.Codec.EncryptLead(*lead)
	if err != nil {
		log.Printf("❌ submit: field encryption failed for lead %s: %v", lead.ID, err)
		return nil, &TechnicalError{
			Code:    "CRYPTO_ERROR",
			Message: "failed to protect lead data",
		}
	}

	if err := uc.Repo.Insert(ctx, &encrypted); err != nil {
		log.Printf("❌ submit: persist failed for lead %s: %v", lead.ID, err)
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to save lead",
		}
	}

	leadsSubmitted.WithLabelValues(lead.Urgency).Inc()

	// Persistence succeeded; everything from here on is best effort and must
	// never touch the response.
	uc.dispatchNotifications(lead)

	return &SubmitLeadOutput{
		Success:           true,
		LeadID:            lead.ID,
		Message:           "Thank you for reaching out. Our team will contact you shortly.",
		EstimatedResponse: estimatedResponseFor(lead.Urgency),
	}, nil
}

// dispatchNotifications launches the three branches as detached goroutines,
// each with its own error boundary. A failure in one branch is logged and
// counted without affecting the others.
func (uc *SubmitLeadUseCase) dispatchNotifications(lead *entity.Lead) {
	if uc.EmailService != nil {
		uc.notifications.Add(1)
		go func() {
			defer uc.notifications.Done()
			if err := uc.EmailService.SendLeadNotification(lead); err != nil {
				notificationErrors.WithLabelValues("staff_email").Inc()
				log.Printf("⚠️ notify: staff email failed for lead %s: %v", lead.ID, err)
			}
		}()

		uc.notifications.Add(1)
		go func() {
			defer uc.notifications.Done()
			if err := uc.EmailService.SendLeadConfirmation(lead); err != nil {
				notificationErrors.WithLabelValues("confirmation_email").Inc()
				log.Printf("⚠️ notify: confirmation email failed for lead %s: %v", lead.ID, err)
			}
		}()
	}

	if uc.CRMService != nil {
		uc.notifications.Add(1)
		go func() {
			defer uc.notifications.Done()
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := uc.CRMService.SyncLead(ctx, lead); err != nil {
				notificationErrors.WithLabelValues("crm").Inc()
				log.Printf("⚠️ notify: CRM sync failed for lead %s: %v", lead.ID, err)
			}
		}()
	}
}

// WaitForNotifications blocks until in-flight notification branches finish.
// Used on shutdown so a SIGTERM doesn't drop sends, and by tests. Never
// called on the response path.
func (uc *SubmitLeadUseCase) WaitForNotifications() {
	uc.notifications.Wait()
}

func estimatedResponseFor(urgency string) string {
	if urgency == entity.UrgencyUrgent {
		return "within 2 hours"
	}
	return "within 24 hours"
}
