package usecase

import (
	"context"

	"github.com/casereach/intake-api/internal/entity"
)

// EmailService sends the two per-submission messages. Both are best-effort;
// the pipeline never lets a send failure reach the submitter.
type EmailService interface {
	SendLeadNotification(lead *entity.Lead) error
	SendLeadConfirmation(lead *entity.Lead) error
}

// CRMService forwards a lead to the external case-management system. The
// direct HTTP client and the queue-backed producer both satisfy it.
type CRMService interface {
	SyncLead(ctx context.Context, lead *entity.Lead) error
}
