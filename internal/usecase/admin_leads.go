package usecase

import (
	"context"

	"github.com/casereach/intake-api/internal/entity"
)

// LeadAdminUseCase gives internal staff read/write access to stored leads.
// Every record that leaves this layer has its PII fields decrypted; no caller
// ever sees envelope strings.
type LeadAdminUseCase struct {
	Repo  entity.LeadRepositoryInterface
	Codec FieldDecoder
}

// FieldDecoder is the slice of the crypto codec the admin surface needs.
type FieldDecoder interface {
	DecryptLead(lead entity.Lead) entity.Lead
}

func NewLeadAdminUseCase(repo entity.LeadRepositoryInterface, codec FieldDecoder) *LeadAdminUseCase {
	return &LeadAdminUseCase{Repo: repo, Codec: codec}
}

func (uc *LeadAdminUseCase) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	leads, err := uc.Repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	decrypted := make([]*entity.Lead, len(leads))
	for i, lead := range leads {
		plain := uc.Codec.DecryptLead(*lead)
		decrypted[i] = &plain
	}

	return decrypted, nil
}

func (uc *LeadAdminUseCase) Get(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	plain := uc.Codec.DecryptLead(*lead)
	return &plain, nil
}

// Update patches status/notes/assignedTo. PII fields are never updatable
// after creation and are not re-encrypted here; the returned record is
// decrypted like every other admin read.
func (uc *LeadAdminUseCase) Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	lead, err := uc.Repo.UpdateAdminFields(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	plain := uc.Codec.DecryptLead(*lead)
	return &plain, nil
}

func (uc *LeadAdminUseCase) Delete(ctx context.Context, id string) error {
	return uc.Repo.Delete(ctx, id)
}
