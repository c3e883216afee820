package crypto

import (
	"github.com/casereach/intake-api/internal/entity"
)

// FieldCodec applies the envelope cipher to the sensitive subset of a lead
// (email, phone, description). Both directions work on a copy; the input
// record is never mutated, so callers can keep the plaintext value for
// notifications or error paths.
type FieldCodec struct {
	Cipher *CipherService
}

func NewFieldCodec(cipher *CipherService) *FieldCodec {
	return &FieldCodec{Cipher: cipher}
}

// EncryptLead returns a copy of lead with the sensitive fields replaced by
// envelopes. Empty fields are left empty rather than encrypted.
func (c *FieldCodec) EncryptLead(lead entity.Lead) (entity.Lead, error) {
	var err error

	if lead.Email, err = c.Cipher.Encrypt(lead.Email); err != nil {
		return entity.Lead{}, err
	}
	if lead.Phone, err = c.Cipher.Encrypt(lead.Phone); err != nil {
		return entity.Lead{}, err
	}
	if lead.Description, err = c.Cipher.Encrypt(lead.Description); err != nil {
		return entity.Lead{}, err
	}

	return lead, nil
}

// DecryptLead returns a copy of lead with the sensitive fields decoded.
// Fields that are not recognizable envelopes pass through unchanged.
func (c *FieldCodec) DecryptLead(lead entity.Lead) entity.Lead {
	lead.Email = c.Cipher.Decrypt(lead.Email)
	lead.Phone = c.Cipher.Decrypt(lead.Phone)
	lead.Description = c.Cipher.Decrypt(lead.Description)
	return lead
}
