package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"

	"github.com/casereach/intake-api/internal/entity"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

const leadColumns = `id, first_name, last_name, email, phone, preferred_contact,
	practice_area, practice_area_category, urgency, description, quiz_answers,
	source, status, notes, assigned_to, created_at, updated_at`

// LeadRepository persists leads in Postgres. It enforces no business rules;
// records arrive fully formed (id assigned, PII already encrypted).
type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Insert(ctx context.Context, lead *entity.Lead) error {
	answers, err := json.Marshal(lead.QuizAnswers)
	if err != nil {
		return fmt.Errorf("failed to serialize quiz answers: %w", err)
	}

	query := `
		INSERT INTO leads (
			id, first_name, last_name, email, phone, preferred_contact,
			practice_area, practice_area_category, urgency, description,
			quiz_answers, source, status, notes, assigned_to, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err = r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.PreferredContact,
		lead.PracticeArea,
		lead.PracticeAreaCategory,
		lead.Urgency,
		lead.Description,
		// pq would send []byte as bytea; jsonb wants text.
		string(answers),
		lead.Source,
		lead.Status,
		lead.Notes,
		lead.AssignedTo,
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrDuplicateLead
		}
		log.Printf("❌ database: lead insert failed: %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`
	args := []any{}

	where := ""
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	if filter.PracticeArea != "" {
		args = append(args, filter.PracticeArea)
		if where == "" {
			where = fmt.Sprintf(" WHERE practice_area = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND practice_area = $%d", len(args))
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	args = append(args, limit, offset)
	query += where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}

	return lead, nil
}

// UpdateAdminFields applies a partial patch to the admin-mutable columns.
// Nil patch fields leave the stored value untouched (COALESCE), and
// updated_at is stamped on every successful update.
func (r *LeadRepository) UpdateAdminFields(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	query := `
		UPDATE leads SET
			status = COALESCE($2, status),
			notes = COALESCE($3, notes),
			assigned_to = COALESCE($4, assigned_to),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id, patch.Status, patch.Notes, patch.AssignedTo))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}

	return lead, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var answers []byte

	err := row.Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.Phone,
		&lead.PreferredContact,
		&lead.PracticeArea,
		&lead.PracticeAreaCategory,
		&lead.Urgency,
		&lead.Description,
		&answers,
		&lead.Source,
		&lead.Status,
		&lead.Notes,
		&lead.AssignedTo,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &lead.QuizAnswers); err != nil {
			// Quiz answers are opaque; a bad blob should not sink the row.
			log.Printf("⚠️ database: unreadable quiz_answers for lead %s: %v", lead.ID, err)
		}
	}

	return &lead, nil
}
