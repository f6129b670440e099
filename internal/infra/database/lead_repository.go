package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, name, phone, email, interest, notes, message, status, team_member_id, created_at, updated_at`

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads ORDER BY created_at DESC`, leadColumns)

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("list leads", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, mapError("scan lead", err)
		}
		leads = append(leads, lead)
	}
	return leads, mapError("list leads", rows.Err())
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id = $1`, leadColumns)

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError("find lead", err)
	}
	return lead, nil
}

func (r *LeadRepository) Insert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, phone, email, interest, notes, message, status, team_member_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Phone,
		lead.Email,
		lead.Interest,
		lead.Notes,
		lead.Message,
		lead.Status,
		lead.TeamMemberID,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	return mapError("insert lead", err)
}

// Patch applies exactly the supplied fields in one UPDATE. updated_at is
// always stamped, even when the reconciler forgot to.
func (r *LeadRepository) Patch(ctx context.Context, id string, fields map[string]any) (*entity.Lead, error) {
	set, args, err := buildSet(withUpdatedAt(fields))
	if err != nil {
		return nil, fmt.Errorf("patch lead: %w", err)
	}

	query := fmt.Sprintf(`UPDATE leads SET %s WHERE id = $%d RETURNING %s`, set, len(args)+1, leadColumns)
	args = append(args, id)

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError("patch lead", err)
	}
	return lead, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return mapError("delete lead", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Phone,
		&lead.Email,
		&lead.Interest,
		&lead.Notes,
		&lead.Message,
		&lead.Status,
		&lead.TeamMemberID,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}
