package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

type TeamMemberRepository struct {
	DB *sql.DB
}

func NewTeamMemberRepository(db *sql.DB) *TeamMemberRepository {
	return &TeamMemberRepository{DB: db}
}

const teamMemberColumns = `id, member_id, name, role, photo_url, contact, bio, display_order, is_active, created_at, updated_at`

func (r *TeamMemberRepository) List(ctx context.Context, onlyActive bool) ([]*entity.TeamMember, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_members`, teamMemberColumns)
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY display_order, name`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("list team members", err)
	}
	defer rows.Close()

	var members []*entity.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, mapError("scan team member", err)
		}
		members = append(members, m)
	}
	return members, mapError("list team members", rows.Err())
}

func (r *TeamMemberRepository) FindByMemberID(ctx context.Context, memberID string) (*entity.TeamMember, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_members WHERE member_id = $1`, teamMemberColumns)

	m, err := scanTeamMember(r.DB.QueryRowContext(ctx, query, memberID))
	if err != nil {
		return nil, mapError("find team member", err)
	}
	return m, nil
}

func (r *TeamMemberRepository) FindByID(ctx context.Context, id string) (*entity.TeamMember, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_members WHERE id = $1`, teamMemberColumns)

	m, err := scanTeamMember(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError("find team member", err)
	}
	return m, nil
}

func (r *TeamMemberRepository) Insert(ctx context.Context, m *entity.TeamMember) error {
	query := `
		INSERT INTO team_members (id, member_id, name, role, photo_url, contact, bio, display_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	contact, err := sqlValue(m.Contact)
	if err != nil {
		return fmt.Errorf("insert team member: %w", err)
	}
	bio, err := sqlValue(m.Bio)
	if err != nil {
		return fmt.Errorf("insert team member: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		m.ID,
		m.MemberID,
		m.Name,
		m.Role,
		m.PhotoURL,
		contact,
		bio,
		m.DisplayOrder,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return mapError("insert team member", err)
}

func (r *TeamMemberRepository) Patch(ctx context.Context, id string, fields map[string]any) (*entity.TeamMember, error) {
	set, args, err := buildSet(withUpdatedAt(fields))
	if err != nil {
		return nil, fmt.Errorf("patch team member: %w", err)
	}

	query := fmt.Sprintf(`UPDATE team_members SET %s WHERE id = $%d RETURNING %s`, set, len(args)+1, teamMemberColumns)
	args = append(args, id)

	m, err := scanTeamMember(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError("patch team member", err)
	}
	return m, nil
}

func (r *TeamMemberRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return mapError("delete team member", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// scanTeamMember decodes the jsonb payloads into their canonical shapes at
// the read boundary, so no consumer ever re-parses them.
func scanTeamMember(row rowScanner) (*entity.TeamMember, error) {
	var m entity.TeamMember
	var contact, bio []byte
	err := row.Scan(
		&m.ID,
		&m.MemberID,
		&m.Name,
		&m.Role,
		&m.PhotoURL,
		&contact,
		&bio,
		&m.DisplayOrder,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Contact = entity.DecodeContact(contact)
	m.Bio = entity.DecodeBio(bio)
	return &m, nil
}
