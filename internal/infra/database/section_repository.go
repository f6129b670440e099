package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

type SectionRepository struct {
	DB *sql.DB
}

func NewSectionRepository(db *sql.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

const sectionColumns = `id, section_type, title, subtitle, description, cta_text, cta_link, data, is_active, display_order, created_at, updated_at`

func (r *SectionRepository) List(ctx context.Context) ([]*entity.ContentSection, error) {
	query := fmt.Sprintf(`SELECT %s FROM page_sections ORDER BY display_order, created_at`, sectionColumns)

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("list sections", err)
	}
	defer rows.Close()

	var sections []*entity.ContentSection
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, mapError("scan section", err)
		}
		sections = append(sections, s)
	}
	return sections, mapError("list sections", rows.Err())
}

// FindActiveByType returns the single authoritative section for a type.
// Newest active row wins if history ever leaves more than one behind.
func (r *SectionRepository) FindActiveByType(ctx context.Context, sectionType string) (*entity.ContentSection, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM page_sections
		WHERE section_type = $1 AND is_active
		ORDER BY updated_at DESC
		LIMIT 1
	`, sectionColumns)

	s, err := scanSection(r.DB.QueryRowContext(ctx, query, sectionType))
	if err != nil {
		return nil, mapError("find active section", err)
	}
	return s, nil
}

func (r *SectionRepository) Insert(ctx context.Context, s *entity.ContentSection) error {
	query := `
		INSERT INTO page_sections (id, section_type, title, subtitle, description, cta_text, cta_link, data, is_active, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	data, err := sqlValue(s.Data)
	if err != nil {
		return fmt.Errorf("insert section: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		s.ID,
		s.SectionType,
		s.Title,
		s.Subtitle,
		s.Description,
		s.CTAText,
		s.CTALink,
		data,
		s.IsActive,
		s.DisplayOrder,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return mapError("insert section", err)
}

func (r *SectionRepository) Patch(ctx context.Context, id string, fields map[string]any) (*entity.ContentSection, error) {
	set, args, err := buildSet(withUpdatedAt(fields))
	if err != nil {
		return nil, fmt.Errorf("patch section: %w", err)
	}

	query := fmt.Sprintf(`UPDATE page_sections SET %s WHERE id = $%d RETURNING %s`, set, len(args)+1, sectionColumns)
	args = append(args, id)

	s, err := scanSection(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError("patch section", err)
	}
	return s, nil
}

// Delete removes a section row outright. Deactivation is the usual path;
// this exists for purging drafts and history.
func (r *SectionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM page_sections WHERE id = $1`, id)
	if err != nil {
		return mapError("delete section", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func scanSection(row rowScanner) (*entity.ContentSection, error) {
	var s entity.ContentSection
	var data []byte
	err := row.Scan(
		&s.ID,
		&s.SectionType,
		&s.Title,
		&s.Subtitle,
		&s.Description,
		&s.CTAText,
		&s.CTALink,
		&data,
		&s.IsActive,
		&s.DisplayOrder,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		s.Data = data
	}
	return &s, nil
}
