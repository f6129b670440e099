package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

type LegalPageRepository struct {
	DB *sql.DB
}

func NewLegalPageRepository(db *sql.DB) *LegalPageRepository {
	return &LegalPageRepository{DB: db}
}

const legalPageColumns = `id, page_type, title, content, is_active, created_at, updated_at`

func (r *LegalPageRepository) List(ctx context.Context) ([]*entity.LegalPage, error) {
	query := fmt.Sprintf(`SELECT %s FROM legal_pages ORDER BY page_type, updated_at DESC`, legalPageColumns)

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("list legal pages", err)
	}
	defer rows.Close()

	var pages []*entity.LegalPage
	for rows.Next() {
		p, err := scanLegalPage(rows)
		if err != nil {
			return nil, mapError("scan legal page", err)
		}
		pages = append(pages, p)
	}
	return pages, mapError("list legal pages", rows.Err())
}

func (r *LegalPageRepository) FindActiveByType(ctx context.Context, pageType string) (*entity.LegalPage, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM legal_pages
		WHERE page_type = $1 AND is_active
		ORDER BY updated_at DESC
		LIMIT 1
	`, legalPageColumns)

	p, err := scanLegalPage(r.DB.QueryRowContext(ctx, query, pageType))
	if err != nil {
		return nil, mapError("find active legal page", err)
	}
	return p, nil
}

func (r *LegalPageRepository) Insert(ctx context.Context, p *entity.LegalPage) error {
	query := `
		INSERT INTO legal_pages (id, page_type, title, content, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.PageType,
		p.Title,
		p.Content,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapError("insert legal page", err)
}

func (r *LegalPageRepository) Patch(ctx context.Context, id string, fields map[string]any) (*entity.LegalPage, error) {
	set, args, err := buildSet(withUpdatedAt(fields))
	if err != nil {
		return nil, fmt.Errorf("patch legal page: %w", err)
	}

	query := fmt.Sprintf(`UPDATE legal_pages SET %s WHERE id = $%d RETURNING %s`, set, len(args)+1, legalPageColumns)
	args = append(args, id)

	p, err := scanLegalPage(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError("patch legal page", err)
	}
	return p, nil
}

func (r *LegalPageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM legal_pages WHERE id = $1`, id)
	if err != nil {
		return mapError("delete legal page", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func scanLegalPage(row rowScanner) (*entity.LegalPage, error) {
	var p entity.LegalPage
	err := row.Scan(
		&p.ID,
		&p.PageType,
		&p.Title,
		&p.Content,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
