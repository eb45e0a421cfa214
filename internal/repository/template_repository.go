// internal/repository/template_repository.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"adpulse/internal/interfaces"
	"adpulse/internal/models"
)

type templateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) *templateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) ListAdTemplates(ctx context.Context) ([]*models.AdTemplate, error) {
	query := `
		SELECT id, name, category, platform, thumbnail, content, is_active, created_at
		FROM ad_templates
		WHERE is_active = true
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*models.AdTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *templateRepository) GetAdTemplate(ctx context.Context, id string) (*models.AdTemplate, error) {
	query := `
		SELECT id, name, category, platform, thumbnail, content, is_active, created_at
		FROM ad_templates
		WHERE id = $1
	`
	t, err := scanTemplate(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

func scanTemplate(row rowScanner) (*models.AdTemplate, error) {
	var t models.AdTemplate
	var content []byte
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Category,
		&t.Platform,
		&t.Thumbnail,
		&content,
		&t.IsActive,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &t.Content); err != nil {
			return nil, fmt.Errorf("decode template content: %w", err)
		}
	}
	return &t, nil
}
