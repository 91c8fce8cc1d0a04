// Package repository persists leads in PostgreSQL via pgx.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadcapture_backend/internal/leads/domain"
)

var ErrNotFound = errors.New("lead not found")

// ListFilter narrows the dashboard lead list.
type ListFilter struct {
	FormID   string
	Status   string
	MinScore *int
	Limit    int
	Offset   int
}

// LeadsRepository is the persistence surface the service depends on.
type LeadsRepository interface {
	Insert(ctx context.Context, lead domain.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Lead, error)
	ExistsByEmailAndForm(ctx context.Context, email, formID string) (bool, error)
	UpdateScore(ctx context.Context, id uuid.UUID, score int, status string) error
	IterateForRescore(ctx context.Context, fn func(lead domain.Lead) error) error
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `id, name, email, phone, company, source, status, stage,
	tags, lead_score, answers, metadata, is_duplicate, created_at, updated_at`

func (r *Repository) Insert(ctx context.Context, lead domain.Lead) error {
	answers, err := json.Marshal(lead.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	metadata, err := json.Marshal(lead.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO leads (
			id, name, email, phone, company, source, status, stage,
			tags, lead_score, answers, metadata, is_duplicate, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
	`, lead.ID, lead.Name, lead.Email, lead.Phone, lead.Company, lead.Source,
		lead.Status, lead.Stage, lead.Tags, lead.LeadScore, answers, metadata,
		lead.IsDuplicate, lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lead{}, ErrNotFound
		}
		return domain.Lead{}, err
	}
	return lead, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]domain.Lead, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if filter.FormID != "" {
		args = append(args, filter.FormID)
		where = append(where, fmt.Sprintf("metadata->>'formId' = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.MinScore != nil {
		args = append(args, *filter.MinScore)
		where = append(where, fmt.Sprintf("lead_score >= $%d", len(args)))
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, lead)
	}
	return items, rows.Err()
}

func (r *Repository) ExistsByEmailAndForm(ctx context.Context, email, formID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM leads
			WHERE lower(email) = lower($1) AND metadata->>'formId' = $2
		)
	`, email, formID).Scan(&exists)
	return exists, err
}

func (r *Repository) UpdateScore(ctx context.Context, id uuid.UUID, score int, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET lead_score = $2, status = $3, updated_at = $4 WHERE id = $1
	`, id, score, status, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IterateForRescore streams every lead to fn, oldest first. Used by the
// rescore backfill; fn errors abort the iteration.
func (r *Repository) IterateForRescore(ctx context.Context, fn func(lead domain.Lead) error) error {
	rows, err := r.pool.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at ASC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return err
		}
		if err := fn(lead); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var lead domain.Lead
	var answers, metadata []byte

	err := row.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Company,
		&lead.Source, &lead.Status, &lead.Stage, &lead.Tags, &lead.LeadScore,
		&answers, &metadata, &lead.IsDuplicate, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return domain.Lead{}, err
	}

	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &lead.Answers); err != nil {
			return domain.Lead{}, fmt.Errorf("unmarshal answers: %w", err)
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &lead.Metadata); err != nil {
			return domain.Lead{}, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return lead, nil
}
