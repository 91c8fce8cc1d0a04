package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"leadcapture_backend/internal/forms/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("form not found")

// FormsRepository is the persistence interface for form definitions.
type FormsRepository interface {
	GetByID(ctx context.Context, id string) (domain.FormDefinition, error)
	List(ctx context.Context) ([]FormRow, error)
	Create(ctx context.Context, def domain.FormDefinition) error
	Update(ctx context.Context, def domain.FormDefinition) error
	Delete(ctx context.Context, id string) error
}

// FormRow is a form definition with its storage timestamps.
type FormRow struct {
	ID         string
	Name       string
	Definition domain.FormDefinition
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID loads a form definition. The definition column round-trips the
// full schema, so a reloaded form behaves identically to the stored one.
func (r *Repository) GetByID(ctx context.Context, id string) (domain.FormDefinition, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT definition
		FROM forms
		WHERE id = $1
	`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FormDefinition{}, ErrNotFound
		}
		return domain.FormDefinition{}, err
	}

	var def domain.FormDefinition
	if err := json.Unmarshal(raw, &def); err != nil {
		return domain.FormDefinition{}, err
	}
	return def, nil
}

// List returns all forms, most recently updated first.
func (r *Repository) List(ctx context.Context) ([]FormRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, definition, created_at, updated_at
		FROM forms
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]FormRow, 0)
	for rows.Next() {
		var item FormRow
		var raw []byte
		if err := rows.Scan(&item.ID, &item.Name, &raw, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &item.Definition); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}

// Create stores a new form definition.
func (r *Repository) Create(ctx context.Context, def domain.FormDefinition) error {
	raw, err := json.Marshal(def)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO forms (id, name, definition, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
	`, def.ID, def.Name, raw)
	return err
}

// Update replaces an existing form definition.
func (r *Repository) Update(ctx context.Context, def domain.FormDefinition) error {
	raw, err := json.Marshal(def)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE forms
		SET name = $2, definition = $3, updated_at = now()
		WHERE id = $1
	`, def.ID, def.Name, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a form definition.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM forms
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ FormsRepository = (*Repository)(nil)
