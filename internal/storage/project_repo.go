package storage


import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storyforge/internal/apperr"
)

// ProjectStore defines project registry operations.
type ProjectStore interface {
	// Create inserts a project record.
	Create(ctx context.Context, project *ProjectRecord) error
	// GetByID returns the project or apperr.ErrNotFound.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)
	// Exists reports whether the project is registered.
	Exists(ctx context.Context, id string) (bool, error)
	// ListAll returns all registered projects.
	ListAll(ctx context.Context) ([]ProjectRecord, error)
}

// ProjectRepo implements ProjectStore over SQLite.
type ProjectRepo struct {
	db *sql.DB
}

// NewProjectRepo creates a new ProjectRepo.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Create inserts a project record.
func (r *ProjectRepo) Create(ctx context.Context, project *ProjectRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (id, name) VALUES (?, ?)",
		project.ID, project.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// GetByID returns the project or apperr.ErrNotFound.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*ProjectRecord, error) {
	var p ProjectRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM projects WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("project %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query project: %w", err)
	}
	return &p, nil
}

// Exists reports whether the project is registered.
func (r *ProjectRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM projects WHERE id = ?", id,
	).Scan(&one)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check project existence: %w", err)
	}
	return true, nil
}

// ListAll returns all registered projects ordered by creation time.
func (r *ProjectRepo) ListAll(ctx context.Context) ([]ProjectRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM projects ORDER BY created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var projects []ProjectRecord
	for rows.Next() {
		var p ProjectRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return projects, nil
}
