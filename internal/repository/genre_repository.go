package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/movie-rental-api/internal/model"
)

// GenreRepo encapsulates all queries against the genres table.  Nothing here
// touches movies: genre writes never propagate into movie snapshots.
type GenreRepo struct {
	db *sql.DB
}

func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{db: db} }

func (r *GenreRepo) Create(ctx context.Context, g *model.Genre) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx, "INSERT INTO genres (id, name) VALUES (?, ?)", g.ID, g.Name)
	return err
}

// GetByID returns ErrGenreNotFound when no row matches.
func (r *GenreRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	var g model.Genre
	err := r.db.QueryRowContext(ctx, "SELECT id, name FROM genres WHERE id = ?", id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GenreRepo) List(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM genres ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Genre{}
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GenreRepo) Update(ctx context.Context, g *model.Genre) error {
	res, err := r.db.ExecContext(ctx, "UPDATE genres SET name = ? WHERE id = ?", g.Name, g.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGenreNotFound
	}
	return nil
}

// Delete removes the genre and returns the row as it was before deletion.
func (r *GenreRepo) Delete(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var g model.Genre
	if err := tx.QueryRowContext(ctx, "SELECT id, name FROM genres WHERE id = ? FOR UPDATE", id).Scan(&g.ID, &g.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM genres WHERE id = ?", id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &g, nil
}
