package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/movie-rental-api/internal/model"
)

// MovieRepo persists movies together with their embedded genre snapshot
// (genre_id, genre_name).  The snapshot is stored exactly as given; this
// repository never reads the genres table.
type MovieRepo struct {
	db *sql.DB
}

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieColumns = "id, title, genre_id, genre_name, number_in_stock, daily_rental_rate"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(s rowScanner) (*model.Movie, error) {
	var m model.Movie
	if err := s.Scan(&m.ID, &m.Title, &m.Genre.ID, &m.Genre.Name, &m.NumberInStock, &m.DailyRentalRate); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	const q = `INSERT INTO movies (id, title, genre_id, genre_name, number_in_stock, daily_rental_rate)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, m.ID, m.Title, m.Genre.ID, m.Genre.Name, m.NumberInStock, m.DailyRentalRate)
	return err
}

// GetByID returns ErrMovieNotFound when no row matches.
func (r *MovieRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	return m, err
}

// List returns every movie ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+movieColumns+" FROM movies ORDER BY title, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// Update overwrites the movie identified by m.ID, snapshot included.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies
	           SET title = ?, genre_id = ?, genre_name = ?, number_in_stock = ?, daily_rental_rate = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Genre.ID, m.Genre.Name, m.NumberInStock, m.DailyRentalRate, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Delete removes the movie and returns the row as it was before deletion.
func (r *MovieRepo) Delete(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	m, err := scanMovie(tx.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = ? FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return m, nil
}
