package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/movie-rental-api/internal/model"
)

// CustomerRepo encapsulates all queries against the customers table.
type CustomerRepo struct {
	db *sql.DB
}

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// Create inserts c, assigning an ID when it has none.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	const q = "INSERT INTO customers (id, name, is_gold, phone) VALUES (?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, q, c.ID, c.Name, c.IsGold, c.Phone)
	return err
}

// GetByID returns ErrCustomerNotFound when no row matches.
func (r *CustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	const q = "SELECT id, name, is_gold, phone FROM customers WHERE id = ?"
	var c model.Customer
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.IsGold, &c.Phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns every customer ordered by name.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, is_gold, phone FROM customers ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.IsGold, &c.Phone); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update replaces every mutable field of the customer identified by c.ID.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) error {
	const q = "UPDATE customers SET name = ?, is_gold = ?, phone = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, c.Name, c.IsGold, c.Phone, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// Delete removes the customer and returns the row as it was before deletion.
func (r *CustomerRepo) Delete(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var c model.Customer
	err = tx.QueryRowContext(ctx,
		"SELECT id, name, is_gold, phone FROM customers WHERE id = ? FOR UPDATE", id).
		Scan(&c.ID, &c.Name, &c.IsGold, &c.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM customers WHERE id = ?", id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &c, nil
}
