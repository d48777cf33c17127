package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/iliyamo/glassview/internal/model"
)

// MySQLLocationRepo is the relational location store.  Rows are keyed by
// the auto-increment location_id.
type MySQLLocationRepo struct {
	db *sql.DB
}

func NewMySQLLocationRepo(db *sql.DB) *MySQLLocationRepo {
	return &MySQLLocationRepo{db: db}
}

const locationColumns = "location_id, name, address, state, zip_code, capacity"

// parseRelationalID converts a wire id to the integer key.  Anything that
// is not a positive integer cannot name a row.
func parseRelationalID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrNotFound
	}
	return n, nil
}

func scanLocation(row interface{ Scan(...any) error }) (model.Location, error) {
	var (
		l  model.Location
		id int64
	)
	if err := row.Scan(&id, &l.Name, &l.Address, &l.State, &l.ZipCode, &l.Capacity); err != nil {
		return model.Location{}, err
	}
	l.ID = strconv.FormatInt(id, 10)
	return l, nil
}

// Create inserts a location and returns it with its new id.
func (r *MySQLLocationRepo) Create(ctx context.Context, l model.Location) (model.Location, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO locations (name, address, state, zip_code, capacity) VALUES (?,?,?,?,?)",
		l.Name, l.Address, l.State, l.ZipCode, l.Capacity)
	if err != nil {
		return model.Location{}, fmt.Errorf("insert location: %w", classify(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Location{}, fmt.Errorf("insert location: %w", err)
	}
	l.ID = strconv.FormatInt(id, 10)
	return l, nil
}

// Get fetches one location by id.
func (r *MySQLLocationRepo) Get(ctx context.Context, id string) (model.Location, error) {
	n, err := parseRelationalID(id)
	if err != nil {
		return model.Location{}, err
	}
	l, err := scanLocation(r.db.QueryRowContext(ctx,
		"SELECT "+locationColumns+" FROM locations WHERE location_id = ?", n))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Location{}, ErrNotFound
		}
		return model.Location{}, fmt.Errorf("select location: %w", err)
	}
	return l, nil
}

// List returns every location ordered by id.
func (r *MySQLLocationRepo) List(ctx context.Context) ([]model.Location, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+locationColumns+" FROM locations ORDER BY location_id")
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	out := []model.Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return out, nil
}

// Update overwrites every column of the location.  The connection is
// opened with clientFoundRows so an unchanged row still counts as matched.
func (r *MySQLLocationRepo) Update(ctx context.Context, id string, l model.Location) (model.Location, error) {
	n, err := parseRelationalID(id)
	if err != nil {
		return model.Location{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE locations SET name = ?, address = ?, state = ?, zip_code = ?, capacity = ?
		 WHERE location_id = ?`,
		l.Name, l.Address, l.State, l.ZipCode, l.Capacity, n)
	if err != nil {
		return model.Location{}, fmt.Errorf("update location: %w", classify(err))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return model.Location{}, ErrNotFound
	}
	l.ID = strconv.FormatInt(n, 10)
	return l, nil
}

// Delete removes a location.  Inventory rows still pointing at it make the
// foreign key reject the delete with ErrConstraint.
func (r *MySQLLocationRepo) Delete(ctx context.Context, id string) error {
	n, err := parseRelationalID(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM locations WHERE location_id = ?", n)
	if err != nil {
		return fmt.Errorf("delete location: %w", classify(err))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
