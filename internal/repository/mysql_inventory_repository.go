package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/glassview/internal/model"
)

// MySQLInventoryRepo is the relational inventory store.  The schema holds
// foreign keys to users and locations, so a create or update naming an
// unknown location fails with ErrConstraint.
type MySQLInventoryRepo struct {
	db *sql.DB
}

func NewMySQLInventoryRepo(db *sql.DB) *MySQLInventoryRepo {
	return &MySQLInventoryRepo{db: db}
}

const inventoryColumns = `inventory_id, user_id, location_id, name, quantity, description, price, width,
	prescription_avail, tinted, polarized, anti_glare`

func scanInventory(row interface{ Scan(...any) error }) (model.Inventory, error) {
	var (
		inv model.Inventory
		id  int64
	)
	err := row.Scan(&id, &inv.UserID, &inv.LocationID, &inv.Name, &inv.Quantity, &inv.Description,
		&inv.Price, &inv.Width, &inv.PrescriptionAvail, &inv.Tinted, &inv.Polarized, &inv.AntiGlare)
	if err != nil {
		return model.Inventory{}, err
	}
	inv.ID = strconv.FormatInt(id, 10)
	return inv, nil
}

// Create inserts an inventory row and returns it with its new id.
func (r *MySQLInventoryRepo) Create(ctx context.Context, inv model.Inventory) (model.Inventory, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO inventory (user_id, location_id, name, quantity, description, price, width,
		 prescription_avail, tinted, polarized, anti_glare) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		inv.UserID, inv.LocationID, inv.Name, inv.Quantity, inv.Description, inv.Price, inv.Width,
		inv.PrescriptionAvail, inv.Tinted, inv.Polarized, inv.AntiGlare)
	if err != nil {
		return model.Inventory{}, fmt.Errorf("insert inventory: %w", classify(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Inventory{}, fmt.Errorf("insert inventory: %w", err)
	}
	inv.ID = strconv.FormatInt(id, 10)
	return inv, nil
}

// Get fetches one inventory row by id.
func (r *MySQLInventoryRepo) Get(ctx context.Context, id string) (model.Inventory, error) {
	n, err := parseRelationalID(id)
	if err != nil {
		return model.Inventory{}, err
	}
	inv, err := scanInventory(r.db.QueryRowContext(ctx,
		"SELECT "+inventoryColumns+" FROM inventory WHERE inventory_id = ?", n))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Inventory{}, ErrNotFound
		}
		return model.Inventory{}, fmt.Errorf("select inventory: %w", err)
	}
	return inv, nil
}

// List returns the rows matching every set field of f, ordered by id.
func (r *MySQLInventoryRepo) List(ctx context.Context, f InventoryFilter) ([]model.Inventory, error) {
	var (
		where []string
		args  []any
	)
	if f.UserID != nil {
		where = append(where, "user_id = ?")
		args = append(args, *f.UserID)
	}
	if f.LocationID != nil {
		where = append(where, "location_id = ?")
		args = append(args, *f.LocationID)
	}
	q := "SELECT " + inventoryColumns + " FROM inventory"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY inventory_id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	out := []model.Inventory{}
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return out, nil
}

// Update overwrites the mutable columns of the row.  user_id is never
// rewritten.
func (r *MySQLInventoryRepo) Update(ctx context.Context, id string, inv model.Inventory) (model.Inventory, error) {
	n, err := parseRelationalID(id)
	if err != nil {
		return model.Inventory{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE inventory SET location_id = ?, name = ?, quantity = ?, description = ?, price = ?, width = ?,
		 prescription_avail = ?, tinted = ?, polarized = ?, anti_glare = ?
		 WHERE inventory_id = ?`,
		inv.LocationID, inv.Name, inv.Quantity, inv.Description, inv.Price, inv.Width,
		inv.PrescriptionAvail, inv.Tinted, inv.Polarized, inv.AntiGlare, n)
	if err != nil {
		return model.Inventory{}, fmt.Errorf("update inventory: %w", classify(err))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return model.Inventory{}, ErrNotFound
	}
	inv.ID = strconv.FormatInt(n, 10)
	return inv, nil
}

// Delete removes one inventory row.
func (r *MySQLInventoryRepo) Delete(ctx context.Context, id string) error {
	n, err := parseRelationalID(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM inventory WHERE inventory_id = ?", n)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
