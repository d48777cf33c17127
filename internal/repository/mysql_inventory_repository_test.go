package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/glassview/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var inventoryCols = []string{"inventory_id", "user_id", "location_id", "name", "quantity", "description",
	"price", "width", "prescription_avail", "tinted", "polarized", "anti_glare"}

func lensA() model.Inventory {
	return model.Inventory{
		UserID: 3, LocationID: 1, Name: "Lens A", Quantity: 10, Description: "d",
		Price: 20, Width: 5, PrescriptionAvail: true,
	}
}

func TestMySQLInventoryCreate_AssignsID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLInventoryRepo(db)

	inv := lensA()
	mock.ExpectExec(`(?s)^INSERT INTO inventory`).
		WithArgs(inv.UserID, inv.LocationID, inv.Name, inv.Quantity, inv.Description, inv.Price, inv.Width,
			true, false, false, false).
		WillReturnResult(sqlmock.NewResult(42, 1))

	got, err := repo.Create(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "Lens A", got.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLInventoryCreate_MissingLocationIsConstraint(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLInventoryRepo(db)

	mock.ExpectExec(`(?s)^INSERT INTO inventory`).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	inv := lensA()
	inv.LocationID = 9999
	_, err := repo.Create(context.Background(), inv)
	assert.ErrorIs(t, err, ErrConstraint)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLInventoryCreate_UnknownOwnerIsConstraint(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLInventoryRepo(db)

	mock.ExpectExec(`(?s)^INSERT INTO inventory`).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row: a foreign key constraint fails (`glassview`.`inventory`, CONSTRAINT `fk_inventory_user` FOREIGN KEY (`user_id`) REFERENCES `users` (`id`))"})

	inv := lensA()
	inv.UserID = 424242
	_, err := repo.Create(context.Background(), inv)
	assert.ErrorIs(t, err, ErrConstraint)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLInventoryGet(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLInventoryRepo(db)

	mock.ExpectQuery(`(?s)^SELECT inventory_id, .* FROM inventory WHERE inventory_id = \?$`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(inventoryCols).AddRow(7, 3, 1, "Lens A", 10, "d", 20.0, 5.0, true, false, false, false))

	got, err := repo.Get(context.Background(), "7")
	require.NoError(t, err)
	want := lensA()
	want.ID = "7"
	assert.Equal(t, want, got)

	mock.ExpectQuery(`FROM inventory WHERE inventory_id = \?`).
		WithArgs(int64(8)).
		WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "8")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Get(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLInventoryList_BuildsConjunction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLInventoryRepo(db)
	uid, loc := int64(3), int64(1)

	mock.ExpectQuery(`(?s)FROM inventory ORDER BY inventory_id$`).
		WillReturnRows(sqlmock.NewRows(inventoryCols))
	mock.ExpectQuery(`(?s)FROM inventory WHERE user_id = \? ORDER BY inventory_id$`).
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows(inventoryCols).AddRow(1, 3, 1, "Lens A", 10, "d", 20.0, 5.0, true, false, false, false))
	mock.ExpectQuery(`(?s)FROM inventory WHERE user_id = \? AND location_id = \? ORDER BY inventory_id$`).
		WithArgs(uid, loc).
		WillReturnRows(sqlmock.NewRows(inventoryCols))

	all, err := repo.List(context.Background(), InventoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotNil(t, all)

	mine, err := repo.List(context.Background(), InventoryFilter{UserID: &uid})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "1", mine[0].ID)

	_, err = repo.List(context.Background(), InventoryFilter{UserID: &uid, LocationID: &loc})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLInventoryUpdateAndDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLInventoryRepo(db)

	mock.ExpectExec(`(?s)^UPDATE inventory SET .* WHERE inventory_id = \?$`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	got, err := repo.Update(context.Background(), "5", lensA())
	require.NoError(t, err)
	assert.Equal(t, "5", got.ID)

	mock.ExpectExec(`(?s)^UPDATE inventory SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	_, err = repo.Update(context.Background(), "6", lensA())
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec(`(?s)^UPDATE inventory SET`).
		WillReturnError(&mysql.MySQLError{Number: 1452})
	_, err = repo.Update(context.Background(), "5", lensA())
	assert.ErrorIs(t, err, ErrConstraint)

	mock.ExpectExec(`^DELETE FROM inventory WHERE inventory_id = \?$`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "5"))

	mock.ExpectExec(`^DELETE FROM inventory`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "5"), ErrNotFound)

	mock.ExpectExec(`^DELETE FROM inventory`).
		WillReturnError(errors.New("connection reset"))
	err = repo.Delete(context.Background(), "5")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
