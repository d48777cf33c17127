// Package repository defines the store contracts and the MySQL and MongoDB
// adapters that satisfy them.  The sentinel values below are the only
// errors callers need to inspect; anything else is an unexpected store
// failure wrapped with context.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the requested record does not exist, or
// when its id cannot possibly exist in the store (non-numeric relational
// id, malformed ObjectID).
var ErrNotFound = errors.New("record not found")

// ErrConstraint is returned by the relational store when a foreign key is
// violated: an inventory row pointing at a missing location, or a location
// delete while inventory still references it.
var ErrConstraint = errors.New("constraint violation")

// ErrDuplicate is returned when a unique key (username, email) is taken.
var ErrDuplicate = errors.New("duplicate key")

// MySQL server error numbers translated by classify.
const (
	mysqlDuplicateEntry   = 1062
	mysqlRowIsReferenced  = 1451
	mysqlNoReferencedRow  = 1452
	mysqlRowIsReferenced2 = 1217
	mysqlNoReferencedRow2 = 1216
)

// classify maps driver errors onto the sentinels above.  Unknown errors
// are returned unchanged.
func classify(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case mysqlDuplicateEntry:
		return ErrDuplicate
	case mysqlRowIsReferenced, mysqlNoReferencedRow, mysqlRowIsReferenced2, mysqlNoReferencedRow2:
		return ErrConstraint
	}
	return err
}
