// Package service holds the business rules of the inventory backend: who
// may see and change what, and how a write is spread over the relational
// and document stores.  Every error returned from this package is one of
// the sentinels below, a *model.ValidationError or a *PartialWriteError;
// raw store errors are logged here and never returned.
package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrCreateFailed    = errors.New("create failed")
	ErrPartialWrite    = errors.New("partial write failure")
	// ErrStoreFailure covers unexpected store errors (connection loss,
	// timeouts).  The underlying error is logged, not exposed.
	ErrStoreFailure = errors.New("store failure")
)

// PartialWriteError reports a create that committed to the relational store
// but failed on the document store.  The relational record stays; nothing
// is rolled back.
type PartialWriteError struct {
	Entity       string
	RelationalID string
	Cause        error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s %s was stored in mysql but the mongodb write failed", e.Entity, e.RelationalID)
}

func (e *PartialWriteError) Is(target error) bool { return target == ErrPartialWrite }
