package repository

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrConstraintViolation reports that a write broke a uniqueness constraint.
type ErrConstraintViolation struct {
	Table string
	Field string
	Err   error
}

func (e *ErrConstraintViolation) Error() string {
	return fmt.Sprintf("unique constraint on %s.%s: %v", e.Table, e.Field, e.Err)
}

func (e *ErrConstraintViolation) Unwrap() error { return e.Err }

// asUniqueViolation converts a driver unique-constraint error into
// *ErrConstraintViolation and leaves every other error untouched.
func asUniqueViolation(err error, table, field string) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return &ErrConstraintViolation{Table: table, Field: field, Err: err}
	}
	return err
}
