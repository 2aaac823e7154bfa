package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Constraint violation kinds. Match them with errors.Is.
var (
	ErrNotFound            = errors.New("record not found")
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
	ErrNotNullViolation    = errors.New("not null constraint violation")
	ErrCheckViolation      = errors.New("check constraint violation")
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	sqlStateNotNullViolation    = "23502"
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
	sqlStateCheckViolation      = "23514"
)

var sqlStateKinds = map[string]error{
	sqlStateNotNullViolation:    ErrNotNullViolation,
	sqlStateForeignKeyViolation: ErrForeignKeyViolation,
	sqlStateUniqueViolation:     ErrUniqueViolation,
	sqlStateCheckViolation:      ErrCheckViolation,
}

// ConstraintError is a constraint violation reported by the storage engine.
type ConstraintError struct {
	Kind       error
	Table      string
	Constraint string
	Column     string
	Detail     string
	Err        error
}

func (e *ConstraintError) Error() string {
	msg := e.Kind.Error()
	if e.Table != "" {
		msg += " on " + e.Table
	}
	if e.Constraint != "" {
		msg += fmt.Sprintf(" (%s)", e.Constraint)
	} else if e.Column != "" {
		msg += fmt.Sprintf(" (column %s)", e.Column)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the driver error.
func (e *ConstraintError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// translateError maps driver and GORM errors onto the repository error
// kinds. Errors it does not recognise are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if kind, ok := sqlStateKinds[pgErr.Code]; ok {
			return &ConstraintError{
				Kind:       kind,
				Table:      pgErr.TableName,
				Constraint: pgErr.ConstraintName,
				Column:     pgErr.ColumnName,
				Detail:     pgErr.Detail,
				Err:        err,
			}
		}
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if kind, ok := sqlStateKinds[string(pqErr.Code)]; ok {
			return &ConstraintError{
				Kind:       kind,
				Table:      pqErr.Table,
				Constraint: pqErr.Constraint,
				Column:     pqErr.Column,
				Detail:     pqErr.Detail,
				Err:        err,
			}
		}
		return err
	}

	// Sessions opened with TranslateError report bare GORM sentinels.
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConstraintError{Kind: ErrUniqueViolation, Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ConstraintError{Kind: ErrForeignKeyViolation, Err: err}
	}

	return err
}

// IsConstraintViolation reports whether err is any integrity constraint violation.
func IsConstraintViolation(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}
