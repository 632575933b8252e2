// Package sqlerr specifically handles database driver errors.
//
// It parses SQLSTATE codes from the database driver into a small
// enum, and converts them into client errors (e.g. a "unique
// violation" on a named constraint into a domain conflict).
package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a driver-independent classification of a SQLSTATE.
type Code string

const (
	Other                        Code = "other"
	IntegrityConstraintViolation Code = "integrity_constraint_violation"
	RestrictViolation            Code = "restrict_violation"
	NotNullViolation             Code = "not_null_violation"
	ForeignKeyViolation          Code = "foreign_key_violation"
	UniqueViolation              Code = "unique_violation"
	CheckViolation               Code = "check_violation"
	ExclusionViolation           Code = "exclusion_violation"
	StringDataRightTruncation    Code = "string_data_right_truncation"
	NumericValueOutOfRange       Code = "numeric_value_out_of_range"
	InvalidTextRepresentation    Code = "invalid_text_representation"
	SerializationFailure         Code = "serialization_failure"
	DeadlockDetected             Code = "deadlock_detected"
	QueryCanceled                Code = "query_canceled"
	TooManyConnections           Code = "too_many_connections"
)

var pgCodes = map[string]Code{
	"23000": IntegrityConstraintViolation,
	"23001": RestrictViolation,
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"22001": StringDataRightTruncation,
	"22003": NumericValueOutOfRange,
	"22P02": InvalidTextRepresentation,
	"40001": SerializationFailure,
	"40P01": DeadlockDetected,
	"57014": QueryCanceled,
	"53300": TooManyConnections,
}

// MapCode maps a Postgres SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	if code, ok := pgCodes[sqlState]; ok {
		return code
	}
	return Other
}

// Severity is the Postgres message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity normalizes a severity string, defaulting to ERROR.
func MapSeverity(severity string) Severity {
	switch s := Severity(strings.ToUpper(severity)); s {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}

// Error is a structured database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	Detail         string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// IsIntegrityViolation reports whether the SQLSTATE is in class 23.
func (e *Error) IsIntegrityViolation() bool {
	return strings.HasPrefix(e.DatabaseCode, "23")
}

// AsError finds a database error in err's chain and returns it in
// structured form.
func AsError(err error) (*Error, bool) {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr), true
	}

	return nil, false
}

// IsIntegrityViolation reports whether err carries a class 23 SQLSTATE.
func IsIntegrityViolation(err error) bool {
	sqlErr, ok := AsError(err)
	return ok && sqlErr.IsIntegrityViolation()
}

// ConstraintMapping binds a named constraint to the error reported when it
// is violated.
type ConstraintMapping struct {
	// Code restricts the mapping to one violation kind. Empty matches any.
	Code Code

	// Constraint is the exact constraint name reported by the server.
	Constraint string

	// Column is searched for in the message and detail when the server did
	// not report a constraint name.
	Column string

	// Err builds the client error.
	Err func(sqlErr *Error) error
}

// ConstraintTable maps constraint violations to domain errors.
type ConstraintTable []ConstraintMapping

// Translate returns the error of the first mapping matching err.
func (t ConstraintTable) Translate(err error) (error, bool) {
	sqlErr, ok := AsError(err)
	if !ok {
		return nil, false
	}

	for _, m := range t {
		if m.matches(sqlErr) {
			return m.Err(sqlErr), true
		}
	}
	return nil, false
}

func (m ConstraintMapping) matches(sqlErr *Error) bool {
	if m.Code != "" && m.Code != sqlErr.Code {
		return false
	}

	if sqlErr.ConstraintName != "" {
		return sqlErr.ConstraintName == m.Constraint
	}

	if m.Column == "" {
		return false
	}
	haystack := strings.ToLower(sqlErr.Message + " " + sqlErr.Detail)
	return strings.Contains(haystack, strings.ToLower(m.Column))
}
