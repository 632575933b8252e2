package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/workout-api/internal/errs"
)

// uniqueKeyPattern matches "<table>_<column>_key" and "<table>_<column>_ukey".
var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the mapped Code for a given error, or Other.
func ErrCode(err error) Code {
	if sqlErr, ok := AsError(err); ok {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		Detail:         src.Detail,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates an application error code of the form
// <DOMAIN>_<ACTION> from the table name and violation kind:
//
//	athletes + UniqueViolation       => ATHLETE_ALREADY_EXISTS
//	training_centers + NotNull       => TRAINING_CENTER_REQUIRED
func generateErrorCode(tableName string, errType Code) string {
	domain := "RECORD"
	if tableName != "" {
		domain = strings.ToUpper(singular(tableName))
	}

	action, ok := codeActions[errType]
	if !ok {
		action = "ERROR"
	}
	return domain + "_" + action
}

var codeActions = map[Code]string{
	ForeignKeyViolation: "NOT_FOUND",
	UniqueViolation:     "ALREADY_EXISTS",
	NotNullViolation:    "REQUIRED",
	CheckViolation:      "INVALID",
}

// singular turns a plural table name into its entity name:
// categories -> category, training_centers -> training_center.
func singular(table string) string {
	if base, ok := strings.CutSuffix(table, "ies"); ok && base != "" {
		return base + "y"
	}
	if len(table) > 1 {
		return strings.TrimSuffix(table, "s")
	}
	return table
}

// formatUserFriendlyMessage produces an end-user-facing error message from
// the table and column metadata.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced by the column when it can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name: the base of a "<x>_id" column first
// ("category_id" -> "Category"), then the singular table name, then "record".
func getEntityName(tableName, columnName string) string {
	if base, ok := strings.CutSuffix(strings.ToLower(columnName), "_id"); ok && base != "" {
		return humanizeText(base)
	}
	if tableName != "" {
		return humanizeText(singular(tableName))
	}
	return "record"
}

// humanizeText converts snake_case into Title Case ("training_center" -> "Training Center").
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from a unique constraint
// name. Two conventions are supported:
//
//	unique_<table>_<column>     unique_athletes_cpf -> "cpf"
//	<table>_<column>_(key|ukey) athletes_cpf_key    -> "cpf"
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - If pgconn.PgError: 400 (foreign key, not-null, check), 409 (unique),
//     a data integrity error (other class 23) or a generic 500
//   - If ErrNoRows: 404
//   - Otherwise: generic 500
//
// The global error handler calls it for every error nothing else classified.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if sqlErr, ok := AsError(err); ok {
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewConflictError(userMessage, true, &errorCode)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			if sqlErr.IsIntegrityViolation() {
				return errs.NewDataIntegrityError()
			}
			// Unknown database errors never leak details to clients.
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		if table := notFoundTable(err); table != "" {
			return errs.NewNotFoundError(getEntityName(table, "")+" not found", true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

// notFoundTable reads the table out of a "table:<name>: ..." wrapped
// ErrNoRows, as produced by the repositories.
func notFoundTable(err error) string {
	_, rest, ok := strings.Cut(err.Error(), "table:")
	if !ok {
		return ""
	}
	table, _, _ := strings.Cut(rest, ":")
	return table
}
