package errs

import "net/http"

// Machine codes of the domain error taxonomy.
const (
	CodeCategoryNotFound       = "CATEGORY_NOT_FOUND"
	CodeTrainingCenterNotFound = "TRAINING_CENTER_NOT_FOUND"
	CodeAthleteNotFound        = "ATHLETE_NOT_FOUND"

	CodeAthleteAlreadyExists        = "ATHLETE_ALREADY_EXISTS"
	CodeCategoryAlreadyExists       = "CATEGORY_ALREADY_EXISTS"
	CodeTrainingCenterAlreadyExists = "TRAINING_CENTER_ALREADY_EXISTS"

	CodeDataIntegrity = "DATA_INTEGRITY_ERROR"
)

// NewReferenceNotFoundError reports that a record named in the request body
// (a category or training center) does not exist. It is a client error.
func NewReferenceNotFoundError(code, message string) *HTTPError {
	return NewBadRequestError(message, true, &code, nil, nil)
}

// NewResourceNotFoundError reports that the identifier in the path does not
// resolve to a record.
func NewResourceNotFoundError(code, message string) *HTTPError {
	return NewNotFoundError(message, true, &code)
}

// NewDuplicateIdentifierError reports a uniqueness conflict.
//
// With legacy set the status is 303 See Other, the answer of the first
// version of the API; location, when non-empty, is sent as a redirect action.
func NewDuplicateIdentifierError(code, message string, legacy bool, location string) *HTTPError {
	err := NewConflictError(message, true, &code)
	if !legacy {
		return err
	}

	err.Status = http.StatusSeeOther
	if location != "" {
		err.Action = &Action{
			Type:    ActionTypeRedirect,
			Message: message,
			Value:   location,
		}
	}
	return err
}

// NewDataIntegrityError reports a constraint violation that is not mapped
// to a more specific condition. Details are only logged.
func NewDataIntegrityError() *HTTPError {
	return &HTTPError{
		Code:     CodeDataIntegrity,
		Message:  "A data integrity error occurred",
		Status:   http.StatusInternalServerError,
		Override: true,
	}
}
