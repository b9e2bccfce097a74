package httpapi

import (
	"errors"
	"net/http"

	"github.com/bookkeeper-dev/bookkeeper/internal/errs"
)

// errorResponse is the standard error payload for the API. Severity is for
// display purposes; failures are always "error", successes are conveyed by
// status codes.
type errorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code,omitempty"`
	Severity string `json:"severity"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code, Severity: "error"})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter) {
	writeErr(w, http.StatusNotFound, "not_found", "not_found")
}

// writeDomainErr maps a service error onto a status and machine-readable
// code. Validation failures are 422, conflicts (duplicate code, account in
// use) 409, missing targets 404.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	case errors.Is(err, errs.ErrDuplicateCode):
		writeErr(w, http.StatusConflict, err.Error(), "duplicate_code")
	case errors.Is(err, errs.ErrAccountInUse):
		writeErr(w, http.StatusConflict, err.Error(), "account_in_use")
	case errs.IsValidation(err):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), validationCode(err))
	case errors.Is(err, errs.ErrDataCorruption):
		writeErr(w, http.StatusInternalServerError, err.Error(), "data_corruption")
	default:
		writeErr(w, http.StatusInternalServerError, "internal error", "internal")
	}
}

// validationCode resolves the field-specific subkind of a validation error.
// The sentinel messages double as codes.
func validationCode(err error) string {
	for _, v := range []error{
		errs.ErrMissingCode, errs.ErrMissingName, errs.ErrMissingType,
		errs.ErrInvalidCodeFormat, errs.ErrCodeOutOfRange, errs.ErrDuplicateCode,
		errs.ErrMissingDescription, errs.ErrMissingDebitAccount,
		errs.ErrMissingCreditAccount, errs.ErrSameAccount, errs.ErrInvalidAmount,
		errs.ErrUnknownAccount,
	} {
		if errors.Is(err, v) {
			return v.Error()
		}
	}
	return "validation_error"
}
