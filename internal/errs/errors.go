package errs

import "errors"

// Common sentinel errors for cross-layer signaling. Services return these
// (optionally wrapped with context) and the HTTP layer matches them with
// errors.Is to pick a status and machine-readable code.
var (
	ErrNotFound = errors.New("not_found")

	// Account validation.
	ErrMissingCode       = errors.New("missing_code")
	ErrMissingName       = errors.New("missing_name")
	ErrMissingType       = errors.New("missing_type")
	ErrInvalidCodeFormat = errors.New("invalid_code_format")
	ErrCodeOutOfRange    = errors.New("code_out_of_range")
	ErrDuplicateCode     = errors.New("duplicate_code")

	// Entry validation.
	ErrMissingDescription   = errors.New("missing_description")
	ErrMissingDebitAccount  = errors.New("missing_debit_account")
	ErrMissingCreditAccount = errors.New("missing_credit_account")
	ErrSameAccount          = errors.New("same_account")
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrUnknownAccount       = errors.New("unknown_account")

	// ErrAccountInUse blocks deletion of an account still referenced by a
	// journal entry.
	ErrAccountInUse = errors.New("account_in_use")

	// ErrDataCorruption marks a persisted collection whose content cannot be
	// decoded. Distinct from an absent collection, which falls back to
	// defaults.
	ErrDataCorruption = errors.New("data_corruption")
)

// IsValidation reports whether err is one of the field-level validation
// sentinels raised before any mutation.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrMissingCode, ErrMissingName, ErrMissingType, ErrInvalidCodeFormat,
		ErrCodeOutOfRange, ErrDuplicateCode, ErrMissingDescription,
		ErrMissingDebitAccount, ErrMissingCreditAccount, ErrSameAccount,
		ErrInvalidAmount, ErrUnknownAccount,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
