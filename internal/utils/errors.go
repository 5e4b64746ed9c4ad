package utils

import (
	"errors"
	"fmt"
)

/*
   Sentinel errors for the inventory/deduction domain.
   Controllers can do: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	// Comparator invoked on snapshots of the wrong type or belonging
	// to two different leases.
	ErrMismatchedLease = errors.New("mismatched_lease")

	// Mutation attempted on a SIGNED inventory snapshot.
	ErrFrozenRecord = errors.New("frozen_record")

	// Ledger validated while the owning exit snapshot is not yet signed.
	ErrPrematureValidation = errors.New("premature_validation")

	// Attempt to remove or rewrite an auto-computed ledger line as if
	// it were a manual one.
	ErrImmutableLine = errors.New("immutable_line")

	// Manual line with an empty description or a non-positive amount.
	ErrInvalidDeductionLine = errors.New("invalid_deduction_line")

	// Ledger line id not present in the ledger.
	ErrLineNotFound = errors.New("line_not_found")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")
)

/*
   ValidationError carries the offending field so the controller can
   return an actionable 400. errors.As-compatible.
*/
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation_error: %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
