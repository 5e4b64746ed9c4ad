package controllers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4"

	"github.com/gestiloc/inventory-service/internal/utils"
)

// pathUUID extracts and parses a uuid route variable, responding 400
// itself when the value is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid "+name, nil, err)
		return uuid.Nil, false
	}
	return id, true
}

// respondDomainError maps the domain sentinels onto stable HTTP codes.
// Anything unrecognized is a 500.
func respondDomainError(w http.ResponseWriter, err error) {
	var ve *utils.ValidationError

	switch {
	case errors.As(err, &ve):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, ve.Message, map[string]string{"field": ve.Field}, err)
	case errors.Is(err, pgx.ErrNoRows):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Record not found", nil, err)
	case errors.Is(err, utils.ErrMismatchedLease):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeMismatchedLease, "Snapshots do not belong to the same lease", nil, err)
	case errors.Is(err, utils.ErrFrozenRecord):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeFrozenRecord, "A signed inventory or validated ledger cannot be modified", nil, err)
	case errors.Is(err, utils.ErrPrematureValidation):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodePrematureValidation, "The exit inventory must be signed before validating deductions", nil, err)
	case errors.Is(err, utils.ErrImmutableLine):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeImmutableLine, "Auto-computed lines cannot be removed", nil, err)
	case errors.Is(err, utils.ErrInvalidDeductionLine):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidDeductionLine, "Invalid deduction line", nil, err)
	case errors.Is(err, utils.ErrLineNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeLineNotFound, "Ledger line not found", nil, err)
	case errors.Is(err, utils.ErrRowVersionConflict):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeRowVersionConflict, "Concurrent update, please retry", nil, err)
	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
