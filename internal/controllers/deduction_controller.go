package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/gestiloc/inventory-service/internal/dtos"
	"github.com/gestiloc/inventory-service/internal/services"
	"github.com/gestiloc/inventory-service/internal/utils"
)

type DeductionController struct {
	dedSvc *services.DeductionService
}

func NewDeductionController(dedSvc *services.DeductionService) *DeductionController {
	return &DeductionController{dedSvc: dedSvc}
}

var deductionValidate = validator.New()

// POST /api/v1/inventories/{id}/deductions
func (c *DeductionController) InitializeHandler(w http.ResponseWriter, r *http.Request) {
	exitID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	ledger, err := c.dedSvc.Initialize(r.Context(), exitID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, ledger)
}

// GET /api/v1/inventories/{id}/deductions
func (c *DeductionController) GetHandler(w http.ResponseWriter, r *http.Request) {
	exitID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	ledger, err := c.dedSvc.Get(r.Context(), exitID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ledger)
}

// PATCH /api/v1/inventories/{id}/deductions/lines
func (c *DeductionController) OverrideLineHandler(w http.ResponseWriter, r *http.Request) {
	exitID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.OverrideLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := deductionValidate.Struct(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", validationErrors.Error(), nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	ledger, err := c.dedSvc.OverrideLine(r.Context(), exitID, *req.LineIndex, *req.AmountCents)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ledger)
}

// POST /api/v1/inventories/{id}/deductions/manual-lines
func (c *DeductionController) AddManualLineHandler(w http.ResponseWriter, r *http.Request) {
	exitID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.AddManualLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := deductionValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Description and a positive amount are required", nil, err)
		return
	}

	ledger, err := c.dedSvc.AddManual(r.Context(), exitID, req.Description, req.AmountCents)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ledger)
}

// DELETE /api/v1/inventories/{id}/deductions/manual-lines/{lineId}
func (c *DeductionController) RemoveManualLineHandler(w http.ResponseWriter, r *http.Request) {
	exitID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	lineID, ok := pathUUID(w, r, "lineId")
	if !ok {
		return
	}
	ledger, err := c.dedSvc.RemoveManual(r.Context(), exitID, lineID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ledger)
}

// POST /api/v1/inventories/{id}/deductions/reset
func (c *DeductionController) ResetHandler(w http.ResponseWriter, r *http.Request) {
	exitID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	ledger, err := c.dedSvc.Reset(r.Context(), exitID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ledger)
}

// POST /api/v1/inventories/{id}/deductions/validate
func (c *DeductionController) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	exitID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	ledger, err := c.dedSvc.Validate(r.Context(), exitID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ledger)
}
