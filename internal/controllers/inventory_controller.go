package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gestiloc/inventory-service/internal/dtos"
	"github.com/gestiloc/inventory-service/internal/models"
	"github.com/gestiloc/inventory-service/internal/services"
	"github.com/gestiloc/inventory-service/internal/utils"
)

type InventoryController struct {
	invSvc *services.InventoryService
}

func NewInventoryController(invSvc *services.InventoryService) *InventoryController {
	return &InventoryController{invSvc: invSvc}
}

var inventoryValidate = validator.New()

// POST /api/v1/inventories
func (c *InventoryController) CreateInventoryHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := inventoryValidate.Struct(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", validationErrors.Error(), nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	leaseID, _ := uuid.Parse(req.LeaseID)
	inventoryDate, err := time.Parse("2006-01-02", req.InventoryDate)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid inventory_date", nil, err)
		return
	}
	var entryID *uuid.UUID
	if req.EntryInventoryID != nil {
		parsed, err := uuid.Parse(*req.EntryInventoryID)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid entry_inventory_id", nil, err)
			return
		}
		entryID = &parsed
	}

	snapshot, err := c.invSvc.CreateDraft(r.Context(), leaseID, models.InventoryType(req.Type), inventoryDate, entryID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, snapshot)
}

// GET /api/v1/inventories/{id}
func (c *InventoryController) GetInventoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	snapshot, err := c.invSvc.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, snapshot)
}

// GET /api/v1/inventories?lease_id=...
func (c *InventoryController) ListInventoriesHandler(w http.ResponseWriter, r *http.Request) {
	leaseID, err := uuid.Parse(r.URL.Query().Get("lease_id"))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing or invalid lease_id", nil, err)
		return
	}
	snapshots, err := c.invSvc.ListByLease(r.Context(), leaseID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, snapshots)
}

// PATCH /api/v1/inventories/{id}
func (c *InventoryController) UpdateInventoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.UpdateInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}

	snapshot, err := c.invSvc.UpdateContents(r.Context(), id, services.ContentsUpdate{
		Rooms:        req.Rooms,
		Keys:         req.Keys,
		Meters:       req.Meters,
		Observations: req.GeneralObservations,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, snapshot)
}

// POST /api/v1/inventories/{id}/complete
func (c *InventoryController) CompleteInventoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	snapshot, err := c.invSvc.Complete(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, snapshot)
}

// POST /api/v1/inventories/{id}/sign
func (c *InventoryController) SignInventoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.SignInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := inventoryValidate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Both signatures are required", nil, err)
		return
	}

	snapshot, err := c.invSvc.Sign(r.Context(), id, req.LandlordSignature, req.TenantSignature)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, snapshot)
}
