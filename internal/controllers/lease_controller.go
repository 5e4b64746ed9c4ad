package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gestiloc/inventory-service/internal/dtos"
	"github.com/gestiloc/inventory-service/internal/models"
	"github.com/gestiloc/inventory-service/internal/repositories"
	"github.com/gestiloc/inventory-service/internal/utils"
)

type LeaseController struct {
	leaseRepo repositories.LeaseRepository
}

func NewLeaseController(leaseRepo repositories.LeaseRepository) *LeaseController {
	return &LeaseController{leaseRepo: leaseRepo}
}

var leaseValidate = validator.New()

// POST /api/v1/leases
func (c *LeaseController) CreateLeaseHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := leaseValidate.Struct(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Validation failed", validationErrors.Error(), nil)
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request data", nil, err)
		}
		return
	}

	lease := &models.Lease{
		ID:                 uuid.New(),
		LotReference:       req.LotReference,
		TenantName:         req.TenantName,
		TenantEmail:        req.TenantEmail,
		LandlordName:       req.LandlordName,
		MonthlyRentCents:   req.MonthlyRentCents,
		DepositAmountCents: req.DepositAmountCents,
	}
	if err := c.leaseRepo.Create(r.Context(), lease); err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, lease)
}

// GET /api/v1/leases/{id}
func (c *LeaseController) GetLeaseHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	lease, err := c.leaseRepo.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// GET /api/v1/leases
func (c *LeaseController) ListLeasesHandler(w http.ResponseWriter, r *http.Request) {
	leases, err := c.leaseRepo.ListAll(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, leases)
}
