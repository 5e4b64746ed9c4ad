package controllers

import (
	"net/http"

	"github.com/gestiloc/inventory-service/internal/services"
	"github.com/gestiloc/inventory-service/internal/utils"
)

type ComparisonController struct {
	compSvc *services.ComparisonService
}

func NewComparisonController(compSvc *services.ComparisonService) *ComparisonController {
	return &ComparisonController{compSvc: compSvc}
}

// GET /api/v1/inventories/{id}/comparison
// The id is the exit snapshot; its entry reference resolves the pair.
func (c *ComparisonController) CompareHandler(w http.ResponseWriter, r *http.Request) {
	exitID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	result, err := c.compSvc.Compare(r.Context(), exitID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}
