package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/gestiloc/inventory-service/internal/models"
	"github.com/gestiloc/inventory-service/internal/repositories"
	"github.com/gestiloc/inventory-service/internal/utils"
)

// ComparisonService fetches the snapshot pair and the lease, then runs
// the pure comparator on the in-memory values.
type ComparisonService struct {
	invRepo   repositories.InventoryRepository
	leaseRepo repositories.LeaseRepository
	table     VetusteTable
}

func NewComparisonService(
	invRepo repositories.InventoryRepository,
	leaseRepo repositories.LeaseRepository,
	table VetusteTable,
) *ComparisonService {
	return &ComparisonService{invRepo: invRepo, leaseRepo: leaseRepo, table: table}
}

// Compare resolves the entry snapshot through the exit snapshot's
// entry reference and returns the comparison result.
func (s *ComparisonService) Compare(ctx context.Context, exitID uuid.UUID) (*models.ComparisonResult, error) {
	exit, err := s.invRepo.GetByID(ctx, exitID)
	if err != nil {
		return nil, err
	}
	if exit == nil {
		return nil, pgx.ErrNoRows
	}
	if exit.Type != models.InventoryTypeExit {
		return nil, utils.ErrMismatchedLease
	}
	if exit.EntryInventoryID == nil {
		return nil, utils.NewValidationError("entry_inventory_id", "exit inventory has no entry reference")
	}

	entry, err := s.invRepo.GetByID(ctx, *exit.EntryInventoryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, pgx.ErrNoRows
	}

	lease, err := s.leaseRepo.GetByID(ctx, exit.LeaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, pgx.ErrNoRows
	}

	result, err := CompareInventories(*entry, *exit, *lease, s.table)
	if err != nil {
		return nil, err
	}

	utils.Logger.Infof(
		"Compared inventories %s/%s: %d differences, total %d cents, %d warnings",
		entry.ID, exit.ID, len(result.Differences), result.TotalDeductionsCents, len(result.Warnings),
	)
	return &result, nil
}
