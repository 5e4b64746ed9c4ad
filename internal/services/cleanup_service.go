package services

import (
	"context"
	"time"

	"github.com/gestiloc/inventory-service/internal/repositories"
	"github.com/gestiloc/inventory-service/internal/utils"
)

// CleanupService purges draft inventories nobody touched for longer
// than the retention window, along with any deduction ledger keyed on
// a purged snapshot. Completed and signed snapshots are legal records
// and are never purged.
type CleanupService struct {
	invRepo       repositories.InventoryRepository
	dedRepo       repositories.DeductionRepository
	retentionDays int
}

func NewCleanupService(
	invRepo repositories.InventoryRepository,
	dedRepo repositories.DeductionRepository,
	retentionDays int,
) *CleanupService {
	return &CleanupService{invRepo: invRepo, dedRepo: dedRepo, retentionDays: retentionDays}
}

// RunOnce is invoked by the cron scheduler.
func (s *CleanupService) RunOnce(ctx context.Context) {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays)
	purged, err := s.invRepo.DeleteDraftsOlderThan(ctx, cutoff)
	if err != nil {
		utils.Logger.WithError(err).Error("Draft inventory cleanup failed")
		return
	}
	for _, id := range purged {
		if err := s.dedRepo.Delete(ctx, id); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to delete deduction ledger of purged inventory %s", id)
		}
	}
	if len(purged) > 0 {
		utils.Logger.Infof("Purged %d stale draft inventories (older than %d days)", len(purged), s.retentionDays)
	}
}
