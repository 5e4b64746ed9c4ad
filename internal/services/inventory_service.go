package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/gestiloc/inventory-service/internal/models"
	"github.com/gestiloc/inventory-service/internal/repositories"
	"github.com/gestiloc/inventory-service/internal/utils"
)

// InventoryService owns the snapshot lifecycle. State transitions are
// the pure methods on models.InventorySnapshot; this layer adds
// persistence, optimistic-lock retries and logging.
type InventoryService struct {
	invRepo   repositories.InventoryRepository
	leaseRepo repositories.LeaseRepository
}

func NewInventoryService(invRepo repositories.InventoryRepository, leaseRepo repositories.LeaseRepository) *InventoryService {
	return &InventoryService{invRepo: invRepo, leaseRepo: leaseRepo}
}

// CreateDraft opens a new draft inventory for a lease. Exit inventories
// must reference the entry inventory they will be compared against; the
// reference is immutable afterwards.
func (s *InventoryService) CreateDraft(
	ctx context.Context,
	leaseID uuid.UUID,
	invType models.InventoryType,
	inventoryDate time.Time,
	entryInventoryID *uuid.UUID,
) (*models.InventorySnapshot, error) {
	if invType != models.InventoryTypeEntry && invType != models.InventoryTypeExit {
		return nil, utils.NewValidationError("type", "inventory type must be ENTRY or EXIT")
	}

	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, pgx.ErrNoRows
	}

	if invType == models.InventoryTypeExit {
		if entryInventoryID == nil {
			return nil, utils.NewValidationError("entry_inventory_id", "an exit inventory must reference its entry inventory")
		}
		entry, err := s.invRepo.GetByID(ctx, *entryInventoryID)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, pgx.ErrNoRows
		}
		if entry.Type != models.InventoryTypeEntry || entry.LeaseID != leaseID {
			return nil, utils.ErrMismatchedLease
		}
	} else if entryInventoryID != nil {
		return nil, utils.NewValidationError("entry_inventory_id", "only an exit inventory carries an entry reference")
	}

	snapshot := &models.InventorySnapshot{
		ID:               uuid.New(),
		LeaseID:          leaseID,
		Type:             invType,
		Status:           models.StatusDraft,
		InventoryDate:    inventoryDate,
		EntryInventoryID: entryInventoryID,
	}
	if err := s.invRepo.Create(ctx, snapshot); err != nil {
		return nil, err
	}

	utils.Logger.Infof("Created %s inventory draft %s for lease %s", invType, snapshot.ID, leaseID)
	return snapshot, nil
}

func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*models.InventorySnapshot, error) {
	snap, err := s.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, pgx.ErrNoRows
	}
	return snap, nil
}

func (s *InventoryService) ListByLease(ctx context.Context, leaseID uuid.UUID) ([]*models.InventorySnapshot, error) {
	return s.invRepo.ListByLeaseID(ctx, leaseID)
}

// ContentsUpdate collects the optional field replacements of one PATCH.
// Nil members are left untouched.
type ContentsUpdate struct {
	Rooms        *[]models.Room
	Keys         *[]models.KeyRecord
	Meters       *[]models.MeterReading
	Observations *string
}

// UpdateContents applies the requested replacements through the pure
// snapshot mutators inside the optimistic-lock retry loop. A signed
// snapshot rejects every replacement with utils.ErrFrozenRecord.
func (s *InventoryService) UpdateContents(ctx context.Context, id uuid.UUID, upd ContentsUpdate) (*models.InventorySnapshot, error) {
	err := s.invRepo.UpdateWithRetry(ctx, id, func(cur *models.InventorySnapshot) error {
		next := *cur
		var err error
		if upd.Rooms != nil {
			if next, err = next.WithRooms(*upd.Rooms); err != nil {
				return err
			}
		}
		if upd.Keys != nil {
			if next, err = next.WithKeys(*upd.Keys); err != nil {
				return err
			}
		}
		if upd.Meters != nil {
			if next, err = next.WithMeters(*upd.Meters); err != nil {
				return err
			}
		}
		if upd.Observations != nil {
			if next, err = next.WithObservations(*upd.Observations); err != nil {
				return err
			}
		}
		*cur = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Complete moves a draft to COMPLETED.
func (s *InventoryService) Complete(ctx context.Context, id uuid.UUID) (*models.InventorySnapshot, error) {
	err := s.invRepo.UpdateWithRetry(ctx, id, func(cur *models.InventorySnapshot) error {
		next, err := cur.Complete()
		if err != nil {
			return err
		}
		*cur = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.Logger.Infof("Inventory %s completed", id)
	return s.Get(ctx, id)
}

// Sign freezes the snapshot once both parties have signed.
func (s *InventoryService) Sign(ctx context.Context, id uuid.UUID, landlordSig, tenantSig string) (*models.InventorySnapshot, error) {
	err := s.invRepo.UpdateWithRetry(ctx, id, func(cur *models.InventorySnapshot) error {
		next, err := cur.Sign(landlordSig, tenantSig)
		if err != nil {
			return err
		}
		*cur = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	utils.Logger.Infof("Inventory %s signed and frozen", id)
	return s.Get(ctx, id)
}
