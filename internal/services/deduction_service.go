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

// DeductionService persists the human-reviewed ledger built from a
// comparison. All edit semantics live in the pure ledger functions;
// this layer loads, applies and saves.
type DeductionService struct {
	invRepo   repositories.InventoryRepository
	leaseRepo repositories.LeaseRepository
	dedRepo   repositories.DeductionRepository
	compSvc   *ComparisonService
	notifier  *NotificationService
}

func NewDeductionService(
	invRepo repositories.InventoryRepository,
	leaseRepo repositories.LeaseRepository,
	dedRepo repositories.DeductionRepository,
	compSvc *ComparisonService,
	notifier *NotificationService,
) *DeductionService {
	return &DeductionService{
		invRepo:   invRepo,
		leaseRepo: leaseRepo,
		dedRepo:   dedRepo,
		compSvc:   compSvc,
		notifier:  notifier,
	}
}

// Initialize recomputes the comparison for the exit snapshot and
// replaces any existing unvalidated ledger with fresh auto lines.
func (s *DeductionService) Initialize(ctx context.Context, exitID uuid.UUID) (*models.DeductionLedger, error) {
	result, err := s.compSvc.Compare(ctx, exitID)
	if err != nil {
		return nil, err
	}
	ledger := InitializeFromComparison(*result)
	if err := s.dedRepo.Save(ctx, &ledger); err != nil {
		return nil, err
	}
	return &ledger, nil
}

func (s *DeductionService) Get(ctx context.Context, exitID uuid.UUID) (*models.DeductionLedger, error) {
	ledger, err := s.dedRepo.Load(ctx, exitID)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, pgx.ErrNoRows
	}
	return ledger, nil
}

// edit loads the ledger, applies a pure ledger operation and saves the
// returned value.
func (s *DeductionService) edit(
	ctx context.Context,
	exitID uuid.UUID,
	op func(models.DeductionLedger) (models.DeductionLedger, error),
) (*models.DeductionLedger, error) {
	ledger, err := s.Get(ctx, exitID)
	if err != nil {
		return nil, err
	}
	next, err := op(*ledger)
	if err != nil {
		return nil, err
	}
	if err := s.dedRepo.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *DeductionService) OverrideLine(ctx context.Context, exitID uuid.UUID, lineIndex int, amountCents int64) (*models.DeductionLedger, error) {
	return s.edit(ctx, exitID, func(l models.DeductionLedger) (models.DeductionLedger, error) {
		return OverrideLineAmount(l, lineIndex, amountCents)
	})
}

func (s *DeductionService) AddManual(ctx context.Context, exitID uuid.UUID, description string, amountCents int64) (*models.DeductionLedger, error) {
	return s.edit(ctx, exitID, func(l models.DeductionLedger) (models.DeductionLedger, error) {
		return AddManualLine(l, description, amountCents)
	})
}

func (s *DeductionService) RemoveManual(ctx context.Context, exitID uuid.UUID, lineID uuid.UUID) (*models.DeductionLedger, error) {
	return s.edit(ctx, exitID, func(l models.DeductionLedger) (models.DeductionLedger, error) {
		return RemoveManualLine(l, lineID)
	})
}

// Reset discards overrides and manual lines by recomputing the
// comparison and rebuilding the auto lines.
func (s *DeductionService) Reset(ctx context.Context, exitID uuid.UUID) (*models.DeductionLedger, error) {
	result, err := s.compSvc.Compare(ctx, exitID)
	if err != nil {
		return nil, err
	}
	return s.edit(ctx, exitID, func(l models.DeductionLedger) (models.DeductionLedger, error) {
		return ResetToComputed(l, *result), nil
	})
}

// Validate stamps the ledger as the authoritative deduction record and
// sends the tenant a restitution notice when mail is configured.
func (s *DeductionService) Validate(ctx context.Context, exitID uuid.UUID) (*models.DeductionLedger, error) {
	snapshot, err := s.invRepo.GetByID(ctx, exitID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, pgx.ErrNoRows
	}

	validated, err := s.edit(ctx, exitID, func(l models.DeductionLedger) (models.DeductionLedger, error) {
		return ValidateLedger(l, *snapshot, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	utils.Logger.Infof("Deduction ledger for inventory %s validated, total %d cents", exitID, validated.TotalCents)

	lease, err := s.leaseRepo.GetByID(ctx, snapshot.LeaseID)
	if err != nil || lease == nil {
		utils.Logger.WithError(err).Warnf("Skipping restitution notice for lease %s", snapshot.LeaseID)
		return validated, nil
	}
	// Best effort: a failed notice never rolls back the validation.
	if err := s.notifier.SendRestitutionNotice(lease, validated); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send restitution notice for inventory %s", exitID)
	}
	return validated, nil
}
