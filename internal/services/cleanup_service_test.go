package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestiloc/inventory-service/internal/models"
)

type stubInventoryRepo struct {
	purged []uuid.UUID
	cutoff time.Time
	err    error
}

func (s *stubInventoryRepo) Create(ctx context.Context, snap *models.InventorySnapshot) error {
	return nil
}

func (s *stubInventoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventorySnapshot, error) {
	return nil, nil
}

func (s *stubInventoryRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.InventorySnapshot, error) {
	return nil, nil
}

func (s *stubInventoryRepo) UpdateIfVersion(ctx context.Context, snap *models.InventorySnapshot, expected int64) (pgconn.CommandTag, error) {
	return nil, nil
}

func (s *stubInventoryRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.InventorySnapshot) error) error {
	return nil
}

func (s *stubInventoryRepo) DeleteDraftsOlderThan(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	s.cutoff = cutoff
	return s.purged, s.err
}

type stubDeductionRepo struct {
	deleted []uuid.UUID
}

func (s *stubDeductionRepo) Save(ctx context.Context, ledger *models.DeductionLedger) error {
	return nil
}

func (s *stubDeductionRepo) Load(ctx context.Context, snapshotID uuid.UUID) (*models.DeductionLedger, error) {
	return nil, nil
}

func (s *stubDeductionRepo) Delete(ctx context.Context, snapshotID uuid.UUID) error {
	s.deleted = append(s.deleted, snapshotID)
	return nil
}

func TestCleanupDeletesLedgersOfPurgedDrafts(t *testing.T) {
	purged := []uuid.UUID{uuid.New(), uuid.New()}
	inv := &stubInventoryRepo{purged: purged}
	ded := &stubDeductionRepo{}

	NewCleanupService(inv, ded, 90).RunOnce(context.Background())

	assert.Equal(t, purged, ded.deleted)
	require.WithinDuration(t,
		time.Now().UTC().AddDate(0, 0, -90), inv.cutoff, time.Minute)
}

func TestCleanupSkipsLedgersWhenPurgeFails(t *testing.T) {
	inv := &stubInventoryRepo{err: errors.New("db down")}
	ded := &stubDeductionRepo{}

	NewCleanupService(inv, ded, 90).RunOnce(context.Background())

	assert.Empty(t, ded.deleted)
}
