package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/gestiloc/inventory-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type InventoryRepository interface {
	Create(ctx context.Context, s *models.InventorySnapshot) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.InventorySnapshot, error)
	ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.InventorySnapshot, error)

	UpdateIfVersion(ctx context.Context, s *models.InventorySnapshot, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.InventorySnapshot) error) error

	DeleteDraftsOlderThan(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

/* ------------------------------------------------------------------
   Implementation — rooms, keys and meters live in JSONB documents.
------------------------------------------------------------------ */

type inventoryRepo struct {
	*BaseVersionedRepo[*models.InventorySnapshot]
	db DB
}

func NewInventoryRepository(db DB) InventoryRepository {
	r := &inventoryRepo{db: db}
	selectStmt := baseSelectInventory() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanInventory)
	return r
}

func baseSelectInventory() string {
	return `
		SELECT
			id, lease_id, inventory_type, status, inventory_date,
			rooms, keys, meters, general_observations,
			landlord_signature, tenant_signature, entry_inventory_id,
			created_at, updated_at, row_version
		FROM inventory_snapshots
	`
}

func scanInventory(row pgx.Row) (*models.InventorySnapshot, error) {
	var (
		s         models.InventorySnapshot
		roomsDoc  []byte
		keysDoc   []byte
		metersDoc []byte
	)
	err := row.Scan(
		&s.ID, &s.LeaseID, &s.Type, &s.Status, &s.InventoryDate,
		&roomsDoc, &keysDoc, &metersDoc, &s.GeneralObservations,
		&s.LandlordSignature, &s.TenantSignature, &s.EntryInventoryID,
		&s.CreatedAt, &s.UpdatedAt, &s.RowVersion,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(roomsDoc, &s.Rooms); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(keysDoc, &s.Keys); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(metersDoc, &s.Meters); err != nil {
		return nil, err
	}
	return &s, nil
}

func marshalDocs(s *models.InventorySnapshot) (rooms, keys, meters []byte, err error) {
	if rooms, err = json.Marshal(s.Rooms); err != nil {
		return nil, nil, nil, err
	}
	if keys, err = json.Marshal(s.Keys); err != nil {
		return nil, nil, nil, err
	}
	if meters, err = json.Marshal(s.Meters); err != nil {
		return nil, nil, nil, err
	}
	return rooms, keys, meters, nil
}

func (r *inventoryRepo) Create(ctx context.Context, s *models.InventorySnapshot) error {
	rooms, keys, meters, err := marshalDocs(s)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO inventory_snapshots (
			id, lease_id, inventory_type, status, inventory_date,
			rooms, keys, meters, general_observations,
			landlord_signature, tenant_signature, entry_inventory_id,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, NOW(), NOW(), 1)
	`,
		s.ID,
		s.LeaseID,
		s.Type,
		s.Status,
		s.InventoryDate,
		rooms,
		keys,
		meters,
		s.GeneralObservations,
		s.LandlordSignature,
		s.TenantSignature,
		s.EntryInventoryID,
	)
	return err
}

func (r *inventoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventorySnapshot, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *inventoryRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.InventorySnapshot, error) {
	rows, err := r.db.Query(ctx, baseSelectInventory()+" WHERE lease_id=$1 ORDER BY inventory_date", leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.InventorySnapshot
	for rows.Next() {
		s, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *inventoryRepo) UpdateIfVersion(ctx context.Context, s *models.InventorySnapshot, expected int64) (pgconn.CommandTag, error) {
	rooms, keys, meters, err := marshalDocs(s)
	if err != nil {
		return nil, err
	}
	// entry_inventory_id is immutable once set, so it is not part of
	// the update column list.
	return r.db.Exec(ctx, `
		UPDATE inventory_snapshots SET
			status=$1, inventory_date=$2, rooms=$3, keys=$4, meters=$5,
			general_observations=$6, landlord_signature=$7, tenant_signature=$8,
			updated_at=NOW(), row_version=row_version+1
		WHERE id=$9 AND row_version=$10
	`,
		s.Status,
		s.InventoryDate,
		rooms,
		keys,
		meters,
		s.GeneralObservations,
		s.LandlordSignature,
		s.TenantSignature,
		s.ID,
		expected,
	)
}

func (r *inventoryRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.InventorySnapshot) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

// DeleteDraftsOlderThan returns the purged ids so the caller can clean
// up dependent records (deduction ledgers keyed on the snapshot).
func (r *inventoryRepo) DeleteDraftsOlderThan(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		DELETE FROM inventory_snapshots
		WHERE status=$1 AND updated_at < $2
		RETURNING id
	`, models.StatusDraft, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
