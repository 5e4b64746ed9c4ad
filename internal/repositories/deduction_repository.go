package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/gestiloc/inventory-service/internal/models"
)

// DeductionRepository persists one ledger per exit snapshot. Save is an
// upsert: a re-validation replaces the prior record wholesale.
type DeductionRepository interface {
	Save(ctx context.Context, ledger *models.DeductionLedger) error
	Load(ctx context.Context, snapshotID uuid.UUID) (*models.DeductionLedger, error)
	Delete(ctx context.Context, snapshotID uuid.UUID) error
}

type deductionRepo struct {
	db DB
}

func NewDeductionRepository(db DB) DeductionRepository {
	return &deductionRepo{db: db}
}

func (r *deductionRepo) Save(ctx context.Context, ledger *models.DeductionLedger) error {
	lines, err := json.Marshal(ledger.Lines)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO deposit_deductions (
			snapshot_id, lease_id, lines, total_cents, validated, calculated_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6, NOW())
		ON CONFLICT (snapshot_id) DO UPDATE SET
			lines=EXCLUDED.lines,
			total_cents=EXCLUDED.total_cents,
			validated=EXCLUDED.validated,
			calculated_at=EXCLUDED.calculated_at,
			updated_at=NOW()
	`,
		ledger.SnapshotID,
		ledger.LeaseID,
		lines,
		ledger.TotalCents,
		ledger.Validated,
		ledger.CalculatedAt,
	)
	return err
}

func (r *deductionRepo) Load(ctx context.Context, snapshotID uuid.UUID) (*models.DeductionLedger, error) {
	row := r.db.QueryRow(ctx, `
		SELECT snapshot_id, lease_id, lines, total_cents, validated, calculated_at
		FROM deposit_deductions
		WHERE snapshot_id=$1
	`, snapshotID)

	var (
		ledger   models.DeductionLedger
		linesDoc []byte
	)
	err := row.Scan(
		&ledger.SnapshotID, &ledger.LeaseID, &linesDoc,
		&ledger.TotalCents, &ledger.Validated, &ledger.CalculatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(linesDoc, &ledger.Lines); err != nil {
		return nil, err
	}
	return &ledger, nil
}

func (r *deductionRepo) Delete(ctx context.Context, snapshotID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM deposit_deductions WHERE snapshot_id=$1`, snapshotID)
	return err
}
