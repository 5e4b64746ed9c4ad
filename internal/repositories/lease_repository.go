package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/gestiloc/inventory-service/internal/models"
)

type LeaseRepository interface {
	Create(ctx context.Context, l *models.Lease) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	ListAll(ctx context.Context) ([]*models.Lease, error)
}

type leaseRepo struct {
	db DB
}

func NewLeaseRepository(db DB) LeaseRepository {
	return &leaseRepo{db: db}
}

func baseSelectLease() string {
	return `
		SELECT
			id, lot_reference, tenant_name, tenant_email, landlord_name,
			monthly_rent_cents, deposit_amount_cents, created_at
		FROM leases
	`
}

func scanLease(row pgx.Row) (*models.Lease, error) {
	var l models.Lease
	err := row.Scan(
		&l.ID, &l.LotReference, &l.TenantName, &l.TenantEmail, &l.LandlordName,
		&l.MonthlyRentCents, &l.DepositAmountCents, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *leaseRepo) Create(ctx context.Context, l *models.Lease) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO leases (
			id, lot_reference, tenant_name, tenant_email, landlord_name,
			monthly_rent_cents, deposit_amount_cents, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW())
	`,
		l.ID,
		l.LotReference,
		l.TenantName,
		l.TenantEmail,
		l.LandlordName,
		l.MonthlyRentCents,
		l.DepositAmountCents,
	)
	return err
}

func (r *leaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	row := r.db.QueryRow(ctx, baseSelectLease()+" WHERE id=$1", id)
	return scanLease(row)
}

func (r *leaseRepo) ListAll(ctx context.Context) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, baseSelectLease()+" ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
