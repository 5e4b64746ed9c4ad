package models

import (
	"time"

	"github.com/google/uuid"
)

// Lease is the read model the comparator needs. DepositAmountCents is a
// pointer on purpose: nil means "deposit not recorded yet", which is a
// different situation from a zero-euro deposit and surfaces as a warning
// on the comparison result.
type Lease struct {
	ID                 uuid.UUID `json:"id"`
	LotReference       string    `json:"lot_reference"`
	TenantName         string    `json:"tenant_name"`
	TenantEmail        string    `json:"tenant_email,omitempty"`
	LandlordName       string    `json:"landlord_name"`
	MonthlyRentCents   int64     `json:"monthly_rent_cents"`
	DepositAmountCents *int64    `json:"deposit_amount_cents,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
