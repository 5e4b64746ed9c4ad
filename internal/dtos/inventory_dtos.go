package dtos

import (
	"github.com/gestiloc/inventory-service/internal/models"
)

/*
CreateInventoryRequest opens a new draft snapshot. EntryInventoryID is
required for EXIT inventories and forbidden for ENTRY ones (enforced in
the service layer).
*/
type CreateInventoryRequest struct {
	LeaseID          string  `json:"lease_id" validate:"required,uuid"`
	Type             string  `json:"type" validate:"required,oneof=ENTRY EXIT"`
	InventoryDate    string  `json:"inventory_date" validate:"required,datetime=2006-01-02"`
	EntryInventoryID *string `json:"entry_inventory_id,omitempty" validate:"omitempty,uuid"`
}

/*
UpdateInventoryRequest replaces whole sections of a draft/completed
snapshot. Omitted sections are left untouched; the room/key/meter
shapes are the persisted document shapes.
*/
type UpdateInventoryRequest struct {
	Rooms               *[]models.Room         `json:"rooms,omitempty"`
	Keys                *[]models.KeyRecord    `json:"keys,omitempty"`
	Meters              *[]models.MeterReading `json:"meters,omitempty"`
	GeneralObservations *string                `json:"general_observations,omitempty"`
}

type SignInventoryRequest struct {
	LandlordSignature string `json:"landlord_signature" validate:"required"`
	TenantSignature   string `json:"tenant_signature" validate:"required"`
}

type CreateLeaseRequest struct {
	LotReference       string `json:"lot_reference" validate:"required"`
	TenantName         string `json:"tenant_name" validate:"required"`
	TenantEmail        string `json:"tenant_email" validate:"omitempty,email"`
	LandlordName       string `json:"landlord_name" validate:"required"`
	MonthlyRentCents   int64  `json:"monthly_rent_cents" validate:"required,gt=0"`
	DepositAmountCents *int64 `json:"deposit_amount_cents,omitempty" validate:"omitempty,min=0"`
}
