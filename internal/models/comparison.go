package models

import (
	"github.com/google/uuid"

	"github.com/gestiloc/inventory-service/internal/constants"
)

// ComparisonWarning flags a non-fatal condition the caller must be able
// to distinguish from a clean result.
type ComparisonWarning string

// WarningMissingDepositAmount means the lease has no recorded deposit
// amount. This is deliberately not conflated with a zero deposit: the
// amount to return is left unset instead of silently reported as zero.
const WarningMissingDepositAmount ComparisonWarning = "missing_deposit_amount"

// Difference is one chargeable degradation: a matched element whose
// condition worsened, or a newly documented element the inspector
// explicitly flagged, with a repair estimate. When NewlyDocumented is
// set there is no entry counterpart and EntryRating is absent rather
// than a fake rating of zero.
type Difference struct {
	RoomType         string                    `json:"room_type"`
	RoomName         string                    `json:"room_name"`
	ElementType      string                    `json:"element_type"`
	ElementName      string                    `json:"element_name"`
	Category         constants.ElementCategory `json:"category"`
	EntryRating      RatingValue               `json:"entry_rating,omitempty"`
	ExitRating       RatingValue               `json:"exit_rating"`
	NewlyDocumented  bool                      `json:"newly_documented"`
	RepairCostCents  int64                     `json:"repair_cost_cents"`
	VetusteRate      float64                   `json:"vetuste_rate"`
	TenantShareCents int64                     `json:"tenant_share_cents"`
}

// ElementComparison is the informational row for every matched or
// newly documented element, whether or not it produced a Difference.
type ElementComparison struct {
	RoomType        string      `json:"room_type"`
	RoomName        string      `json:"room_name"`
	ElementType     string      `json:"element_type"`
	ElementName     string      `json:"element_name"`
	EntryRating     RatingValue `json:"entry_rating,omitempty"`
	ExitRating      RatingValue `json:"exit_rating"`
	RatingDelta     int         `json:"rating_delta"`
	Degraded        bool        `json:"degraded"`
	NewlyDocumented bool        `json:"newly_documented"`
}

// RoomRef identifies an exit-only room, reported but never charged.
type RoomRef struct {
	RoomType string `json:"room_type"`
	RoomName string `json:"room_name"`
}

// KeyDiff reports key counts per key type. A negative Diff (fewer keys
// returned) never prices anything automatically; lost keys are a manual
// ledger line if the operator chooses.
type KeyDiff struct {
	KeyType       string `json:"key_type"`
	EntryQuantity int    `json:"entry_quantity"`
	ExitQuantity  int    `json:"exit_quantity"`
	Diff          int    `json:"diff"`
}

// MeterConsumption reports usage between the two readings of a channel
// present in both snapshots. Informational only.
type MeterConsumption struct {
	Channel     MeterChannel `json:"channel"`
	EntryValue  int64        `json:"entry_value"`
	ExitValue   int64        `json:"exit_value"`
	Consumption int64        `json:"consumption"`
}

// ComparisonResult is the full derived output of comparing an entry and
// an exit snapshot. It carries no timestamp: identical inputs must
// produce identical results so a disputed comparison can be replayed
// months later.
type ComparisonResult struct {
	LeaseID          uuid.UUID `json:"lease_id"`
	EntryInventoryID uuid.UUID `json:"entry_inventory_id"`
	ExitInventoryID  uuid.UUID `json:"exit_inventory_id"`

	Differences []Difference        `json:"differences"`
	Elements    []ElementComparison `json:"elements"`
	NewRooms    []RoomRef           `json:"new_rooms,omitempty"`
	KeyDiffs    []KeyDiff           `json:"key_diffs,omitempty"`
	Meters      []MeterConsumption  `json:"meters,omitempty"`

	TotalDeductionsCents int64               `json:"total_deductions_cents"`
	DepositAmountCents   int64               `json:"deposit_amount_cents"`
	DepositKnown         bool                `json:"deposit_known"`
	AmountToReturnCents  int64               `json:"amount_to_return_cents"`
	Warnings             []ComparisonWarning `json:"warnings,omitempty"`
}
