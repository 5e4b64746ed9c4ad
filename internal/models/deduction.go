package models

import (
	"time"

	"github.com/google/uuid"
)

// DeductionLine is one entry of the ledger: either copied from a
// comparison Difference (IsManual=false) or added by the reviewer
// (IsManual=true). Auto lines keep the comparison figures for the audit
// trail even when the reviewer overrides AmountCents.
type DeductionLine struct {
	ID              uuid.UUID   `json:"id"`
	RoomName        string      `json:"room_name,omitempty"`
	ElementName     string      `json:"element_name,omitempty"`
	Description     string      `json:"description"`
	EntryRating     RatingValue `json:"entry_rating,omitempty"`
	ExitRating      RatingValue `json:"exit_rating,omitempty"`
	RepairCostCents int64       `json:"repair_cost_cents,omitempty"`
	VetusteRate     float64     `json:"vetuste_rate,omitempty"`
	AmountCents     int64       `json:"amount_cents"`
	IsManual        bool        `json:"is_manual"`
}

// DeductionLedger is the human-reviewed projection of a comparison,
// owned by the exit snapshot. Every edit returns a new ledger value;
// once validated it is replaced only wholesale by a re-validation.
type DeductionLedger struct {
	SnapshotID   uuid.UUID       `json:"snapshot_id"`
	LeaseID      uuid.UUID       `json:"lease_id"`
	Lines        []DeductionLine `json:"lines"`
	TotalCents   int64           `json:"total_cents"`
	Validated    bool            `json:"validated"`
	CalculatedAt *time.Time      `json:"calculated_at,omitempty"`
}

// Clone deep-copies the ledger so edit operations can return
// independent values.
func (l DeductionLedger) Clone() DeductionLedger {
	out := l
	if l.Lines != nil {
		out.Lines = append([]DeductionLine(nil), l.Lines...)
	}
	if l.CalculatedAt != nil {
		t := *l.CalculatedAt
		out.CalculatedAt = &t
	}
	return out
}
