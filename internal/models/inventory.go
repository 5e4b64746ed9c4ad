package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gestiloc/inventory-service/internal/constants"
	"github.com/gestiloc/inventory-service/internal/utils"
)

// InventoryType distinguishes the two inspection events of a lease.
type InventoryType string

const (
	InventoryTypeEntry InventoryType = "ENTRY"
	InventoryTypeExit  InventoryType = "EXIT"
)

// InventoryStatus is the snapshot lifecycle: DRAFT → COMPLETED → SIGNED.
// SIGNED is terminal; any mutation on a signed snapshot fails with
// utils.ErrFrozenRecord.
type InventoryStatus string

const (
	StatusDraft     InventoryStatus = "DRAFT"
	StatusCompleted InventoryStatus = "COMPLETED"
	StatusSigned    InventoryStatus = "SIGNED"
)

// MeterChannel names one utility index read at inspection time.
type MeterChannel string

const (
	MeterColdWater          MeterChannel = "COLD_WATER"
	MeterHotWater           MeterChannel = "HOT_WATER"
	MeterElectricityPeak    MeterChannel = "ELECTRICITY_PEAK"
	MeterElectricityOffPeak MeterChannel = "ELECTRICITY_OFF_PEAK"
	MeterGas                MeterChannel = "GAS"
)

// MeterReading is a single index value; the channel is its only identity.
type MeterReading struct {
	Channel MeterChannel `json:"channel"`
	Value   int64        `json:"value"`
}

// KeyRecord counts keys handed over for one key type. KeyType is the
// matching identity across the entry and exit snapshots.
type KeyRecord struct {
	KeyType  string `json:"key_type"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// Element is one inspected item inside a room, identified by
// (ElementType, ElementName) for matching across snapshots.
//
// VetusteRate and TenantShareCents are derived by the comparator; they
// are never authoritative input.
type Element struct {
	ElementType              string                    `json:"element_type"`
	ElementName              string                    `json:"element_name"`
	Category                 constants.ElementCategory `json:"category"`
	Rating                   RatingValue               `json:"rating"`
	Material                 string                    `json:"material,omitempty"`
	InstallationDate         *time.Time                `json:"installation_date,omitempty"`
	ConditionNotes           string                    `json:"condition_notes,omitempty"`
	IsDegradation            bool                      `json:"is_degradation"`
	RepairNeeded             bool                      `json:"repair_needed"`
	EstimatedRepairCostCents *int64                    `json:"estimated_repair_cost_cents,omitempty"`
}

// Room groups elements, identified by (RoomType, RoomName) for matching.
type Room struct {
	RoomType     string    `json:"room_type"`
	RoomName     string    `json:"room_name"`
	Observations string    `json:"observations,omitempty"`
	PhotoURLs    []string  `json:"photo_urls,omitempty"`
	Elements     []Element `json:"elements"`
}

// InventorySnapshot is the root entity of one état des lieux. All
// mutators below have value receivers and return a fresh snapshot:
// callers always hand the full prior state in and get a new state back,
// so two reviewers can never interleave partial in-place updates.
type InventorySnapshot struct {
	Versioned
	ID                  uuid.UUID       `json:"id"`
	LeaseID             uuid.UUID       `json:"lease_id"`
	Type                InventoryType   `json:"type"`
	Status              InventoryStatus `json:"status"`
	InventoryDate       time.Time       `json:"inventory_date"`
	Rooms               []Room          `json:"rooms"`
	Keys                []KeyRecord     `json:"keys"`
	Meters              []MeterReading  `json:"meters"`
	GeneralObservations string          `json:"general_observations,omitempty"`
	LandlordSignature   *string         `json:"landlord_signature,omitempty"`
	TenantSignature     *string         `json:"tenant_signature,omitempty"`

	// Exit snapshots only: the entry snapshot they are compared against.
	// Immutable once set.
	EntryInventoryID *uuid.UUID `json:"entry_inventory_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *InventorySnapshot) GetID() string {
	return s.ID.String()
}

// Clone deep-copies the snapshot so mutators can return independent values.
func (s InventorySnapshot) Clone() InventorySnapshot {
	out := s

	if s.Rooms != nil {
		out.Rooms = make([]Room, len(s.Rooms))
		for i, r := range s.Rooms {
			cr := r
			if r.PhotoURLs != nil {
				cr.PhotoURLs = append([]string(nil), r.PhotoURLs...)
			}
			if r.Elements != nil {
				cr.Elements = make([]Element, len(r.Elements))
				for j, e := range r.Elements {
					ce := e
					if e.InstallationDate != nil {
						d := *e.InstallationDate
						ce.InstallationDate = &d
					}
					if e.EstimatedRepairCostCents != nil {
						c := *e.EstimatedRepairCostCents
						ce.EstimatedRepairCostCents = &c
					}
					cr.Elements[j] = ce
				}
			}
			out.Rooms[i] = cr
		}
	}
	if s.Keys != nil {
		out.Keys = append([]KeyRecord(nil), s.Keys...)
	}
	if s.Meters != nil {
		out.Meters = append([]MeterReading(nil), s.Meters...)
	}
	if s.LandlordSignature != nil {
		sig := *s.LandlordSignature
		out.LandlordSignature = &sig
	}
	if s.TenantSignature != nil {
		sig := *s.TenantSignature
		out.TenantSignature = &sig
	}
	if s.EntryInventoryID != nil {
		id := *s.EntryInventoryID
		out.EntryInventoryID = &id
	}
	return out
}

// frozen guards every mutator: SIGNED is terminal.
func (s InventorySnapshot) frozen() error {
	if s.Status == StatusSigned {
		return utils.ErrFrozenRecord
	}
	return nil
}

// validateRatings rejects any element rating outside the 1..5 scale.
func validateRatings(rooms []Room) error {
	for _, r := range rooms {
		for _, e := range r.Elements {
			if !e.Rating.Valid() {
				return utils.NewValidationError("rating", "rating must be between 1 and 5")
			}
			if e.EstimatedRepairCostCents != nil && *e.EstimatedRepairCostCents < 0 {
				return utils.NewValidationError("estimated_repair_cost_cents", "repair cost cannot be negative")
			}
		}
	}
	return nil
}

// WithRooms replaces the room tree.
func (s InventorySnapshot) WithRooms(rooms []Room) (InventorySnapshot, error) {
	if err := s.frozen(); err != nil {
		return s, err
	}
	if err := validateRatings(rooms); err != nil {
		return s, err
	}
	out := s.Clone()
	out.Rooms = rooms
	return out, nil
}

// WithKeys replaces the key records.
func (s InventorySnapshot) WithKeys(keys []KeyRecord) (InventorySnapshot, error) {
	if err := s.frozen(); err != nil {
		return s, err
	}
	for _, k := range keys {
		if k.Quantity < 0 {
			return s, utils.NewValidationError("quantity", "key quantity cannot be negative")
		}
	}
	out := s.Clone()
	out.Keys = keys
	return out, nil
}

// WithMeters replaces the meter readings.
func (s InventorySnapshot) WithMeters(meters []MeterReading) (InventorySnapshot, error) {
	if err := s.frozen(); err != nil {
		return s, err
	}
	out := s.Clone()
	out.Meters = meters
	return out, nil
}

// WithObservations replaces the free-text general observations.
func (s InventorySnapshot) WithObservations(obs string) (InventorySnapshot, error) {
	if err := s.frozen(); err != nil {
		return s, err
	}
	out := s.Clone()
	out.GeneralObservations = obs
	return out, nil
}

// Complete moves DRAFT → COMPLETED. An inventory documenting nothing is
// legally meaningless, so at least one room with one element is required.
func (s InventorySnapshot) Complete() (InventorySnapshot, error) {
	if err := s.frozen(); err != nil {
		return s, err
	}
	if s.Status != StatusDraft {
		return s, utils.NewValidationError("status", "only a draft inventory can be completed")
	}
	documented := false
	for _, r := range s.Rooms {
		if len(r.Elements) > 0 {
			documented = true
			break
		}
	}
	if !documented {
		return s, utils.NewValidationError("rooms", "cannot complete an inventory with no documented elements")
	}
	out := s.Clone()
	out.Status = StatusCompleted
	return out, nil
}

// Sign moves COMPLETED → SIGNED. Both signatures must be present.
func (s InventorySnapshot) Sign(landlordSig, tenantSig string) (InventorySnapshot, error) {
	if err := s.frozen(); err != nil {
		return s, err
	}
	if s.Status != StatusCompleted {
		return s, utils.NewValidationError("status", "only a completed inventory can be signed")
	}
	if landlordSig == "" || tenantSig == "" {
		return s, utils.NewValidationError("signatures", "both landlord and tenant signatures are required")
	}
	out := s.Clone()
	out.LandlordSignature = &landlordSig
	out.TenantSignature = &tenantSig
	out.Status = StatusSigned
	return out, nil
}
