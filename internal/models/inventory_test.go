package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestiloc/inventory-service/internal/constants"
	"github.com/gestiloc/inventory-service/internal/utils"
)

func draftSnapshot() InventorySnapshot {
	return InventorySnapshot{
		ID:            uuid.New(),
		LeaseID:       uuid.New(),
		Type:          InventoryTypeEntry,
		Status:        StatusDraft,
		InventoryDate: time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
	}
}

func oneRoom() []Room {
	return []Room{{
		RoomType: "living_room",
		RoomName: "Salon",
		Elements: []Element{{
			ElementType: "floor",
			ElementName: "Parquet",
			Category:    constants.CategoryFlooring,
			Rating:      RatingGood,
		}},
	}}
}

func TestCompleteRequiresDocumentedElement(t *testing.T) {
	s := draftSnapshot()

	_, err := s.Complete()
	assert.True(t, utils.IsValidationError(err))

	// A room with no elements is not enough either.
	s, err = s.WithRooms([]Room{{RoomType: "living_room", RoomName: "Salon"}})
	require.NoError(t, err)
	_, err = s.Complete()
	assert.True(t, utils.IsValidationError(err))

	s, err = s.WithRooms(oneRoom())
	require.NoError(t, err)
	completed, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)
	// The prior value keeps its status: transitions return new values.
	assert.Equal(t, StatusDraft, s.Status)
}

func TestSignRequiresBothSignatures(t *testing.T) {
	s := draftSnapshot()
	s, err := s.WithRooms(oneRoom())
	require.NoError(t, err)

	// Draft cannot be signed directly.
	_, err = s.Sign("sig-landlord", "sig-tenant")
	assert.True(t, utils.IsValidationError(err))

	s, err = s.Complete()
	require.NoError(t, err)

	_, err = s.Sign("", "sig-tenant")
	assert.True(t, utils.IsValidationError(err))
	_, err = s.Sign("sig-landlord", "")
	assert.True(t, utils.IsValidationError(err))

	signed, err := s.Sign("sig-landlord", "sig-tenant")
	require.NoError(t, err)
	assert.Equal(t, StatusSigned, signed.Status)
	require.NotNil(t, signed.LandlordSignature)
	require.NotNil(t, signed.TenantSignature)
}

func TestSignedSnapshotIsFrozen(t *testing.T) {
	s := draftSnapshot()
	s, err := s.WithRooms(oneRoom())
	require.NoError(t, err)
	s, err = s.Complete()
	require.NoError(t, err)
	signed, err := s.Sign("sig-landlord", "sig-tenant")
	require.NoError(t, err)

	before := signed.Clone()

	_, err = signed.WithRooms(nil)
	assert.ErrorIs(t, err, utils.ErrFrozenRecord)
	_, err = signed.WithKeys([]KeyRecord{{KeyType: "main_entrance", Quantity: 2}})
	assert.ErrorIs(t, err, utils.ErrFrozenRecord)
	_, err = signed.WithMeters([]MeterReading{{Channel: MeterGas, Value: 10}})
	assert.ErrorIs(t, err, utils.ErrFrozenRecord)
	_, err = signed.WithObservations("late edit")
	assert.ErrorIs(t, err, utils.ErrFrozenRecord)
	_, err = signed.Complete()
	assert.ErrorIs(t, err, utils.ErrFrozenRecord)
	_, err = signed.Sign("x", "y")
	assert.ErrorIs(t, err, utils.ErrFrozenRecord)

	// Every rejected call left the snapshot untouched.
	assert.Equal(t, before, signed)
}

func TestWithRoomsValidatesRatings(t *testing.T) {
	s := draftSnapshot()
	rooms := oneRoom()
	rooms[0].Elements[0].Rating = 7

	_, err := s.WithRooms(rooms)
	assert.True(t, utils.IsValidationError(err))

	rooms[0].Elements[0].Rating = 0
	_, err = s.WithRooms(rooms)
	assert.True(t, utils.IsValidationError(err))
}

func TestWithRoomsRejectsNegativeRepairCost(t *testing.T) {
	s := draftSnapshot()
	rooms := oneRoom()
	bad := int64(-500)
	rooms[0].Elements[0].EstimatedRepairCostCents = &bad

	_, err := s.WithRooms(rooms)
	assert.True(t, utils.IsValidationError(err))
}

func TestWithKeysRejectsNegativeQuantity(t *testing.T) {
	s := draftSnapshot()
	_, err := s.WithKeys([]KeyRecord{{KeyType: "main_entrance", Quantity: -1}})
	assert.True(t, utils.IsValidationError(err))
}

func TestCloneIsIndependent(t *testing.T) {
	s := draftSnapshot()
	s, err := s.WithRooms(oneRoom())
	require.NoError(t, err)
	install := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	s.Rooms[0].Elements[0].InstallationDate = &install

	clone := s.Clone()
	clone.Rooms[0].Elements[0].ElementName = "Carrelage"
	*clone.Rooms[0].Elements[0].InstallationDate = install.AddDate(1, 0, 0)

	assert.Equal(t, "Parquet", s.Rooms[0].Elements[0].ElementName)
	assert.Equal(t, install, *s.Rooms[0].Elements[0].InstallationDate)
}
