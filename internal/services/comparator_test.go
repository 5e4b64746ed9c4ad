package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestiloc/inventory-service/internal/constants"
	"github.com/gestiloc/inventory-service/internal/models"
	"github.com/gestiloc/inventory-service/internal/utils"
)

func cents(v int64) *int64 { return &v }

type fixture struct {
	lease models.Lease
	entry models.InventorySnapshot
	exit  models.InventorySnapshot
}

// newFixture builds a lease with a signed entry snapshot and a matching
// exit snapshot shell dated five years later. Tests fill in the rooms.
func newFixture() fixture {
	leaseID := uuid.New()
	entryID := uuid.New()
	exitID := uuid.New()

	lease := models.Lease{
		ID:                 leaseID,
		LotReference:       "LOT-42",
		TenantName:         "Marie Dupont",
		DepositAmountCents: cents(120000),
	}
	entry := models.InventorySnapshot{
		ID:            entryID,
		LeaseID:       leaseID,
		Type:          models.InventoryTypeEntry,
		Status:        models.StatusSigned,
		InventoryDate: date(2020, time.March, 15),
	}
	exit := models.InventorySnapshot{
		ID:               exitID,
		LeaseID:          leaseID,
		Type:             models.InventoryTypeExit,
		Status:           models.StatusSigned,
		InventoryDate:    date(2025, time.March, 15),
		EntryInventoryID: &entryID,
	}
	return fixture{lease: lease, entry: entry, exit: exit}
}

func parquetEntry() models.Element {
	return models.Element{
		ElementType: "floor",
		ElementName: "Parquet salon",
		Category:    constants.CategoryFlooring,
		Rating:      models.RatingExcellent,
	}
}

func TestCompareDegradedElementProducesDifference(t *testing.T) {
	f := newFixture()
	f.entry.Rooms = []models.Room{{
		RoomType: "living_room", RoomName: "Salon",
		Elements: []models.Element{parquetEntry()},
	}}
	exitElem := parquetEntry()
	exitElem.Rating = models.RatingPoor
	exitElem.IsDegradation = true
	exitElem.InstallationDate = datePtr(2020, time.March, 15)
	exitElem.EstimatedRepairCostCents = cents(100000)
	f.exit.Rooms = []models.Room{{
		RoomType: "living_room", RoomName: "Salon",
		Elements: []models.Element{exitElem},
	}}

	result, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)

	require.Len(t, result.Differences, 1)
	d := result.Differences[0]
	assert.Equal(t, "Parquet salon", d.ElementName)
	assert.Equal(t, models.RatingExcellent, d.EntryRating)
	assert.Equal(t, models.RatingPoor, d.ExitRating)
	assert.InDelta(t, 50.0, d.VetusteRate, 0.0001)
	assert.Equal(t, int64(50000), d.TenantShareCents)
	assert.False(t, d.NewlyDocumented)

	assert.Equal(t, int64(50000), result.TotalDeductionsCents)
	assert.True(t, result.DepositKnown)
	assert.Equal(t, int64(120000), result.DepositAmountCents)
	assert.Equal(t, int64(70000), result.AmountToReturnCents)
	assert.Empty(t, result.Warnings)
}

func TestCompareIsDeterministic(t *testing.T) {
	f := newFixture()
	f.entry.Rooms = []models.Room{{
		RoomType: "living_room", RoomName: "Salon",
		Elements: []models.Element{parquetEntry()},
	}}
	exitElem := parquetEntry()
	exitElem.Rating = models.RatingAverage
	exitElem.IsDegradation = true
	exitElem.EstimatedRepairCostCents = cents(45000)
	f.exit.Rooms = []models.Room{{
		RoomType: "living_room", RoomName: "Salon",
		Elements: []models.Element{exitElem},
	}}
	f.entry.Keys = []models.KeyRecord{{KeyType: "main_entrance", Quantity: 2}}
	f.exit.Keys = []models.KeyRecord{{KeyType: "main_entrance", Quantity: 1}}
	f.entry.Meters = []models.MeterReading{{Channel: models.MeterColdWater, Value: 100}}
	f.exit.Meters = []models.MeterReading{{Channel: models.MeterColdWater, Value: 180}}

	first, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)
	second, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompareRejectsWrongTypes(t *testing.T) {
	f := newFixture()
	_, err := CompareInventories(f.exit, f.entry, f.lease, DefaultVetusteTable())
	assert.ErrorIs(t, err, utils.ErrMismatchedLease)
}

func TestCompareRejectsForeignLease(t *testing.T) {
	f := newFixture()
	otherLease := f.lease
	otherLease.ID = uuid.New()
	_, err := CompareInventories(f.entry, f.exit, otherLease, DefaultVetusteTable())
	assert.ErrorIs(t, err, utils.ErrMismatchedLease)
}

func TestCompareEntryOnlyRoomIsIgnored(t *testing.T) {
	// A room that no longer exists at exit can never be degraded.
	f := newFixture()
	degraded := parquetEntry()
	degraded.IsDegradation = true
	degraded.EstimatedRepairCostCents = cents(100000)
	f.entry.Rooms = []models.Room{{
		RoomType: "cellar", RoomName: "Cave",
		Elements: []models.Element{degraded},
	}}
	f.exit.Rooms = nil

	result, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)
	assert.Empty(t, result.Differences)
	assert.Empty(t, result.Elements)
	assert.Equal(t, int64(0), result.TotalDeductionsCents)
}

func TestCompareExitOnlyRoomIsInformational(t *testing.T) {
	f := newFixture()
	f.entry.Rooms = nil
	f.exit.Rooms = []models.Room{{
		RoomType: "balcony", RoomName: "Balcon",
		Elements: []models.Element{{
			ElementType: "railing", ElementName: "Garde-corps",
			Category: constants.CategoryJoinery, Rating: models.RatingGood,
		}},
	}}

	result, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)
	require.Len(t, result.NewRooms, 1)
	assert.Equal(t, "Balcon", result.NewRooms[0].RoomName)
	assert.Empty(t, result.Differences)
	require.Len(t, result.Elements, 1)
	assert.True(t, result.Elements[0].NewlyDocumented)
}

func TestCompareManualFlagGatesFinancialDifference(t *testing.T) {
	// Condition worsened from 5 to 3 but the inspector did not flag a
	// degradation: informational row only, nothing charged.
	f := newFixture()
	f.entry.Rooms = []models.Room{{
		RoomType: "living_room", RoomName: "Salon",
		Elements: []models.Element{parquetEntry()},
	}}
	exitElem := parquetEntry()
	exitElem.Rating = models.RatingAverage
	exitElem.IsDegradation = false
	exitElem.EstimatedRepairCostCents = cents(100000)
	f.exit.Rooms = []models.Room{{
		RoomType: "living_room", RoomName: "Salon",
		Elements: []models.Element{exitElem},
	}}

	result, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)
	assert.Empty(t, result.Differences)
	require.Len(t, result.Elements, 1)
	assert.Equal(t, 2, result.Elements[0].RatingDelta)
	assert.False(t, result.Elements[0].Degraded)
	assert.Equal(t, int64(120000), result.AmountToReturnCents)
}

func TestCompareFlagWithoutCostProducesNoDifference(t *testing.T) {
	f := newFixture()
	f.entry.Rooms = []models.Room{{
		RoomType: "living_room", RoomName: "Salon",
		Elements: []models.Element{parquetEntry()},
	}}
	exitElem := parquetEntry()
	exitElem.Rating = models.RatingPoor
	exitElem.IsDegradation = true // but no repair estimate
	f.exit.Rooms = []models.Room{{
		RoomType: "living_room", RoomName: "Salon",
		Elements: []models.Element{exitElem},
	}}

	result, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)
	assert.Empty(t, result.Differences)
}

func TestCompareNewlyDocumentedElementNeedsExplicitFlag(t *testing.T) {
	f := newFixture()
	f.entry.Rooms = []models.Room{{
		RoomType: "kitchen", RoomName: "Cuisine",
		Elements: []models.Element{parquetEntry()},
	}}

	unflagged := models.Element{
		ElementType: "wall", ElementName: "Mur nord",
		Category: constants.CategoryWalls, Rating: models.RatingAverage,
		EstimatedRepairCostCents: cents(30000),
	}
	flagged := models.Element{
		ElementType: "sink", ElementName: "Évier",
		Category: constants.CategoryPlumbing, Rating: models.RatingVeryPoor,
		IsDegradation:            true,
		EstimatedRepairCostCents: cents(20000),
	}
	f.exit.Rooms = []models.Room{{
		RoomType: "kitchen", RoomName: "Cuisine",
		Elements: []models.Element{parquetEntry(), unflagged, flagged},
	}}

	result, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)

	// The inspector's flag wins over automatic matching: only the
	// flagged new element is charged, at full cost (no installation
	// date, so no wear).
	require.Len(t, result.Differences, 1)
	d := result.Differences[0]
	assert.Equal(t, "Évier", d.ElementName)
	assert.Equal(t, int64(20000), d.TenantShareCents)
	assert.True(t, d.NewlyDocumented)

	// No entry counterpart: entry_rating is absent, not a zero rating.
	doc, err := json.Marshal(d)
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "entry_rating")
}

func TestCompareKeyDiffNeverPricesLostKeys(t *testing.T) {
	f := newFixture()
	f.entry.Keys = []models.KeyRecord{{KeyType: "main_entrance", Quantity: 2}}
	f.exit.Keys = []models.KeyRecord{
		{KeyType: "main_entrance", Quantity: 1},
		{KeyType: "mailbox", Quantity: 1},
	}

	result, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)

	require.Len(t, result.KeyDiffs, 2)
	assert.Equal(t, models.KeyDiff{KeyType: "main_entrance", EntryQuantity: 2, ExitQuantity: 1, Diff: -1}, result.KeyDiffs[0])
	assert.Equal(t, models.KeyDiff{KeyType: "mailbox", ExitQuantity: 1, Diff: 1}, result.KeyDiffs[1])
	assert.Equal(t, int64(0), result.TotalDeductionsCents)
}

func TestCompareMeterConsumption(t *testing.T) {
	f := newFixture()
	f.entry.Meters = []models.MeterReading{
		{Channel: models.MeterColdWater, Value: 1000},
		{Channel: models.MeterGas, Value: 250},
	}
	f.exit.Meters = []models.MeterReading{
		{Channel: models.MeterColdWater, Value: 1320},
		{Channel: models.MeterElectricityPeak, Value: 900},
	}

	result, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)

	// Only channels read on both sides yield a consumption.
	require.Len(t, result.Meters, 1)
	assert.Equal(t, models.MeterColdWater, result.Meters[0].Channel)
	assert.Equal(t, int64(320), result.Meters[0].Consumption)
}

func TestCompareMissingDepositAmountIsAWarningNotZero(t *testing.T) {
	f := newFixture()
	f.lease.DepositAmountCents = nil

	result, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)
	assert.False(t, result.DepositKnown)
	assert.Contains(t, result.Warnings, models.WarningMissingDepositAmount)
}

func TestCompareDeductionsBeyondDepositFloorAtZero(t *testing.T) {
	f := newFixture()
	f.lease.DepositAmountCents = cents(120000)

	exitElem := parquetEntry()
	exitElem.Rating = models.RatingVeryPoor
	exitElem.IsDegradation = true
	exitElem.EstimatedRepairCostCents = cents(150000) // no installation date: full charge
	f.entry.Rooms = []models.Room{{
		RoomType: "living_room", RoomName: "Salon",
		Elements: []models.Element{parquetEntry()},
	}}
	f.exit.Rooms = []models.Room{{
		RoomType: "living_room", RoomName: "Salon",
		Elements: []models.Element{exitElem},
	}}

	result, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)
	assert.Equal(t, int64(150000), result.TotalDeductionsCents)
	assert.Equal(t, int64(0), result.AmountToReturnCents)
	assert.GreaterOrEqual(t, result.AmountToReturnCents, int64(0))
}

func TestCompareMatchingIsCaseSensitive(t *testing.T) {
	f := newFixture()
	f.entry.Rooms = []models.Room{{
		RoomType: "living_room", RoomName: "Salon",
		Elements: []models.Element{parquetEntry()},
	}}
	exitRoom := models.Room{
		RoomType: "living_room", RoomName: "salon", // different case
		Elements: []models.Element{parquetEntry()},
	}
	f.exit.Rooms = []models.Room{exitRoom}

	result, err := CompareInventories(f.entry, f.exit, f.lease, DefaultVetusteTable())
	require.NoError(t, err)
	require.Len(t, result.NewRooms, 1)
	assert.Equal(t, "salon", result.NewRooms[0].RoomName)
}
