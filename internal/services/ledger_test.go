package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestiloc/inventory-service/internal/models"
	"github.com/gestiloc/inventory-service/internal/utils"
)

func sampleComparison() models.ComparisonResult {
	return models.ComparisonResult{
		LeaseID:          uuid.MustParse("7b1e9db2-33b1-4b5c-8f70-14be640a3a1a"),
		EntryInventoryID: uuid.MustParse("0f0a3f0e-9b3e-4a86-a7a9-2b7d1c2f3a11"),
		ExitInventoryID:  uuid.MustParse("b2c4d6e8-1a2b-4c3d-9e8f-7a6b5c4d3e2f"),
		Differences: []models.Difference{
			{RoomName: "Salon", ElementName: "Parquet", EntryRating: 5, ExitRating: 2, RepairCostCents: 60000, VetusteRate: 50, TenantShareCents: 30000},
			{RoomName: "Cuisine", ElementName: "Évier", EntryRating: 4, ExitRating: 1, RepairCostCents: 20000, VetusteRate: 0, TenantShareCents: 20000},
		},
		TotalDeductionsCents: 50000,
		DepositAmountCents:   120000,
		DepositKnown:         true,
		AmountToReturnCents:  70000,
	}
}

func TestInitializeFromComparison(t *testing.T) {
	ledger := InitializeFromComparison(sampleComparison())

	require.Len(t, ledger.Lines, 2)
	assert.False(t, ledger.Lines[0].IsManual)
	assert.Equal(t, int64(30000), ledger.Lines[0].AmountCents)
	assert.Equal(t, int64(20000), ledger.Lines[1].AmountCents)
	assert.Equal(t, int64(50000), ledger.TotalCents)
	assert.False(t, ledger.Validated)
	assert.Nil(t, ledger.CalculatedAt)
}

func TestOverrideLineAmountKeepsAuditTrail(t *testing.T) {
	c := sampleComparison()
	ledger := InitializeFromComparison(c)

	edited, err := OverrideLineAmount(ledger, 0, 25000)
	require.NoError(t, err)

	assert.Equal(t, int64(25000), edited.Lines[0].AmountCents)
	// The comparison figures on the line survive the override.
	assert.Equal(t, int64(60000), edited.Lines[0].RepairCostCents)
	assert.Equal(t, int64(45000), edited.TotalCents)
	// The prior ledger value is untouched.
	assert.Equal(t, int64(30000), ledger.Lines[0].AmountCents)
	// And so is the comparison itself.
	assert.Equal(t, int64(30000), c.Differences[0].TenantShareCents)
}

func TestOverrideLineAmountBounds(t *testing.T) {
	ledger := InitializeFromComparison(sampleComparison())

	_, err := OverrideLineAmount(ledger, 5, 1000)
	assert.ErrorIs(t, err, utils.ErrLineNotFound)

	_, err = OverrideLineAmount(ledger, 0, -1)
	assert.True(t, utils.IsValidationError(err))
}

func TestOverrideManualLineRejected(t *testing.T) {
	ledger := InitializeFromComparison(sampleComparison())
	ledger, err := AddManualLine(ledger, "Ménage", 15000)
	require.NoError(t, err)

	_, err = OverrideLineAmount(ledger, 2, 1000)
	assert.ErrorIs(t, err, utils.ErrInvalidDeductionLine)
}

func TestAddManualLineValidation(t *testing.T) {
	ledger := InitializeFromComparison(sampleComparison())

	_, err := AddManualLine(ledger, "", 1000)
	assert.ErrorIs(t, err, utils.ErrInvalidDeductionLine)

	_, err = AddManualLine(ledger, "   ", 1000)
	assert.ErrorIs(t, err, utils.ErrInvalidDeductionLine)

	_, err = AddManualLine(ledger, "Ménage", 0)
	assert.ErrorIs(t, err, utils.ErrInvalidDeductionLine)

	_, err = AddManualLine(ledger, "Ménage", -500)
	assert.ErrorIs(t, err, utils.ErrInvalidDeductionLine)
}

func TestLedgerTotalMixesAutoAndManual(t *testing.T) {
	// Two auto lines of 300 € and 200 € plus one manual cleaning line
	// of 150 €: the total is 650.00 €.
	c := models.ComparisonResult{
		ExitInventoryID: uuid.New(),
		Differences: []models.Difference{
			{RoomName: "Salon", ElementName: "Parquet", TenantShareCents: 30000},
			{RoomName: "Chambre", ElementName: "Moquette", TenantShareCents: 20000},
		},
	}
	ledger := InitializeFromComparison(c)
	ledger, err := AddManualLine(ledger, "cleaning", 15000)
	require.NoError(t, err)

	assert.Equal(t, int64(65000), LedgerTotal(ledger))
	assert.Equal(t, int64(65000), ledger.TotalCents)
}

func TestRemoveManualLine(t *testing.T) {
	ledger := InitializeFromComparison(sampleComparison())
	ledger, err := AddManualLine(ledger, "Ménage", 15000)
	require.NoError(t, err)
	manualID := ledger.Lines[2].ID

	edited, err := RemoveManualLine(ledger, manualID)
	require.NoError(t, err)
	assert.Len(t, edited.Lines, 2)
	assert.Equal(t, int64(50000), edited.TotalCents)

	_, err = RemoveManualLine(edited, manualID)
	assert.ErrorIs(t, err, utils.ErrLineNotFound)
}

func TestRemoveAutoLineRejected(t *testing.T) {
	ledger := InitializeFromComparison(sampleComparison())
	_, err := RemoveManualLine(ledger, ledger.Lines[0].ID)
	assert.ErrorIs(t, err, utils.ErrImmutableLine)
	assert.Len(t, ledger.Lines, 2)
}

func TestResetToComputedIsIdempotent(t *testing.T) {
	c := sampleComparison()
	fresh := InitializeFromComparison(c)

	edited, err := OverrideLineAmount(fresh, 0, 99999)
	require.NoError(t, err)
	edited, err = AddManualLine(edited, "Ménage", 15000)
	require.NoError(t, err)

	assert.Equal(t, fresh, ResetToComputed(edited, c))
	assert.Equal(t, fresh, ResetToComputed(fresh, c))
}

func TestValidateLedgerRequiresSignedSnapshot(t *testing.T) {
	c := sampleComparison()
	ledger := InitializeFromComparison(c)

	snapshot := models.InventorySnapshot{
		ID:     c.ExitInventoryID,
		Type:   models.InventoryTypeExit,
		Status: models.StatusCompleted,
	}
	_, err := ValidateLedger(ledger, snapshot, time.Now())
	assert.ErrorIs(t, err, utils.ErrPrematureValidation)

	snapshot.Status = models.StatusSigned
	at := time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC)
	validated, err := ValidateLedger(ledger, snapshot, at)
	require.NoError(t, err)
	assert.True(t, validated.Validated)
	require.NotNil(t, validated.CalculatedAt)
	assert.Equal(t, at, *validated.CalculatedAt)
	// The input ledger value is unchanged.
	assert.False(t, ledger.Validated)
}

func TestValidatedLedgerRejectsLineEdits(t *testing.T) {
	c := sampleComparison()
	ledger := InitializeFromComparison(c)
	ledger, err := AddManualLine(ledger, "Ménage", 15000)
	require.NoError(t, err)

	snapshot := models.InventorySnapshot{
		ID:     c.ExitInventoryID,
		Type:   models.InventoryTypeExit,
		Status: models.StatusSigned,
	}
	at := time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC)
	validated, err := ValidateLedger(ledger, snapshot, at)
	require.NoError(t, err)

	_, err = OverrideLineAmount(validated, 0, 1)
	assert.ErrorIs(t, err, utils.ErrFrozenRecord)
	_, err = AddManualLine(validated, "Ménage bis", 500000)
	assert.ErrorIs(t, err, utils.ErrFrozenRecord)
	_, err = RemoveManualLine(validated, validated.Lines[2].ID)
	assert.ErrorIs(t, err, utils.ErrFrozenRecord)

	// The authoritative record kept its stamp and total.
	assert.True(t, validated.Validated)
	assert.Equal(t, at, *validated.CalculatedAt)
	assert.Equal(t, int64(65000), validated.TotalCents)

	// Re-validation replaces the record wholesale via a reset.
	fresh := ResetToComputed(validated, c)
	assert.False(t, fresh.Validated)
	assert.Nil(t, fresh.CalculatedAt)
	assert.Equal(t, int64(50000), fresh.TotalCents)
}

func TestValidateLedgerRejectsForeignSnapshot(t *testing.T) {
	ledger := InitializeFromComparison(sampleComparison())
	snapshot := models.InventorySnapshot{
		ID:     uuid.New(), // not the owning snapshot
		Type:   models.InventoryTypeExit,
		Status: models.StatusSigned,
	}
	_, err := ValidateLedger(ledger, snapshot, time.Now())
	assert.ErrorIs(t, err, utils.ErrMismatchedLease)
}
