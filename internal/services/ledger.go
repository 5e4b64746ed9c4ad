package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gestiloc/inventory-service/internal/models"
	"github.com/gestiloc/inventory-service/internal/utils"
)

/*
   Deduction-ledger operations. Pure value-in/value-out: every edit
   takes the full prior ledger and returns a new one, the underlying
   ComparisonResult is never touched (it stays the audit trail).

   Once validated a ledger is frozen: line edits fail with
   utils.ErrFrozenRecord and the only way forward is ResetToComputed,
   which replaces the record wholesale with fresh unvalidated lines.
*/

// autoLineID derives a stable id for an auto-computed line so that
// re-initializing from the same comparison yields an equal ledger.
func autoLineID(snapshotID uuid.UUID, index int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("deduction/%s/%d", snapshotID, index)))
}

// InitializeFromComparison builds the editable ledger: one auto line
// per Difference, amount preset to the computed tenant share.
func InitializeFromComparison(result models.ComparisonResult) models.DeductionLedger {
	ledger := models.DeductionLedger{
		SnapshotID: result.ExitInventoryID,
		LeaseID:    result.LeaseID,
	}
	for i, d := range result.Differences {
		ledger.Lines = append(ledger.Lines, models.DeductionLine{
			ID:              autoLineID(result.ExitInventoryID, i),
			RoomName:        d.RoomName,
			ElementName:     d.ElementName,
			Description:     fmt.Sprintf("%s — %s", d.RoomName, d.ElementName),
			EntryRating:     d.EntryRating,
			ExitRating:      d.ExitRating,
			RepairCostCents: d.RepairCostCents,
			VetusteRate:     d.VetusteRate,
			AmountCents:     d.TenantShareCents,
			IsManual:        false,
		})
	}
	ledger.TotalCents = LedgerTotal(ledger)
	return ledger
}

// OverrideLineAmount replaces the amount of the auto line at lineIndex.
// The comparison Difference behind it is untouched; only the ledger's
// copy changes.
func OverrideLineAmount(ledger models.DeductionLedger, lineIndex int, newAmountCents int64) (models.DeductionLedger, error) {
	if ledger.Validated {
		return ledger, utils.ErrFrozenRecord
	}
	if lineIndex < 0 || lineIndex >= len(ledger.Lines) {
		return ledger, utils.ErrLineNotFound
	}
	if ledger.Lines[lineIndex].IsManual {
		return ledger, utils.ErrInvalidDeductionLine
	}
	if newAmountCents < 0 {
		return ledger, utils.NewValidationError("amount_cents", "override amount cannot be negative")
	}
	out := ledger.Clone()
	out.Lines[lineIndex].AmountCents = newAmountCents
	out.TotalCents = LedgerTotal(out)
	return out, nil
}

// AddManualLine appends a reviewer-added deduction. The amount must be
// strictly positive and the description non-empty.
func AddManualLine(ledger models.DeductionLedger, description string, amountCents int64) (models.DeductionLedger, error) {
	if ledger.Validated {
		return ledger, utils.ErrFrozenRecord
	}
	if strings.TrimSpace(description) == "" || amountCents <= 0 {
		return ledger, utils.ErrInvalidDeductionLine
	}
	out := ledger.Clone()
	out.Lines = append(out.Lines, models.DeductionLine{
		ID:          uuid.New(),
		Description: description,
		AmountCents: amountCents,
		IsManual:    true,
	})
	out.TotalCents = LedgerTotal(out)
	return out, nil
}

// RemoveManualLine deletes a manual line by id. Auto lines are part of
// the audit trail and cannot be removed.
func RemoveManualLine(ledger models.DeductionLedger, lineID uuid.UUID) (models.DeductionLedger, error) {
	if ledger.Validated {
		return ledger, utils.ErrFrozenRecord
	}
	for i, line := range ledger.Lines {
		if line.ID != lineID {
			continue
		}
		if !line.IsManual {
			return ledger, utils.ErrImmutableLine
		}
		out := ledger.Clone()
		out.Lines = append(out.Lines[:i], out.Lines[i+1:]...)
		out.TotalCents = LedgerTotal(out)
		return out, nil
	}
	return ledger, utils.ErrLineNotFound
}

// ResetToComputed discards every override and manual line, reverting to
// the ledger InitializeFromComparison would produce.
func ResetToComputed(_ models.DeductionLedger, result models.ComparisonResult) models.DeductionLedger {
	return InitializeFromComparison(result)
}

// LedgerTotal sums all line amounts, auto and manual. Amounts are
// integer cents, so the sum needs no further rounding.
func LedgerTotal(ledger models.DeductionLedger) int64 {
	var total int64
	for _, line := range ledger.Lines {
		total += line.AmountCents
	}
	return total
}

// ValidateLedger stamps the ledger as the lease's authoritative
// deduction record. Only legal once the owning exit snapshot is signed.
func ValidateLedger(ledger models.DeductionLedger, snapshot models.InventorySnapshot, at time.Time) (models.DeductionLedger, error) {
	if snapshot.ID != ledger.SnapshotID || snapshot.Type != models.InventoryTypeExit {
		return ledger, utils.ErrMismatchedLease
	}
	if snapshot.Status != models.StatusSigned {
		return ledger, utils.ErrPrematureValidation
	}
	out := ledger.Clone()
	out.Validated = true
	out.TotalCents = LedgerTotal(out)
	out.CalculatedAt = &at
	return out, nil
}
