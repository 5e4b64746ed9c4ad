package services

import (
	"github.com/gestiloc/inventory-service/internal/models"
	"github.com/gestiloc/inventory-service/internal/utils"
)

/*
   Inventory comparator. Pure and deterministic: identical snapshot
   pairs always produce identical results, which is what makes a
   comparison defensible in a deposit dispute months later. Anything
   that logs or does I/O lives in ComparisonService, not here.
*/

// roomKey / elementKey are the explicit matching identities across
// snapshots. Matching is exact and case-sensitive.
type roomKey struct {
	roomType string
	roomName string
}

type elementKey struct {
	elementType string
	elementName string
}

// CompareInventories produces the ComparisonResult for an (entry, exit)
// pair of the same lease. Preconditions: entry.Type == ENTRY,
// exit.Type == EXIT, and both snapshots resolve to lease; otherwise
// utils.ErrMismatchedLease.
func CompareInventories(
	entry, exit models.InventorySnapshot,
	lease models.Lease,
	table VetusteTable,
) (models.ComparisonResult, error) {
	if entry.Type != models.InventoryTypeEntry || exit.Type != models.InventoryTypeExit {
		return models.ComparisonResult{}, utils.ErrMismatchedLease
	}
	sameLease := entry.LeaseID == exit.LeaseID && exit.LeaseID == lease.ID
	resolvedByRef := exit.EntryInventoryID != nil && *exit.EntryInventoryID == entry.ID && exit.LeaseID == lease.ID
	if !sameLease && !resolvedByRef {
		return models.ComparisonResult{}, utils.ErrMismatchedLease
	}

	result := models.ComparisonResult{
		LeaseID:          lease.ID,
		EntryInventoryID: entry.ID,
		ExitInventoryID:  exit.ID,
	}

	entryRooms := make(map[roomKey]models.Room, len(entry.Rooms))
	for _, r := range entry.Rooms {
		entryRooms[roomKey{r.RoomType, r.RoomName}] = r
	}

	// Exit rooms drive the walk. Entry-only rooms are deliberately
	// ignored: a room that no longer exists cannot be degraded.
	for _, exitRoom := range exit.Rooms {
		entryRoom, matched := entryRooms[roomKey{exitRoom.RoomType, exitRoom.RoomName}]
		if !matched {
			result.NewRooms = append(result.NewRooms, models.RoomRef{
				RoomType: exitRoom.RoomType,
				RoomName: exitRoom.RoomName,
			})
			for _, e := range exitRoom.Elements {
				result.Elements = append(result.Elements, models.ElementComparison{
					RoomType:        exitRoom.RoomType,
					RoomName:        exitRoom.RoomName,
					ElementType:     e.ElementType,
					ElementName:     e.ElementName,
					ExitRating:      e.Rating,
					Degraded:        e.IsDegradation,
					NewlyDocumented: true,
				})
			}
			continue
		}

		entryElements := make(map[elementKey]models.Element, len(entryRoom.Elements))
		for _, e := range entryRoom.Elements {
			entryElements[elementKey{e.ElementType, e.ElementName}] = e
		}

		for _, exitElem := range exitRoom.Elements {
			entryElem, found := entryElements[elementKey{exitElem.ElementType, exitElem.ElementName}]

			comp := models.ElementComparison{
				RoomType:        exitRoom.RoomType,
				RoomName:        exitRoom.RoomName,
				ElementType:     exitElem.ElementType,
				ElementName:     exitElem.ElementName,
				ExitRating:      exitElem.Rating,
				Degraded:        exitElem.IsDegradation,
				NewlyDocumented: !found,
			}

			chargeable := false
			var entryRating models.RatingValue
			if found {
				entryRating = entryElem.Rating
				comp.EntryRating = entryElem.Rating
				comp.RatingDelta = int(entryElem.Rating) - int(exitElem.Rating)
				// The inspector's flag is the authoritative trigger:
				// a worsened rating alone stays informational so normal
				// wear is never charged twice.
				chargeable = comp.RatingDelta > 0 && exitElem.IsDegradation
			} else {
				// Newly documented elements are not degradations unless
				// the inspector explicitly flagged them.
				chargeable = exitElem.IsDegradation
			}
			result.Elements = append(result.Elements, comp)

			if !chargeable || exitElem.EstimatedRepairCostCents == nil {
				continue
			}

			// Age runs from installation to the exit inspection date.
			vr, err := ComputeVetuste(
				table,
				exitElem.Category,
				exitElem.InstallationDate,
				exit.InventoryDate,
				*exitElem.EstimatedRepairCostCents,
				true,
			)
			if err != nil {
				return models.ComparisonResult{}, err
			}

			result.Differences = append(result.Differences, models.Difference{
				RoomType:         exitRoom.RoomType,
				RoomName:         exitRoom.RoomName,
				ElementType:      exitElem.ElementType,
				ElementName:      exitElem.ElementName,
				Category:         exitElem.Category,
				EntryRating:      entryRating,
				ExitRating:       exitElem.Rating,
				NewlyDocumented:  !found,
				RepairCostCents:  *exitElem.EstimatedRepairCostCents,
				VetusteRate:      vr.Rate,
				TenantShareCents: vr.TenantShareCents,
			})
		}
	}

	result.KeyDiffs = compareKeys(entry.Keys, exit.Keys)
	result.Meters = compareMeters(entry.Meters, exit.Meters)

	var total int64
	for _, d := range result.Differences {
		total += d.TenantShareCents
	}
	result.TotalDeductionsCents = total

	if lease.DepositAmountCents == nil {
		result.DepositKnown = false
		result.Warnings = append(result.Warnings, models.WarningMissingDepositAmount)
	} else {
		result.DepositKnown = true
		result.DepositAmountCents = *lease.DepositAmountCents
		remaining := result.DepositAmountCents - total
		if remaining < 0 {
			// A deficit beyond the deposit is a downstream recovery
			// concern; the returnable amount never goes negative.
			remaining = 0
		}
		result.AmountToReturnCents = remaining
	}

	return result, nil
}

// compareKeys diffs quantities for every key type present in either
// snapshot. Entry order first, then exit-only types, so the output is
// stable for identical inputs.
func compareKeys(entryKeys, exitKeys []models.KeyRecord) []models.KeyDiff {
	exitByType := make(map[string]models.KeyRecord, len(exitKeys))
	for _, k := range exitKeys {
		exitByType[k.KeyType] = k
	}
	entrySeen := make(map[string]bool, len(entryKeys))

	var diffs []models.KeyDiff
	for _, ek := range entryKeys {
		entrySeen[ek.KeyType] = true
		xk := exitByType[ek.KeyType]
		diffs = append(diffs, models.KeyDiff{
			KeyType:       ek.KeyType,
			EntryQuantity: ek.Quantity,
			ExitQuantity:  xk.Quantity,
			Diff:          xk.Quantity - ek.Quantity,
		})
	}
	for _, xk := range exitKeys {
		if entrySeen[xk.KeyType] {
			continue
		}
		diffs = append(diffs, models.KeyDiff{
			KeyType:      xk.KeyType,
			ExitQuantity: xk.Quantity,
			Diff:         xk.Quantity,
		})
	}
	return diffs
}

// compareMeters reports consumption for channels read at both entry and
// exit. A channel missing on either side cannot yield a consumption.
func compareMeters(entryMeters, exitMeters []models.MeterReading) []models.MeterConsumption {
	entryByChannel := make(map[models.MeterChannel]models.MeterReading, len(entryMeters))
	for _, m := range entryMeters {
		entryByChannel[m.Channel] = m
	}

	var out []models.MeterConsumption
	for _, xm := range exitMeters {
		em, ok := entryByChannel[xm.Channel]
		if !ok {
			continue
		}
		out = append(out, models.MeterConsumption{
			Channel:     xm.Channel,
			EntryValue:  em.Value,
			ExitValue:   xm.Value,
			Consumption: xm.Value - em.Value,
		})
	}
	return out
}
