package services

import (
	"math"
	"time"

	"github.com/gestiloc/inventory-service/internal/constants"
	"github.com/gestiloc/inventory-service/internal/utils"
)

/*
   Vétusté calculator. Pure functions, no logging, no I/O: the output
   feeds legal documents and must be reproducible.
*/

// WearCurve turns an age and an expected lifetime into a depreciation
// rate in [0,100]. The grille annexed to Decree 2016-382 is linear for
// every category it lists today, but the decree allows parties to agree
// on a different grille, so the curve is pluggable per category.
type WearCurve func(ageMonths, lifetimeMonths int) float64

// LinearCurve is the default legal curve: full depreciation at the end
// of the expected lifetime, proportional before that.
func LinearCurve(ageMonths, lifetimeMonths int) float64 {
	if lifetimeMonths <= 0 {
		return 0
	}
	rate := float64(ageMonths) / float64(lifetimeMonths) * 100
	return math.Min(100, rate)
}

// VetusteEntry is one row of the grille de vétusté.
type VetusteEntry struct {
	ExpectedLifetimeMonths int
	Curve                  WearCurve
}

// VetusteTable maps element categories to their grille row. The table
// is injected rather than read from package state so an amended annex
// can be loaded without touching calculator logic.
type VetusteTable map[constants.ElementCategory]VetusteEntry

// DefaultVetusteTable assembles the current legal grille with linear
// curves throughout.
func DefaultVetusteTable() VetusteTable {
	return VetusteTable{
		constants.CategoryFlooring:   {ExpectedLifetimeMonths: constants.LifetimeFlooringMonths, Curve: LinearCurve},
		constants.CategoryWalls:      {ExpectedLifetimeMonths: constants.LifetimeWallsMonths, Curve: LinearCurve},
		constants.CategoryCeilings:   {ExpectedLifetimeMonths: constants.LifetimeCeilingsMonths, Curve: LinearCurve},
		constants.CategoryFixtures:   {ExpectedLifetimeMonths: constants.LifetimeFixturesMonths, Curve: LinearCurve},
		constants.CategoryPlumbing:   {ExpectedLifetimeMonths: constants.LifetimePlumbingMonths, Curve: LinearCurve},
		constants.CategoryElectrical: {ExpectedLifetimeMonths: constants.LifetimeElectricalMonths, Curve: LinearCurve},
		constants.CategoryAppliances: {ExpectedLifetimeMonths: constants.LifetimeAppliancesMonths, Curve: LinearCurve},
		constants.CategoryJoinery:    {ExpectedLifetimeMonths: constants.LifetimeJoineryMonths, Curve: LinearCurve},
	}
}

// VetusteResult is the landlord/tenant split for one repair.
type VetusteResult struct {
	Rate             float64 `json:"rate"`
	TenantShareCents int64   `json:"tenant_share_cents"`
}

// ComputeVetuste splits repairCostCents between landlord and tenant.
//
// A nil installation date is treated as age zero: no wear is applied
// and the tenant bears the full cost. This is a deliberate policy
// (age is never guessed), so callers should collect installation dates
// whenever they want depreciation applied.
//
// The rate is always reported for transparency; it only has a financial
// effect when the element was flagged as a degradation by the inspector
// and the cost is positive.
func ComputeVetuste(
	table VetusteTable,
	category constants.ElementCategory,
	installationDate *time.Time,
	asOfDate time.Time,
	repairCostCents int64,
	isDegradation bool,
) (VetusteResult, error) {
	if repairCostCents < 0 {
		return VetusteResult{}, utils.NewValidationError("repair_cost_cents", "repair cost cannot be negative")
	}

	ageMonths := 0
	if installationDate != nil {
		ageMonths = monthsBetween(*installationDate, asOfDate)
	}

	rate := 0.0
	if entry, ok := table[category]; ok {
		curve := entry.Curve
		if curve == nil {
			curve = LinearCurve
		}
		rate = curve(ageMonths, entry.ExpectedLifetimeMonths)
	}
	// Categories absent from the grille get no depreciation, same
	// conservative policy as an unknown installation date.

	result := VetusteResult{Rate: rate}
	if !isDegradation || repairCostCents == 0 {
		return result, nil
	}
	result.TenantShareCents = roundHalfUpCents(float64(repairCostCents) * (1 - rate/100))
	return result, nil
}

// monthsBetween counts whole calendar months from `from` to `to`,
// floored at zero.
func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// roundHalfUpCents applies standard half-up currency rounding.
func roundHalfUpCents(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
