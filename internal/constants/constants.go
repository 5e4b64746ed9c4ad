package constants

// ElementCategory tags an inspected element with the barème row that
// governs its depreciation.
type ElementCategory string

const (
	CategoryFlooring   ElementCategory = "FLOORING"
	CategoryWalls      ElementCategory = "WALLS"
	CategoryCeilings   ElementCategory = "CEILINGS"
	CategoryFixtures   ElementCategory = "FIXTURES"
	CategoryPlumbing   ElementCategory = "PLUMBING"
	CategoryElectrical ElementCategory = "ELECTRICAL"
	CategoryAppliances ElementCategory = "APPLIANCES"
	CategoryJoinery    ElementCategory = "JOINERY"
)

// Expected lifetimes in months from the grille de vétusté annexed to
// Decree 2016-382. Legal reference data: do not tune these, amend them
// only when the annex itself is amended (the calculator takes the
// assembled table as a parameter so a revised table can be swapped in).
const (
	LifetimeFlooringMonths   = 120 // parquet, carrelage, sols souples
	LifetimeWallsMonths      = 84  // peintures, papiers peints
	LifetimeCeilingsMonths   = 84
	LifetimeFixturesMonths   = 120 // placards, équipements fixes
	LifetimePlumbingMonths   = 180 // sanitaires, robinetterie
	LifetimeElectricalMonths = 240 // installation électrique
	LifetimeAppliancesMonths = 84  // électroménager fourni
	LifetimeJoineryMonths    = 240 // menuiseries, portes, fenêtres
)

// Draft inventories abandoned for longer than this are purged by the
// cleanup cron unless DRAFT_RETENTION_DAYS overrides it.
const DefaultDraftRetentionDays = 90
