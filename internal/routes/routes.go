package routes

const (
	// Health
	Health = "/health"

	// Lease read model
	Leases     = "/api/v1/leases"
	LeaseByID  = "/api/v1/leases/{id}"

	// Inventory lifecycle
	Inventories        = "/api/v1/inventories"
	InventoryByID      = "/api/v1/inventories/{id}"
	InventoryComplete  = "/api/v1/inventories/{id}/complete"
	InventorySign      = "/api/v1/inventories/{id}/sign"

	// Comparison (exit snapshot id)
	InventoryComparison = "/api/v1/inventories/{id}/comparison"

	// Deduction ledger (exit snapshot id)
	Deductions           = "/api/v1/inventories/{id}/deductions"
	DeductionLine        = "/api/v1/inventories/{id}/deductions/lines"
	DeductionManualLine  = "/api/v1/inventories/{id}/deductions/manual-lines"
	DeductionManualByID  = "/api/v1/inventories/{id}/deductions/manual-lines/{lineId}"
	DeductionReset       = "/api/v1/inventories/{id}/deductions/reset"
	DeductionValidate    = "/api/v1/inventories/{id}/deductions/validate"
)
