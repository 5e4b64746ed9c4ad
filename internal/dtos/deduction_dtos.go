package dtos

/*
OverrideLineRequest changes the amount of one auto-computed ledger line.
Pointers distinguish "missing" from legitimate zero values.
*/
type OverrideLineRequest struct {
	LineIndex   *int   `json:"line_index" validate:"required,min=0"`
	AmountCents *int64 `json:"amount_cents" validate:"required,min=0"`
}

type AddManualLineRequest struct {
	Description string `json:"description" validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
}
