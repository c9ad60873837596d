package domain

// Fine is the monetary penalty attached to a late return. Computed exactly
// once when the issuance closes, never recomputed.
type Fine struct {
	IssuanceID string `json:"issuance_id"`
	DaysLate   int    `json:"days_late"`
	Amount     int    `json:"amount"`
}
