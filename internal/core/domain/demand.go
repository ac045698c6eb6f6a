package domain

import "github.com/shopspring/decimal"

// DemandLine is one computed item requirement for a contract.
type DemandLine struct {
	ItemID      int64           `json:"item_id"`
	ItemName    string          `json:"item_name"`
	Quantity    decimal.Decimal `json:"quantity_needed"`
	Unit        string          `json:"unit"`
	Category    string          `json:"category"`
	Calc        string          `json:"calc_used"`
	BaseGuests  int             `json:"base_guests"`
	EventGuests int             `json:"event_guests"`
}
