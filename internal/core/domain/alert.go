package domain

import "github.com/shopspring/decimal"

// Alert flags one stock record sitting below its minimum.
type Alert struct {
	Tier            Tier            `json:"tier"`
	VenueID         int64           `json:"venue_id,omitempty"`
	VenueName       string          `json:"venue_name,omitempty"`
	ItemID          int64           `json:"item_id"`
	ItemName        string          `json:"item_name"`
	QuantityActual  decimal.Decimal `json:"quantity_actual"`
	QuantityMinimum decimal.Decimal `json:"quantity_minimum"`
	Unit            string          `json:"unit"`
}
