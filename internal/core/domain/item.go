package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierCentral Tier = "central"
	TierVenue   Tier = "venue"
)

// Minimum stock applied when a record carries no explicit threshold.
var (
	DefaultCentralMinimum = decimal.NewFromInt(20)
	DefaultVenueMinimum   = decimal.NewFromInt(10)
)

type Item struct {
	ID       int64
	Name     string
	Unit     string // bottle, unit, bag, pound, package...
	Category string
	Active   bool
}

// StockRecord is one row of either inventory tier. VenueID is zero for
// the central tier; venue records are created lazily on first transfer.
type StockRecord struct {
	ItemID          int64
	VenueID         int64
	QuantityActual  decimal.Decimal
	QuantityMinimum decimal.Decimal
	UpdatedAt       time.Time
}
