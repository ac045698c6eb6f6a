package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/domain"
)

// StockLedger reads and mutates both inventory tiers. Decrements are
// conditional: they return false, without touching the record, when the
// remaining quantity cannot cover the request. Implementations must
// guarantee quantity_actual never goes negative even under concurrent
// callers.
type StockLedger interface {
	// GetCentral retrieves the central record for an item, nil if none.
	GetCentral(ctx context.Context, itemID int64) (*domain.StockRecord, error)

	// GetVenue retrieves a venue record, nil if none exists yet.
	GetVenue(ctx context.Context, venueID, itemID int64) (*domain.StockRecord, error)

	// DecrementCentral subtracts qty if the central record covers it.
	DecrementCentral(ctx context.Context, itemID int64, qty decimal.Decimal) (bool, error)

	// DecrementVenue subtracts qty if the venue record covers it.
	DecrementVenue(ctx context.Context, venueID, itemID int64, qty decimal.Decimal) (bool, error)

	// IncrementVenue adds qty to an existing venue record.
	IncrementVenue(ctx context.Context, venueID, itemID int64, qty decimal.Decimal) error

	// UpsertVenue adds qty to a venue record, creating it with the
	// default venue minimum when absent.
	UpsertVenue(ctx context.Context, venueID, itemID int64, qty decimal.Decimal) error

	// ListCentral returns every central record.
	ListCentral(ctx context.Context) ([]domain.StockRecord, error)

	// ListVenues returns every venue record across all venues.
	ListVenues(ctx context.Context) ([]domain.StockRecord, error)
}
