package port

import (
	"context"
	"time"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/domain"
)

type AllocationStore interface {
	// Create persists a new allocation row.
	Create(ctx context.Context, a domain.Allocation) error

	// ListActiveByContract returns non-cancelled allocations for a contract.
	ListActiveByContract(ctx context.Context, contractID int64) ([]domain.Allocation, error)
}

// MovementJournal is the append-only audit trail. No update or delete
// is exposed.
type MovementJournal interface {
	Append(ctx context.Context, m domain.Movement) error
	List(ctx context.Context, f domain.MovementFilter) ([]domain.Movement, error)
}

type ContractReader interface {
	Get(ctx context.Context, id int64) (*domain.Contract, error)

	// ListEligible returns active contracts with a venue set, an event
	// date inside [from, to], and zero non-cancelled allocations.
	ListEligible(ctx context.Context, from, to time.Time) ([]domain.Contract, error)
}

type ItemCatalog interface {
	ListActive(ctx context.Context) ([]domain.Item, error)
}

type VenueReader interface {
	GetVenue(ctx context.Context, id int64) (*domain.Venue, error)
}
