package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/domain"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/port"
)

var (
	ErrContractNotFound = errors.New("contract not found")
	ErrVenueNotFound    = errors.New("venue not found")
	ErrNoVenue          = errors.New("contract has no venue assigned")
	ErrAlreadyAssigned  = errors.New("contract already has active allocations")
)

// AllocationService reserves stock for contracts. It tries the event's
// venue tier first and falls back to the central warehouse; an item no
// tier can fully cover is skipped, never partially allocated.
type AllocationService struct {
	ledger      port.StockLedger
	allocations port.AllocationStore
	journal     port.MovementJournal
	contracts   port.ContractReader
	venues      port.VenueReader
	demand      *DemandService
	log         *zap.SugaredLogger

	// serializes the read-then-decrement sequence per item so that
	// overlapping scheduled and manual calls cannot double-spend one
	// stock record
	mu        sync.Mutex
	itemLocks map[int64]*sync.Mutex
}

func NewAllocationService(
	ledger port.StockLedger,
	allocations port.AllocationStore,
	journal port.MovementJournal,
	contracts port.ContractReader,
	venues port.VenueReader,
	demand *DemandService,
	log *zap.SugaredLogger,
) *AllocationService {
	return &AllocationService{
		ledger:      ledger,
		allocations: allocations,
		journal:     journal,
		contracts:   contracts,
		venues:      venues,
		demand:      demand,
		log:         log,
		itemLocks:   make(map[int64]*sync.Mutex),
	}
}

func (s *AllocationService) lockItem(itemID int64) *sync.Mutex {
	s.mu.Lock()
	l, ok := s.itemLocks[itemID]
	if !ok {
		l = &sync.Mutex{}
		s.itemLocks[itemID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l
}

// AllocateContract loads a contract, computes its demand and allocates
// it. Unless force is set, contracts that already hold non-cancelled
// allocations are rejected. The scheduler and the manual endpoint both
// go through here.
func (s *AllocationService) AllocateContract(ctx context.Context, contractID int64, force bool) ([]domain.Allocation, error) {
	contract, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("get contract %d: %w", contractID, err)
	}
	if contract == nil {
		return nil, ErrContractNotFound
	}
	if contract.VenueID == 0 {
		return nil, ErrNoVenue
	}

	if !force {
		active, err := s.allocations.ListActiveByContract(ctx, contractID)
		if err != nil {
			return nil, fmt.Errorf("list allocations for contract %d: %w", contractID, err)
		}
		if len(active) > 0 {
			return nil, ErrAlreadyAssigned
		}
	}

	lines, err := s.demand.Calculate(ctx, contract)
	if err != nil {
		return nil, fmt.Errorf("calculate demand for contract %d: %w", contractID, err)
	}

	return s.Allocate(ctx, contractID, lines, contract.VenueID)
}

// Allocate reserves stock for each demand line in order. Returns the
// allocations that were created; lines skipped for shortage are simply
// absent from the result.
func (s *AllocationService) Allocate(ctx context.Context, contractID int64, lines []domain.DemandLine, venueID int64) ([]domain.Allocation, error) {
	venue, err := s.venues.GetVenue(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("get venue %d: %w", venueID, err)
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}
	venueLocus := strings.ToLower(venue.Name)

	allocations := make([]domain.Allocation, 0, len(lines))
	for _, line := range lines {
		if !line.Quantity.IsPositive() {
			continue
		}

		source, ok, err := s.reserve(ctx, venueID, line)
		if err != nil {
			return allocations, err
		}
		if !ok {
			s.log.Warnw("insufficient stock, item skipped",
				"item", line.ItemName,
				"needed", line.Quantity,
				"contract_id", contractID,
			)
			continue
		}

		allocation := domain.Allocation{
			ID:         uuid.New().String(),
			ContractID: contractID,
			ItemID:     line.ItemID,
			VenueID:    venueID,
			Quantity:   line.Quantity,
			Source:     source,
			Status:     domain.AllocationStatusAssigned,
			CreatedAt:  time.Now(),
		}
		if err := s.allocations.Create(ctx, allocation); err != nil {
			return allocations, fmt.Errorf("create allocation: %w", err)
		}

		origin := venueLocus
		if source == domain.TierCentral {
			origin = string(domain.TierCentral)
		}
		movement := domain.Movement{
			ID:           uuid.New().String(),
			ItemID:       line.ItemID,
			Type:         domain.MovementTypeAssignment,
			Origin:       origin,
			Destination:  venueLocus,
			Quantity:     line.Quantity,
			Reason:       fmt.Sprintf("Automatic assignment for contract %d", contractID),
			ContractID:   contractID,
			AllocationID: allocation.ID,
			CreatedAt:    time.Now(),
		}
		if err := s.journal.Append(ctx, movement); err != nil {
			return allocations, fmt.Errorf("append movement: %w", err)
		}

		allocations = append(allocations, allocation)
	}

	return allocations, nil
}

// reserve decrements one tier for a single line. Venue stock is spent
// first; otherwise the quantity is transferred from central through the
// venue record and consumed immediately, so the venue balance nets to
// zero and central carries the full decrement.
func (s *AllocationService) reserve(ctx context.Context, venueID int64, line domain.DemandLine) (domain.Tier, bool, error) {
	lock := s.lockItem(line.ItemID)
	defer lock.Unlock()

	needed := line.Quantity

	venueRec, err := s.ledger.GetVenue(ctx, venueID, line.ItemID)
	if err != nil {
		return "", false, fmt.Errorf("get venue stock: %w", err)
	}
	if venueRec != nil && venueRec.QuantityActual.GreaterThanOrEqual(needed) {
		ok, err := s.ledger.DecrementVenue(ctx, venueID, line.ItemID, needed)
		if err != nil {
			return "", false, fmt.Errorf("decrement venue stock: %w", err)
		}
		if ok {
			return domain.TierVenue, true, nil
		}
	}

	centralRec, err := s.ledger.GetCentral(ctx, line.ItemID)
	if err != nil {
		return "", false, fmt.Errorf("get central stock: %w", err)
	}
	if centralRec == nil || centralRec.QuantityActual.LessThan(needed) {
		return "", false, nil
	}

	ok, err := s.ledger.DecrementCentral(ctx, line.ItemID, needed)
	if err != nil {
		return "", false, fmt.Errorf("decrement central stock: %w", err)
	}
	if !ok {
		return "", false, nil
	}

	// Pass the quantity through the venue record: stock physically
	// moves to the venue and is consumed there in the same step.
	if err := s.ledger.UpsertVenue(ctx, venueID, line.ItemID, needed); err != nil {
		return "", false, fmt.Errorf("transfer to venue stock: %w", err)
	}
	ok, err = s.ledger.DecrementVenue(ctx, venueID, line.ItemID, needed)
	if err != nil {
		return "", false, fmt.Errorf("consume transferred stock: %w", err)
	}
	if !ok {
		// Cannot happen while the item lock is held.
		return "", false, fmt.Errorf("transferred stock for item %d vanished", line.ItemID)
	}

	return domain.TierCentral, true, nil
}
