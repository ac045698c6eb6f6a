package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/domain"
)

// Hand-rolled in-memory fakes shared by the service tests.

type stockKey struct {
	venueID int64
	itemID  int64
}

type fakeLedger struct {
	mu      sync.Mutex
	central map[int64]*domain.StockRecord
	venues  map[stockKey]*domain.StockRecord
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		central: make(map[int64]*domain.StockRecord),
		venues:  make(map[stockKey]*domain.StockRecord),
	}
}

func (f *fakeLedger) setCentral(itemID int64, qty, minimum int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.central[itemID] = &domain.StockRecord{
		ItemID:          itemID,
		QuantityActual:  decimal.NewFromInt(qty),
		QuantityMinimum: decimal.NewFromInt(minimum),
	}
}

func (f *fakeLedger) setVenue(venueID, itemID int64, qty, minimum int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.venues[stockKey{venueID, itemID}] = &domain.StockRecord{
		ItemID:          itemID,
		VenueID:         venueID,
		QuantityActual:  decimal.NewFromInt(qty),
		QuantityMinimum: decimal.NewFromInt(minimum),
	}
}

func (f *fakeLedger) centralQty(itemID int64) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.central[itemID]; ok {
		return rec.QuantityActual
	}
	return decimal.Zero
}

func (f *fakeLedger) venueQty(venueID, itemID int64) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.venues[stockKey{venueID, itemID}]; ok {
		return rec.QuantityActual
	}
	return decimal.Zero
}

func (f *fakeLedger) GetCentral(ctx context.Context, itemID int64) (*domain.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.central[itemID]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeLedger) GetVenue(ctx context.Context, venueID, itemID int64) (*domain.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.venues[stockKey{venueID, itemID}]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeLedger) DecrementCentral(ctx context.Context, itemID int64, qty decimal.Decimal) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.central[itemID]
	if !ok || rec.QuantityActual.LessThan(qty) {
		return false, nil
	}
	rec.QuantityActual = rec.QuantityActual.Sub(qty)
	return true, nil
}

func (f *fakeLedger) DecrementVenue(ctx context.Context, venueID, itemID int64, qty decimal.Decimal) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.venues[stockKey{venueID, itemID}]
	if !ok || rec.QuantityActual.LessThan(qty) {
		return false, nil
	}
	rec.QuantityActual = rec.QuantityActual.Sub(qty)
	return true, nil
}

func (f *fakeLedger) IncrementVenue(ctx context.Context, venueID, itemID int64, qty decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.venues[stockKey{venueID, itemID}]; ok {
		rec.QuantityActual = rec.QuantityActual.Add(qty)
	}
	return nil
}

func (f *fakeLedger) UpsertVenue(ctx context.Context, venueID, itemID int64, qty decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := stockKey{venueID, itemID}
	if rec, ok := f.venues[key]; ok {
		rec.QuantityActual = rec.QuantityActual.Add(qty)
		return nil
	}
	f.venues[key] = &domain.StockRecord{
		ItemID:          itemID,
		VenueID:         venueID,
		QuantityActual:  qty,
		QuantityMinimum: domain.DefaultVenueMinimum,
	}
	return nil
}

func (f *fakeLedger) ListCentral(ctx context.Context) ([]domain.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var records []domain.StockRecord
	for _, rec := range f.central {
		records = append(records, *rec)
	}
	return records, nil
}

func (f *fakeLedger) ListVenues(ctx context.Context) ([]domain.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var records []domain.StockRecord
	for _, rec := range f.venues {
		records = append(records, *rec)
	}
	return records, nil
}

type fakeStore struct {
	mu          sync.Mutex
	allocations []domain.Allocation
}

func (f *fakeStore) Create(ctx context.Context, a domain.Allocation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allocations = append(f.allocations, a)
	return nil
}

func (f *fakeStore) ListActiveByContract(ctx context.Context, contractID int64) ([]domain.Allocation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var active []domain.Allocation
	for _, a := range f.allocations {
		if a.ContractID == contractID && a.Status != domain.AllocationStatusCancelled {
			active = append(active, a)
		}
	}
	return active, nil
}

func (f *fakeStore) count(contractID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.allocations {
		if a.ContractID == contractID && a.Status != domain.AllocationStatusCancelled {
			n++
		}
	}
	return n
}

type fakeJournal struct {
	mu        sync.Mutex
	movements []domain.Movement
}

func (f *fakeJournal) Append(ctx context.Context, m domain.Movement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeJournal) List(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Movement
	for _, m := range f.movements {
		if filter.ItemID != 0 && m.ItemID != filter.ItemID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeContracts struct {
	mu        sync.Mutex
	contracts map[int64]domain.Contract
	store     *fakeStore
	listDelay time.Duration
}

func newFakeContracts(store *fakeStore) *fakeContracts {
	return &fakeContracts{contracts: make(map[int64]domain.Contract), store: store}
}

func (f *fakeContracts) add(c domain.Contract) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contracts[c.ID] = c
}

func (f *fakeContracts) Get(ctx context.Context, id int64) (*domain.Contract, error) {
	f.mu.Lock()
	c, ok := f.contracts[id]
	f.mu.Unlock()
	if !ok {
		return nil, nil
	}
	if f.store != nil {
		c.ActiveAllocations = f.store.count(id)
	}
	return &c, nil
}

func (f *fakeContracts) ListEligible(ctx context.Context, from, to time.Time) ([]domain.Contract, error) {
	if f.listDelay > 0 {
		time.Sleep(f.listDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var eligible []domain.Contract
	for _, c := range f.contracts {
		if c.State != domain.ContractStateActive || c.VenueID == 0 {
			continue
		}
		if c.EventDate.Before(from) || c.EventDate.After(to) {
			continue
		}
		if f.store != nil && f.store.count(c.ID) > 0 {
			continue
		}
		eligible = append(eligible, c)
	}
	return eligible, nil
}

type fakeItems struct {
	items []domain.Item
}

func (f *fakeItems) ListActive(ctx context.Context) ([]domain.Item, error) {
	return f.items, nil
}

type fakeVenues struct {
	venues map[int64]domain.Venue
}

func (f *fakeVenues) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (f *fakeLocker) Acquire(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeLocker) Release(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, key)
	return nil
}
