package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/domain"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/profile"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/port"
)

var ErrNoProfile = errors.New("no consumption profile for venue")

// DemandService turns a contract into the list of item quantities the
// event needs. Calculate is deterministic: identical venue, guest count
// and item catalog always produce identical output.
type DemandService struct {
	catalog profile.Catalog
	items   port.ItemCatalog
}

func NewDemandService(catalog profile.Catalog, items port.ItemCatalog) *DemandService {
	return &DemandService{catalog: catalog, items: items}
}

func (s *DemandService) Calculate(ctx context.Context, contract *domain.Contract) ([]domain.DemandLine, error) {
	prof, _ := s.catalog.Resolve(contract.VenueName)
	if prof.BaseGuests <= 0 || len(prof.Rules) == 0 {
		return nil, ErrNoProfile
	}

	guests := contract.GuestCount
	if guests <= 0 {
		guests = prof.BaseGuests
	}

	items, err := s.items.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}

	lines := make([]domain.DemandLine, 0, len(items))
	for _, item := range items {
		rule, ok := prof.Rules[item.Name]
		if !ok {
			// Items without a rule for this venue are not needed.
			continue
		}

		lines = append(lines, domain.DemandLine{
			ItemID:      item.ID,
			ItemName:    item.Name,
			Quantity:    quantityFor(rule, guests, prof.BaseGuests),
			Unit:        item.Unit,
			Category:    item.Category,
			Calc:        rule.Calc,
			BaseGuests:  prof.BaseGuests,
			EventGuests: guests,
		})
	}

	return lines, nil
}

// quantityFor scales a rule's baseline quantity to the actual guest
// count. Scaled quantities always round up.
func quantityFor(rule profile.Rule, guests, baseGuests int) decimal.Decimal {
	switch rule.Calc {
	case profile.CalcPerPersons, profile.CalcPerGuest:
		if rule.Ratio <= 0 {
			// misconfigured rule, treat the baseline as fixed
			return rule.Quantity
		}

		g := decimal.NewFromInt(int64(guests))
		r := decimal.NewFromInt(int64(rule.Ratio))
		b := decimal.NewFromInt(int64(baseGuests))

		// quantity per group of Ratio guests at the baseline
		perGroup := rule.Quantity.Div(b.Div(r))

		if rule.Calc == profile.CalcPerPersons {
			return g.Div(r).Mul(perGroup).Ceil()
		}
		return g.Div(r).Ceil().Mul(perGroup)

	default: // fixed
		return rule.Quantity
	}
}
