package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/domain"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/port"
)

// AlertService scans both inventory tiers for records below their
// minimum. Read-only, safe to run concurrently with allocation.
type AlertService struct {
	ledger port.StockLedger
	items  port.ItemCatalog
	venues port.VenueReader
}

func NewAlertService(ledger port.StockLedger, items port.ItemCatalog, venues port.VenueReader) *AlertService {
	return &AlertService{ledger: ledger, items: items, venues: venues}
}

func (s *AlertService) ListAlerts(ctx context.Context) ([]domain.Alert, error) {
	items, err := s.items.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}
	byID := make(map[int64]domain.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	var alerts []domain.Alert

	central, err := s.ledger.ListCentral(ctx)
	if err != nil {
		return nil, fmt.Errorf("list central stock: %w", err)
	}
	for _, rec := range central {
		minimum := orDefault(rec.QuantityMinimum, domain.DefaultCentralMinimum)
		if rec.QuantityActual.LessThan(minimum) {
			item := byID[rec.ItemID]
			alerts = append(alerts, domain.Alert{
				Tier:            domain.TierCentral,
				ItemID:          rec.ItemID,
				ItemName:        item.Name,
				QuantityActual:  rec.QuantityActual,
				QuantityMinimum: minimum,
				Unit:            item.Unit,
			})
		}
	}

	venueRecords, err := s.ledger.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venue stock: %w", err)
	}
	venueNames := make(map[int64]string)
	for _, rec := range venueRecords {
		minimum := orDefault(rec.QuantityMinimum, domain.DefaultVenueMinimum)
		if !rec.QuantityActual.LessThan(minimum) {
			continue
		}

		name, ok := venueNames[rec.VenueID]
		if !ok {
			venue, err := s.venues.GetVenue(ctx, rec.VenueID)
			if err != nil {
				return nil, fmt.Errorf("get venue %d: %w", rec.VenueID, err)
			}
			if venue != nil {
				name = venue.Name
			}
			venueNames[rec.VenueID] = name
		}

		item := byID[rec.ItemID]
		alerts = append(alerts, domain.Alert{
			Tier:            domain.TierVenue,
			VenueID:         rec.VenueID,
			VenueName:       name,
			ItemID:          rec.ItemID,
			ItemName:        item.Name,
			QuantityActual:  rec.QuantityActual,
			QuantityMinimum: minimum,
			Unit:            item.Unit,
		})
	}

	return alerts, nil
}

func orDefault(v, fallback decimal.Decimal) decimal.Decimal {
	if v.IsZero() {
		return fallback
	}
	return v
}
