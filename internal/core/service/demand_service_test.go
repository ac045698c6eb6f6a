package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/domain"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/profile"
)

func testItems() *fakeItems {
	return &fakeItems{items: []domain.Item{
		{ID: 1, Name: "Champaña", Unit: "botella", Category: "bebidas", Active: true},
		{ID: 2, Name: "Platos para Cake", Unit: "unidad", Category: "vajilla", Active: true},
		{ID: 3, Name: "Whisky Premium", Unit: "botella", Category: "bebidas", Active: true},
		{ID: 4, Name: "Hielo", Unit: "bolsa", Category: "otros", Active: true}, // no rule anywhere
	}}
}

func testContract(venue string, guests int) *domain.Contract {
	return &domain.Contract{
		ID:         42,
		Code:       "CT-042",
		GuestCount: guests,
		VenueID:    7,
		VenueName:  venue,
		EventDate:  time.Now().AddDate(0, 0, 20),
		State:      domain.ContractStateActive,
	}
}

func findLine(t *testing.T, lines []domain.DemandLine, name string) domain.DemandLine {
	t.Helper()
	for _, l := range lines {
		if l.ItemName == name {
			return l
		}
	}
	t.Fatalf("no demand line for %q", name)
	return domain.DemandLine{}
}

func TestCalculate_PerPersonsScaling(t *testing.T) {
	svc := NewDemandService(profile.Default(), testItems())

	lines, err := svc.Calculate(context.Background(), testContract("diamond", 100))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	// 1 bottle per 8 persons, baseline 10 bottles for 80 guests:
	// ceil((100/8) * (10/(80/8))) = ceil(12.5) = 13
	champagne := findLine(t, lines, "Champaña")
	if !champagne.Quantity.Equal(decimal.NewFromInt(13)) {
		t.Errorf("expected 13 bottles, got %s", champagne.Quantity)
	}
	if champagne.BaseGuests != 80 || champagne.EventGuests != 100 {
		t.Errorf("unexpected guest counts: base=%d event=%d", champagne.BaseGuests, champagne.EventGuests)
	}
}

func TestCalculate_PerGuestScaling(t *testing.T) {
	svc := NewDemandService(profile.Default(), testItems())

	lines, err := svc.Calculate(context.Background(), testContract("diamond", 50))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	// 1 plate per guest: ceil(50/1) * (80/(80/1)) = 50
	plates := findLine(t, lines, "Platos para Cake")
	if !plates.Quantity.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected 50 plates, got %s", plates.Quantity)
	}
}

func TestCalculate_FixedIgnoresGuestCount(t *testing.T) {
	svc := NewDemandService(profile.Default(), testItems())

	for _, guests := range []int{1, 500} {
		lines, err := svc.Calculate(context.Background(), testContract("diamond", guests))
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		whisky := findLine(t, lines, "Whisky Premium")
		if !whisky.Quantity.Equal(decimal.NewFromInt(2)) {
			t.Errorf("guests=%d: expected 2 bottles, got %s", guests, whisky.Quantity)
		}
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	svc := NewDemandService(profile.Default(), testItems())
	contract := testContract("kendall", 73)

	first, err := svc.Calculate(context.Background(), contract)
	if err != nil {
		t.Fatalf("first Calculate failed: %v", err)
	}
	second, err := svc.Calculate(context.Background(), contract)
	if err != nil {
		t.Fatalf("second Calculate failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output for identical input")
	}
}

func TestCalculate_ZeroGuestsDefaultsToBaseline(t *testing.T) {
	svc := NewDemandService(profile.Default(), testItems())

	lines, err := svc.Calculate(context.Background(), testContract("diamond", 0))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	champagne := findLine(t, lines, "Champaña")
	if champagne.EventGuests != 80 {
		t.Errorf("expected baseline 80 guests, got %d", champagne.EventGuests)
	}
	// at the baseline the rule's own quantity comes back
	if !champagne.Quantity.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected 10 bottles, got %s", champagne.Quantity)
	}
}

func TestCalculate_UnknownVenueUsesAuthoritativeProfile(t *testing.T) {
	svc := NewDemandService(profile.Default(), testItems())

	lines, err := svc.Calculate(context.Background(), testContract("orlando", 100))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	champagne := findLine(t, lines, "Champaña")
	if champagne.BaseGuests != 80 {
		t.Errorf("expected diamond baseline 80, got %d", champagne.BaseGuests)
	}
	if !champagne.Quantity.Equal(decimal.NewFromInt(13)) {
		t.Errorf("expected 13 bottles, got %s", champagne.Quantity)
	}
}

func TestCalculate_VenueNameCaseInsensitive(t *testing.T) {
	svc := NewDemandService(profile.Default(), testItems())

	upper, err := svc.Calculate(context.Background(), testContract("DIAMOND", 100))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	lower, err := svc.Calculate(context.Background(), testContract("diamond", 100))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if !reflect.DeepEqual(upper, lower) {
		t.Error("venue name casing changed the result")
	}
}

func TestCalculate_OmitsItemsWithoutRule(t *testing.T) {
	svc := NewDemandService(profile.Default(), testItems())

	lines, err := svc.Calculate(context.Background(), testContract("diamond", 80))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	for _, l := range lines {
		if l.ItemName == "Hielo" {
			t.Error("item without a rule should be omitted")
		}
	}
	if len(lines) != 3 {
		t.Errorf("expected 3 lines, got %d", len(lines))
	}
}

func TestCalculate_CeilingNeverUnderProvisions(t *testing.T) {
	svc := NewDemandService(profile.Default(), testItems())

	// 1 bottle per 8 persons: any guest count must get at least guests/8
	for guests := 1; guests <= 200; guests += 13 {
		lines, err := svc.Calculate(context.Background(), testContract("diamond", guests))
		if err != nil {
			t.Fatalf("Calculate failed: %v", err)
		}
		champagne := findLine(t, lines, "Champaña")
		theoretical := decimal.NewFromInt(int64(guests)).Div(decimal.NewFromInt(8))
		if champagne.Quantity.LessThan(theoretical) {
			t.Errorf("guests=%d: %s bottles under-provisions theoretical %s",
				guests, champagne.Quantity, theoretical)
		}
	}
}
