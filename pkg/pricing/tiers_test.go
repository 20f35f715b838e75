package pricing

import (
	"errors"
	"testing"
)

func tieredEvent() EventPricing {
	return EventPricing{
		Pricing: &Structure{Categories: []Category{
			{
				ID:   "vip",
				Name: "VIP",
				Tiers: []Tier{
					{ID: "early", Name: "Early bird", Price: 40, OriginalPrice: f(50), DiscountPercentage: i(20), AvailableQuantity: 10, IsEarlyBird: true},
					{ID: "regular", Name: "Regular", Price: 50},
				},
			},
			{
				ID:    "std",
				Name:  "Standard",
				Tiers: []Tier{{ID: "regular", Name: "Regular", Price: 25, AvailableQuantity: 100}},
			},
		}},
	}
}

func TestOptions_Tiered(t *testing.T) {
	opts := Options(tieredEvent())
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}

	early := opts[0]
	if early.CategoryID != "vip" || early.TierID != "early" {
		t.Errorf("unexpected first option: %+v", early)
	}
	if early.OriginalPrice != 50 || early.DiscountPercentage != 20 || !early.IsEarlyBird {
		t.Errorf("early bird fields not carried: %+v", early)
	}
	if opts[1].OriginalPrice != 50 {
		t.Errorf("original price should default to price, got %v", opts[1].OriginalPrice)
	}
}

func TestOptions_LegacyFallback(t *testing.T) {
	ev := EventPricing{OriginalPrice: 30, DiscountedPrice: 24, DiscountPercentage: 20, AvailableTickets: 5}
	opts := Options(ev)
	if len(opts) != 1 {
		t.Fatalf("expected 1 legacy option, got %d", len(opts))
	}
	if opts[0].TierID != "default" || opts[0].CategoryName != "Standard" || opts[0].Price != 24 {
		t.Errorf("unexpected legacy option: %+v", opts[0])
	}

	if got := Options(EventPricing{}); len(got) != 0 {
		t.Errorf("expected no options for a priceless event, got %d", len(got))
	}
}

func TestValidate(t *testing.T) {
	ev := tieredEvent()

	tests := []struct {
		name     string
		category string
		tier     string
		qty      int
		wantCode string
	}{
		{"valid", "vip", "early", 2, ""},
		{"unlimited quantity", "vip", "regular", 500, ""},
		{"unknown tier", "vip", "gold", 1, CodeOptionNotFound},
		{"unknown category", "balcony", "regular", 1, CodeOptionNotFound},
		{"too many", "vip", "early", 11, CodeInsufficientQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(ev, tt.category, tt.tier, tt.qty)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", verr.Code, tt.wantCode)
			}
		})
	}
}

func TestQuoteFor(t *testing.T) {
	opt, _ := Find(tieredEvent(), "vip", "early")
	q := QuoteFor(opt, 3)

	if q.UnitPrice != 40 || q.TotalPrice != 120 || q.OriginalTotal != 150 || q.TotalDiscount != 30 {
		t.Errorf("unexpected quote: %+v", q)
	}
	if q.DiscountPercentage != 20 || q.Quantity != 3 {
		t.Errorf("unexpected quote metadata: %+v", q)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(tieredEvent())
	if !s.HasMultiplePrices || s.CheapestPrice != 25 || s.PriceRange != "25€ - 50€" {
		t.Errorf("unexpected tiered summary: %+v", s)
	}

	legacy := Summarize(EventPricing{OriginalPrice: 20, DiscountedPrice: 15})
	if legacy.PriceRange != "15€" || legacy.DiscountPercentage == nil || *legacy.DiscountPercentage != 25 {
		t.Errorf("unexpected legacy summary: %+v", legacy)
	}

	inferred := Summarize(EventPricing{OriginalPrice: 15, DiscountedPrice: 15, DiscountPercentage: 25})
	if inferred.OriginalPrice == nil || *inferred.OriginalPrice != 20 {
		t.Errorf("expected inferred original 20, got %+v", inferred.OriginalPrice)
	}

	free := Summarize(EventPricing{})
	if free.PriceRange != FreeLabel {
		t.Errorf("expected free label, got %q", free.PriceRange)
	}
}
