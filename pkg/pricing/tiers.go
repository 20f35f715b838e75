package pricing

import (
	"fmt"
	"sort"
	"strconv"
)

// Validation codes returned by Validate
const (
	CodeOptionNotFound       = "PRICING_OPTION_NOT_FOUND"
	CodeOptionUnavailable    = "PRICING_OPTION_UNAVAILABLE"
	CodeInsufficientQuantity = "INSUFFICIENT_QUANTITY"
)

// FreeLabel is shown instead of a price range for free events
const FreeLabel = "Gratuit"

// Tier is one price level inside a pricing category
type Tier struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Price              float64  `json:"price"`
	OriginalPrice      *float64 `json:"originalPrice,omitempty"`
	DiscountPercentage *int     `json:"discountPercentage,omitempty"`
	AvailableQuantity  int      `json:"available_quantity"`
	IsEarlyBird        bool     `json:"is_early_bird"`
}

// Category groups tiers, e.g. "VIP" or "Standard"
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tiers []Tier `json:"tiers"`
}

// Structure is the multi-tier pricing document stored on an event
type Structure struct {
	Categories []Category `json:"categories"`
}

// EventPricing is the pricing-relevant part of an event
type EventPricing struct {
	Pricing            *Structure
	OriginalPrice      float64
	DiscountedPrice    float64
	DiscountPercentage int
	AvailableTickets   int
}

// Option is a bookable category/tier combination
type Option struct {
	CategoryID         string  `json:"category_id,omitempty"`
	CategoryName       string  `json:"category_name"`
	TierID             string  `json:"tier_id"`
	TierName           string  `json:"tier_name"`
	Price              float64 `json:"price"`
	OriginalPrice      float64 `json:"original_price"`
	DiscountPercentage int     `json:"discount_percentage"`
	AvailableQuantity  int     `json:"available_quantity"`
	IsEarlyBird        bool    `json:"is_early_bird"`
	IsAvailable        bool    `json:"is_available"`
}

// Options lists every tier of every category. Events without tiers fall back
// to a single "Standard/Regular" option built from the legacy price.
func Options(ev EventPricing) []Option {
	var options []Option

	if ev.Pricing != nil {
		for _, cat := range ev.Pricing.Categories {
			for _, tier := range cat.Tiers {
				original := tier.Price
				if tier.OriginalPrice != nil && *tier.OriginalPrice > 0 {
					original = *tier.OriginalPrice
				}
				pct := 0
				if tier.DiscountPercentage != nil {
					pct = *tier.DiscountPercentage
				}
				options = append(options, Option{
					CategoryID:         cat.ID,
					CategoryName:       cat.Name,
					TierID:             tier.ID,
					TierName:           tier.Name,
					Price:              tier.Price,
					OriginalPrice:      original,
					DiscountPercentage: pct,
					AvailableQuantity:  tier.AvailableQuantity,
					IsEarlyBird:        tier.IsEarlyBird,
					IsAvailable:        true,
				})
			}
		}
	}

	if len(options) == 0 && ev.DiscountedPrice > 0 {
		original := ev.OriginalPrice
		if original <= 0 {
			original = ev.DiscountedPrice
		}
		options = append(options, Option{
			CategoryName:       "Standard",
			TierID:             "default",
			TierName:           "Regular",
			Price:              ev.DiscountedPrice,
			OriginalPrice:      original,
			DiscountPercentage: ev.DiscountPercentage,
			AvailableQuantity:  ev.AvailableTickets,
			IsAvailable:        true,
		})
	}

	return options
}

// Find returns the option matching categoryID and tierID. The legacy option
// has an empty category id.
func Find(ev EventPricing, categoryID, tierID string) (Option, bool) {
	for _, opt := range Options(ev) {
		if opt.CategoryID == categoryID && opt.TierID == tierID {
			return opt, true
		}
	}
	return Option{}, false
}

// ValidationError explains why a pricing selection was rejected
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks that the selection exists, is available and has enough
// quantity. A zero available quantity means unlimited.
func Validate(ev EventPricing, categoryID, tierID string, quantity int) (Option, error) {
	opt, ok := Find(ev, categoryID, tierID)
	if !ok {
		return Option{}, &ValidationError{Code: CodeOptionNotFound, Message: "Selected pricing option not found"}
	}
	if !opt.IsAvailable {
		return Option{}, &ValidationError{Code: CodeOptionUnavailable, Message: "Selected pricing option is not available"}
	}
	if opt.AvailableQuantity > 0 && quantity > opt.AvailableQuantity {
		return Option{}, &ValidationError{
			Code:    CodeInsufficientQuantity,
			Message: fmt.Sprintf("Only %d tickets available for %s - %s", opt.AvailableQuantity, opt.CategoryName, opt.TierName),
		}
	}
	return opt, nil
}

// Quote is the price breakdown for a quantity of one option
type Quote struct {
	UnitPrice          float64 `json:"unit_price"`
	TotalPrice         float64 `json:"total_price"`
	OriginalTotal      float64 `json:"original_total"`
	TotalDiscount      float64 `json:"total_discount"`
	DiscountPercentage int     `json:"discount_percentage"`
	Quantity           int     `json:"quantity"`
}

// QuoteFor computes totals for quantity tickets of opt
func QuoteFor(opt Option, quantity int) Quote {
	q := float64(quantity)
	return Quote{
		UnitPrice:          opt.Price,
		TotalPrice:         roundCents(opt.Price * q),
		OriginalTotal:      roundCents(opt.OriginalPrice * q),
		TotalDiscount:      roundCents((opt.OriginalPrice - opt.Price) * q),
		DiscountPercentage: opt.DiscountPercentage,
		Quantity:           quantity,
	}
}

// Summary is the display price of an event
type Summary struct {
	Price              float64  `json:"price"`
	OriginalPrice      *float64 `json:"original_price"`
	DiscountPercentage *int     `json:"discount_percentage"`
	HasMultiplePrices  bool     `json:"has_multiple_prices"`
	CheapestPrice      float64  `json:"cheapest_price"`
	PriceRange         string   `json:"price_range"`
}

// Summarize picks the cheapest tier (or the legacy price) and builds a range label
func Summarize(ev EventPricing) Summary {
	if ev.Pricing != nil && len(ev.Pricing.Categories) > 0 {
		return summarizeTiers(ev.Pricing.Categories)
	}
	return summarizeLegacy(ev)
}

func summarizeTiers(categories []Category) Summary {
	var tiers []Tier
	for _, cat := range categories {
		for _, t := range cat.Tiers {
			if t.Price >= 0 {
				tiers = append(tiers, t)
			}
		}
	}
	if len(tiers) == 0 {
		return Summary{PriceRange: FreeLabel}
	}

	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].Price < tiers[j].Price })
	cheapest, dearest := tiers[0], tiers[len(tiers)-1]
	multiple := len(tiers) > 1 || cheapest.Price != dearest.Price

	s := Summary{
		Price:              cheapest.Price,
		OriginalPrice:      cheapest.OriginalPrice,
		DiscountPercentage: cheapest.DiscountPercentage,
		HasMultiplePrices:  multiple,
		CheapestPrice:      cheapest.Price,
	}
	switch {
	case multiple:
		s.PriceRange = formatEuro(cheapest.Price) + " - " + formatEuro(dearest.Price)
	case cheapest.Price > 0:
		s.PriceRange = formatEuro(cheapest.Price)
	default:
		s.PriceRange = FreeLabel
	}
	return s
}

func summarizeLegacy(ev EventPricing) Summary {
	discounted := ev.DiscountedPrice
	if discounted <= 0 {
		return Summary{PriceRange: FreeLabel}
	}

	original := ev.OriginalPrice
	pct := ev.DiscountPercentage
	if pct == 0 && original > discounted {
		pct = DiscountPercentage(original, discounted)
	}
	if ev.DiscountPercentage > 0 && original <= discounted {
		original = OriginalFromDiscount(discounted, ev.DiscountPercentage)
	}

	s := Summary{
		Price:         discounted,
		CheapestPrice: discounted,
		PriceRange:    formatEuro(discounted),
	}
	if original > discounted {
		s.OriginalPrice = &original
	}
	if pct > 0 {
		s.DiscountPercentage = &pct
	}
	return s
}

func formatEuro(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "€"
}
