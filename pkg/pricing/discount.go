// Package pricing holds event price arithmetic: discount percentages, the
// legacy single-price form and multi-tier pricing options.
package pricing

import (
	"errors"
	"math"
)

var (
	ErrPriceRequired         = errors.New("original or discounted price is required")
	ErrNegativePrice         = errors.New("prices must not be negative")
	ErrDiscountAboveOriginal = errors.New("discounted price must not exceed original price")
	ErrInvalidPercentage     = errors.New("discount percentage must be between 0 and 100")
)

// Pricing is a normalised single-price form
type Pricing struct {
	OriginalPrice      float64 `json:"original_price"`
	DiscountedPrice    float64 `json:"discounted_price"`
	DiscountPercentage int     `json:"discount_percentage"`
}

// DiscountPercentage returns round((original-discounted)/original*100) clamped to [0,100].
// It returns 0 when original <= 0 or discounted < 0.
func DiscountPercentage(original, discounted float64) int {
	if original <= 0 || discounted < 0 {
		return 0
	}
	return clampPercent(int(math.Round((original - discounted) / original * 100)))
}

// DiscountedPrice applies percentage to original, rounded to cents
func DiscountedPrice(original float64, percentage int) float64 {
	percentage = clampPercent(percentage)
	return roundCents(original * (1 - float64(percentage)/100))
}

// OriginalFromDiscount recovers the original price from a discounted price and
// its percentage. A 100% discount cannot be inverted and returns discounted.
func OriginalFromDiscount(discounted float64, percentage int) float64 {
	percentage = clampPercent(percentage)
	if percentage >= 100 {
		return discounted
	}
	return roundCents(discounted / (1 - float64(percentage)/100))
}

// Reconcile normalises an event price form. Given both prices the percentage is
// recomputed; given original and percentage the discounted price is derived;
// a missing discounted price defaults to the original. A 100% discount needs
// the original price.
func Reconcile(original, discounted *float64, percentage *int) (Pricing, error) {
	if original == nil && discounted == nil {
		return Pricing{}, ErrPriceRequired
	}
	if (original != nil && *original < 0) || (discounted != nil && *discounted < 0) {
		return Pricing{}, ErrNegativePrice
	}
	if percentage != nil && (*percentage < 0 || *percentage > 100) {
		return Pricing{}, ErrInvalidPercentage
	}

	var p Pricing
	switch {
	case original != nil && discounted != nil:
		if *discounted > *original {
			return Pricing{}, ErrDiscountAboveOriginal
		}
		p = Pricing{
			OriginalPrice:      *original,
			DiscountedPrice:    *discounted,
			DiscountPercentage: DiscountPercentage(*original, *discounted),
		}
	case original != nil && percentage != nil:
		p = Pricing{
			OriginalPrice:      *original,
			DiscountedPrice:    DiscountedPrice(*original, *percentage),
			DiscountPercentage: *percentage,
		}
	case original != nil:
		p = Pricing{OriginalPrice: *original, DiscountedPrice: *original}
	case percentage != nil && *percentage >= 100:
		// the original cannot be recovered from a full discount
		return Pricing{}, ErrInvalidPercentage
	case percentage != nil && *percentage > 0:
		p = Pricing{
			OriginalPrice:      OriginalFromDiscount(*discounted, *percentage),
			DiscountedPrice:    *discounted,
			DiscountPercentage: *percentage,
		}
	default:
		p = Pricing{OriginalPrice: *discounted, DiscountedPrice: *discounted}
	}

	return p, nil
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
