package pricing

import (
	"errors"
	"testing"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestDiscountPercentage(t *testing.T) {
	tests := []struct {
		name       string
		original   float64
		discounted float64
		want       int
	}{
		{"quarter off", 100, 75, 25},
		{"rounds to nearest", 30, 25, 17},
		{"half rounds up", 8, 7.96, 1},
		{"no discount", 50, 50, 0},
		{"free", 40, 0, 100},
		{"discounted above original clamps to 0", 50, 80, 0},
		{"zero original", 0, 10, 0},
		{"negative original", -10, 5, 0},
		{"negative discounted", 10, -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiscountPercentage(tt.original, tt.discounted); got != tt.want {
				t.Errorf("DiscountPercentage(%v, %v) = %d, want %d", tt.original, tt.discounted, got, tt.want)
			}
		})
	}
}

func TestDiscountPercentage_AlwaysInRange(t *testing.T) {
	for orig := -5.0; orig <= 200; orig += 7.5 {
		for disc := -5.0; disc <= 250; disc += 12.25 {
			p := DiscountPercentage(orig, disc)
			if p < 0 || p > 100 {
				t.Fatalf("DiscountPercentage(%v, %v) = %d, outside [0,100]", orig, disc, p)
			}
		}
	}
}

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		original float64
		pct      int
		want     float64
	}{
		{100, 25, 75},
		{19.99, 10, 17.99},
		{80, 0, 80},
		{80, 100, 0},
		{80, 150, 0},
		{80, -10, 80},
	}

	for _, tt := range tests {
		if got := DiscountedPrice(tt.original, tt.pct); got != tt.want {
			t.Errorf("DiscountedPrice(%v, %d) = %v, want %v", tt.original, tt.pct, got, tt.want)
		}
	}
}

func TestOriginalFromDiscount(t *testing.T) {
	if got := OriginalFromDiscount(75, 25); got != 100 {
		t.Errorf("OriginalFromDiscount(75, 25) = %v, want 100", got)
	}
	if got := OriginalFromDiscount(0, 100); got != 0 {
		t.Errorf("OriginalFromDiscount(0, 100) = %v, want 0", got)
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		original   *float64
		discounted *float64
		percentage *int
		want       Pricing
		wantErr    error
	}{
		{
			name:       "both prices recompute percentage",
			original:   f(120),
			discounted: f(90),
			percentage: i(3),
			want:       Pricing{OriginalPrice: 120, DiscountedPrice: 90, DiscountPercentage: 25},
		},
		{
			name:       "original and percentage derive discounted",
			original:   f(60),
			percentage: i(50),
			want:       Pricing{OriginalPrice: 60, DiscountedPrice: 30, DiscountPercentage: 50},
		},
		{
			name:     "missing discounted defaults to original",
			original: f(45),
			want:     Pricing{OriginalPrice: 45, DiscountedPrice: 45},
		},
		{
			name:       "discounted and percentage derive original",
			discounted: f(80),
			percentage: i(20),
			want:       Pricing{OriginalPrice: 100, DiscountedPrice: 80, DiscountPercentage: 20},
		},
		{
			name:       "discounted only",
			discounted: f(15),
			want:       Pricing{OriginalPrice: 15, DiscountedPrice: 15},
		},
		{
			name:       "full discount with original derives free",
			original:   f(40),
			percentage: i(100),
			want:       Pricing{OriginalPrice: 40, DiscountedPrice: 0, DiscountPercentage: 100},
		},
		{name: "full discount without original", discounted: f(40), percentage: i(100), wantErr: ErrInvalidPercentage},
		{name: "full discount of a free price without original", discounted: f(0), percentage: i(100), wantErr: ErrInvalidPercentage},
		{name: "nothing", wantErr: ErrPriceRequired},
		{name: "negative", original: f(-1), wantErr: ErrNegativePrice},
		{name: "discount above original", original: f(10), discounted: f(12), wantErr: ErrDiscountAboveOriginal},
		{name: "percentage too high", original: f(10), percentage: i(101), wantErr: ErrInvalidPercentage},
		{name: "percentage negative", original: f(10), percentage: i(-1), wantErr: ErrInvalidPercentage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reconcile(tt.original, tt.discounted, tt.percentage)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Reconcile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Reconcile() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Reconcile() = %+v, want %+v", got, tt.want)
			}
			if got.DiscountPercentage < 0 || got.DiscountPercentage > 100 {
				t.Errorf("percentage %d outside [0,100]", got.DiscountPercentage)
			}
		})
	}
}
