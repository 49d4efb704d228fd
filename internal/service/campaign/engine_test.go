package campaign

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"fotolio-service/internal/domain/campaign"
	"fotolio-service/internal/domain/plan"
	xerrors "fotolio-service/internal/pkg/errors"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

func newTestService() *CampaignService {
	return NewCampaignService(nil, nil, "https://fotolio.app", zap.NewNop())
}

func capped(max int32) sql.NullInt32 {
	return sql.NullInt32{Int32: max, Valid: true}
}

func TestSpotsRemaining(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name    string
		max     sql.NullInt32
		current int
		want    *int
	}{
		{"unlimited", sql.NullInt32{}, 500, nil},
		{"headroom", capped(10), 3, intPtr(7)},
		{"exhausted", capped(10), 10, intPtr(0)},
		{"over redeemed clamps to zero", capped(10), 15, intPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &campaign.PromotionalCampaign{MaxRedemptions: tt.max, CurrentRedemptions: tt.current}
			got := s.SpotsRemaining(c)

			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil (unlimited), got %d", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %d, got nil", *tt.want)
			}
			if *got != *tt.want {
				t.Fatalf("expected %d, got %d", *tt.want, *got)
			}
		})
	}
}

func TestTimeRemaining(t *testing.T) {
	s := newTestService()
	end := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &campaign.PromotionalCampaign{EndsAt: end}

	t.Run("expired at exact end", func(t *testing.T) {
		got := s.TimeRemaining(c, end)
		if !got.IsExpired {
			t.Fatal("expected expired at ends_at")
		}
		if got.Days != 0 || got.Hours != 0 || got.Minutes != 0 || got.Seconds != 0 {
			t.Fatalf("expected zeroed countdown, got %+v", got)
		}
	})

	t.Run("decomposes one day one hour one minute one second", func(t *testing.T) {
		got := s.TimeRemaining(c, end.Add(-90061*time.Second))
		want := campaign.TimeRemaining{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("urgent under 24 hours", func(t *testing.T) {
		got := s.TimeRemaining(c, end.Add(-23*time.Hour))
		if !got.IsUrgent {
			t.Fatal("expected urgent with 23h remaining")
		}
		if got.IsExpired {
			t.Fatal("urgent campaign must not be expired")
		}
	})

	t.Run("not urgent above 24 hours", func(t *testing.T) {
		got := s.TimeRemaining(c, end.Add(-25*time.Hour))
		if got.IsUrgent {
			t.Fatal("expected not urgent with 25h remaining")
		}
		if got.Days != 1 || got.Hours != 1 {
			t.Fatalf("expected 1d1h, got %+v", got)
		}
	})
}

func TestStatusPrecedence(t *testing.T) {
	s := newTestService()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	base := func() *campaign.PromotionalCampaign {
		return &campaign.PromotionalCampaign{
			IsActive:       true,
			StartsAt:       now.Add(-time.Hour),
			EndsAt:         now.Add(23 * time.Hour),
			MaxRedemptions: capped(50),
		}
	}

	t.Run("paused beats everything", func(t *testing.T) {
		c := base()
		c.IsActive = false
		c.CurrentRedemptions = 50 // also sold out
		if got := s.Status(c, now); got != campaign.StatusPaused {
			t.Fatalf("expected paused, got %s", got)
		}
	})

	t.Run("sold out beats window match", func(t *testing.T) {
		c := base()
		c.CurrentRedemptions = 50
		if got := s.Status(c, now); got != campaign.StatusSoldOut {
			t.Fatalf("expected sold_out, got %s", got)
		}
	})

	t.Run("sold out beats scheduled", func(t *testing.T) {
		c := base()
		c.StartsAt = now.Add(time.Hour)
		c.CurrentRedemptions = 50
		if got := s.Status(c, now); got != campaign.StatusSoldOut {
			t.Fatalf("expected sold_out, got %s", got)
		}
	})

	t.Run("scheduled before window", func(t *testing.T) {
		c := base()
		c.StartsAt = now.Add(time.Minute)
		if got := s.Status(c, now); got != campaign.StatusScheduled {
			t.Fatalf("expected scheduled, got %s", got)
		}
	})

	t.Run("ended after window", func(t *testing.T) {
		c := base()
		c.EndsAt = now.Add(-time.Minute)
		if got := s.Status(c, now); got != campaign.StatusEnded {
			t.Fatalf("expected ended, got %s", got)
		}
	})

	t.Run("active inside window with capacity", func(t *testing.T) {
		c := base()
		if got := s.Status(c, now); got != campaign.StatusActive {
			t.Fatalf("expected active, got %s", got)
		}
		if !s.IsRedeemable(c, now) {
			t.Fatal("active campaign must be redeemable")
		}
	})

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		c := base()
		if got := s.Status(c, c.StartsAt); got != campaign.StatusActive {
			t.Fatalf("expected active at starts_at, got %s", got)
		}
		if got := s.Status(c, c.EndsAt); got != campaign.StatusActive {
			t.Fatalf("expected active at ends_at, got %s", got)
		}
	})
}

func TestDiscountedPrice(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name     string
		dtype    campaign.DiscountType
		value    int64
		original int64
		want     int64
	}{
		{"percent 20 off 10000", campaign.DiscountTypePercent, 20, 10000, 8000},
		{"percent rounds half up", campaign.DiscountTypePercent, 15, 999, 849}, // 849.15 -> 849
		{"percent 100 off", campaign.DiscountTypePercent, 100, 10000, 0},
		{"fixed 1500 off 10000", campaign.DiscountTypeFixed, 1500, 10000, 8500},
		{"fixed clamps at zero", campaign.DiscountTypeFixed, 15000, 10000, 0},
		{"override ignores original", campaign.DiscountTypePriceOverride, 4900, 10000, 4900},
		{"override ignores tiny original", campaign.DiscountTypePriceOverride, 4900, 100, 4900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &campaign.PromotionalCampaign{DiscountType: tt.dtype, DiscountValue: tt.value}
			got, err := s.DiscountedPrice(c, tt.original)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}

	t.Run("unknown discount type is a hard error", func(t *testing.T) {
		c := &campaign.PromotionalCampaign{DiscountType: "bogo", DiscountValue: 1}
		if _, err := s.DiscountedPrice(c, 10000); !errors.Is(err, xerrors.ErrUnknownDiscount) {
			t.Fatalf("expected ErrUnknownDiscount, got %v", err)
		}
		if _, err := s.Savings(c, 10000); !errors.Is(err, xerrors.ErrUnknownDiscount) {
			t.Fatalf("expected ErrUnknownDiscount from Savings, got %v", err)
		}
	})
}

func TestSavingsNeverNegative(t *testing.T) {
	s := newTestService()

	// Override above the original price must clamp to zero, not report
	// negative savings.
	c := &campaign.PromotionalCampaign{DiscountType: campaign.DiscountTypePriceOverride, DiscountValue: 9900}
	got, err := s.Savings(c, 4900)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected savings 0, got %d", got)
	}
}

func TestFormatDiscount(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name  string
		dtype campaign.DiscountType
		value int64
		want  string
	}{
		{"percent", campaign.DiscountTypePercent, 20, "20% OFF"},
		{"fixed", campaign.DiscountTypeFixed, 1500, "$15 OFF"},
		{"override is a flat price", campaign.DiscountTypePriceOverride, 4900, "$49"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &campaign.PromotionalCampaign{DiscountType: tt.dtype, DiscountValue: tt.value}
			got, err := s.FormatDiscount(c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}

	t.Run("unknown type errors", func(t *testing.T) {
		c := &campaign.PromotionalCampaign{DiscountType: "mystery"}
		if _, err := s.FormatDiscount(c); !errors.Is(err, xerrors.ErrUnknownDiscount) {
			t.Fatalf("expected ErrUnknownDiscount, got %v", err)
		}
	})
}

func TestPromoURL(t *testing.T) {
	s := newTestService()

	got := s.PromoURL("spring-sale")
	want := "https://fotolio.app/promo/spring-sale"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDisplayEndToEnd(t *testing.T) {
	s := newTestService()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := &campaign.PromotionalCampaign{
		Slug:               "spring-sale",
		IsActive:           true,
		StartsAt:           now.Add(-time.Hour),
		EndsAt:             now.Add(23 * time.Hour),
		MaxRedemptions:     capped(50),
		CurrentRedemptions: 50,
		TargetPlans:        pq.StringArray{"pro"},
		DiscountType:       campaign.DiscountTypePercent,
		DiscountValue:      15,
		ShowOriginalPrice:  true,
	}

	plans := []plan.Plan{
		{Code: "pro", MonthlyPrice: 20000},
		{Code: "starter", MonthlyPrice: 900}, // not targeted, must be skipped
	}

	d, err := s.Display(c, now, plans)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Status != campaign.StatusSoldOut {
		t.Fatalf("expected sold_out, got %s", d.Status)
	}
	if d.SpotsRemaining == nil || *d.SpotsRemaining != 0 {
		t.Fatalf("expected 0 spots remaining, got %v", d.SpotsRemaining)
	}
	if d.DiscountLabel != "15% OFF" {
		t.Fatalf("expected label 15%% OFF, got %q", d.DiscountLabel)
	}
	if d.PromoURL != "https://fotolio.app/promo/spring-sale" {
		t.Fatalf("unexpected promo url %q", d.PromoURL)
	}
	if d.TimeRemaining.IsExpired || !d.TimeRemaining.IsUrgent {
		t.Fatalf("expected urgent unexpired countdown, got %+v", d.TimeRemaining)
	}

	if len(d.PlanPricing) != 1 {
		t.Fatalf("expected pricing for the single targeted plan, got %d", len(d.PlanPricing))
	}
	pricing := d.PlanPricing[0]
	if pricing.PlanCode != "pro" {
		t.Fatalf("expected pro plan, got %s", pricing.PlanCode)
	}
	if pricing.DiscountedPrice != 17000 {
		t.Fatalf("expected discounted price 17000, got %d", pricing.DiscountedPrice)
	}
	if pricing.Savings != 3000 {
		t.Fatalf("expected savings 3000, got %d", pricing.Savings)
	}
	if pricing.OriginalPrice != 20000 {
		t.Fatalf("expected original price 20000, got %d", pricing.OriginalPrice)
	}
}

func intPtr(v int) *int { return &v }
