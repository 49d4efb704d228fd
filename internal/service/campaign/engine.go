// internal/service/campaign/engine.go
//
// Derived display values for promotional campaigns. Everything here is a
// pure function of the campaign record and an explicit instant: no I/O,
// no mutation, cheap enough to recompute every second in a countdown
// loop. Wall-clock time is sampled by callers, never in here.
package campaign

import (
	"fmt"
	"time"

	"fotolio-service/internal/domain/campaign"
	"fotolio-service/internal/domain/plan"
	xerrors "fotolio-service/internal/pkg/errors"
)

// urgencyThreshold is the remaining-time cutoff below which countdown
// displays switch to urgent styling. Matches the point where the
// countdown granularity changes to hours.
const urgencyThreshold = 24 * time.Hour

// SpotsRemaining returns the redemption headroom, or nil when the
// campaign has no cap. Never negative, even if the counter overshot.
func (s *CampaignService) SpotsRemaining(c *campaign.PromotionalCampaign) *int {
	if !c.MaxRedemptions.Valid {
		return nil
	}

	remaining := int(c.MaxRedemptions.Int32) - c.CurrentRedemptions
	if remaining < 0 {
		remaining = 0
	}

	return &remaining
}

// TimeRemaining decomposes the time left until the campaign ends into
// countdown components, relative to the given instant.
func (s *CampaignService) TimeRemaining(c *campaign.PromotionalCampaign, now time.Time) campaign.TimeRemaining {
	delta := c.EndsAt.Sub(now)
	if delta <= 0 {
		return campaign.TimeRemaining{IsExpired: true}
	}

	total := int(delta / time.Second)

	return campaign.TimeRemaining{
		Days:     total / 86400,
		Hours:    (total % 86400) / 3600,
		Minutes:  (total % 3600) / 60,
		Seconds:  total % 60,
		IsUrgent: delta < urgencyThreshold,
	}
}

// Status classifies a campaign for display. Precedence is deliberate
// and must not be reordered: a manually paused campaign is never shown
// as sold out or scheduled, and an exhausted campaign reads as sold out
// even while still inside its window.
func (s *CampaignService) Status(c *campaign.PromotionalCampaign, now time.Time) campaign.Status {
	if !c.IsActive {
		return campaign.StatusPaused
	}
	if spots := s.SpotsRemaining(c); spots != nil && *spots <= 0 {
		return campaign.StatusSoldOut
	}
	if now.Before(c.StartsAt) {
		return campaign.StatusScheduled
	}
	if now.After(c.EndsAt) {
		return campaign.StatusEnded
	}
	return campaign.StatusActive
}

// IsRedeemable reports whether a redemption would be accepted at the
// given instant.
func (s *CampaignService) IsRedeemable(c *campaign.PromotionalCampaign, now time.Time) bool {
	return s.Status(c, now) == campaign.StatusActive
}

// DiscountedPrice maps an original price in minor currency units to the
// price under the campaign's rule. An unrecognized discount type is a
// hard error: passing the original price through silently would let a
// misconfigured campaign advertise a discount it does not deliver.
func (s *CampaignService) DiscountedPrice(c *campaign.PromotionalCampaign, originalPrice int64) (int64, error) {
	switch c.DiscountType {
	case campaign.DiscountTypePercent:
		// Round half up, integer arithmetic in minor units
		discounted := (originalPrice*(100-c.DiscountValue) + 50) / 100
		if discounted < 0 {
			discounted = 0
		}
		return discounted, nil

	case campaign.DiscountTypeFixed:
		discounted := originalPrice - c.DiscountValue
		if discounted < 0 {
			discounted = 0
		}
		return discounted, nil

	case campaign.DiscountTypePriceOverride:
		return c.DiscountValue, nil

	default:
		return 0, fmt.Errorf("%w: %q", xerrors.ErrUnknownDiscount, c.DiscountType)
	}
}

// Savings returns how much the campaign takes off the original price,
// clamped to zero so a price override above the listed price never
// reports negative savings.
func (s *CampaignService) Savings(c *campaign.PromotionalCampaign, originalPrice int64) (int64, error) {
	discounted, err := s.DiscountedPrice(c, originalPrice)
	if err != nil {
		return 0, err
	}

	savings := originalPrice - discounted
	if savings < 0 {
		savings = 0
	}

	return savings, nil
}

// FormatDiscount renders the campaign's universal discount label. It
// depends only on the record, not on any plan's price: campaigns target
// plans at different price points, so the label is plan-agnostic.
func (s *CampaignService) FormatDiscount(c *campaign.PromotionalCampaign) (string, error) {
	switch c.DiscountType {
	case campaign.DiscountTypePercent:
		return fmt.Sprintf("%d%% OFF", c.DiscountValue), nil
	case campaign.DiscountTypeFixed:
		return fmt.Sprintf("%s OFF", formatMinorUnits(c.DiscountValue)), nil
	case campaign.DiscountTypePriceOverride:
		// A flat price, not an amount off
		return formatMinorUnits(c.DiscountValue), nil
	default:
		return "", fmt.Errorf("%w: %q", xerrors.ErrUnknownDiscount, c.DiscountType)
	}
}

// PromoURL builds the stable public redemption URL for a campaign slug.
func (s *CampaignService) PromoURL(slug string) string {
	return s.baseURL + "/promo/" + slug
}

// Display assembles the presentation-ready view of a campaign: status,
// countdown, capacity, discount label, and per-plan pricing for the
// plans the campaign targets.
func (s *CampaignService) Display(c *campaign.PromotionalCampaign, now time.Time, plans []plan.Plan) (*campaign.CampaignDisplay, error) {
	label, err := s.FormatDiscount(c)
	if err != nil {
		return nil, err
	}

	d := &campaign.CampaignDisplay{
		Campaign:       c,
		Status:         s.Status(c, now),
		SpotsRemaining: s.SpotsRemaining(c),
		TimeRemaining:  s.TimeRemaining(c, now),
		DiscountLabel:  label,
		PromoURL:       s.PromoURL(c.Slug),
	}

	for _, p := range plans {
		if !targetsPlan(c, p.Code) {
			continue
		}

		discounted, err := s.DiscountedPrice(c, p.MonthlyPrice)
		if err != nil {
			return nil, err
		}
		savings, err := s.Savings(c, p.MonthlyPrice)
		if err != nil {
			return nil, err
		}

		pricing := campaign.PlanPricing{
			PlanCode:        p.Code,
			DiscountedPrice: discounted,
			Savings:         savings,
		}
		if c.ShowOriginalPrice {
			pricing.OriginalPrice = p.MonthlyPrice
		}

		d.PlanPricing = append(d.PlanPricing, pricing)
	}

	return d, nil
}

func targetsPlan(c *campaign.PromotionalCampaign, planCode string) bool {
	for _, code := range c.TargetPlans {
		if code == planCode {
			return true
		}
	}
	return false
}

// formatMinorUnits renders a minor-unit amount as whole currency units,
// rounded half up ($1500 cents -> "$15").
func formatMinorUnits(v int64) string {
	return fmt.Sprintf("$%d", (v+50)/100)
}
