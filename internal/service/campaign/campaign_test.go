package campaign

import (
	"testing"
	"time"

	"fotolio-service/internal/domain/campaign"
)

func int32Ptr(v int32) *int32 { return &v }

func TestValidateDiscountRule(t *testing.T) {
	tests := []struct {
		name     string
		dtype    campaign.DiscountType
		value    int64
		duration campaign.DiscountDuration
		months   *int32
		wantErr  bool
	}{
		{"valid percent once", campaign.DiscountTypePercent, 20, campaign.DiscountDurationOnce, nil, false},
		{"percent above 100", campaign.DiscountTypePercent, 120, campaign.DiscountDurationOnce, nil, true},
		{"negative fixed", campaign.DiscountTypeFixed, -100, campaign.DiscountDurationOnce, nil, true},
		{"valid override forever", campaign.DiscountTypePriceOverride, 4900, campaign.DiscountDurationForever, nil, false},
		{"unknown type", "bogo", 10, campaign.DiscountDurationOnce, nil, true},
		{"repeating needs months", campaign.DiscountTypePercent, 20, campaign.DiscountDurationRepeating, nil, true},
		{"repeating with months", campaign.DiscountTypePercent, 20, campaign.DiscountDurationRepeating, int32Ptr(3), false},
		{"months on once is invalid", campaign.DiscountTypePercent, 20, campaign.DiscountDurationOnce, int32Ptr(3), true},
		{"invalid duration", campaign.DiscountTypePercent, 20, "sometimes", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDiscountRule(tt.dtype, tt.value, tt.duration, tt.months)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSlugPattern(t *testing.T) {
	valid := []string{"spring-sale", "bf-2026", "abc"}
	invalid := []string{"ab", "Spring-Sale", "sale!", "spring sale", ""}

	for _, slug := range valid {
		if !slugPattern.MatchString(slug) {
			t.Errorf("expected %q to be a valid slug", slug)
		}
	}
	for _, slug := range invalid {
		if slugPattern.MatchString(slug) {
			t.Errorf("expected %q to be rejected", slug)
		}
	}
}

func TestApplyTemplate(t *testing.T) {
	tmpl, ok := CampaignTemplate("flash_sale")
	if !ok {
		t.Fatal("flash_sale template missing")
	}

	t.Run("fills empty fields", func(t *testing.T) {
		starts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		req := &campaign.CreateCampaignRequest{
			Slug:     "flash",
			StartsAt: starts,
			EndsAt:   starts, // unset window picks up the template default
		}
		applyTemplate(req, tmpl)

		if req.DiscountType != campaign.DiscountTypePercent || req.DiscountValue != 30 {
			t.Fatalf("expected 30%% preset, got %s %d", req.DiscountType, req.DiscountValue)
		}
		if req.BadgeText != "FLASH SALE" {
			t.Fatalf("expected badge from template, got %q", req.BadgeText)
		}
		if !req.EndsAt.Equal(starts.Add(24 * time.Hour)) {
			t.Fatalf("expected 24h default window, got %v", req.EndsAt)
		}
	})

	t.Run("explicit values win", func(t *testing.T) {
		req := &campaign.CreateCampaignRequest{
			DiscountType:  campaign.DiscountTypeFixed,
			DiscountValue: 500,
			BadgeText:     "CUSTOM",
		}
		applyTemplate(req, tmpl)

		if req.DiscountType != campaign.DiscountTypeFixed || req.DiscountValue != 500 {
			t.Fatalf("template overwrote explicit discount: %s %d", req.DiscountType, req.DiscountValue)
		}
		if req.BadgeText != "CUSTOM" {
			t.Fatalf("template overwrote explicit badge: %q", req.BadgeText)
		}
	})

	t.Run("repeating template carries months", func(t *testing.T) {
		early, ok := CampaignTemplate("early_bird")
		if !ok {
			t.Fatal("early_bird template missing")
		}

		req := &campaign.CreateCampaignRequest{}
		applyTemplate(req, early)

		if req.DiscountDuration != campaign.DiscountDurationRepeating {
			t.Fatalf("expected repeating duration, got %s", req.DiscountDuration)
		}
		if req.DiscountMonths == nil || *req.DiscountMonths != 3 {
			t.Fatalf("expected 3 discount months, got %v", req.DiscountMonths)
		}
	})
}

func TestTemplateRulesAreValid(t *testing.T) {
	// Every preset must pass the same validation applied to requests.
	for _, name := range TemplateNames() {
		tmpl, _ := CampaignTemplate(name)

		var months *int32
		if tmpl.DiscountMonths > 0 {
			m := tmpl.DiscountMonths
			months = &m
		}

		if err := validateDiscountRule(tmpl.DiscountType, tmpl.DiscountValue, tmpl.DiscountDuration, months); err != nil {
			t.Errorf("template %s has invalid discount rule: %v", name, err)
		}
	}
}
