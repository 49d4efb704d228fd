// internal/service/campaign/templates.go
package campaign

import (
	"time"

	"fotolio-service/internal/domain/campaign"
)

// Template is a named preset that pre-fills a new campaign's discount
// and banner fields. Templates are static configuration: defined once
// here, never constructed at runtime.
type Template struct {
	DiscountType     campaign.DiscountType
	DiscountValue    int64
	DiscountDuration campaign.DiscountDuration
	DiscountMonths   int32

	BadgeText         string
	BannerHeadline    string
	BannerSubheadline string
	BannerCTA         string
	HighlightColor    string
	BackgroundColor   string
	TextColor         string

	ShowCountdown bool
	ShowSpotsLeft bool

	// DefaultWindow suggests a campaign length when the admin form
	// pre-fills dates from the template.
	DefaultWindow time.Duration
}

var templates = map[string]Template{
	"flash_sale": {
		DiscountType:      campaign.DiscountTypePercent,
		DiscountValue:     30,
		DiscountDuration:  campaign.DiscountDurationOnce,
		BadgeText:         "FLASH SALE",
		BannerHeadline:    "Flash Sale — today only",
		BannerSubheadline: "30% off your first year",
		BannerCTA:         "Claim your spot",
		HighlightColor:    "#ef4444",
		BackgroundColor:   "#1f2937",
		TextColor:         "#ffffff",
		ShowCountdown:     true,
		ShowSpotsLeft:     true,
		DefaultWindow:     24 * time.Hour,
	},
	"early_bird": {
		DiscountType:      campaign.DiscountTypePercent,
		DiscountValue:     20,
		DiscountDuration:  campaign.DiscountDurationRepeating,
		DiscountMonths:    3,
		BadgeText:         "EARLY BIRD",
		BannerHeadline:    "Early bird pricing",
		BannerSubheadline: "20% off for your first 3 months",
		BannerCTA:         "Get started",
		HighlightColor:    "#f59e0b",
		BackgroundColor:   "#fffbeb",
		TextColor:         "#1f2937",
		ShowCountdown:     false,
		ShowSpotsLeft:     true,
		DefaultWindow:     14 * 24 * time.Hour,
	},
	"launch_week": {
		DiscountType:      campaign.DiscountTypeFixed,
		DiscountValue:     1000,
		DiscountDuration:  campaign.DiscountDurationOnce,
		BadgeText:         "LAUNCH WEEK",
		BannerHeadline:    "We just launched",
		BannerSubheadline: "$10 off any plan this week",
		BannerCTA:         "Join now",
		HighlightColor:    "#3b82f6",
		BackgroundColor:   "#eff6ff",
		TextColor:         "#1e3a8a",
		ShowCountdown:     true,
		ShowSpotsLeft:     false,
		DefaultWindow:     7 * 24 * time.Hour,
	},
	"black_friday": {
		DiscountType:      campaign.DiscountTypePriceOverride,
		DiscountValue:     4900,
		DiscountDuration:  campaign.DiscountDurationForever,
		BadgeText:         "BLACK FRIDAY",
		BannerHeadline:    "Black Friday deal",
		BannerSubheadline: "Lock in $49 forever",
		BannerCTA:         "Lock it in",
		HighlightColor:    "#111827",
		BackgroundColor:   "#000000",
		TextColor:         "#fbbf24",
		ShowCountdown:     true,
		ShowSpotsLeft:     true,
		DefaultWindow:     4 * 24 * time.Hour,
	},
}

// CampaignTemplate looks up a named preset.
func CampaignTemplate(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

// TemplateNames lists available preset names.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	return names
}
