// internal/domain/campaign/entity.go
package campaign

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type DiscountType string

const (
	DiscountTypePercent       DiscountType = "percent"
	DiscountTypeFixed         DiscountType = "fixed"
	DiscountTypePriceOverride DiscountType = "price_override"
)

// DiscountDuration mirrors the billing provider's coupon duration semantics.
type DiscountDuration string

const (
	DiscountDurationOnce      DiscountDuration = "once"
	DiscountDurationForever   DiscountDuration = "forever"
	DiscountDurationRepeating DiscountDuration = "repeating"
)

// Status is the derived display status of a campaign at a point in time.
// It is never stored; see the campaign service for the precedence rules.
type Status string

const (
	StatusPaused    Status = "paused"
	StatusSoldOut   Status = "sold_out"
	StatusScheduled Status = "scheduled"
	StatusEnded     Status = "ended"
	StatusActive    Status = "active"
)

type LandingPosition string

const (
	LandingPositionFloating LandingPosition = "floating"
	LandingPositionHero     LandingPosition = "hero"
	LandingPositionBanner   LandingPosition = "banner"
)

type PromotionalCampaign struct {
	ID          int64          `json:"id" db:"id"`
	Slug        string         `json:"slug" db:"slug"`
	Name        string         `json:"name" db:"name"`
	Description sql.NullString `json:"description,omitempty" db:"description"`

	// Scheduling window
	StartsAt time.Time `json:"starts_at" db:"starts_at"`
	EndsAt   time.Time `json:"ends_at" db:"ends_at"`

	// Capacity. MaxRedemptions null means unlimited. CurrentRedemptions is
	// incremented only by the billing webhook path, never by read paths.
	MaxRedemptions     sql.NullInt32 `json:"max_redemptions,omitempty" db:"max_redemptions"`
	CurrentRedemptions int           `json:"current_redemptions" db:"current_redemptions"`

	// Eligibility
	TargetPlans  pq.StringArray `json:"target_plans" db:"target_plans"`
	NewUsersOnly bool           `json:"new_users_only" db:"new_users_only"`

	// Discount rule. DiscountValue is percentage points for percent campaigns
	// and minor currency units (cents) otherwise.
	DiscountType     DiscountType     `json:"discount_type" db:"discount_type"`
	DiscountValue    int64            `json:"discount_value" db:"discount_value"`
	DiscountDuration DiscountDuration `json:"discount_duration" db:"discount_duration"`
	DiscountMonths   sql.NullInt32    `json:"discount_months,omitempty" db:"discount_months"`

	// Billing provider passthrough, opaque to this service
	StripeCouponID sql.NullString    `json:"stripe_coupon_id,omitempty" db:"stripe_coupon_id"`
	StripePriceIDs map[string]string `json:"stripe_price_ids,omitempty" db:"stripe_price_ids"`

	// Presentation
	BadgeText         string          `json:"badge_text" db:"badge_text"`
	BannerHeadline    string          `json:"banner_headline" db:"banner_headline"`
	BannerSubheadline string          `json:"banner_subheadline" db:"banner_subheadline"`
	BannerCTA         string          `json:"banner_cta" db:"banner_cta"`
	HighlightColor    string          `json:"highlight_color" db:"highlight_color"`
	BackgroundColor   string          `json:"background_color" db:"background_color"`
	TextColor         string          `json:"text_color" db:"text_color"`
	ShowCountdown     bool            `json:"show_countdown" db:"show_countdown"`
	ShowSpotsLeft     bool            `json:"show_spots_remaining" db:"show_spots_remaining"`
	ShowOriginalPrice bool            `json:"show_original_price" db:"show_original_price"`
	ShowOnLanding     bool            `json:"show_on_landing" db:"show_on_landing"`
	ShowOnPricing     bool            `json:"show_on_pricing" db:"show_on_pricing"`
	LandingPosition   LandingPosition `json:"landing_position" db:"landing_position"`
	IsFeatured        bool            `json:"is_featured" db:"is_featured"`

	// Lifecycle. IsActive is the manual pause switch, independent of dates.
	IsActive  bool          `json:"is_active" db:"is_active"`
	CreatedBy sql.NullInt64 `json:"created_by,omitempty" db:"created_by"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// TimeRemaining is the countdown decomposition of the time left until a
// campaign's end. All numeric fields are zero once expired.
type TimeRemaining struct {
	Days      int  `json:"days"`
	Hours     int  `json:"hours"`
	Minutes   int  `json:"minutes"`
	Seconds   int  `json:"seconds"`
	IsExpired bool `json:"is_expired"`
	IsUrgent  bool `json:"is_urgent"`
}

type CampaignStats struct {
	TotalCampaigns   int64 `json:"total_campaigns"`
	ActiveCampaigns  int64 `json:"active_campaigns"`
	EndedCampaigns   int64 `json:"ended_campaigns"`
	TotalRedemptions int64 `json:"total_redemptions"`
}
