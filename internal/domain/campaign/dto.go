// internal/domain/campaign/dto.go
package campaign

import "time"

type CreateCampaignRequest struct {
	Slug        string `json:"slug" binding:"required,max=64"`
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`

	// Template names a preset that pre-fills discount and banner fields.
	// Explicit fields in the request win over template defaults.
	Template string `json:"template"`

	// Scheduling window
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`

	// Capacity
	MaxRedemptions *int32 `json:"max_redemptions" binding:"omitempty,min=1"`

	// Eligibility
	TargetPlans  []string `json:"target_plans" binding:"required,min=1"`
	NewUsersOnly bool     `json:"new_users_only"`

	// Discount rule
	DiscountType     DiscountType     `json:"discount_type"`
	DiscountValue    int64            `json:"discount_value" binding:"omitempty,min=0"`
	DiscountDuration DiscountDuration `json:"discount_duration"`
	DiscountMonths   *int32           `json:"discount_months" binding:"omitempty,min=1"`

	// Billing passthrough
	StripeCouponID string            `json:"stripe_coupon_id"`
	StripePriceIDs map[string]string `json:"stripe_price_ids"`

	// Presentation
	BadgeText         string          `json:"badge_text"`
	BannerHeadline    string          `json:"banner_headline"`
	BannerSubheadline string          `json:"banner_subheadline"`
	BannerCTA         string          `json:"banner_cta"`
	HighlightColor    string          `json:"highlight_color"`
	BackgroundColor   string          `json:"background_color"`
	TextColor         string          `json:"text_color"`
	ShowCountdown     bool            `json:"show_countdown"`
	ShowSpotsLeft     bool            `json:"show_spots_remaining"`
	ShowOriginalPrice bool            `json:"show_original_price"`
	ShowOnLanding     bool            `json:"show_on_landing"`
	ShowOnPricing     bool            `json:"show_on_pricing"`
	LandingPosition   LandingPosition `json:"landing_position"`
	IsFeatured        bool            `json:"is_featured"`
}

type UpdateCampaignRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`

	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`

	MaxRedemptions *int32 `json:"max_redemptions" binding:"omitempty,min=1"`

	TargetPlans  []string `json:"target_plans"`
	NewUsersOnly *bool    `json:"new_users_only"`

	DiscountValue    *int64            `json:"discount_value" binding:"omitempty,min=0"`
	DiscountDuration *DiscountDuration `json:"discount_duration"`
	DiscountMonths   *int32            `json:"discount_months" binding:"omitempty,min=1"`

	StripeCouponID *string           `json:"stripe_coupon_id"`
	StripePriceIDs map[string]string `json:"stripe_price_ids"`

	BadgeText         *string          `json:"badge_text"`
	BannerHeadline    *string          `json:"banner_headline"`
	BannerSubheadline *string          `json:"banner_subheadline"`
	BannerCTA         *string          `json:"banner_cta"`
	HighlightColor    *string          `json:"highlight_color"`
	BackgroundColor   *string          `json:"background_color"`
	TextColor         *string          `json:"text_color"`
	ShowCountdown     *bool            `json:"show_countdown"`
	ShowSpotsLeft     *bool            `json:"show_spots_remaining"`
	ShowOriginalPrice *bool            `json:"show_original_price"`
	ShowOnLanding     *bool            `json:"show_on_landing"`
	ShowOnPricing     *bool            `json:"show_on_pricing"`
	LandingPosition   *LandingPosition `json:"landing_position"`
	IsFeatured        *bool            `json:"is_featured"`
}

type CampaignListFilters struct {
	DiscountType *DiscountType `form:"discount_type"`
	IsActive     *bool         `form:"is_active"`
	Featured     *bool         `form:"featured"`
	Search       string        `form:"search"`
	Page         int           `form:"page" binding:"omitempty,min=1"`
	PageSize     int           `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy       string        `form:"sort_by"`
	SortOrder    string        `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type CampaignListResponse struct {
	Campaigns  []PromotionalCampaign `json:"campaigns"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// PlanPricing is the per-plan price resolution under a campaign's rule.
// OriginalPrice is omitted when the campaign hides it.
type PlanPricing struct {
	PlanCode        string `json:"plan_code"`
	OriginalPrice   int64  `json:"original_price,omitempty"`
	DiscountedPrice int64  `json:"discounted_price"`
	Savings         int64  `json:"savings"`
}

// CampaignDisplay is the presentation-ready derived view of a campaign,
// computed from the record plus a single sampled instant.
type CampaignDisplay struct {
	Campaign       *PromotionalCampaign `json:"campaign"`
	Status         Status               `json:"status"`
	SpotsRemaining *int                 `json:"spots_remaining"` // null means unlimited
	TimeRemaining  TimeRemaining        `json:"time_remaining"`
	DiscountLabel  string               `json:"discount_label"`
	PromoURL       string               `json:"promo_url"`
	PlanPricing    []PlanPricing        `json:"plan_pricing,omitempty"`
}
