// internal/service/campaign/campaign.go
package campaign

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"fotolio-service/internal/domain/campaign"
	xerrors "fotolio-service/internal/pkg/errors"
	"fotolio-service/internal/repository/postgres"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]{3,64}$`)

type CampaignService struct {
	campaignRepo *postgres.CampaignRepository
	planRepo     *postgres.PlanRepository
	baseURL      string
	logger       *zap.Logger
}

func NewCampaignService(campaignRepo *postgres.CampaignRepository, planRepo *postgres.PlanRepository, baseURL string, logger *zap.Logger) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		planRepo:     planRepo,
		baseURL:      baseURL,
		logger:       logger,
	}
}

// ========== Admin Operations ==========

// CreateCampaign creates a new promotional campaign (admin only).
// This is the validation boundary: the evaluators assume records that
// passed here, and do not re-validate on every call.
func (s *CampaignService) CreateCampaign(ctx context.Context, req *campaign.CreateCampaignRequest, createdBy int64) (*campaign.PromotionalCampaign, error) {
	if req.Template != "" {
		tmpl, ok := CampaignTemplate(req.Template)
		if !ok {
			return nil, fmt.Errorf("%w: unknown campaign template %q", xerrors.ErrInvalidInput, req.Template)
		}
		applyTemplate(req, tmpl)
	}

	if !slugPattern.MatchString(req.Slug) {
		return nil, fmt.Errorf("%w: slug must be 3-64 lowercase letters, digits, or hyphens", xerrors.ErrInvalidInput)
	}

	if !req.EndsAt.After(req.StartsAt) {
		return nil, fmt.Errorf("%w: end date must be after start date", xerrors.ErrInvalidInput)
	}

	if len(req.TargetPlans) == 0 {
		return nil, fmt.Errorf("%w: campaign must target at least one plan", xerrors.ErrInvalidInput)
	}

	if err := validateDiscountRule(req.DiscountType, req.DiscountValue, req.DiscountDuration, req.DiscountMonths); err != nil {
		return nil, err
	}

	exists, err := s.campaignRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: slug %q", xerrors.ErrConflict, req.Slug)
	}

	c := &campaign.PromotionalCampaign{
		Slug:              req.Slug,
		Name:              req.Name,
		Description:       sql.NullString{String: req.Description, Valid: req.Description != ""},
		StartsAt:          req.StartsAt,
		EndsAt:            req.EndsAt,
		TargetPlans:       pq.StringArray(req.TargetPlans),
		NewUsersOnly:      req.NewUsersOnly,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		DiscountDuration:  req.DiscountDuration,
		StripeCouponID:    sql.NullString{String: req.StripeCouponID, Valid: req.StripeCouponID != ""},
		StripePriceIDs:    req.StripePriceIDs,
		BadgeText:         req.BadgeText,
		BannerHeadline:    req.BannerHeadline,
		BannerSubheadline: req.BannerSubheadline,
		BannerCTA:         req.BannerCTA,
		HighlightColor:    req.HighlightColor,
		BackgroundColor:   req.BackgroundColor,
		TextColor:         req.TextColor,
		ShowCountdown:     req.ShowCountdown,
		ShowSpotsLeft:     req.ShowSpotsLeft,
		ShowOriginalPrice: req.ShowOriginalPrice,
		ShowOnLanding:     req.ShowOnLanding,
		ShowOnPricing:     req.ShowOnPricing,
		LandingPosition:   req.LandingPosition,
		IsFeatured:        req.IsFeatured,
		IsActive:          true,
		CreatedBy:         sql.NullInt64{Int64: createdBy, Valid: createdBy != 0},
	}

	if c.LandingPosition == "" {
		c.LandingPosition = campaign.LandingPositionFloating
	}
	if req.MaxRedemptions != nil {
		c.MaxRedemptions = sql.NullInt32{Int32: *req.MaxRedemptions, Valid: true}
	}
	if req.DiscountMonths != nil {
		c.DiscountMonths = sql.NullInt32{Int32: *req.DiscountMonths, Valid: true}
	}

	if err := s.campaignRepo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create campaign", zap.Error(err))
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.logger.Info("campaign created",
		zap.Int64("campaign_id", c.ID),
		zap.String("slug", c.Slug),
		zap.String("discount_type", string(c.DiscountType)),
	)

	return c, nil
}

// UpdateCampaign updates a promotional campaign (admin only). The slug
// is immutable once published; there is deliberately no way to change it.
func (s *CampaignService) UpdateCampaign(ctx context.Context, id int64, req *campaign.UpdateCampaignRequest) (*campaign.PromotionalCampaign, error) {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}
	if req.StartsAt != nil {
		c.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		c.EndsAt = *req.EndsAt
	}
	if req.MaxRedemptions != nil {
		c.MaxRedemptions = sql.NullInt32{Int32: *req.MaxRedemptions, Valid: true}
	}
	if req.TargetPlans != nil {
		c.TargetPlans = pq.StringArray(req.TargetPlans)
	}
	if req.NewUsersOnly != nil {
		c.NewUsersOnly = *req.NewUsersOnly
	}
	if req.DiscountValue != nil {
		c.DiscountValue = *req.DiscountValue
	}
	if req.DiscountDuration != nil {
		c.DiscountDuration = *req.DiscountDuration
	}
	if req.DiscountMonths != nil {
		c.DiscountMonths = sql.NullInt32{Int32: *req.DiscountMonths, Valid: true}
	}
	if req.StripeCouponID != nil {
		c.StripeCouponID = sql.NullString{String: *req.StripeCouponID, Valid: *req.StripeCouponID != ""}
	}
	if req.StripePriceIDs != nil {
		c.StripePriceIDs = req.StripePriceIDs
	}
	if req.BadgeText != nil {
		c.BadgeText = *req.BadgeText
	}
	if req.BannerHeadline != nil {
		c.BannerHeadline = *req.BannerHeadline
	}
	if req.BannerSubheadline != nil {
		c.BannerSubheadline = *req.BannerSubheadline
	}
	if req.BannerCTA != nil {
		c.BannerCTA = *req.BannerCTA
	}
	if req.HighlightColor != nil {
		c.HighlightColor = *req.HighlightColor
	}
	if req.BackgroundColor != nil {
		c.BackgroundColor = *req.BackgroundColor
	}
	if req.TextColor != nil {
		c.TextColor = *req.TextColor
	}
	if req.ShowCountdown != nil {
		c.ShowCountdown = *req.ShowCountdown
	}
	if req.ShowSpotsLeft != nil {
		c.ShowSpotsLeft = *req.ShowSpotsLeft
	}
	if req.ShowOriginalPrice != nil {
		c.ShowOriginalPrice = *req.ShowOriginalPrice
	}
	if req.ShowOnLanding != nil {
		c.ShowOnLanding = *req.ShowOnLanding
	}
	if req.ShowOnPricing != nil {
		c.ShowOnPricing = *req.ShowOnPricing
	}
	if req.LandingPosition != nil {
		c.LandingPosition = *req.LandingPosition
	}
	if req.IsFeatured != nil {
		c.IsFeatured = *req.IsFeatured
	}

	if !c.EndsAt.After(c.StartsAt) {
		return nil, fmt.Errorf("%w: end date must be after start date", xerrors.ErrInvalidInput)
	}
	if len(c.TargetPlans) == 0 {
		return nil, fmt.Errorf("%w: campaign must target at least one plan", xerrors.ErrInvalidInput)
	}

	var months *int32
	if c.DiscountMonths.Valid {
		months = &c.DiscountMonths.Int32
	}
	if err := validateDiscountRule(c.DiscountType, c.DiscountValue, c.DiscountDuration, months); err != nil {
		return nil, err
	}

	if err := s.campaignRepo.Update(ctx, id, c); err != nil {
		s.logger.Error("failed to update campaign", zap.Error(err))
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	s.logger.Info("campaign updated", zap.Int64("campaign_id", id))

	return s.campaignRepo.FindByID(ctx, id)
}

// PauseCampaign flips the manual pause switch off (admin only)
func (s *CampaignService) PauseCampaign(ctx context.Context, id int64) error {
	if err := s.campaignRepo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("failed to pause campaign: %w", err)
	}

	s.logger.Info("campaign paused", zap.Int64("campaign_id", id))
	return nil
}

// ResumeCampaign re-enables a paused campaign (admin only)
func (s *CampaignService) ResumeCampaign(ctx context.Context, id int64) error {
	if err := s.campaignRepo.SetActive(ctx, id, true); err != nil {
		return fmt.Errorf("failed to resume campaign: %w", err)
	}

	s.logger.Info("campaign resumed", zap.Int64("campaign_id", id))
	return nil
}

// DeleteCampaign removes a campaign that was never redeemed (admin only).
// Redeemed campaigns can only be paused, to keep redemption history intact.
func (s *CampaignService) DeleteCampaign(ctx context.Context, id int64) error {
	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if c.CurrentRedemptions > 0 {
		return fmt.Errorf("%w: campaign has %d redemptions, pause it instead", xerrors.ErrConflict, c.CurrentRedemptions)
	}

	if err := s.campaignRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete campaign", zap.Error(err))
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	s.logger.Info("campaign deleted", zap.Int64("campaign_id", id), zap.String("slug", c.Slug))
	return nil
}

// ExtendCampaign pushes the end date out by the given number of days (admin only)
func (s *CampaignService) ExtendCampaign(ctx context.Context, id int64, days int) error {
	if days < 1 {
		return fmt.Errorf("extension days must be positive")
	}

	c, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	c.EndsAt = c.EndsAt.AddDate(0, 0, days)

	if err := s.campaignRepo.Update(ctx, id, c); err != nil {
		return fmt.Errorf("failed to extend campaign: %w", err)
	}

	s.logger.Info("campaign extended",
		zap.Int64("campaign_id", id),
		zap.Int("days", days),
		zap.Time("new_end_date", c.EndsAt),
	)

	return nil
}

// GetCampaignStats retrieves campaign statistics (admin only)
func (s *CampaignService) GetCampaignStats(ctx context.Context) (*campaign.CampaignStats, error) {
	stats, err := s.campaignRepo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign stats: %w", err)
	}

	return stats, nil
}

// ========== Read Path ==========

// GetCampaign retrieves a campaign by ID
func (s *CampaignService) GetCampaign(ctx context.Context, id int64) (*campaign.PromotionalCampaign, error) {
	return s.campaignRepo.FindByID(ctx, id)
}

// GetCampaignBySlug retrieves a campaign by its URL slug
func (s *CampaignService) GetCampaignBySlug(ctx context.Context, slug string) (*campaign.PromotionalCampaign, error) {
	return s.campaignRepo.FindBySlug(ctx, slug)
}

// ListCampaigns retrieves campaigns with filters (admin only)
func (s *CampaignService) ListCampaigns(ctx context.Context, filters *campaign.CampaignListFilters) (*campaign.CampaignListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}

	campaigns, total, err := s.campaignRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &campaign.CampaignListResponse{
		Campaigns:  campaigns,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetRedeemableDisplays returns the presentation-ready view of every
// campaign redeemable at the given instant.
func (s *CampaignService) GetRedeemableDisplays(ctx context.Context, now time.Time) ([]campaign.CampaignDisplay, error) {
	campaigns, err := s.campaignRepo.GetRedeemable(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get redeemable campaigns: %w", err)
	}

	plans, err := s.planRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	displays := make([]campaign.CampaignDisplay, 0, len(campaigns))
	for i := range campaigns {
		d, err := s.Display(&campaigns[i], now, plans)
		if err != nil {
			// A campaign with a corrupt discount type must not take the
			// whole listing down with it
			s.logger.Error("skipping undisplayable campaign",
				zap.String("slug", campaigns[i].Slug),
				zap.Error(err),
			)
			continue
		}
		displays = append(displays, *d)
	}

	return displays, nil
}

// GetDisplayBySlug returns the presentation-ready view of one campaign.
func (s *CampaignService) GetDisplayBySlug(ctx context.Context, slug string, now time.Time) (*campaign.CampaignDisplay, error) {
	c, err := s.campaignRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	plans, err := s.planRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return s.Display(c, now, plans)
}

// ========== Helpers ==========

func validateDiscountRule(discountType campaign.DiscountType, value int64, duration campaign.DiscountDuration, months *int32) error {
	switch discountType {
	case campaign.DiscountTypePercent:
		if value < 0 || value > 100 {
			return fmt.Errorf("%w: percent discount must be between 0 and 100", xerrors.ErrInvalidInput)
		}
	case campaign.DiscountTypeFixed, campaign.DiscountTypePriceOverride:
		if value < 0 {
			return fmt.Errorf("%w: discount value cannot be negative", xerrors.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: %q", xerrors.ErrUnknownDiscount, discountType)
	}

	switch duration {
	case campaign.DiscountDurationOnce, campaign.DiscountDurationForever:
		if months != nil {
			return fmt.Errorf("%w: discount months only applies to repeating discounts", xerrors.ErrInvalidInput)
		}
	case campaign.DiscountDurationRepeating:
		if months == nil || *months < 1 {
			return fmt.Errorf("%w: repeating discounts require discount months", xerrors.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: invalid discount duration %q", xerrors.ErrInvalidInput, duration)
	}

	return nil
}

// applyTemplate fills zero-valued request fields from a preset.
// Explicit request values always win.
func applyTemplate(req *campaign.CreateCampaignRequest, tmpl Template) {
	if req.DiscountType == "" {
		req.DiscountType = tmpl.DiscountType
	}
	if req.DiscountValue == 0 {
		req.DiscountValue = tmpl.DiscountValue
	}
	if req.DiscountDuration == "" {
		req.DiscountDuration = tmpl.DiscountDuration
	}
	if req.DiscountMonths == nil && tmpl.DiscountMonths > 0 {
		months := tmpl.DiscountMonths
		req.DiscountMonths = &months
	}
	if req.BadgeText == "" {
		req.BadgeText = tmpl.BadgeText
	}
	if req.BannerHeadline == "" {
		req.BannerHeadline = tmpl.BannerHeadline
	}
	if req.BannerSubheadline == "" {
		req.BannerSubheadline = tmpl.BannerSubheadline
	}
	if req.BannerCTA == "" {
		req.BannerCTA = tmpl.BannerCTA
	}
	if req.HighlightColor == "" {
		req.HighlightColor = tmpl.HighlightColor
	}
	if req.BackgroundColor == "" {
		req.BackgroundColor = tmpl.BackgroundColor
	}
	if req.TextColor == "" {
		req.TextColor = tmpl.TextColor
	}
	if !req.ShowCountdown {
		req.ShowCountdown = tmpl.ShowCountdown
	}
	if !req.ShowSpotsLeft {
		req.ShowSpotsLeft = tmpl.ShowSpotsLeft
	}
	if req.EndsAt.Equal(req.StartsAt) && tmpl.DefaultWindow > 0 {
		req.EndsAt = req.StartsAt.Add(tmpl.DefaultWindow)
	}
}
