// internal/repository/postgres/campaign_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"fotolio-service/internal/domain/campaign"
	xerrors "fotolio-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const campaignColumns = `
	id, slug, name, description, starts_at, ends_at,
	max_redemptions, current_redemptions, target_plans, new_users_only,
	discount_type, discount_value, discount_duration, discount_months,
	stripe_coupon_id, stripe_price_ids,
	badge_text, banner_headline, banner_subheadline, banner_cta,
	highlight_color, background_color, text_color,
	show_countdown, show_spots_remaining, show_original_price,
	show_on_landing, show_on_pricing, landing_position, is_featured,
	is_active, created_by, created_at, updated_at`

type CampaignRepository struct {
	db *pgxpool.Pool
}

func NewCampaignRepository(db *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*campaign.PromotionalCampaign, error) {
	var c campaign.PromotionalCampaign
	var priceIDsJSON []byte

	err := row.Scan(
		&c.ID, &c.Slug, &c.Name, &c.Description, &c.StartsAt, &c.EndsAt,
		&c.MaxRedemptions, &c.CurrentRedemptions, &c.TargetPlans, &c.NewUsersOnly,
		&c.DiscountType, &c.DiscountValue, &c.DiscountDuration, &c.DiscountMonths,
		&c.StripeCouponID, &priceIDsJSON,
		&c.BadgeText, &c.BannerHeadline, &c.BannerSubheadline, &c.BannerCTA,
		&c.HighlightColor, &c.BackgroundColor, &c.TextColor,
		&c.ShowCountdown, &c.ShowSpotsLeft, &c.ShowOriginalPrice,
		&c.ShowOnLanding, &c.ShowOnPricing, &c.LandingPosition, &c.IsFeatured,
		&c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(priceIDsJSON) > 0 {
		if err := json.Unmarshal(priceIDsJSON, &c.StripePriceIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stripe price ids: %w", err)
		}
	}

	return &c, nil
}

func marshalPriceIDs(c *campaign.PromotionalCampaign) ([]byte, error) {
	if c.StripePriceIDs == nil {
		return nil, nil
	}
	raw, err := json.Marshal(c.StripePriceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stripe price ids: %w", err)
	}
	return raw, nil
}

// Create creates a new promotional campaign
func (r *CampaignRepository) Create(ctx context.Context, c *campaign.PromotionalCampaign) error {
	query := `
		INSERT INTO promotional_campaigns (
			slug, name, description, starts_at, ends_at,
			max_redemptions, target_plans, new_users_only,
			discount_type, discount_value, discount_duration, discount_months,
			stripe_coupon_id, stripe_price_ids,
			badge_text, banner_headline, banner_subheadline, banner_cta,
			highlight_color, background_color, text_color,
			show_countdown, show_spots_remaining, show_original_price,
			show_on_landing, show_on_pricing, landing_position, is_featured,
			is_active, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		          $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26,
		          $27, $28, $29, $30)
		RETURNING id, current_redemptions, created_at, updated_at
	`

	priceIDsJSON, err := marshalPriceIDs(c)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(
		ctx, query,
		c.Slug, c.Name, c.Description, c.StartsAt, c.EndsAt,
		c.MaxRedemptions, c.TargetPlans, c.NewUsersOnly,
		c.DiscountType, c.DiscountValue, c.DiscountDuration, c.DiscountMonths,
		c.StripeCouponID, priceIDsJSON,
		c.BadgeText, c.BannerHeadline, c.BannerSubheadline, c.BannerCTA,
		c.HighlightColor, c.BackgroundColor, c.TextColor,
		c.ShowCountdown, c.ShowSpotsLeft, c.ShowOriginalPrice,
		c.ShowOnLanding, c.ShowOnPricing, c.LandingPosition, c.IsFeatured,
		c.IsActive, c.CreatedBy,
	).Scan(&c.ID, &c.CurrentRedemptions, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

// FindByID retrieves a campaign by ID
func (r *CampaignRepository) FindByID(ctx context.Context, id int64) (*campaign.PromotionalCampaign, error) {
	query := fmt.Sprintf(`SELECT %s FROM promotional_campaigns WHERE id = $1`, campaignColumns)

	c, err := scanCampaign(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}

	return c, nil
}

// FindBySlug retrieves a campaign by its URL slug
func (r *CampaignRepository) FindBySlug(ctx context.Context, slug string) (*campaign.PromotionalCampaign, error) {
	query := fmt.Sprintf(`SELECT %s FROM promotional_campaigns WHERE slug = $1`, campaignColumns)

	c, err := scanCampaign(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}

	return c, nil
}

// Update updates the mutable fields of a campaign. The slug is deliberately
// excluded: published marketing links depend on it staying stable.
func (r *CampaignRepository) Update(ctx context.Context, id int64, c *campaign.PromotionalCampaign) error {
	query := `
		UPDATE promotional_campaigns
		SET name = $1, description = $2, starts_at = $3, ends_at = $4,
		    max_redemptions = $5, target_plans = $6, new_users_only = $7,
		    discount_value = $8, discount_duration = $9, discount_months = $10,
		    stripe_coupon_id = $11, stripe_price_ids = $12,
		    badge_text = $13, banner_headline = $14, banner_subheadline = $15,
		    banner_cta = $16, highlight_color = $17, background_color = $18,
		    text_color = $19, show_countdown = $20, show_spots_remaining = $21,
		    show_original_price = $22, show_on_landing = $23, show_on_pricing = $24,
		    landing_position = $25, is_featured = $26, updated_at = $27
		WHERE id = $28
	`

	priceIDsJSON, err := marshalPriceIDs(c)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(
		ctx, query,
		c.Name, c.Description, c.StartsAt, c.EndsAt,
		c.MaxRedemptions, c.TargetPlans, c.NewUsersOnly,
		c.DiscountValue, c.DiscountDuration, c.DiscountMonths,
		c.StripeCouponID, priceIDsJSON,
		c.BadgeText, c.BannerHeadline, c.BannerSubheadline,
		c.BannerCTA, c.HighlightColor, c.BackgroundColor,
		c.TextColor, c.ShowCountdown, c.ShowSpotsLeft,
		c.ShowOriginalPrice, c.ShowOnLanding, c.ShowOnPricing,
		c.LandingPosition, c.IsFeatured, time.Now(), id,
	)

	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// SetActive flips the manual pause switch
func (r *CampaignRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE promotional_campaigns SET is_active = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update campaign active flag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// IncrementRedemptionsTx atomically records one redemption inside a
// transaction, guarded by the capacity cap. Returns false when the
// campaign is already at its redemption limit.
func (r *CampaignRepository) IncrementRedemptionsTx(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	query := `
		UPDATE promotional_campaigns
		SET current_redemptions = current_redemptions + 1, updated_at = $1
		WHERE id = $2
		  AND (max_redemptions IS NULL OR current_redemptions < max_redemptions)
	`

	result, err := tx.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("failed to increment redemptions: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete deletes a campaign
func (r *CampaignRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM promotional_campaigns WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// List retrieves campaigns with filters
func (r *CampaignRepository) List(ctx context.Context, filters *campaign.CampaignListFilters) ([]campaign.PromotionalCampaign, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.DiscountType != nil {
		conditions = append(conditions, fmt.Sprintf("discount_type = $%d", argPos))
		args = append(args, *filters.DiscountType)
		argPos++
	}

	if filters.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}

	if filters.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("is_featured = $%d", argPos))
		args = append(args, *filters.Featured)
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d OR slug ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM promotional_campaigns %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	offset := (filters.Page - 1) * filters.PageSize

	sortBy := "created_at"
	switch filters.SortBy {
	case "starts_at", "ends_at", "name":
		sortBy = filters.SortBy
	}
	sortOrder := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM promotional_campaigns
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, campaignColumns, whereClause, sortBy, sortOrder, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []campaign.PromotionalCampaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, *c)
	}

	return campaigns, total, nil
}

// GetRedeemable retrieves campaigns that are redeemable at the given
// instant: manually on, inside their window, and with capacity left.
func (r *CampaignRepository) GetRedeemable(ctx context.Context, now time.Time) ([]campaign.PromotionalCampaign, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM promotional_campaigns
		WHERE is_active = true
		  AND starts_at <= $1 AND ends_at >= $1
		  AND (max_redemptions IS NULL OR current_redemptions < max_redemptions)
		ORDER BY is_featured DESC, created_at DESC
	`, campaignColumns)

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get redeemable campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []campaign.PromotionalCampaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, *c)
	}

	return campaigns, nil
}

// GetStats retrieves campaign statistics
func (r *CampaignRepository) GetStats(ctx context.Context) (*campaign.CampaignStats, error) {
	query := `
		SELECT
			COUNT(*) as total,
			COUNT(CASE WHEN is_active AND starts_at <= NOW() AND ends_at >= NOW() THEN 1 END) as active,
			COUNT(CASE WHEN ends_at < NOW() THEN 1 END) as ended,
			COALESCE(SUM(current_redemptions), 0) as total_redemptions
		FROM promotional_campaigns
	`

	var stats campaign.CampaignStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalCampaigns,
		&stats.ActiveCampaigns,
		&stats.EndedCampaigns,
		&stats.TotalRedemptions,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &stats, nil
}

// ExistsBySlug checks if a slug is already taken
func (r *CampaignRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM promotional_campaigns WHERE slug = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, slug).Scan(&exists)
	return exists, err
}
