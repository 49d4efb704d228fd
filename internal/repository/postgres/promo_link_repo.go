// internal/repository/postgres/promo_link_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"fotolio-service/internal/domain/promolink"
	xerrors "fotolio-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PromoLinkRepository struct {
	db *pgxpool.Pool
}

func NewPromoLinkRepository(db *pgxpool.Pool) *PromoLinkRepository {
	return &PromoLinkRepository{db: db}
}

// Create creates a new promo link
func (r *PromoLinkRepository) Create(ctx context.Context, l *promolink.PromoLink) error {
	query := `
		INSERT INTO promo_links (campaign_id, token, name, target_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, clicks, created_at
	`

	err := r.db.QueryRow(ctx, query, l.CampaignID, l.Token, l.Name, l.TargetURL).
		Scan(&l.ID, &l.Clicks, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create promo link: %w", err)
	}

	return nil
}

// FindByToken retrieves a promo link by its public token
func (r *PromoLinkRepository) FindByToken(ctx context.Context, token string) (*promolink.PromoLink, error) {
	query := `
		SELECT id, campaign_id, token, name, target_url, clicks, created_at
		FROM promo_links
		WHERE token = $1
	`

	var l promolink.PromoLink
	err := r.db.QueryRow(ctx, query, token).Scan(
		&l.ID, &l.CampaignID, &l.Token, &l.Name, &l.TargetURL, &l.Clicks, &l.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find promo link: %w", err)
	}

	return &l, nil
}

// ListByCampaign retrieves all links attached to a campaign
func (r *PromoLinkRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]promolink.PromoLink, error) {
	query := `
		SELECT id, campaign_id, token, name, target_url, clicks, created_at
		FROM promo_links
		WHERE campaign_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list promo links: %w", err)
	}
	defer rows.Close()

	links := []promolink.PromoLink{}
	for rows.Next() {
		var l promolink.PromoLink
		if err := rows.Scan(&l.ID, &l.CampaignID, &l.Token, &l.Name, &l.TargetURL, &l.Clicks, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan promo link: %w", err)
		}
		links = append(links, l)
	}

	return links, nil
}

// AddClicks folds a batch of counted clicks into the persisted total.
func (r *PromoLinkRepository) AddClicks(ctx context.Context, id int64, n int64) error {
	query := `UPDATE promo_links SET clicks = clicks + $1 WHERE id = $2`

	result, err := r.db.Exec(ctx, query, n, id)
	if err != nil {
		return fmt.Errorf("failed to add clicks: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Delete deletes a promo link
func (r *PromoLinkRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM promo_links WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete promo link: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
