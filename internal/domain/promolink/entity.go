// internal/domain/promolink/entity.go
package promolink

import "time"

// PromoLink is a click-tracking record attached to a campaign for
// attribution. The token is the stable public identifier used in
// marketing URLs.
type PromoLink struct {
	ID         int64     `json:"id" db:"id"`
	CampaignID int64     `json:"campaign_id" db:"campaign_id"`
	Token      string    `json:"token" db:"token"`
	Name       string    `json:"name" db:"name"`
	TargetURL  string    `json:"target_url" db:"target_url"`
	Clicks     int64     `json:"clicks" db:"clicks"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type CreateLinkRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	TargetURL string `json:"target_url" binding:"required,url"`
}

// LinkStats combines the persisted click total with the live counter
// kept in Redis since the last flush.
type LinkStats struct {
	Link       *PromoLink `json:"link"`
	LiveClicks int64      `json:"live_clicks"`
}
