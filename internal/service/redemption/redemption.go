// internal/service/redemption/redemption.go
//
// Processes billing webhook events into campaign redemptions. The
// billing provider retries deliveries, so every event carries a unique
// id and processing is idempotent: an event id is consumed at most
// once, and the redemption counter can never pass the cap.
package redemption

import (
	"context"
	"fmt"
	"time"

	"fotolio-service/internal/domain/campaign"
	"fotolio-service/internal/metrics"
	xerrors "fotolio-service/internal/pkg/errors"
	"fotolio-service/internal/repository/postgres"
	campaignsvc "fotolio-service/internal/service/campaign"

	"go.uber.org/zap"
)

// BillingEvent is the subset of the provider webhook payload the
// service acts on.
type BillingEvent struct {
	EventID      string `json:"event_id" binding:"required"`
	Type         string `json:"type" binding:"required"`
	CampaignSlug string `json:"campaign_slug" binding:"required"`
	CustomerID   string `json:"customer_id"`
}

// EventTypeCheckoutCompleted is the only event type that counts as a
// redemption. Other types are acknowledged and dropped.
const EventTypeCheckoutCompleted = "checkout.completed"

type RedemptionService struct {
	db           *postgres.DB
	campaignRepo *postgres.CampaignRepository
	eventRepo    *postgres.BillingEventRepository
	campaignSvc  *campaignsvc.CampaignService
	logger       *zap.Logger
}

func NewRedemptionService(
	db *postgres.DB,
	campaignRepo *postgres.CampaignRepository,
	eventRepo *postgres.BillingEventRepository,
	campaignSvc *campaignsvc.CampaignService,
	logger *zap.Logger,
) *RedemptionService {
	return &RedemptionService{
		db:           db,
		campaignRepo: campaignRepo,
		eventRepo:    eventRepo,
		campaignSvc:  campaignSvc,
		logger:       logger,
	}
}

// HandleBillingEvent consumes one webhook event. Duplicate deliveries
// return ErrDuplicateEvent, an exhausted campaign returns ErrSoldOut;
// both leave the database unchanged. The event record and the counter
// increment commit in a single transaction so a crash between them
// cannot eat or double-count a redemption.
func (s *RedemptionService) HandleBillingEvent(ctx context.Context, event *BillingEvent) (*campaign.PromotionalCampaign, error) {
	if event.Type != EventTypeCheckoutCompleted {
		s.logger.Debug("ignoring billing event type", zap.String("type", event.Type))
		return nil, nil
	}

	c, err := s.campaignRepo.FindBySlug(ctx, event.CampaignSlug)
	if err != nil {
		return nil, err
	}

	if !s.campaignSvc.IsRedeemable(c, time.Now()) {
		status := s.campaignSvc.Status(c, time.Now())
		metrics.RecordRedemption(c.Slug, "rejected")
		s.logger.Warn("billing event for non-redeemable campaign",
			zap.String("event_id", event.EventID),
			zap.String("slug", c.Slug),
			zap.String("status", string(status)))
		if status == campaign.StatusSoldOut {
			return nil, xerrors.ErrSoldOut
		}
		return nil, fmt.Errorf("%w: campaign is %s", xerrors.ErrInvalidInput, status)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	fresh, err := s.eventRepo.RecordTx(ctx, tx, event.EventID, c.ID)
	if err != nil {
		return nil, err
	}
	if !fresh {
		metrics.RecordRedemption(c.Slug, "duplicate")
		s.logger.Info("duplicate billing event ignored",
			zap.String("event_id", event.EventID),
			zap.String("slug", c.Slug))
		return nil, xerrors.ErrDuplicateEvent
	}

	// Guarded increment: the row update only applies while the counter
	// is below the cap, so concurrent webhooks cannot oversell.
	incremented, err := s.campaignRepo.IncrementRedemptionsTx(ctx, tx, c.ID)
	if err != nil {
		return nil, err
	}
	if !incremented {
		metrics.RecordRedemption(c.Slug, "sold_out")
		return nil, xerrors.ErrSoldOut
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	c.CurrentRedemptions++
	metrics.RecordRedemption(c.Slug, "recorded")
	s.logger.Info("redemption recorded",
		zap.String("event_id", event.EventID),
		zap.String("slug", c.Slug),
		zap.Int("current_redemptions", c.CurrentRedemptions))

	return c, nil
}
