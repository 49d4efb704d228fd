// internal/service/promolink/promolink.go
//
// Promo links give each marketing channel its own short tracked URL for
// a campaign. Click counting is write-heavy and loss-tolerant, so hot
// counters live in Redis and are folded into Postgres periodically.
package promolink

import (
	"context"
	"fmt"
	"strconv"

	"fotolio-service/internal/domain/promolink"
	"fotolio-service/internal/metrics"
	xerrors "fotolio-service/internal/pkg/errors"
	"fotolio-service/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type PromoLinkService struct {
	linkRepo     *postgres.PromoLinkRepository
	campaignRepo *postgres.CampaignRepository
	redis        *redis.Client
	logger       *zap.Logger
}

func NewPromoLinkService(
	linkRepo *postgres.PromoLinkRepository,
	campaignRepo *postgres.CampaignRepository,
	redisClient *redis.Client,
	logger *zap.Logger,
) *PromoLinkService {
	return &PromoLinkService{
		linkRepo:     linkRepo,
		campaignRepo: campaignRepo,
		redis:        redisClient,
		logger:       logger,
	}
}

func clickKey(linkID int64) string {
	return fmt.Sprintf("promolink:clicks:%d", linkID)
}

// CreateLink attaches a new tracked link to a campaign. The token is a
// ULID: URL-safe, unguessable enough for attribution, and sortable by
// creation time.
func (s *PromoLinkService) CreateLink(ctx context.Context, campaignID int64, req *promolink.CreateLinkRequest) (*promolink.PromoLink, error) {
	if _, err := s.campaignRepo.FindByID(ctx, campaignID); err != nil {
		return nil, err
	}

	link := &promolink.PromoLink{
		CampaignID: campaignID,
		Token:      ulid.Make().String(),
		Name:       req.Name,
		TargetURL:  req.TargetURL,
	}

	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}

	s.logger.Info("promo link created",
		zap.Int64("campaign_id", campaignID),
		zap.String("token", link.Token),
		zap.String("name", link.Name))

	return link, nil
}

// ResolveAndTrack resolves a token to its redirect target and counts
// the click. The Redis increment is best effort: a counter failure must
// not break the redirect.
func (s *PromoLinkService) ResolveAndTrack(ctx context.Context, token string) (string, error) {
	link, err := s.linkRepo.FindByToken(ctx, token)
	if err != nil {
		return "", err
	}

	if err := s.redis.Incr(ctx, clickKey(link.ID)).Err(); err != nil {
		s.logger.Warn("failed to count promo click",
			zap.Int64("link_id", link.ID),
			zap.Error(err))
	}

	if c, err := s.campaignRepo.FindByID(ctx, link.CampaignID); err == nil {
		metrics.RecordPromoClick(c.Slug)
	}

	return link.TargetURL, nil
}

// ListLinks lists the links for a campaign with their live counters.
func (s *PromoLinkService) ListLinks(ctx context.Context, campaignID int64) ([]promolink.LinkStats, error) {
	links, err := s.linkRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	stats := make([]promolink.LinkStats, 0, len(links))
	for i := range links {
		live, err := s.liveClicks(ctx, links[i].ID)
		if err != nil {
			s.logger.Warn("failed to read live clicks",
				zap.Int64("link_id", links[i].ID),
				zap.Error(err))
		}
		stats = append(stats, promolink.LinkStats{Link: &links[i], LiveClicks: live})
	}

	return stats, nil
}

// GetStats returns one link with its live counter.
func (s *PromoLinkService) GetStats(ctx context.Context, token string) (*promolink.LinkStats, error) {
	link, err := s.linkRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	live, err := s.liveClicks(ctx, link.ID)
	if err != nil {
		return nil, err
	}

	return &promolink.LinkStats{Link: link, LiveClicks: live}, nil
}

// FlushClicks folds the Redis counter for a link into its persisted
// total. GetDel makes the drain atomic: clicks arriving after the read
// land in a fresh counter.
func (s *PromoLinkService) FlushClicks(ctx context.Context, linkID int64) error {
	val, err := s.redis.GetDel(ctx, clickKey(linkID)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to drain click counter: %w", err)
	}

	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil || n <= 0 {
		return nil
	}

	if err := s.linkRepo.AddClicks(ctx, linkID, n); err != nil {
		return err
	}

	s.logger.Debug("flushed promo clicks",
		zap.Int64("link_id", linkID),
		zap.Int64("clicks", n))

	return nil
}

// FlushCampaignClicks drains the counters for every link on a campaign.
func (s *PromoLinkService) FlushCampaignClicks(ctx context.Context, campaignID int64) error {
	links, err := s.linkRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return err
	}

	for i := range links {
		if err := s.FlushClicks(ctx, links[i].ID); err != nil {
			return err
		}
	}

	return nil
}

// DeleteLink removes a link after draining its counter.
func (s *PromoLinkService) DeleteLink(ctx context.Context, id int64) error {
	if err := s.FlushClicks(ctx, id); err != nil && !xerrors.Is(err, xerrors.ErrNotFound) {
		return err
	}
	return s.linkRepo.Delete(ctx, id)
}

func (s *PromoLinkService) liveClicks(ctx context.Context, linkID int64) (int64, error) {
	val, err := s.redis.Get(ctx, clickKey(linkID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}
