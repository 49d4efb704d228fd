// internal/websocket/hub.go
//
// Live countdown fan-out. Browsers on a promo page open one socket per
// campaign; the hub pushes a countdown frame every second so every
// visitor sees the same ticking clock, and status flips (sold out,
// ended) propagate without a page reload.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"fotolio-service/internal/domain/campaign"
	"fotolio-service/internal/repository/postgres"
	campaignsvc "fotolio-service/internal/service/campaign"

	"go.uber.org/zap"
)

// snapshotRefresh bounds how stale the per-slug campaign snapshot can
// get. Redemption counts and pauses land within this window; the
// countdown itself is computed fresh every tick.
const snapshotRefresh = 10 * time.Second

type CountdownFrame struct {
	Slug           string                 `json:"slug"`
	Status         campaign.Status        `json:"status"`
	TimeRemaining  campaign.TimeRemaining `json:"time_remaining"`
	SpotsRemaining *int                   `json:"spots_remaining"`
}

type Hub struct {
	// Connected clients grouped by campaign slug
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client

	// Latest campaign record per subscribed slug
	snapshots map[string]*campaign.PromotionalCampaign

	campaignRepo *postgres.CampaignRepository
	campaignSvc  *campaignsvc.CampaignService
	logger       *zap.Logger
}

func NewHub(campaignRepo *postgres.CampaignRepository, campaignSvc *campaignsvc.CampaignService, logger *zap.Logger) *Hub {
	return &Hub{
		clients:      make(map[string]map[*Client]bool),
		Register:     make(chan *Client),
		unregister:   make(chan *Client),
		snapshots:    make(map[string]*campaign.PromotionalCampaign),
		campaignRepo: campaignRepo,
		campaignSvc:  campaignSvc,
		logger:       logger,
	}
}

// KnownSlug reports whether the slug resolves to a campaign. Checked by
// the handler before upgrading the connection.
func (h *Hub) KnownSlug(ctx context.Context, slug string) bool {
	h.mu.RLock()
	_, cached := h.snapshots[slug]
	h.mu.RUnlock()
	if cached {
		return true
	}

	c, err := h.campaignRepo.FindBySlug(ctx, slug)
	if err != nil {
		return false
	}

	h.mu.Lock()
	h.snapshots[slug] = c
	h.mu.Unlock()
	return true
}

func (h *Hub) Run(ctx context.Context) {
	tick := time.NewTicker(time.Second)
	refresh := time.NewTicker(snapshotRefresh)
	defer tick.Stop()
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-tick.C:
			h.broadcastCountdowns(time.Now())

		case <-refresh.C:
			h.refreshSnapshots(ctx)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.slug] == nil {
		h.clients[client.slug] = make(map[*Client]bool)
	}
	h.clients[client.slug][client] = true

	h.logger.Debug("countdown client connected",
		zap.String("slug", client.slug),
		zap.Int("total", h.totalClients()))

	// First frame immediately so the page does not wait a tick
	if c, ok := h.snapshots[client.slug]; ok {
		if data, err := h.frame(c, time.Now()); err == nil {
			client.Send(data)
		}
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.slug]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()

			if len(clients) == 0 {
				delete(h.clients, client.slug)
				delete(h.snapshots, client.slug)
			}

			h.logger.Debug("countdown client disconnected",
				zap.String("slug", client.slug),
				zap.Int("total", h.totalClients()))
		}
	}
}

func (h *Hub) broadcastCountdowns(now time.Time) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for slug, clients := range h.clients {
		c, ok := h.snapshots[slug]
		if !ok {
			continue
		}

		data, err := h.frame(c, now)
		if err != nil {
			h.logger.Warn("failed to build countdown frame",
				zap.String("slug", slug), zap.Error(err))
			continue
		}

		for client := range clients {
			client.Send(data)
		}
	}
}

func (h *Hub) refreshSnapshots(ctx context.Context) {
	h.mu.RLock()
	slugs := make([]string, 0, len(h.clients))
	for slug := range h.clients {
		slugs = append(slugs, slug)
	}
	h.mu.RUnlock()

	for _, slug := range slugs {
		c, err := h.campaignRepo.FindBySlug(ctx, slug)
		if err != nil {
			h.logger.Warn("failed to refresh campaign snapshot",
				zap.String("slug", slug), zap.Error(err))
			continue
		}

		h.mu.Lock()
		if _, stillWatched := h.clients[slug]; stillWatched {
			h.snapshots[slug] = c
		}
		h.mu.Unlock()
	}
}

func (h *Hub) frame(c *campaign.PromotionalCampaign, now time.Time) ([]byte, error) {
	return json.Marshal(CountdownFrame{
		Slug:           c.Slug,
		Status:         h.campaignSvc.Status(c, now),
		TimeRemaining:  h.campaignSvc.TimeRemaining(c, now),
		SpotsRemaining: h.campaignSvc.SpotsRemaining(c),
	})
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
	h.clients = make(map[string]map[*Client]bool)
	h.snapshots = make(map[string]*campaign.PromotionalCampaign)
}
