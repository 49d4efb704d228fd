// internal/app/router.go
package app

import (
	authHandler "fotolio-service/internal/handlers/auth"
	campaignHandler "fotolio-service/internal/handlers/campaign"
	contestHandler "fotolio-service/internal/handlers/contest"
	planHandler "fotolio-service/internal/handlers/plan"
	promolinkHandler "fotolio-service/internal/handlers/promolink"
	webhookHandler "fotolio-service/internal/handlers/webhook"
	wsHandler "fotolio-service/internal/handlers/websocket"
	"fotolio-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	CampaignHandler  *campaignHandler.CampaignHandler
	PlanHandler      *planHandler.PlanHandler
	PromoLinkHandler *promolinkHandler.PromoLinkHandler
	ContestHandler   *contestHandler.ContestHandler
	BillingHandler   *webhookHandler.BillingHandler
	CountdownHandler *wsHandler.CountdownHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health & Metrics ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ==================== WebSocket ====================
	r.GET("/ws/countdown/:slug", h.CountdownHandler.Subscribe)

	// ==================== Promo Link Redirects ====================
	r.GET("/p/:token", h.PromoLinkHandler.Redirect)

	// ==================== Billing Webhook ====================
	r.POST("/webhooks/billing", h.BillingHandler.HandleBillingEvent)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.GET("/me", h.AuthHandler.Me)
	}

	// ==================== Public Campaign Routes ====================
	campaigns := api.Group("/campaigns")
	{
		campaigns.GET("/active", h.CampaignHandler.ListActiveCampaigns)
		campaigns.GET("/slug/:slug", h.CampaignHandler.GetCampaignDisplay)
	}

	// ==================== Plans ====================
	plans := api.Group("/plans")
	{
		plans.GET("/public", h.PlanHandler.ListPublicPlans)

		plansAuth := plans.Group("")
		plansAuth.Use(h.AuthMiddleware.Auth())
		{
			plansAuth.GET("", h.PlanHandler.ListAllPlans)
			plansAuth.GET("/:code", h.PlanHandler.GetPlan)
		}
	}

	// ==================== Contest ====================
	contest := api.Group("/contest")
	{
		// Public read access to entries
		contest.GET("/entries/:id", h.ContestHandler.GetEntry)
		contest.GET("/entries/:id/eligibility", h.ContestHandler.GetEligibility)

		contestAuth := contest.Group("")
		contestAuth.Use(h.AuthMiddleware.Auth())
		{
			contestAuth.POST("/entries", h.ContestHandler.SubmitEntry)
			contestAuth.POST("/entries/:id/scores", h.ContestHandler.RecordScore)
			contestAuth.POST("/entries/:id/awards", h.ContestHandler.GrantAward)
		}
	}

	// ==================== Admin Campaign Management ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.Auth())
	{
		adminCampaigns := admin.Group("/campaigns")
		{
			// CRUD operations
			adminCampaigns.POST("", h.CampaignHandler.CreateCampaign)
			adminCampaigns.GET("", h.CampaignHandler.ListCampaigns)
			adminCampaigns.GET("/templates", h.CampaignHandler.ListTemplates)
			adminCampaigns.GET("/stats", h.CampaignHandler.GetStats)
			adminCampaigns.GET("/:id", h.CampaignHandler.GetCampaign)
			adminCampaigns.PUT("/:id", h.CampaignHandler.UpdateCampaign)
			adminCampaigns.DELETE("/:id", h.CampaignHandler.DeleteCampaign)

			// Status management
			adminCampaigns.PUT("/:id/pause", h.CampaignHandler.PauseCampaign)
			adminCampaigns.PUT("/:id/resume", h.CampaignHandler.ResumeCampaign)
			adminCampaigns.PUT("/:id/extend", h.CampaignHandler.ExtendCampaign)

			// Promo links
			adminCampaigns.POST("/:id/links", h.PromoLinkHandler.CreateLink)
			adminCampaigns.GET("/:id/links", h.PromoLinkHandler.ListLinks)
			adminCampaigns.POST("/:id/links/flush", h.PromoLinkHandler.FlushClicks)
			adminCampaigns.DELETE("/:id/links/:link_id", h.PromoLinkHandler.DeleteLink)
		}

		admin.GET("/links/:token/stats", h.PromoLinkHandler.GetLinkStats)
	}
}
