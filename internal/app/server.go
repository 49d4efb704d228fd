// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fotolio-service/internal/config"
	"fotolio-service/internal/db"
	authHandler "fotolio-service/internal/handlers/auth"
	campaignHandler "fotolio-service/internal/handlers/campaign"
	contestHandler "fotolio-service/internal/handlers/contest"
	planHandler "fotolio-service/internal/handlers/plan"
	promolinkHandler "fotolio-service/internal/handlers/promolink"
	webhookHandler "fotolio-service/internal/handlers/webhook"
	wsHandler "fotolio-service/internal/handlers/websocket"
	"fotolio-service/internal/middleware"
	"fotolio-service/internal/pkg/jwt"
	"fotolio-service/internal/pkg/ratelimit"
	"fotolio-service/internal/repository/postgres"
	authService "fotolio-service/internal/service/auth"
	campaignService "fotolio-service/internal/service/campaign"
	contestService "fotolio-service/internal/service/contest"
	planService "fotolio-service/internal/service/plan"
	promolinkService "fotolio-service/internal/service/promolink"
	redemptionService "fotolio-service/internal/service/redemption"
	"fotolio-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	logger *zap.Logger

	httpServer  *http.Server
	pool        *pgxpool.Pool
	redisClient *redis.Client
	hubCancel   context.CancelFunc
}

func NewServer(cfg *config.Config) *Server {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{
		cfg:    cfg,
		engine: gin.New(),
	}
}

func (s *Server) Start(ctx context.Context) error {
	// ----- Logger -----
	var err error
	if s.cfg.App.IsProduction() {
		s.logger, err = zap.NewProduction()
	} else {
		s.logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	// ----- PostgreSQL -----
	s.pool, err = db.ConnectPostgres(ctx, s.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.logger.Info("connected to PostgreSQL")

	// ----- Redis -----
	s.redisClient, err = db.NewRedisClient(s.cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.logger.Info("connected to Redis")

	// ----- JWT Manager & Rate Limiter -----
	jwtManager, err := jwt.NewManager(jwt.Config{
		Secret:   s.cfg.Auth.JWTSecret,
		Issuer:   "fotolio",
		Audience: "fotolio-admin",
		TTL:      s.cfg.Auth.TokenTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}
	rateLimiter := ratelimit.NewRateLimiter(s.redisClient)

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(s.pool)
	campaignRepo := postgres.NewCampaignRepository(s.pool)
	planRepo := postgres.NewPlanRepository(s.pool)
	linkRepo := postgres.NewPromoLinkRepository(s.pool)
	eventRepo := postgres.NewBillingEventRepository(s.pool)
	contestRepo := postgres.NewContestRepository(s.pool)
	adminRepo := postgres.NewAdminRepository(s.pool)

	// ----- Services -----
	campaignSvc := campaignService.NewCampaignService(campaignRepo, planRepo, s.cfg.App.BaseURL, s.logger)
	planSvc := planService.NewPlanService(planRepo)
	linkSvc := promolinkService.NewPromoLinkService(linkRepo, campaignRepo, s.redisClient, s.logger)
	redemptionSvc := redemptionService.NewRedemptionService(dbWrapper, campaignRepo, eventRepo, campaignSvc, s.logger)
	contestSvc := contestService.NewContestService(contestRepo, s.logger)
	authSvc := authService.NewAuthService(adminRepo, jwtManager, rateLimiter, s.logger)

	// ----- Bootstrap admin -----
	if err := authSvc.EnsureAdminExists(ctx, s.cfg.Auth.AdminEmail, s.cfg.Auth.AdminPassword, s.cfg.Auth.AdminName); err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	// ----- Countdown hub -----
	hub := websocket.NewHub(campaignRepo, campaignSvc, s.logger)
	hubCtx, cancel := context.WithCancel(context.Background())
	s.hubCancel = cancel
	go hub.Run(hubCtx)

	// ----- Middleware -----
	s.engine.Use(middleware.RecoveryMiddleware(s.logger))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.CORSMiddleware())

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:      authHandler.NewAuthHandler(authSvc),
		CampaignHandler:  campaignHandler.NewCampaignHandler(campaignSvc),
		PlanHandler:      planHandler.NewPlanHandler(planSvc),
		PromoLinkHandler: promolinkHandler.NewPromoLinkHandler(linkSvc),
		ContestHandler:   contestHandler.NewContestHandler(contestSvc),
		BillingHandler:   webhookHandler.NewBillingHandler(redemptionSvc),
		CountdownHandler: wsHandler.NewCountdownHandler(hub, s.logger),
		AuthMiddleware:   middleware.NewAuthMiddleware(authSvc),
	}

	SetupRouter(s.engine, handlers)

	// ----- HTTP server -----
	s.httpServer = &http.Server{
		Addr:         s.cfg.Server.ServerAddr(),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
	}

	s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown stops the HTTP listener, the countdown hub, and the
// connection pools.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.hubCancel != nil {
		s.hubCancel()
	}

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	if s.logger != nil {
		s.logger.Sync()
	}

	return err
}
