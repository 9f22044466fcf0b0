package router

import (
	"fmt"
	"strings"

	"github.com/reviewloop/reviewloop/internal/cache"
	"github.com/reviewloop/reviewloop/internal/config"
	adminhandlers "github.com/reviewloop/reviewloop/internal/http/handlers/admin"
	publichandlers "github.com/reviewloop/reviewloop/internal/http/handlers/public"
	"github.com/reviewloop/reviewloop/internal/logger"
	"github.com/reviewloop/reviewloop/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP route table.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "rl"
	}
	redisClient := cache.Client()
	submitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:submit", redisPrefix),
		WindowSeconds: cfg.Security.SubmitRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SubmitRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.SubmitRateLimit.BlockSeconds,
		Message:       "too many review submissions",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		// Public surface: review form lookup and submission.
		public := apiV1.Group("/public")
		{
			public.GET("/campaigns/:slug", publicHandler.GetCampaign)
			public.POST("/reviews",
				RateLimitMiddleware(redisClient, submitRule, KeyByIPAndJSONField("customer_email")),
				publicHandler.SubmitReview,
			)
		}

		// Shopify install handshake.
		auth := apiV1.Group("/auth")
		{
			auth.GET("", publicHandler.BeginAuth)
			auth.GET("/callback", publicHandler.AuthCallback)
		}

		// Platform webhooks.
		apiV1.POST("/webhooks/shopify", publicHandler.ShopifyWebhook)

		// Merchant dashboard, behind the shop session.
		admin := apiV1.Group("/admin")
		admin.Use(ShopSessionMiddleware(c.SessionService, c.ShopRepo))
		{
			admin.GET("/session", adminHandler.GetSession)
			admin.GET("/products", adminHandler.ListProducts)

			admin.POST("/promos", adminHandler.CreatePromo)
			admin.GET("/promos", adminHandler.ListPromos)
			admin.GET("/promos/:id", adminHandler.GetPromo)
			admin.PUT("/promos/:id", adminHandler.UpdatePromo)
			admin.DELETE("/promos/:id", adminHandler.DeletePromo)

			admin.POST("/campaigns", adminHandler.CreateCampaign)
			admin.GET("/campaigns", adminHandler.ListCampaigns)
			admin.GET("/campaigns/:id", adminHandler.GetCampaign)
			admin.PUT("/campaigns/:id", adminHandler.UpdateCampaign)
			admin.DELETE("/campaigns/:id", adminHandler.DeleteCampaign)

			admin.GET("/reviews", adminHandler.ListReviews)
			admin.GET("/reviews/campaign/:id", adminHandler.ListCampaignReviews)
			admin.PATCH("/reviews/:id/status", adminHandler.UpdateReviewStatus)
		}
	}

	return r
}
