package provider

import (
	"time"

	"github.com/reviewloop/reviewloop/internal/cache"
	"github.com/reviewloop/reviewloop/internal/config"
	"github.com/reviewloop/reviewloop/internal/logger"
	"github.com/reviewloop/reviewloop/internal/models"
	"github.com/reviewloop/reviewloop/internal/queue"
	"github.com/reviewloop/reviewloop/internal/repository"
	"github.com/reviewloop/reviewloop/internal/service"
	"github.com/reviewloop/reviewloop/internal/shopify"
)

// Container wires repositories and services once at startup. Handlers
// and the worker consumer embed it.
type Container struct {
	Config        *config.Config
	QueueClient   *queue.Client
	ShopifyClient *shopify.Client

	// Repositories
	ShopRepo     repository.ShopRepository
	PromoRepo    repository.PromoRepository
	CampaignRepo repository.CampaignRepository
	ReviewRepo   repository.ReviewRepository

	// Services
	SessionService  *service.SessionService
	ShopService     *service.ShopService
	PromoService    *service.PromoService
	CampaignService *service.CampaignService
	ReviewService   *service.ReviewService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initShopifyClient()
	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initShopifyClient() {
	shopifyCfg := shopify.Config{
		APIKey:              c.Config.Shopify.APIKey,
		APISecret:           c.Config.Shopify.APISecret,
		Scopes:              c.Config.Shopify.Scopes,
		APIVersion:          c.Config.Shopify.APIVersion,
		AppURL:              c.Config.Shopify.AppURL,
		Timeout:             time.Duration(c.Config.Shopify.TimeoutMS) * time.Millisecond,
		ProductFetchTimeout: time.Duration(c.Config.Shopify.ProductFetchTimeoutMS) * time.Millisecond,
	}
	if err := shopify.ValidateConfig(&shopifyCfg); err != nil {
		logger.Warnw("provider_shopify_credentials_missing", "error", err)
	}
	c.ShopifyClient = shopify.NewClient(shopifyCfg)
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ShopRepo = repository.NewShopRepository(db)
	c.PromoRepo = repository.NewPromoRepository(db)
	c.CampaignRepo = repository.NewCampaignRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices() {
	sessions, err := service.NewSessionService(c.Config.Session.SecretKey, c.Config.Session.ExpireHours)
	if err != nil {
		logger.Errorw("provider_init_session_service_failed", "error", err)
		panic(err)
	}
	c.SessionService = sessions
	c.ShopService = service.NewShopService(c.ShopRepo, c.ShopifyClient, c.SessionService)
	c.PromoService = service.NewPromoService(c.PromoRepo, c.CampaignRepo)
	c.CampaignService = service.NewCampaignService(c.CampaignRepo, c.PromoRepo, c.ShopRepo, c.ShopifyClient)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.CampaignRepo, c.ShopRepo, c.QueueClient)
}
