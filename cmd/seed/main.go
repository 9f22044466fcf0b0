package main

import (
	"fmt"

	"github.com/reviewloop/reviewloop/internal/config"
	"github.com/reviewloop/reviewloop/internal/constants"
	"github.com/reviewloop/reviewloop/internal/logger"
	"github.com/reviewloop/reviewloop/internal/models"
	"github.com/reviewloop/reviewloop/internal/repository"
	"github.com/reviewloop/reviewloop/internal/service"

	"github.com/shopspring/decimal"
)

// Seeds a demo shop with a promo and a live campaign so the dashboard
// and public form have data to show during development.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	shops := repository.NewShopRepository(models.DB)
	promos := repository.NewPromoRepository(models.DB)
	campaigns := repository.NewCampaignRepository(models.DB)

	shop := &models.Shop{
		ShopDomain:  "demo-store.myshopify.com",
		AccessToken: "shpat_demo_token",
		Scope:       "read_products,write_discounts",
		IsActive:    true,
	}
	if existing, err := shops.GetByDomain(shop.ShopDomain); err != nil {
		stdLog.Fatalf("failed to look up demo shop: %v", err)
	} else if existing != nil {
		fmt.Println("demo shop already seeded, nothing to do")
		return
	}
	if err := shops.Create(shop); err != nil {
		stdLog.Fatalf("failed to create demo shop: %v", err)
	}

	promoSvc := service.NewPromoService(promos, campaigns)
	promo, err := promoSvc.Create(shop.ID, service.CreatePromoInput{
		Name:          "10% Off Next Order",
		Type:          constants.PromoTypeDiscount,
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		CodePrefix:    "THANKS",
	})
	if err != nil {
		stdLog.Fatalf("failed to create demo promo: %v", err)
	}

	campaignSvc := service.NewCampaignService(campaigns, promos, shops, nil)
	campaign, err := campaignSvc.Create(shop.ID, service.CreateCampaignInput{
		Name:       "Launch Reviews",
		ProductIDs: []string{"1000001", "1000002"},
		PromoID:    promo.ID,
	})
	if err != nil {
		stdLog.Fatalf("failed to create demo campaign: %v", err)
	}

	fmt.Println("seeded demo data:")
	fmt.Printf("  shop:     %s\n", shop.ShopDomain)
	fmt.Printf("  promo:    %s (#%d)\n", promo.Name, promo.ID)
	fmt.Printf("  campaign: %s (slug %s)\n", campaign.Name, campaign.PublicSlug)
}
