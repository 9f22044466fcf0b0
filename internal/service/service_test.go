package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reviewloop/reviewloop/internal/models"
	"github.com/reviewloop/reviewloop/internal/repository"
	"github.com/reviewloop/reviewloop/internal/shopify"
)

type testEnv struct {
	db        *gorm.DB
	shops     repository.ShopRepository
	promos    repository.PromoRepository
	campaigns repository.CampaignRepository
	reviews   repository.ReviewRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Every pooled connection to :memory: gets its own database; keep a
	// single connection so all queries see the same one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Shop{}, &models.Promo{}, &models.Campaign{}, &models.Review{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &testEnv{
		db:        db,
		shops:     repository.NewShopRepository(db),
		promos:    repository.NewPromoRepository(db),
		campaigns: repository.NewCampaignRepository(db),
		reviews:   repository.NewReviewRepository(db),
	}
}

func (e *testEnv) seedShop(t *testing.T, domain string) *models.Shop {
	t.Helper()
	shop := &models.Shop{
		ShopDomain:  domain,
		AccessToken: "shpat_test",
		Scope:       "read_products,write_discounts",
		IsActive:    true,
	}
	if err := e.shops.Create(shop); err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	return shop
}

// fakeGateway serves canned products; ids listed in fail error out.
type fakeGateway struct {
	products map[string]shopify.Product
	fail     map[string]bool
}

func (f *fakeGateway) GetProduct(_ context.Context, _, _, productID string) (*shopify.Product, error) {
	if f.fail[productID] {
		return nil, shopify.ErrRequestFailed
	}
	p, ok := f.products[productID]
	if !ok {
		return nil, shopify.ErrRequestFailed
	}
	return &p, nil
}

func (f *fakeGateway) ListProducts(_ context.Context, _, _ string, _ int) ([]shopify.Product, error) {
	out := make([]shopify.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeGateway) ProductFetchTimeout() time.Duration { return time.Second }

func isSentinel(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
