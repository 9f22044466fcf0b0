package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/reviewloop/reviewloop/internal/constants"
	"github.com/reviewloop/reviewloop/internal/models"
	"github.com/reviewloop/reviewloop/internal/shopify"
)

var slugPattern = regexp.MustCompile(`^[0-9a-f]{16}$`)

func newCampaignFixture(t *testing.T) (*testEnv, *models.Shop, *models.Promo, *CampaignService) {
	t.Helper()
	env := newTestEnv(t)
	shop := env.seedShop(t, "alpha.myshopify.com")
	promoSvc := NewPromoService(env.promos, env.campaigns)
	promo, err := promoSvc.Create(shop.ID, CreatePromoInput{
		Name:          "10% Off",
		Type:          constants.PromoTypeDiscount,
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("seed promo: %v", err)
	}
	gateway := &fakeGateway{
		products: map[string]shopify.Product{
			"1001": {ID: "1001", Title: "Red Mug", Image: "https://cdn/red.png"},
			"1002": {ID: "1002", Title: "Blue Mug"},
		},
		fail: map[string]bool{},
	}
	svc := NewCampaignService(env.campaigns, env.promos, env.shops, gateway)
	return env, shop, promo, svc
}

func TestCampaignServiceCreate(t *testing.T) {
	_, shop, promo, svc := newCampaignFixture(t)

	campaign, err := svc.Create(shop.ID, CreateCampaignInput{
		Name:       "Spring Launch",
		ProductIDs: []string{"1001", "1002"},
		PromoID:    promo.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if campaign.Status != constants.CampaignStatusActive {
		t.Fatalf("expected active default status, got %q", campaign.Status)
	}
	if !slugPattern.MatchString(campaign.PublicSlug) {
		t.Fatalf("slug %q does not look like 16 hex chars", campaign.PublicSlug)
	}

	other, err := svc.Create(shop.ID, CreateCampaignInput{
		Name:       "Second",
		ProductIDs: []string{"1001"},
		PromoID:    promo.ID,
	})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if other.PublicSlug == campaign.PublicSlug {
		t.Fatal("expected distinct public slugs")
	}
}

func TestCampaignServiceCreateValidation(t *testing.T) {
	_, shop, promo, svc := newCampaignFixture(t)

	if _, err := svc.Create(shop.ID, CreateCampaignInput{ProductIDs: []string{"1"}, PromoID: promo.ID}); err != ErrCampaignNameRequired {
		t.Fatalf("expected ErrCampaignNameRequired, got %v", err)
	}
	if _, err := svc.Create(shop.ID, CreateCampaignInput{Name: "x", ProductIDs: []string{"1"}, PromoID: 9999}); err != ErrPromoNotFound {
		t.Fatalf("expected ErrPromoNotFound for unknown promo, got %v", err)
	}
	if _, err := svc.Create(shop.ID, CreateCampaignInput{Name: "x", ProductIDs: []string{"1"}, PromoID: promo.ID, Status: "archived"}); err != ErrCampaignStatusValue {
		t.Fatalf("expected ErrCampaignStatusValue, got %v", err)
	}
}

func TestCampaignServiceCreateWithoutProducts(t *testing.T) {
	_, shop, promo, svc := newCampaignFixture(t)

	// An empty product list means the campaign covers any product.
	campaign, err := svc.Create(shop.ID, CreateCampaignInput{
		Name:    "Any Product Drive",
		PromoID: promo.ID,
	})
	if err != nil {
		t.Fatalf("Create without products: %v", err)
	}
	if len(campaign.ProductIDs) != 0 {
		t.Fatalf("expected empty product list, got %v", campaign.ProductIDs)
	}

	public, err := svc.PublicLookup(context.Background(), campaign.PublicSlug)
	if err != nil {
		t.Fatalf("PublicLookup: %v", err)
	}
	if len(public.Products) != 0 {
		t.Fatalf("expected empty product list on the form, got %+v", public.Products)
	}
	if public.Reward == nil {
		t.Fatal("expected reward details on the form")
	}

	empty := []string{}
	updated, err := svc.Update(shop.ID, campaign.ID, UpdateCampaignInput{ProductIDs: &empty})
	if err != nil {
		t.Fatalf("Update to empty product list: %v", err)
	}
	if len(updated.ProductIDs) != 0 {
		t.Fatalf("expected empty product list after update, got %v", updated.ProductIDs)
	}
}

func TestCampaignServiceUpdateKeepsSlug(t *testing.T) {
	_, shop, promo, svc := newCampaignFixture(t)

	campaign, err := svc.Create(shop.ID, CreateCampaignInput{
		Name:       "Spring Launch",
		ProductIDs: []string{"1001"},
		PromoID:    promo.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	paused := constants.CampaignStatusPaused
	name := "Spring Relaunch"
	updated, err := svc.Update(shop.ID, campaign.ID, UpdateCampaignInput{
		Name:   &name,
		Status: &paused,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PublicSlug != campaign.PublicSlug {
		t.Fatalf("slug changed on update: %q -> %q", campaign.PublicSlug, updated.PublicSlug)
	}
	if updated.Name != name || updated.Status != paused {
		t.Fatalf("partial update not applied: %+v", updated)
	}
	// Product list untouched by a nil field.
	if len(updated.ProductIDs) != 1 || updated.ProductIDs[0] != "1001" {
		t.Fatalf("product ids changed unexpectedly: %v", updated.ProductIDs)
	}
}

func TestCampaignServicePublicLookup(t *testing.T) {
	_, shop, promo, svc := newCampaignFixture(t)

	campaign, err := svc.Create(shop.ID, CreateCampaignInput{
		Name:       "Spring Launch",
		ProductIDs: []string{"1001", "1002"},
		PromoID:    promo.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	public, err := svc.PublicLookup(context.Background(), campaign.PublicSlug)
	if err != nil {
		t.Fatalf("PublicLookup: %v", err)
	}
	if public.ShopDomain != shop.ShopDomain {
		t.Fatalf("wrong shop domain %q", public.ShopDomain)
	}
	if len(public.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(public.Products))
	}
	if public.Reward == nil || public.Reward.Name != "10% Off" {
		t.Fatalf("missing reward details: %+v", public.Reward)
	}
}

func TestCampaignServicePublicLookupDropsFailedProducts(t *testing.T) {
	env, shop, promo, _ := newCampaignFixture(t)
	gateway := &fakeGateway{
		products: map[string]shopify.Product{
			"1001": {ID: "1001", Title: "Red Mug"},
		},
		fail: map[string]bool{"1002": true},
	}
	svc := NewCampaignService(env.campaigns, env.promos, env.shops, gateway)

	campaign, err := svc.Create(shop.ID, CreateCampaignInput{
		Name:       "Spring Launch",
		ProductIDs: []string{"1001", "1002"},
		PromoID:    promo.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	public, err := svc.PublicLookup(context.Background(), campaign.PublicSlug)
	if err != nil {
		t.Fatalf("PublicLookup: %v", err)
	}
	if len(public.Products) != 1 || public.Products[0].ID != "1001" {
		t.Fatalf("expected only the reachable product, got %+v", public.Products)
	}
}

func TestCampaignServicePublicLookupHidesInactive(t *testing.T) {
	_, shop, promo, svc := newCampaignFixture(t)

	campaign, err := svc.Create(shop.ID, CreateCampaignInput{
		Name:       "Spring Launch",
		ProductIDs: []string{"1001"},
		PromoID:    promo.ID,
		Status:     constants.CampaignStatusPaused,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.PublicLookup(context.Background(), campaign.PublicSlug); err != ErrCampaignNotFound {
		t.Fatalf("paused campaign should read as missing, got %v", err)
	}
	if _, err := svc.PublicLookup(context.Background(), "ffffffffffffffff"); err != ErrCampaignNotFound {
		t.Fatalf("unknown slug should read as missing, got %v", err)
	}
}

func TestCampaignServiceDelete(t *testing.T) {
	env, shop, promo, svc := newCampaignFixture(t)
	other := env.seedShop(t, "beta.myshopify.com")

	campaign, err := svc.Create(shop.ID, CreateCampaignInput{
		Name:       "Spring Launch",
		ProductIDs: []string{"1001"},
		PromoID:    promo.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(other.ID, campaign.ID); err != ErrCampaignNotFound {
		t.Fatalf("foreign delete should read as not found, got %v", err)
	}
	if err := svc.Delete(shop.ID, campaign.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(shop.ID, campaign.ID); err != ErrCampaignNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
