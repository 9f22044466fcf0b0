package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/reviewloop/reviewloop/internal/shopify"
)

func TestShopServiceBeginAuth(t *testing.T) {
	env := newTestEnv(t)
	client := shopify.NewClient(shopify.Config{
		APIKey:    "key",
		APISecret: "secret",
		Scopes:    "read_products",
		AppURL:    "https://app.example.com",
	})
	svc := NewShopService(env.shops, client, nil)

	raw, err := svc.BeginAuth(context.Background(), " Alpha.MyShopify.com ")
	if err != nil {
		t.Fatalf("BeginAuth: %v", err)
	}
	if !strings.HasPrefix(raw, "https://alpha.myshopify.com/admin/oauth/authorize?") {
		t.Fatalf("unexpected authorize URL %q", raw)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse authorize URL: %v", err)
	}
	query := parsed.Query()
	if query.Get("client_id") != "key" {
		t.Fatalf("wrong client_id in %q", raw)
	}
	if query.Get("state") == "" {
		t.Fatalf("missing state nonce in %q", raw)
	}

	if _, err := svc.BeginAuth(context.Background(), "not-a-shop.example.com"); err != shopify.ErrShopDomain {
		t.Fatalf("expected ErrShopDomain, got %v", err)
	}
}

func TestShopServiceDeactivate(t *testing.T) {
	env := newTestEnv(t)
	shop := env.seedShop(t, "alpha.myshopify.com")
	svc := NewShopService(env.shops, nil, nil)

	if err := svc.Deactivate("Alpha.myshopify.com"); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	got, err := env.shops.GetByID(shop.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.IsActive {
		t.Fatal("expected shop inactive")
	}
	if got.AccessToken != "" {
		t.Fatal("expected access token cleared on uninstall")
	}

	if err := svc.Deactivate("missing.myshopify.com"); err != ErrShopNotFound {
		t.Fatalf("expected ErrShopNotFound, got %v", err)
	}
}

func TestShopServiceGetActive(t *testing.T) {
	env := newTestEnv(t)
	shop := env.seedShop(t, "alpha.myshopify.com")
	svc := NewShopService(env.shops, nil, nil)

	got, err := svc.GetActive(shop.ID)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if got.ShopDomain != shop.ShopDomain {
		t.Fatalf("wrong shop: %+v", got)
	}

	if err := svc.Deactivate(shop.ShopDomain); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if _, err := svc.GetActive(shop.ID); err != ErrShopInactive {
		t.Fatalf("expected ErrShopInactive, got %v", err)
	}
	if _, err := svc.GetActive(9999); err != ErrShopNotFound {
		t.Fatalf("expected ErrShopNotFound, got %v", err)
	}
}
