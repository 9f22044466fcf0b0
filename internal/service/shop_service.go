package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/reviewloop/reviewloop/internal/cache"
	"github.com/reviewloop/reviewloop/internal/logger"
	"github.com/reviewloop/reviewloop/internal/models"
	"github.com/reviewloop/reviewloop/internal/repository"
	"github.com/reviewloop/reviewloop/internal/shopify"
)

// ShopService drives the Shopify install flow and shop lifecycle.
type ShopService struct {
	shopRepo repository.ShopRepository
	client   *shopify.Client
	sessions *SessionService
}

func NewShopService(shopRepo repository.ShopRepository, client *shopify.Client, sessions *SessionService) *ShopService {
	return &ShopService{
		shopRepo: shopRepo,
		client:   client,
		sessions: sessions,
	}
}

// AuthResult is returned after a completed OAuth handshake.
type AuthResult struct {
	Shop         *models.Shop
	SessionToken string
}

// BeginAuth validates the shop domain, records a one-time state nonce and
// returns the Shopify authorize URL the merchant should be redirected to.
func (s *ShopService) BeginAuth(ctx context.Context, shopDomain string) (string, error) {
	shopDomain = strings.ToLower(strings.TrimSpace(shopDomain))
	if !shopify.IsValidShopDomain(shopDomain) {
		return "", shopify.ErrShopDomain
	}
	state, err := cache.NewOAuthState(ctx, shopDomain)
	if err != nil {
		return "", err
	}
	return s.client.AuthorizeURL(shopDomain, state)
}

// CompleteAuth finishes the handshake: the callback signature is checked,
// the state nonce burned, the temporary code exchanged for a permanent
// access token and the shop record created or refreshed. A signed session
// token for the admin API is issued alongside.
func (s *ShopService) CompleteAuth(ctx context.Context, params url.Values) (*AuthResult, error) {
	shopDomain := strings.ToLower(strings.TrimSpace(params.Get("shop")))
	if !shopify.IsValidShopDomain(shopDomain) {
		return nil, shopify.ErrShopDomain
	}
	if err := s.client.VerifyCallbackParams(params); err != nil {
		return nil, err
	}
	stateShop, err := cache.ConsumeOAuthState(ctx, params.Get("state"))
	if err != nil || stateShop != shopDomain {
		return nil, ErrStateInvalid
	}

	token, err := s.client.ExchangeCode(ctx, shopDomain, params.Get("code"))
	if err != nil {
		return nil, err
	}

	shop := &models.Shop{
		ShopDomain:  shopDomain,
		AccessToken: token.AccessToken,
		Scope:       token.Scope,
		IsActive:    true,
	}
	if err := s.shopRepo.Upsert(shop); err != nil {
		return nil, err
	}
	logger.Infow("shop_installed", "shop_id", shop.ID, "shop_domain", shop.ShopDomain)

	sessionToken, err := s.sessions.IssueToken(shop)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Shop: shop, SessionToken: sessionToken}, nil
}

// GetActive loads a shop by id and rejects deactivated installs.
func (s *ShopService) GetActive(id uint) (*models.Shop, error) {
	shop, err := s.shopRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	if !shop.IsActive {
		return nil, ErrShopInactive
	}
	return shop, nil
}

// GetByDomain loads a shop by its myshopify domain.
func (s *ShopService) GetByDomain(domain string) (*models.Shop, error) {
	shop, err := s.shopRepo.GetByDomain(strings.ToLower(strings.TrimSpace(domain)))
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

// Deactivate marks a shop uninstalled. The access token is cleared so a
// stale record can never call the Admin API again.
func (s *ShopService) Deactivate(domain string) error {
	shop, err := s.shopRepo.GetByDomain(strings.ToLower(strings.TrimSpace(domain)))
	if err != nil {
		return err
	}
	if shop == nil {
		return ErrShopNotFound
	}
	shop.IsActive = false
	shop.AccessToken = ""
	return s.shopRepo.Update(shop)
}
