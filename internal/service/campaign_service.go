package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/reviewloop/reviewloop/internal/constants"
	"github.com/reviewloop/reviewloop/internal/logger"
	"github.com/reviewloop/reviewloop/internal/models"
	"github.com/reviewloop/reviewloop/internal/repository"
	"github.com/reviewloop/reviewloop/internal/shopify"
)

// ProductGateway fetches catalog data from the shop's storefront platform.
// *shopify.Client satisfies it; tests substitute a fake.
type ProductGateway interface {
	GetProduct(ctx context.Context, shopDomain, accessToken, productID string) (*shopify.Product, error)
	ListProducts(ctx context.Context, shopDomain, accessToken string, limit int) ([]shopify.Product, error)
	ProductFetchTimeout() time.Duration
}

// CampaignService manages campaigns and serves the public review form.
type CampaignService struct {
	campaignRepo repository.CampaignRepository
	promoRepo    repository.PromoRepository
	shopRepo     repository.ShopRepository
	products     ProductGateway
}

func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	promoRepo repository.PromoRepository,
	shopRepo repository.ShopRepository,
	products ProductGateway,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		promoRepo:    promoRepo,
		shopRepo:     shopRepo,
		products:     products,
	}
}

// CreateCampaignInput carries the fields accepted on campaign creation.
type CreateCampaignInput struct {
	Name       string
	ProductIDs []string
	PromoID    uint
	Status     string
	StartsAt   *time.Time
	EndsAt     *time.Time
}

// UpdateCampaignInput carries a partial update. Nil fields are untouched;
// the public slug is never updatable.
type UpdateCampaignInput struct {
	Name       *string
	ProductIDs *[]string
	PromoID    *uint
	Status     *string
	StartsAt   *time.Time
	EndsAt     *time.Time
}

func (s *CampaignService) Create(shopID uint, input CreateCampaignInput) (*models.Campaign, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrCampaignNameRequired
	}
	if _, err := s.ownedPromo(shopID, input.PromoID); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = constants.CampaignStatusActive
	}
	if !isCampaignStatus(status) {
		return nil, ErrCampaignStatusValue
	}

	slug, err := newPublicSlug()
	if err != nil {
		return nil, err
	}
	campaign := &models.Campaign{
		ShopID:     shopID,
		Name:       input.Name,
		ProductIDs: models.StringArray(input.ProductIDs),
		PromoID:    input.PromoID,
		Status:     status,
		PublicSlug: slug,
		StartsAt:   input.StartsAt,
		EndsAt:     input.EndsAt,
	}
	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) Get(shopID, id uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if campaign == nil || campaign.ShopID != shopID {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *CampaignService) Update(shopID, id uint, input UpdateCampaignInput) (*models.Campaign, error) {
	campaign, err := s.Get(shopID, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrCampaignNameRequired
		}
		campaign.Name = name
	}
	if input.ProductIDs != nil {
		campaign.ProductIDs = models.StringArray(*input.ProductIDs)
	}
	if input.PromoID != nil {
		if _, err := s.ownedPromo(shopID, *input.PromoID); err != nil {
			return nil, err
		}
		campaign.PromoID = *input.PromoID
	}
	if input.Status != nil {
		if !isCampaignStatus(*input.Status) {
			return nil, ErrCampaignStatusValue
		}
		campaign.Status = *input.Status
	}
	if input.StartsAt != nil {
		campaign.StartsAt = input.StartsAt
	}
	if input.EndsAt != nil {
		campaign.EndsAt = input.EndsAt
	}
	campaign.Promo = nil
	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, err
	}
	return s.Get(shopID, id)
}

func (s *CampaignService) Delete(shopID, id uint) error {
	if _, err := s.Get(shopID, id); err != nil {
		return err
	}
	return s.campaignRepo.Delete(id)
}

func (s *CampaignService) List(shopID uint, page, pageSize int, status string) ([]models.Campaign, int64, error) {
	return s.campaignRepo.List(repository.CampaignListFilter{
		Page:      page,
		PageSize:  pageSize,
		ShopID:    shopID,
		Status:    status,
		WithPromo: true,
	})
}

// PublicProduct is the catalog view exposed on the review form.
type PublicProduct struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

// PublicReward describes what the customer earns for a review.
type PublicReward struct {
	Name          string               `json:"name"`
	Type          string               `json:"type"`
	DiscountType  string               `json:"discount_type,omitempty"`
	DiscountValue models.DiscountValue `json:"discount_value"`
}

// PublicCampaign is the payload behind a public form slug.
type PublicCampaign struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	ShopDomain string          `json:"shop_domain"`
	Products   []PublicProduct `json:"products"`
	Reward     *PublicReward   `json:"reward,omitempty"`
}

// PublicLookup resolves an active campaign by slug and enriches its
// product list from the Shopify Admin API. Product fetches run
// concurrently; a failed fetch drops that product from the response
// rather than failing the whole lookup.
func (s *CampaignService) PublicLookup(ctx context.Context, slug string) (*PublicCampaign, error) {
	campaign, err := s.campaignRepo.GetActiveByPublicSlug(slug)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	shop, err := s.shopRepo.GetByID(campaign.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil || !shop.IsActive {
		return nil, ErrCampaignNotFound
	}

	out := &PublicCampaign{
		ID:         campaign.ID,
		Name:       campaign.Name,
		ShopDomain: shop.ShopDomain,
		Products:   s.enrichProducts(ctx, shop, campaign.ProductIDs),
	}
	if campaign.Promo != nil {
		out.Reward = &PublicReward{
			Name:          campaign.Promo.Name,
			Type:          campaign.Promo.Type,
			DiscountType:  campaign.Promo.DiscountType,
			DiscountValue: campaign.Promo.DiscountValue,
		}
	}
	return out, nil
}

func (s *CampaignService) enrichProducts(ctx context.Context, shop *models.Shop, productIDs []string) []PublicProduct {
	type slot struct {
		product *shopify.Product
	}
	slots := make([]slot, len(productIDs))
	var wg sync.WaitGroup
	for i, id := range productIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, s.products.ProductFetchTimeout())
			defer cancel()
			product, err := s.products.GetProduct(fetchCtx, shop.ShopDomain, shop.AccessToken, id)
			if err != nil {
				logger.Warnw("product_fetch_failed", "shop_domain", shop.ShopDomain, "product_id", id, "error", err)
				return
			}
			slots[i].product = product
		}(i, id)
	}
	wg.Wait()

	products := make([]PublicProduct, 0, len(productIDs))
	for _, s := range slots {
		if s.product == nil {
			continue
		}
		products = append(products, PublicProduct{
			ID:    s.product.ID,
			Title: s.product.Title,
			Image: s.product.Image,
		})
	}
	return products
}

func (s *CampaignService) ownedPromo(shopID, promoID uint) (*models.Promo, error) {
	promo, err := s.promoRepo.GetByID(promoID)
	if err != nil {
		return nil, err
	}
	if promo == nil || promo.ShopID != shopID || !promo.IsActive {
		return nil, ErrPromoNotFound
	}
	return promo, nil
}

func isCampaignStatus(status string) bool {
	switch status {
	case constants.CampaignStatusActive, constants.CampaignStatusPaused, constants.CampaignStatusEnded:
		return true
	}
	return false
}

func newPublicSlug() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
