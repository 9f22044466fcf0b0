package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/reviewloop/reviewloop/internal/constants"
	"github.com/reviewloop/reviewloop/internal/models"
	"github.com/reviewloop/reviewloop/internal/repository"
)

// PromoService manages reward definitions.
type PromoService struct {
	promoRepo    repository.PromoRepository
	campaignRepo repository.CampaignRepository
}

func NewPromoService(promoRepo repository.PromoRepository, campaignRepo repository.CampaignRepository) *PromoService {
	return &PromoService{
		promoRepo:    promoRepo,
		campaignRepo: campaignRepo,
	}
}

// CreatePromoInput carries the fields accepted on promo creation.
type CreatePromoInput struct {
	Name          string
	Type          string
	DiscountType  string
	DiscountValue decimal.Decimal
	CodePrefix    string
}

// UpdatePromoInput carries a partial update. Nil fields are untouched.
type UpdatePromoInput struct {
	Name          *string
	Type          *string
	DiscountType  *string
	DiscountValue *decimal.Decimal
	CodePrefix    *string
	IsActive      *bool
}

func (s *PromoService) Create(shopID uint, input CreatePromoInput) (*models.Promo, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrPromoNameRequired
	}
	if !isPromoType(input.Type) {
		return nil, ErrPromoTypeInvalid
	}
	promo := &models.Promo{
		ShopID:     shopID,
		Name:       input.Name,
		Type:       input.Type,
		CodePrefix: strings.TrimSpace(input.CodePrefix),
		IsActive:   true,
	}
	if promo.CodePrefix == "" {
		promo.CodePrefix = constants.DefaultCodePrefix
	}
	if input.Type == constants.PromoTypeDiscount {
		if err := validateDiscount(input.DiscountType, input.DiscountValue); err != nil {
			return nil, err
		}
		promo.DiscountType = input.DiscountType
		promo.DiscountValue = models.NewDiscountValue(input.DiscountValue)
	}
	if err := s.promoRepo.Create(promo); err != nil {
		return nil, err
	}
	return promo, nil
}

func (s *PromoService) Get(shopID, id uint) (*models.Promo, error) {
	promo, err := s.promoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	// Cross-shop lookups read the same as missing records.
	if promo == nil || promo.ShopID != shopID {
		return nil, ErrPromoNotFound
	}
	return promo, nil
}

func (s *PromoService) Update(shopID, id uint, input UpdatePromoInput) (*models.Promo, error) {
	promo, err := s.Get(shopID, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrPromoNameRequired
		}
		promo.Name = name
	}
	if input.Type != nil {
		if !isPromoType(*input.Type) {
			return nil, ErrPromoTypeInvalid
		}
		promo.Type = *input.Type
	}
	if input.DiscountType != nil {
		promo.DiscountType = *input.DiscountType
	}
	if input.DiscountValue != nil {
		promo.DiscountValue = models.NewDiscountValue(*input.DiscountValue)
	}
	if promo.Type == constants.PromoTypeDiscount {
		if err := validateDiscount(promo.DiscountType, promo.DiscountValue.Decimal); err != nil {
			return nil, err
		}
	}
	if input.CodePrefix != nil {
		prefix := strings.TrimSpace(*input.CodePrefix)
		if prefix == "" {
			prefix = constants.DefaultCodePrefix
		}
		promo.CodePrefix = prefix
	}
	if input.IsActive != nil {
		promo.IsActive = *input.IsActive
	}
	if err := s.promoRepo.Update(promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// Delete deactivates a promo. Rows are kept so codes issued under the
// promo remain traceable.
func (s *PromoService) Delete(shopID, id uint) error {
	promo, err := s.Get(shopID, id)
	if err != nil {
		return err
	}
	promo.IsActive = false
	return s.promoRepo.Update(promo)
}

func (s *PromoService) List(shopID uint, page, pageSize int, promoType string, isActive *bool) ([]models.Promo, int64, error) {
	return s.promoRepo.List(repository.PromoListFilter{
		Page:     page,
		PageSize: pageSize,
		ShopID:   shopID,
		Type:     promoType,
		IsActive: isActive,
	})
}

func isPromoType(t string) bool {
	return t == constants.PromoTypeDiscount || t == constants.PromoTypeWarranty
}

func validateDiscount(discountType string, value decimal.Decimal) error {
	switch discountType {
	case constants.DiscountTypePercentage:
		if value.LessThanOrEqual(decimal.Zero) || value.GreaterThan(decimal.NewFromInt(100)) {
			return ErrDiscountConfig
		}
	case constants.DiscountTypeFixed:
		if value.LessThanOrEqual(decimal.Zero) {
			return ErrDiscountConfig
		}
	default:
		return ErrDiscountConfig
	}
	return nil
}
