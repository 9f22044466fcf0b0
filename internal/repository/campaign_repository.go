package repository

import (
	"errors"

	"github.com/reviewloop/reviewloop/internal/models"

	"gorm.io/gorm"
)

// CampaignRepository is the campaign data access interface.
type CampaignRepository interface {
	GetByID(id uint, withPromo bool) (*models.Campaign, error)
	GetByPublicSlug(slug string) (*models.Campaign, error)
	GetActiveByPublicSlug(slug string) (*models.Campaign, error)
	Create(campaign *models.Campaign) error
	Update(campaign *models.Campaign) error
	Delete(id uint) error
	List(filter CampaignListFilter) ([]models.Campaign, int64, error)
	ListIDsByShop(shopID uint) ([]uint, error)
}

// GormCampaignRepository is the GORM implementation.
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a campaign repository.
func NewCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// GetByID fetches a campaign, optionally preloading its promo.
func (r *GormCampaignRepository) GetByID(id uint, withPromo bool) (*models.Campaign, error) {
	var campaign models.Campaign
	query := r.db
	if withPromo {
		query = query.Preload("Promo")
	}
	if err := query.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// GetByPublicSlug fetches a campaign by slug regardless of status.
func (r *GormCampaignRepository) GetByPublicSlug(slug string) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.Preload("Promo").Where("public_slug = ?", slug).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// GetActiveByPublicSlug fetches an active campaign by slug with its
// promo preloaded. Paused and ended campaigns are not distinguishable
// from missing ones through this path.
func (r *GormCampaignRepository) GetActiveByPublicSlug(slug string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.Preload("Promo").
		Where("public_slug = ? AND status = ?", slug, "active").
		First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// Create inserts a campaign.
func (r *GormCampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// Update saves a campaign.
func (r *GormCampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

// Delete removes a campaign row.
func (r *GormCampaignRepository) Delete(id uint) error {
	return r.db.Delete(&models.Campaign{}, id).Error
}

// List returns campaigns matching the filter, newest first.
func (r *GormCampaignRepository) List(filter CampaignListFilter) ([]models.Campaign, int64, error) {
	var campaigns []models.Campaign
	query := r.db.Model(&models.Campaign{})

	if filter.ShopID > 0 {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PromoID > 0 {
		query = query.Where("promo_id = ?", filter.PromoID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithPromo {
		query = query.Preload("Promo")
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// ListIDsByShop returns the ids of every campaign owned by the shop.
func (r *GormCampaignRepository) ListIDsByShop(shopID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Campaign{}).
		Where("shop_id = ?", shopID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
