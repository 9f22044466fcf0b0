package repository

import (
	"errors"

	"github.com/reviewloop/reviewloop/internal/models"

	"gorm.io/gorm"
)

// ShopRepository is the shop data access interface.
type ShopRepository interface {
	GetByID(id uint) (*models.Shop, error)
	GetByDomain(domain string) (*models.Shop, error)
	Create(shop *models.Shop) error
	Update(shop *models.Shop) error
	Upsert(shop *models.Shop) error
	Deactivate(domain string) error
}

// GormShopRepository is the GORM implementation.
type GormShopRepository struct {
	db *gorm.DB
}

// NewShopRepository creates a shop repository.
func NewShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// GetByID fetches a shop by id.
func (r *GormShopRepository) GetByID(id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// GetByDomain fetches a shop by its domain.
func (r *GormShopRepository) GetByDomain(domain string) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.Where("shop_domain = ?", domain).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// Create inserts a shop.
func (r *GormShopRepository) Create(shop *models.Shop) error {
	return r.db.Create(shop).Error
}

// Update saves a shop.
func (r *GormShopRepository) Update(shop *models.Shop) error {
	return r.db.Save(shop).Error
}

// Upsert creates the shop or refreshes credential fields on re-auth.
func (r *GormShopRepository) Upsert(shop *models.Shop) error {
	existing, err := r.GetByDomain(shop.ShopDomain)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(shop).Error
	}
	existing.AccessToken = shop.AccessToken
	existing.Scope = shop.Scope
	existing.IsActive = true
	if err := r.db.Save(existing).Error; err != nil {
		return err
	}
	*shop = *existing
	return nil
}

// Deactivate flags the shop inactive; the row is kept.
func (r *GormShopRepository) Deactivate(domain string) error {
	return r.db.Model(&models.Shop{}).
		Where("shop_domain = ?", domain).
		Update("is_active", false).Error
}
