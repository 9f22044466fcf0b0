package repository

import (
	"errors"

	"github.com/reviewloop/reviewloop/internal/models"

	"gorm.io/gorm"
)

// PromoRepository is the promo data access interface.
type PromoRepository interface {
	GetByID(id uint) (*models.Promo, error)
	Create(promo *models.Promo) error
	Update(promo *models.Promo) error
	List(filter PromoListFilter) ([]models.Promo, int64, error)
}

// GormPromoRepository is the GORM implementation.
type GormPromoRepository struct {
	db *gorm.DB
}

// NewPromoRepository creates a promo repository.
func NewPromoRepository(db *gorm.DB) *GormPromoRepository {
	return &GormPromoRepository{db: db}
}

// GetByID fetches a promo by id.
func (r *GormPromoRepository) GetByID(id uint) (*models.Promo, error) {
	var promo models.Promo
	if err := r.db.First(&promo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promo, nil
}

// Create inserts a promo.
func (r *GormPromoRepository) Create(promo *models.Promo) error {
	return r.db.Create(promo).Error
}

// Update saves a promo.
func (r *GormPromoRepository) Update(promo *models.Promo) error {
	return r.db.Save(promo).Error
}

// List returns promos matching the filter, newest first.
func (r *GormPromoRepository) List(filter PromoListFilter) ([]models.Promo, int64, error) {
	var promos []models.Promo
	query := r.db.Model(&models.Promo{})

	if filter.ShopID > 0 {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&promos).Error; err != nil {
		return nil, 0, err
	}
	return promos, total, nil
}
