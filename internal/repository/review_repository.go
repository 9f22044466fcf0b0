package repository

import (
	"errors"
	"strings"

	"github.com/reviewloop/reviewloop/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateReview reports a violation of the one-review-per-
// (campaign, email) unique index.
var ErrDuplicateReview = errors.New("review already exists for campaign and email")

// ReviewRepository is the review data access interface.
type ReviewRepository interface {
	GetByID(id uint) (*models.Review, error)
	GetByCampaignAndEmail(campaignID uint, email string) (*models.Review, error)
	Create(review *models.Review) error
	UpdateStatus(id uint, status string) error
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	CountByCampaign(campaignID uint) (int64, error)
}

// GormReviewRepository is the GORM implementation.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a review repository.
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// GetByID fetches a review by id.
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// GetByCampaignAndEmail fetches the review a customer already left on a
// campaign, if any.
func (r *GormReviewRepository) GetByCampaignAndEmail(campaignID uint, email string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("campaign_id = ? AND customer_email = ?", campaignID, email).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// Create inserts a review. A unique-index violation on
// (campaign_id, customer_email) is reported as ErrDuplicateReview so the
// caller can treat a lost check-then-insert race as the duplicate
// outcome.
func (r *GormReviewRepository) Create(review *models.Review) error {
	err := r.db.Create(review).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return ErrDuplicateReview
	}
	return err
}

// UpdateStatus changes only the moderation status.
func (r *GormReviewRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Review{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// List returns reviews matching the filter, newest first.
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	var reviews []models.Review
	query := r.db.Model(&models.Review{})

	if filter.CampaignID > 0 {
		query = query.Where("campaign_id = ?", filter.CampaignID)
	}
	if len(filter.CampaignIDs) > 0 {
		query = query.Where("campaign_id IN ?", filter.CampaignIDs)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Rating > 0 {
		query = query.Where("rating = ?", filter.Rating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at desc, id desc").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// CountByCampaign counts reviews on one campaign.
func (r *GormReviewRepository) CountByCampaign(campaignID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("campaign_id = ?", campaignID).
		Count(&count).Error
	return count, err
}

// isUniqueViolation matches driver-specific unique constraint messages
// for the drivers this app runs on (sqlite, postgres).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "constraint failed")
}
