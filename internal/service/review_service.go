package service

import (
	"context"
	"errors"
	"strings"

	"github.com/reviewloop/reviewloop/internal/constants"
	"github.com/reviewloop/reviewloop/internal/logger"
	"github.com/reviewloop/reviewloop/internal/models"
	"github.com/reviewloop/reviewloop/internal/queue"
	"github.com/reviewloop/reviewloop/internal/repository"
	"github.com/reviewloop/reviewloop/internal/validate"
)

// ReviewService handles public submissions and merchant moderation.
type ReviewService struct {
	reviewRepo   repository.ReviewRepository
	campaignRepo repository.CampaignRepository
	shopRepo     repository.ShopRepository
	queue        *queue.Client
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	campaignRepo repository.CampaignRepository,
	shopRepo repository.ShopRepository,
	queueClient *queue.Client,
) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		campaignRepo: campaignRepo,
		shopRepo:     shopRepo,
		queue:        queueClient,
	}
}

// SubmitReviewInput is a public form submission.
type SubmitReviewInput struct {
	CampaignID    uint
	CustomerName  string
	CustomerEmail string
	Rating        int
	ReviewText    string
	ProductID     string
}

// SubmitResult pairs the stored review with the reward the customer earned.
type SubmitResult struct {
	Review *models.Review
	Reward *PublicReward
}

// Submit validates a submission, closes the one-review-per-email window
// and issues a promo code. Input checks run before any storage access so
// a malformed request never costs a query.
func (s *ReviewService) Submit(ctx context.Context, input SubmitReviewInput) (*SubmitResult, error) {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerEmail = strings.ToLower(strings.TrimSpace(input.CustomerEmail))

	if missing := missingSubmitFields(input); len(missing) > 0 {
		return nil, &RequiredFieldsError{Missing: missing}
	}
	if !validate.IsValidEmail(input.CustomerEmail) {
		return nil, ErrEmailInvalid
	}
	if !validate.IsValidRating(input.Rating) {
		return nil, ErrRatingOutOfRange
	}

	campaign, err := s.campaignRepo.GetByID(input.CampaignID, true)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.Status != constants.CampaignStatusActive {
		return nil, ErrCampaignNotActive
	}

	if existing, err := s.reviewRepo.GetByCampaignAndEmail(campaign.ID, input.CustomerEmail); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &DuplicateReviewError{PromoCode: existing.PromoCode}
	}

	prefix := constants.DefaultCodePrefix
	if campaign.Promo != nil && campaign.Promo.CodePrefix != "" {
		prefix = campaign.Promo.CodePrefix
	}
	code, err := GeneratePromoCode(prefix)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		CampaignID:    campaign.ID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Rating:        input.Rating,
		ReviewText:    strings.TrimSpace(input.ReviewText),
		ProductID:     input.ProductID,
		PromoCode:     code,
		Status:        constants.ReviewStatusApproved,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		// Two submissions raced past the pre-check; the unique index on
		// (campaign_id, customer_email) caught the loser. Hand back the
		// code issued to the winner.
		if errors.Is(err, repository.ErrDuplicateReview) {
			existing, readErr := s.reviewRepo.GetByCampaignAndEmail(campaign.ID, input.CustomerEmail)
			if readErr == nil && existing != nil {
				return nil, &DuplicateReviewError{PromoCode: existing.PromoCode}
			}
			return nil, &DuplicateReviewError{}
		}
		return nil, err
	}
	logger.Infow("review_submitted",
		"review_id", review.ID,
		"campaign_id", campaign.ID,
		"rating", review.Rating,
	)

	if s.queue != nil {
		payload := queue.ReviewNotificationPayload{ReviewID: review.ID, CampaignID: campaign.ID}
		if err := s.queue.EnqueueReviewNotification(payload); err != nil {
			logger.Warnw("review_notification_enqueue_failed", "review_id", review.ID, "error", err)
		}
	}

	result := &SubmitResult{Review: review}
	if campaign.Promo != nil {
		result.Reward = &PublicReward{
			Name:          campaign.Promo.Name,
			Type:          campaign.Promo.Type,
			DiscountType:  campaign.Promo.DiscountType,
			DiscountValue: campaign.Promo.DiscountValue,
		}
	}
	return result, nil
}

// SetStatus moderates a review. Only reviews under the shop's own
// campaigns are reachable.
func (s *ReviewService) SetStatus(shopID, reviewID uint, status string) (*models.Review, error) {
	if !isReviewStatus(status) {
		return nil, ErrReviewStatusValue
	}
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	campaign, err := s.campaignRepo.GetByID(review.CampaignID, false)
	if err != nil {
		return nil, err
	}
	if campaign == nil || campaign.ShopID != shopID {
		return nil, ErrReviewNotFound
	}
	if err := s.reviewRepo.UpdateStatus(reviewID, status); err != nil {
		return nil, err
	}
	review.Status = status
	return review, nil
}

// ListByCampaign pages reviews for one of the shop's campaigns.
func (s *ReviewService) ListByCampaign(shopID, campaignID uint, page, pageSize int, status string, rating int) ([]models.Review, int64, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID, false)
	if err != nil {
		return nil, 0, err
	}
	if campaign == nil || campaign.ShopID != shopID {
		return nil, 0, ErrCampaignNotFound
	}
	return s.reviewRepo.List(repository.ReviewListFilter{
		Page:       page,
		PageSize:   pageSize,
		CampaignID: campaignID,
		Status:     status,
		Rating:     rating,
	})
}

// ListByShop pages reviews across every campaign the shop owns.
func (s *ReviewService) ListByShop(shopID uint, page, pageSize int, status string, rating int) ([]models.Review, int64, error) {
	campaignIDs, err := s.campaignRepo.ListIDsByShop(shopID)
	if err != nil {
		return nil, 0, err
	}
	if len(campaignIDs) == 0 {
		return []models.Review{}, 0, nil
	}
	return s.reviewRepo.List(repository.ReviewListFilter{
		Page:        page,
		PageSize:    pageSize,
		CampaignIDs: campaignIDs,
		Status:      status,
		Rating:      rating,
	})
}

func missingSubmitFields(input SubmitReviewInput) []string {
	var missing []string
	if input.CampaignID == 0 {
		missing = append(missing, "campaign_id")
	}
	if input.CustomerName == "" {
		missing = append(missing, "customer_name")
	}
	if input.CustomerEmail == "" {
		missing = append(missing, "customer_email")
	}
	if input.Rating == 0 {
		missing = append(missing, "rating")
	}
	return missing
}

func isReviewStatus(status string) bool {
	switch status {
	case constants.ReviewStatusPending, constants.ReviewStatusApproved, constants.ReviewStatusRejected:
		return true
	}
	return false
}
