package public

import (
	"errors"

	"github.com/reviewloop/reviewloop/internal/http/response"
	"github.com/reviewloop/reviewloop/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitReviewRequest is the public form submission payload.
type SubmitReviewRequest struct {
	CampaignID    uint   `json:"campaign_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Rating        int    `json:"rating"`
	ReviewText    string `json:"review_text"`
	ProductID     string `json:"product_id"`
}

// SubmitReview accepts a review and answers with the promo code earned.
// A repeat submission for the same campaign and email returns the code
// issued the first time.
func (h *Handler) SubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "request body is invalid", err)
		return
	}

	result, err := h.ReviewService.Submit(c.Request.Context(), service.SubmitReviewInput{
		CampaignID:    req.CampaignID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Rating:        req.Rating,
		ReviewText:    req.ReviewText,
		ProductID:     req.ProductID,
	})
	if err != nil {
		var reqErr *service.RequiredFieldsError
		if errors.As(err, &reqErr) {
			response.ErrorWithData(c, response.CodeBadRequest, reqErr.Error(), gin.H{
				"missing_fields": reqErr.Missing,
			})
			return
		}
		var dup *service.DuplicateReviewError
		if errors.As(err, &dup) {
			response.ErrorWithData(c, response.CodeConflict, "a review was already submitted for this campaign", gin.H{
				"promo_code": dup.PromoCode,
			})
			return
		}
		respondWithMappedError(c, err, submitReviewErrorRules, response.CodeInternal, "failed to submit review")
		return
	}

	response.Success(c, gin.H{
		"review_id":  result.Review.ID,
		"status":     result.Review.Status,
		"promo_code": result.Review.PromoCode,
		"reward":     result.Reward,
	})
}
