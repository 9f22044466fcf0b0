package admin

import (
	"strconv"

	"github.com/reviewloop/reviewloop/internal/http/handlers/shared"
	"github.com/reviewloop/reviewloop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UpdateReviewStatusRequest moderates a review.
type UpdateReviewStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListReviews pages reviews across the shop, or for one campaign when
// campaign_id is given.
func (h *Handler) ListReviews(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	page, pageSize, status, rating, ok := reviewListQuery(c)
	if !ok {
		return
	}

	if raw := c.Query("campaign_id"); raw != "" {
		campaignID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || campaignID == 0 {
			respondError(c, response.CodeBadRequest, "campaign_id must be a positive integer", err)
			return
		}
		reviews, total, err := h.ReviewService.ListByCampaign(shopID, uint(campaignID), page, pageSize, status, rating)
		if err != nil {
			respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "failed to list reviews")
			return
		}
		response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
		return
	}

	reviews, total, err := h.ReviewService.ListByShop(shopID, page, pageSize, status, rating)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list reviews", err)
		return
	}
	response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
}

// ListCampaignReviews pages one campaign's reviews by path id.
func (h *Handler) ListCampaignReviews(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	campaignID, ok := parseIDParam(c)
	if !ok {
		return
	}
	page, pageSize, status, rating, ok := reviewListQuery(c)
	if !ok {
		return
	}
	reviews, total, err := h.ReviewService.ListByCampaign(shopID, campaignID, page, pageSize, status, rating)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "failed to list reviews")
		return
	}
	response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
}

func reviewListQuery(c *gin.Context) (page, pageSize int, status string, rating int, ok bool) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	if raw := c.Query("rating"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 5 {
			respondError(c, response.CodeBadRequest, "rating must be between 1 and 5", err)
			return 0, 0, "", 0, false
		}
		rating = parsed
	}
	return page, pageSize, c.Query("status"), rating, true
}

// UpdateReviewStatus moves a review between pending, approved and rejected.
func (h *Handler) UpdateReviewStatus(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateReviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "request body is invalid", err)
		return
	}
	review, err := h.ReviewService.SetStatus(shopID, id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "failed to update review")
		return
	}
	response.Success(c, review)
}
