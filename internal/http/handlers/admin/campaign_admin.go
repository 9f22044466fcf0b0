package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/reviewloop/reviewloop/internal/http/handlers/shared"
	"github.com/reviewloop/reviewloop/internal/http/response"
	"github.com/reviewloop/reviewloop/internal/models"
	"github.com/reviewloop/reviewloop/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCampaignRequest creates a campaign.
type CreateCampaignRequest struct {
	Name       string   `json:"name" binding:"required"`
	ProductIDs []string `json:"product_ids"`
	PromoID    uint     `json:"promo_id" binding:"required"`
	Status     string   `json:"status"`
	StartsAt   string   `json:"starts_at"`
	EndsAt     string   `json:"ends_at"`
}

// UpdateCampaignRequest carries a partial campaign update.
type UpdateCampaignRequest struct {
	Name       *string   `json:"name"`
	ProductIDs *[]string `json:"product_ids"`
	PromoID    *uint     `json:"promo_id"`
	Status     *string   `json:"status"`
	StartsAt   *string   `json:"starts_at"`
	EndsAt     *string   `json:"ends_at"`
}

// CampaignView decorates a campaign with its shareable form URL.
// ReviewCount is populated on detail reads only.
type CampaignView struct {
	*models.Campaign
	PublicURL   string `json:"public_url"`
	ReviewCount *int64 `json:"review_count,omitempty"`
}

// CreateCampaign creates a campaign for the session shop.
func (h *Handler) CreateCampaign(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "request body is invalid", err)
		return
	}
	startsAt, err := parseTimeNullable(req.StartsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "starts_at must be RFC 3339", err)
		return
	}
	endsAt, err := parseTimeNullable(req.EndsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "ends_at must be RFC 3339", err)
		return
	}
	campaign, err := h.CampaignService.Create(shopID, service.CreateCampaignInput{
		Name:       req.Name,
		ProductIDs: req.ProductIDs,
		PromoID:    req.PromoID,
		Status:     req.Status,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
	})
	if err != nil {
		respondWithMappedError(c, err, campaignErrorRules, response.CodeInternal, "failed to create campaign")
		return
	}
	response.Success(c, h.campaignView(campaign))
}

// GetCampaign returns one campaign with its promo preloaded.
func (h *Handler) GetCampaign(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	campaign, err := h.CampaignService.Get(shopID, id)
	if err != nil {
		respondWithMappedError(c, err, campaignErrorRules, response.CodeInternal, "failed to load campaign")
		return
	}
	view := h.campaignView(campaign)
	count, err := h.ReviewRepo.CountByCampaign(campaign.ID)
	if err != nil {
		requestLog(c).Warnw("review_count_failed", "campaign_id", campaign.ID, "error", err)
	} else {
		view.ReviewCount = &count
	}
	response.Success(c, view)
}

// UpdateCampaign applies a partial update. The public slug never changes.
func (h *Handler) UpdateCampaign(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "request body is invalid", err)
		return
	}
	input := service.UpdateCampaignInput{
		Name:       req.Name,
		ProductIDs: req.ProductIDs,
		PromoID:    req.PromoID,
		Status:     req.Status,
	}
	if req.StartsAt != nil {
		startsAt, err := parseTimeNullable(*req.StartsAt)
		if err != nil {
			respondError(c, response.CodeBadRequest, "starts_at must be RFC 3339", err)
			return
		}
		input.StartsAt = startsAt
	}
	if req.EndsAt != nil {
		endsAt, err := parseTimeNullable(*req.EndsAt)
		if err != nil {
			respondError(c, response.CodeBadRequest, "ends_at must be RFC 3339", err)
			return
		}
		input.EndsAt = endsAt
	}
	campaign, err := h.CampaignService.Update(shopID, id, input)
	if err != nil {
		respondWithMappedError(c, err, campaignErrorRules, response.CodeInternal, "failed to update campaign")
		return
	}
	response.Success(c, h.campaignView(campaign))
}

// DeleteCampaign removes a campaign.
func (h *Handler) DeleteCampaign(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CampaignService.Delete(shopID, id); err != nil {
		respondWithMappedError(c, err, campaignErrorRules, response.CodeInternal, "failed to delete campaign")
		return
	}
	response.Success(c, nil)
}

// ListCampaigns pages the shop's campaigns.
func (h *Handler) ListCampaigns(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	campaigns, total, err := h.CampaignService.List(shopID, page, pageSize, c.Query("status"))
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list campaigns", err)
		return
	}
	views := make([]CampaignView, 0, len(campaigns))
	for i := range campaigns {
		views = append(views, *h.campaignView(&campaigns[i]))
	}
	response.SuccessWithPage(c, views, response.NewPagination(page, pageSize, total))
}

func (h *Handler) campaignView(campaign *models.Campaign) *CampaignView {
	base := strings.TrimRight(h.Config.Shopify.PublicFormURL, "/")
	view := &CampaignView{Campaign: campaign}
	if base != "" {
		view.PublicURL = base + "/review/" + campaign.PublicSlug
	}
	return view
}

func parseTimeNullable(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
