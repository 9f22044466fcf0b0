package admin

import (
	"strconv"

	"github.com/reviewloop/reviewloop/internal/http/handlers/shared"
	"github.com/reviewloop/reviewloop/internal/http/response"
	"github.com/reviewloop/reviewloop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreatePromoRequest creates a reward definition.
type CreatePromoRequest struct {
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	CodePrefix    string  `json:"code_prefix"`
}

// UpdatePromoRequest carries a partial promo update.
type UpdatePromoRequest struct {
	Name          *string  `json:"name"`
	Type          *string  `json:"type"`
	DiscountType  *string  `json:"discount_type"`
	DiscountValue *float64 `json:"discount_value"`
	CodePrefix    *string  `json:"code_prefix"`
	IsActive      *bool    `json:"is_active"`
}

// CreatePromo creates a promo for the session shop.
func (h *Handler) CreatePromo(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	var req CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "request body is invalid", err)
		return
	}
	promo, err := h.PromoService.Create(shopID, service.CreatePromoInput{
		Name:          req.Name,
		Type:          req.Type,
		DiscountType:  req.DiscountType,
		DiscountValue: decimal.NewFromFloat(req.DiscountValue),
		CodePrefix:    req.CodePrefix,
	})
	if err != nil {
		respondWithMappedError(c, err, promoErrorRules, response.CodeInternal, "failed to create promo")
		return
	}
	response.Success(c, promo)
}

// GetPromo returns one promo.
func (h *Handler) GetPromo(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	promo, err := h.PromoService.Get(shopID, id)
	if err != nil {
		respondWithMappedError(c, err, promoErrorRules, response.CodeInternal, "failed to load promo")
		return
	}
	response.Success(c, promo)
}

// UpdatePromo applies a partial update.
func (h *Handler) UpdatePromo(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "request body is invalid", err)
		return
	}
	input := service.UpdatePromoInput{
		Name:         req.Name,
		Type:         req.Type,
		DiscountType: req.DiscountType,
		CodePrefix:   req.CodePrefix,
		IsActive:     req.IsActive,
	}
	if req.DiscountValue != nil {
		value := decimal.NewFromFloat(*req.DiscountValue)
		input.DiscountValue = &value
	}
	promo, err := h.PromoService.Update(shopID, id, input)
	if err != nil {
		respondWithMappedError(c, err, promoErrorRules, response.CodeInternal, "failed to update promo")
		return
	}
	response.Success(c, promo)
}

// DeletePromo deactivates a promo.
func (h *Handler) DeletePromo(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.PromoService.Delete(shopID, id); err != nil {
		respondWithMappedError(c, err, promoErrorRules, response.CodeInternal, "failed to delete promo")
		return
	}
	response.Success(c, nil)
}

// ListPromos pages the shop's promos.
func (h *Handler) ListPromos(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "is_active must be a boolean", err)
			return
		}
		isActive = &parsed
	}

	promos, total, err := h.PromoService.List(shopID, page, pageSize, c.Query("type"), isActive)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list promos", err)
		return
	}
	response.SuccessWithPage(c, promos, response.NewPagination(page, pageSize, total))
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "id must be a positive integer", err)
		return 0, false
	}
	return uint(id), true
}
