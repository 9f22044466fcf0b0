package admin

import (
	"errors"
	"strconv"

	"github.com/reviewloop/reviewloop/internal/http/response"
	"github.com/reviewloop/reviewloop/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts proxies the shop's catalog so the dashboard can pick
// products for a campaign without holding Shopify credentials itself.
func (h *Handler) ListProducts(c *gin.Context) {
	shopID, ok := getShopID(c)
	if !ok {
		return
	}
	shop, err := h.ShopService.GetActive(shopID)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) || errors.Is(err, service.ErrShopInactive) {
			respondError(c, response.CodeUnauthorized, "shop session is no longer valid", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load shop", err)
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 250 {
			respondError(c, response.CodeBadRequest, "limit must be between 1 and 250", err)
			return
		}
		limit = parsed
	}

	products, err := h.ShopifyClient.ListProducts(c.Request.Context(), shop.ShopDomain, shop.AccessToken, limit)
	if err != nil {
		requestLog(c).Warnw("product_list_failed", "shop_domain", shop.ShopDomain, "error", err)
		respondError(c, response.CodeInternal, "failed to fetch products from Shopify", err)
		return
	}
	response.Success(c, products)
}
