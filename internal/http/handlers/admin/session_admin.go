package admin

import (
	"errors"

	"github.com/reviewloop/reviewloop/internal/http/response"
	"github.com/reviewloop/reviewloop/internal/service"

	"github.com/gin-gonic/gin"
)

// GetSession returns the shop behind the current session token.
func (h *Handler) GetSession(c *gin.Context) {
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
	response.Success(c, gin.H{
		"shop_id":     shop.ID,
		"shop_domain": shop.ShopDomain,
		"scope":       shop.Scope,
		"is_active":   shop.IsActive,
	})
}
