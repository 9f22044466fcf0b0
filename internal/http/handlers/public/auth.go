package public

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/reviewloop/reviewloop/internal/http/response"
	"github.com/reviewloop/reviewloop/internal/service"
	"github.com/reviewloop/reviewloop/internal/shopify"

	"github.com/gin-gonic/gin"
)

// BeginAuth starts the install flow: it validates the shop domain and
// redirects the merchant to Shopify's consent screen.
func (h *Handler) BeginAuth(c *gin.Context) {
	authorizeURL, err := h.ShopService.BeginAuth(c.Request.Context(), c.Query("shop"))
	if err != nil {
		if errors.Is(err, shopify.ErrShopDomain) {
			respondError(c, response.CodeBadRequest, "shop must be a *.myshopify.com domain", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to start installation", err)
		return
	}
	c.Redirect(http.StatusFound, authorizeURL)
}

// AuthCallback completes the install flow and hands the dashboard a
// session token.
func (h *Handler) AuthCallback(c *gin.Context) {
	result, err := h.ShopService.CompleteAuth(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		switch {
		case errors.Is(err, shopify.ErrShopDomain):
			respondError(c, response.CodeBadRequest, "shop must be a *.myshopify.com domain", nil)
		case errors.Is(err, shopify.ErrSignatureInvalid):
			respondError(c, response.CodeUnauthorized, "callback signature is invalid", nil)
		case errors.Is(err, service.ErrStateInvalid):
			respondError(c, response.CodeUnauthorized, "oauth state is invalid or expired", nil)
		default:
			respondError(c, response.CodeInternal, "failed to complete installation", err)
		}
		return
	}
	requestLog(c).Infow("oauth_completed", "shop_domain", result.Shop.ShopDomain)

	if appURL := strings.TrimRight(h.Config.Shopify.AppURL, "/"); appURL != "" {
		query := url.Values{}
		query.Set("shop", result.Shop.ShopDomain)
		query.Set("token", result.SessionToken)
		c.Redirect(http.StatusFound, appURL+"/?"+query.Encode())
		return
	}
	response.Success(c, gin.H{
		"shop_domain":   result.Shop.ShopDomain,
		"session_token": result.SessionToken,
	})
}
