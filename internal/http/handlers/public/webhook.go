package public

import (
	"io"
	"net/http"

	"github.com/reviewloop/reviewloop/internal/constants"
	"github.com/reviewloop/reviewloop/internal/http/response"
	"github.com/reviewloop/reviewloop/internal/queue"
	"github.com/reviewloop/reviewloop/internal/service"
	"github.com/reviewloop/reviewloop/internal/shopify"

	"github.com/gin-gonic/gin"
)

// ShopifyWebhook receives platform webhooks. Signature failures answer
// 401 with a real HTTP status so Shopify retries against a
// misconfigured secret instead of treating the delivery as accepted.
func (h *Handler) ShopifyWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	providedHMAC := c.GetHeader(shopify.WebhookHMACHeader)
	if err := h.ShopifyClient.VerifyWebhook(body, providedHMAC); err != nil {
		requestLog(c).Warnw("webhook_signature_rejected", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook signature"})
		return
	}

	topic := c.GetHeader(shopify.WebhookTopicHeader)
	shopDomain := c.GetHeader(shopify.WebhookShopHeader)
	requestLog(c).Infow("webhook_received", "topic", topic, "shop_domain", shopDomain)

	switch topic {
	case constants.WebhookTopicAppUninstalled:
		h.handleAppUninstalled(c, shopDomain)
	default:
		// Unknown topics are acknowledged so Shopify stops retrying.
	}
	response.Success(c, nil)
}

func (h *Handler) handleAppUninstalled(c *gin.Context, shopDomain string) {
	if shopDomain == "" {
		return
	}
	if h.QueueClient != nil && h.QueueClient.Enabled() {
		payload := queue.ShopUninstallPayload{ShopDomain: shopDomain}
		err := h.QueueClient.EnqueueShopUninstall(payload)
		if err == nil {
			return
		}
		requestLog(c).Warnw("webhook_uninstall_enqueue_failed", "shop_domain", shopDomain, "error", err)
	}
	// No queue available; deactivate inline.
	if err := h.ShopService.Deactivate(shopDomain); err != nil && err != service.ErrShopNotFound {
		requestLog(c).Errorw("webhook_uninstall_failed", "shop_domain", shopDomain, "error", err)
	}
}
