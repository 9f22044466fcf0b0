package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// WebhookHMACHeader carries the provider's base64 signature.
const WebhookHMACHeader = "X-Shopify-Hmac-Sha256"

// WebhookTopicHeader names the event topic.
const WebhookTopicHeader = "X-Shopify-Topic"

// WebhookShopHeader names the originating store domain.
const WebhookShopHeader = "X-Shopify-Shop-Domain"

// VerifyWebhook checks the HMAC-SHA256 signature over the raw request
// body against the shared app secret. Absent or mismatched signatures
// are both rejected.
func VerifyWebhook(secret string, body []byte, providedHMAC string) error {
	providedHMAC = strings.TrimSpace(providedHMAC)
	if providedHMAC == "" || len(body) == 0 {
		return ErrSignatureInvalid
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(providedHMAC)) {
		return ErrSignatureInvalid
	}
	return nil
}

// VerifyWebhook on the client uses the configured app secret.
func (c *Client) VerifyWebhook(body []byte, providedHMAC string) error {
	return VerifyWebhook(c.cfg.APISecret, body, providedHMAC)
}
