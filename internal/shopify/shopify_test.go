package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"strings"
	"testing"
	"time"
)

func testClient() *Client {
	return NewClient(Config{
		APIKey:     "key123",
		APISecret:  "secret456",
		Scopes:     "read_products,write_discounts",
		APIVersion: "2024-07",
		AppURL:     "https://app.example.com",
		Timeout:    5 * time.Second,
	})
}

func TestIsValidShopDomain(t *testing.T) {
	valid := []string{
		"alpha.myshopify.com",
		"my-store-2.myshopify.com",
		"a.myshopify.com",
	}
	for _, domain := range valid {
		if !IsValidShopDomain(domain) {
			t.Errorf("expected %q valid", domain)
		}
	}
	invalid := []string{
		"",
		"alpha.example.com",
		"myshopify.com",
		"alpha.myshopify.com.evil.com",
		"-leading.myshopify.com",
		"alpha .myshopify.com",
	}
	for _, domain := range invalid {
		if IsValidShopDomain(domain) {
			t.Errorf("expected %q invalid", domain)
		}
	}
}

func TestAuthorizeURL(t *testing.T) {
	client := testClient()
	raw, err := client.AuthorizeURL("alpha.myshopify.com", "nonce123")
	if err != nil {
		t.Fatalf("AuthorizeURL: %v", err)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse authorize url: %v", err)
	}
	if parsed.Host != "alpha.myshopify.com" {
		t.Fatalf("wrong host %q", parsed.Host)
	}
	query := parsed.Query()
	if query.Get("client_id") != "key123" {
		t.Fatalf("wrong client_id %q", query.Get("client_id"))
	}
	if query.Get("state") != "nonce123" {
		t.Fatalf("wrong state %q", query.Get("state"))
	}
	if !strings.Contains(query.Get("redirect_uri"), "/api/v1/auth/callback") {
		t.Fatalf("wrong redirect_uri %q", query.Get("redirect_uri"))
	}
	if query.Get("scope") != "read_products,write_discounts" {
		t.Fatalf("wrong scope %q", query.Get("scope"))
	}
}

func signCallbackParams(secret string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		if key == "hmac" || key == "signature" {
			continue
		}
		keys = append(keys, key)
	}
	// Insertion order does not matter; VerifyCallbackParams sorts.
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params.Get(key))
	}
	// Build the canonical sorted message the same way Shopify does.
	for i := 0; i < len(pairs); i++ {
		for j := i + 1; j < len(pairs); j++ {
			if pairs[j] < pairs[i] {
				pairs[i], pairs[j] = pairs[j], pairs[i]
			}
		}
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyCallbackParams(t *testing.T) {
	client := testClient()
	params := url.Values{}
	params.Set("shop", "alpha.myshopify.com")
	params.Set("code", "tempcode")
	params.Set("state", "nonce123")
	params.Set("timestamp", "1700000000")
	params.Set("hmac", signCallbackParams("secret456", params))

	if err := client.VerifyCallbackParams(params); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}

	params.Set("shop", "tampered.myshopify.com")
	if err := client.VerifyCallbackParams(params); err == nil {
		t.Fatal("expected tampered params to fail verification")
	}
}

func TestVerifyWebhook(t *testing.T) {
	body := []byte(`{"domain":"alpha.myshopify.com"}`)
	mac := hmac.New(sha256.New, []byte("secret456"))
	mac.Write(body)
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if err := VerifyWebhook("secret456", body, signature); err != nil {
		t.Fatalf("expected valid webhook signature, got %v", err)
	}
	if err := VerifyWebhook("secret456", []byte(`{"tampered":true}`), signature); err == nil {
		t.Fatal("expected tampered body to fail verification")
	}
	if err := VerifyWebhook("secret456", body, ""); err == nil {
		t.Fatal("expected missing signature to fail verification")
	}
	if err := VerifyWebhook("wrong", body, signature); err == nil {
		t.Fatal("expected wrong secret to fail verification")
	}
}
