package shopify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// AuthorizeURL builds the merchant-facing consent URL that begins the
// OAuth handshake for the given store. state is the anti-forgery nonce
// the callback must echo back.
func (c *Client) AuthorizeURL(shopDomain, state string) (string, error) {
	if err := ValidateConfig(&c.cfg); err != nil {
		return "", err
	}
	if !IsValidShopDomain(shopDomain) {
		return "", ErrShopDomain
	}
	query := url.Values{}
	query.Set("client_id", c.cfg.APIKey)
	query.Set("scope", c.cfg.Scopes)
	query.Set("redirect_uri", c.cfg.AppURL+"/api/v1/auth/callback")
	query.Set("state", state)
	return fmt.Sprintf("https://%s/admin/oauth/authorize?%s", shopDomain, query.Encode()), nil
}

// VerifyCallbackParams checks the provider-signed hmac over the OAuth
// callback query parameters. The hmac and signature keys are excluded
// from the signed payload per the platform contract.
func (c *Client) VerifyCallbackParams(params url.Values) error {
	provided := params.Get("hmac")
	if provided == "" {
		return ErrSignatureInvalid
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		if key == "hmac" || key == "signature" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params.Get(key))
	}
	message := strings.Join(pairs, "&")

	mac := hmac.New(sha256.New, []byte(c.cfg.APISecret))
	mac.Write([]byte(message))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(provided))) {
		return ErrSignatureInvalid
	}
	return nil
}

// AccessTokenResult is the outcome of a code-for-token exchange.
type AccessTokenResult struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}

// ExchangeCode trades the callback authorization code for a permanent
// store access token.
func (c *Client) ExchangeCode(ctx context.Context, shopDomain, code string) (*AccessTokenResult, error) {
	if err := ValidateConfig(&c.cfg); err != nil {
		return nil, err
	}
	if !IsValidShopDomain(shopDomain) {
		return nil, ErrShopDomain
	}

	payload, err := json.Marshal(map[string]string{
		"client_id":     c.cfg.APIKey,
		"client_secret": c.cfg.APISecret,
		"code":          code,
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("https://%s/admin/oauth/access_token", shopDomain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrResponseInvalid, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var result AccessTokenResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrResponseInvalid)
	}
	return &result, nil
}
