// Package shopify talks to the Shopify platform: OAuth handshake,
// Admin REST product reads, and webhook signature verification.
package shopify

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var (
	ErrConfigInvalid    = errors.New("shopify config invalid")
	ErrShopDomain       = errors.New("shop domain invalid")
	ErrRequestFailed    = errors.New("shopify request failed")
	ErrResponseInvalid  = errors.New("shopify response invalid")
	ErrSignatureInvalid = errors.New("shopify signature invalid")
)

const (
	defaultAPIVersion = "2024-07"
	defaultTimeout    = 10 * time.Second
)

// shopDomainPattern matches store domains like my-store.myshopify.com.
var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.myshopify\.com$`)

// Config holds app credentials and API behaviour.
type Config struct {
	APIKey              string
	APISecret           string
	Scopes              string // comma separated
	APIVersion          string
	AppURL              string
	Timeout             time.Duration
	ProductFetchTimeout time.Duration
}

func (c *Config) normalize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.APISecret = strings.TrimSpace(c.APISecret)
	c.Scopes = strings.TrimSpace(c.Scopes)
	c.APIVersion = strings.TrimSpace(c.APIVersion)
	c.AppURL = strings.TrimRight(strings.TrimSpace(c.AppURL), "/")
	if c.APIVersion == "" {
		c.APIVersion = defaultAPIVersion
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.ProductFetchTimeout <= 0 {
		c.ProductFetchTimeout = c.Timeout
	}
}

// ValidateConfig checks that the credentials needed for the OAuth
// handshake are present.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return ErrConfigInvalid
	}
	if strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.APISecret) == "" {
		return ErrConfigInvalid
	}
	return nil
}

// Client is a Shopify API client bound to one app's credentials.
// Store-level credentials travel per call.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient builds a client from config.
func NewClient(cfg Config) *Client {
	cfg.normalize()
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// IsValidShopDomain reports whether domain is a well-formed
// *.myshopify.com store domain.
func IsValidShopDomain(domain string) bool {
	return shopDomainPattern.MatchString(strings.TrimSpace(domain))
}

// ProductFetchTimeout is the per-product budget for enrichment fetches.
func (c *Client) ProductFetchTimeout() time.Duration {
	return c.cfg.ProductFetchTimeout
}
