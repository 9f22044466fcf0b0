package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Product is the subset of the Admin API product payload the review
// form needs.
type Product struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

type productImage struct {
	Src string `json:"src"`
}

type productPayload struct {
	ID     json.Number    `json:"id"`
	Title  string         `json:"title"`
	Images []productImage `json:"images"`
}

func (p productPayload) toProduct() Product {
	product := Product{
		ID:    p.ID.String(),
		Title: p.Title,
	}
	if len(p.Images) > 0 {
		product.Image = p.Images[0].Src
	}
	return product
}

// GetProduct fetches one product's title and primary image using the
// store's credential.
func (c *Client) GetProduct(ctx context.Context, shopDomain, accessToken, productID string) (*Product, error) {
	endpoint := fmt.Sprintf("https://%s/admin/api/%s/products/%s.json",
		shopDomain, c.cfg.APIVersion, url.PathEscape(productID))

	var payload struct {
		Product productPayload `json:"product"`
	}
	if err := c.getJSON(ctx, endpoint, accessToken, &payload); err != nil {
		return nil, err
	}
	product := payload.Product.toProduct()
	return &product, nil
}

// ListProducts fetches up to limit products for the store.
func (c *Client) ListProducts(ctx context.Context, shopDomain, accessToken string, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 50
	}
	endpoint := fmt.Sprintf("https://%s/admin/api/%s/products.json?limit=%s",
		shopDomain, c.cfg.APIVersion, strconv.Itoa(limit))

	var payload struct {
		Products []productPayload `json:"products"`
	}
	if err := c.getJSON(ctx, endpoint, accessToken, &payload); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(payload.Products))
	for _, p := range payload.Products {
		products = append(products, p.toProduct())
	}
	return products, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, accessToken string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Shopify-Access-Token", accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrResponseInvalid, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return nil
}
