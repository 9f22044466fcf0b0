package shopify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func stubResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestGetProduct(t *testing.T) {
	client := testClient()
	var gotURL, gotToken string
	client.httpClient.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		return stubResponse(200, `{
			"product": {
				"id": 632910392,
				"title": "Red Mug",
				"images": [{"src": "https://cdn.shopify.com/red.png"}]
			}
		}`), nil
	})

	product, err := client.GetProduct(context.Background(), "alpha.myshopify.com", "shpat_x", "632910392")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if product.ID != "632910392" || product.Title != "Red Mug" {
		t.Fatalf("unexpected product %+v", product)
	}
	if product.Image != "https://cdn.shopify.com/red.png" {
		t.Fatalf("expected first image src, got %q", product.Image)
	}
	if !strings.Contains(gotURL, "alpha.myshopify.com/admin/api/2024-07/products/632910392.json") {
		t.Fatalf("unexpected request url %q", gotURL)
	}
	if gotToken != "shpat_x" {
		t.Fatalf("access token header missing, got %q", gotToken)
	}
}

func TestGetProductWithoutImages(t *testing.T) {
	client := testClient()
	client.httpClient.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return stubResponse(200, `{"product": {"id": 1, "title": "Plain", "images": []}}`), nil
	})

	product, err := client.GetProduct(context.Background(), "alpha.myshopify.com", "shpat_x", "1")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if product.Image != "" {
		t.Fatalf("expected empty image, got %q", product.Image)
	}
}

func TestGetProductUpstreamError(t *testing.T) {
	client := testClient()
	client.httpClient.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return stubResponse(404, `{"errors": "Not Found"}`), nil
	})

	if _, err := client.GetProduct(context.Background(), "alpha.myshopify.com", "shpat_x", "999"); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestListProducts(t *testing.T) {
	client := testClient()
	var gotURL string
	client.httpClient.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return stubResponse(200, `{
			"products": [
				{"id": 1, "title": "A", "images": [{"src": "https://cdn/a.png"}]},
				{"id": 2, "title": "B", "images": []}
			]
		}`), nil
	})

	products, err := client.ListProducts(context.Background(), "alpha.myshopify.com", "shpat_x", 0)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "1" || products[1].Image != "" {
		t.Fatalf("unexpected products %+v", products)
	}
	// Zero limit falls back to the platform default.
	if !strings.Contains(gotURL, "limit=50") {
		t.Fatalf("expected default limit in url %q", gotURL)
	}
}
