package admin

import "github.com/reviewloop/reviewloop/internal/provider"

// Handler serves the merchant dashboard API. Every route behind it
// requires a shop session.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
