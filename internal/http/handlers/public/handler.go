package public

import "github.com/reviewloop/reviewloop/internal/provider"

// Handler serves the unauthenticated surface: the review form, the
// OAuth handshake and platform webhooks.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
