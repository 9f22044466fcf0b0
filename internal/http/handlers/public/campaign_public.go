package public

import (
	"errors"
	"strings"

	"github.com/reviewloop/reviewloop/internal/http/response"
	"github.com/reviewloop/reviewloop/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCampaign resolves an active campaign by its public slug. Paused
// and ended campaigns read as missing so a shared link leaks nothing
// about the shop's configuration.
func (h *Handler) GetCampaign(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		response.NotFound(c, "campaign not found")
		return
	}
	campaign, err := h.CampaignService.PublicLookup(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			response.NotFound(c, "campaign not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to load campaign", err)
		return
	}
	response.Success(c, campaign)
}
