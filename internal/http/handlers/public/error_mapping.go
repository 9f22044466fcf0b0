package public

import (
	"errors"

	"github.com/reviewloop/reviewloop/internal/http/response"
	"github.com/reviewloop/reviewloop/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a service error onto its API response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var submitReviewErrorRules = []mappedHandlerError{
	{target: service.ErrEmailInvalid, code: response.CodeBadRequest, msg: "customer email is invalid"},
	{target: service.ErrRatingOutOfRange, code: response.CodeBadRequest, msg: "rating must be between 1 and 5"},
	{target: service.ErrCampaignNotFound, code: response.CodeNotFound, msg: "campaign not found"},
	{target: service.ErrCampaignNotActive, code: response.CodeConflict, msg: "campaign is not accepting reviews"},
}
