package admin

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

var promoErrorRules = []mappedHandlerError{
	{target: service.ErrPromoNotFound, code: response.CodeNotFound, msg: "promo not found"},
	{target: service.ErrPromoNameRequired, code: response.CodeBadRequest, msg: "promo name is required"},
	{target: service.ErrPromoTypeInvalid, code: response.CodeBadRequest, msg: "promo type must be discount or warranty"},
	{target: service.ErrDiscountConfig, code: response.CodeBadRequest, msg: "discount configuration is invalid"},
}

var campaignErrorRules = []mappedHandlerError{
	{target: service.ErrCampaignNotFound, code: response.CodeNotFound, msg: "campaign not found"},
	{target: service.ErrCampaignNameRequired, code: response.CodeBadRequest, msg: "campaign name is required"},
	{target: service.ErrCampaignStatusValue, code: response.CodeBadRequest, msg: "campaign status is invalid"},
	{target: service.ErrPromoNotFound, code: response.CodeBadRequest, msg: "promo not found or inactive"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrReviewNotFound, code: response.CodeNotFound, msg: "review not found"},
	{target: service.ErrReviewStatusValue, code: response.CodeBadRequest, msg: "review status must be pending, approved or rejected"},
	{target: service.ErrCampaignNotFound, code: response.CodeNotFound, msg: "campaign not found"},
}
