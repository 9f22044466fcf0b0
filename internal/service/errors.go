package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShopNotFound  = errors.New("shop not found")
	ErrShopInactive  = errors.New("shop is not active")
	ErrStateInvalid  = errors.New("oauth state is invalid or expired")
	ErrTokenInvalid  = errors.New("session token is invalid or expired")
	ErrWeakSecretKey = errors.New("session secret key is too weak")

	ErrPromoNotFound     = errors.New("promo not found")
	ErrPromoNameRequired = errors.New("promo name is required")
	ErrPromoTypeInvalid  = errors.New("promo type is invalid")
	ErrDiscountConfig    = errors.New("discount configuration is invalid")

	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrCampaignNotActive    = errors.New("campaign is not active")
	ErrCampaignNameRequired = errors.New("campaign name is required")
	ErrCampaignStatusValue  = errors.New("campaign status is invalid")

	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewStatusValue   = errors.New("review status is invalid")
	ErrEmailInvalid        = errors.New("customer email is invalid")
	ErrRatingOutOfRange    = errors.New("rating must be between 1 and 5")
	ErrPromoCodeGeneration = errors.New("promo code generation failed")
)

// RequiredFieldsError reports which submission fields were absent.
type RequiredFieldsError struct {
	Missing []string
}

func (e *RequiredFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// DuplicateReviewError is returned when a customer already reviewed the
// campaign. It carries the code issued with the earlier submission so the
// caller can surface it again.
type DuplicateReviewError struct {
	PromoCode string
}

func (e *DuplicateReviewError) Error() string {
	return "a review for this campaign was already submitted with this email"
}
