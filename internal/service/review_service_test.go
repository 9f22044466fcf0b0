package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/reviewloop/reviewloop/internal/constants"
	"github.com/reviewloop/reviewloop/internal/models"
)

func newReviewFixture(t *testing.T) (*testEnv, *models.Campaign, *ReviewService) {
	t.Helper()
	env := newTestEnv(t)
	shop := env.seedShop(t, "alpha.myshopify.com")
	promoSvc := NewPromoService(env.promos, env.campaigns)
	promo, err := promoSvc.Create(shop.ID, CreatePromoInput{
		Name:          "10% Off",
		Type:          constants.PromoTypeDiscount,
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		CodePrefix:    "SPRING",
	})
	if err != nil {
		t.Fatalf("seed promo: %v", err)
	}
	campaignSvc := NewCampaignService(env.campaigns, env.promos, env.shops, &fakeGateway{})
	campaign, err := campaignSvc.Create(shop.ID, CreateCampaignInput{
		Name:       "Spring Launch",
		ProductIDs: []string{"1001"},
		PromoID:    promo.ID,
	})
	if err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	svc := NewReviewService(env.reviews, env.campaigns, env.shops, nil)
	return env, campaign, svc
}

func submitInput(campaignID uint) SubmitReviewInput {
	return SubmitReviewInput{
		CampaignID:    campaignID,
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Rating:        5,
		ReviewText:    "Great mug.",
		ProductID:     "1001",
	}
}

func TestReviewSubmitIssuesCode(t *testing.T) {
	_, campaign, svc := newReviewFixture(t)

	result, err := svc.Submit(context.Background(), submitInput(campaign.ID))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !strings.HasPrefix(result.Review.PromoCode, "SPRING-") {
		t.Fatalf("expected promo prefix on code, got %q", result.Review.PromoCode)
	}
	if result.Review.Status != constants.ReviewStatusApproved {
		t.Fatalf("expected auto-approval, got %q", result.Review.Status)
	}
	if result.Reward == nil || result.Reward.Type != constants.PromoTypeDiscount {
		t.Fatalf("expected reward details, got %+v", result.Reward)
	}
}

func TestReviewSubmitValidationOrder(t *testing.T) {
	_, campaign, svc := newReviewFixture(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitReviewInput{})
	var reqErr *RequiredFieldsError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequiredFieldsError, got %v", err)
	}
	if len(reqErr.Missing) != 4 {
		t.Fatalf("expected 4 missing fields, got %v", reqErr.Missing)
	}

	input := submitInput(campaign.ID)
	input.CustomerEmail = "not-an-email"
	if _, err := svc.Submit(ctx, input); err != ErrEmailInvalid {
		t.Fatalf("expected ErrEmailInvalid, got %v", err)
	}

	input = submitInput(campaign.ID)
	input.Rating = 6
	if _, err := svc.Submit(ctx, input); err != ErrRatingOutOfRange {
		t.Fatalf("expected ErrRatingOutOfRange, got %v", err)
	}

	input = submitInput(9999)
	if _, err := svc.Submit(ctx, input); err != ErrCampaignNotFound {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestReviewSubmitRejectsInactiveCampaign(t *testing.T) {
	env, campaign, svc := newReviewFixture(t)

	campaign.Status = constants.CampaignStatusPaused
	campaign.Promo = nil
	if err := env.campaigns.Update(campaign); err != nil {
		t.Fatalf("pause campaign: %v", err)
	}
	if _, err := svc.Submit(context.Background(), submitInput(campaign.ID)); err != ErrCampaignNotActive {
		t.Fatalf("expected ErrCampaignNotActive, got %v", err)
	}
}

func TestReviewSubmitDuplicateReturnsPriorCode(t *testing.T) {
	_, campaign, svc := newReviewFixture(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, submitInput(campaign.ID))
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	// Same email, different casing and surrounding space.
	input := submitInput(campaign.ID)
	input.CustomerEmail = "  ADA@example.com "
	_, err = svc.Submit(ctx, input)
	var dup *DuplicateReviewError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateReviewError, got %v", err)
	}
	if dup.PromoCode != first.Review.PromoCode {
		t.Fatalf("duplicate should carry the original code %q, got %q", first.Review.PromoCode, dup.PromoCode)
	}
}

func TestReviewSubmitConcurrentDuplicates(t *testing.T) {
	_, campaign, svc := newReviewFixture(t)

	const workers = 8
	var wg sync.WaitGroup
	codes := make(chan string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Submit(context.Background(), submitInput(campaign.ID))
			if err == nil {
				codes <- result.Review.PromoCode
				return
			}
			var dup *DuplicateReviewError
			if errors.As(err, &dup) {
				codes <- dup.PromoCode
				return
			}
			t.Errorf("unexpected submit error: %v", err)
		}()
	}
	wg.Wait()
	close(codes)

	seen := map[string]bool{}
	for code := range codes {
		if code != "" {
			seen[code] = true
		}
	}
	if len(seen) != 1 {
		t.Fatalf("expected exactly one issued code across racing submissions, got %v", seen)
	}
}

func TestReviewSetStatus(t *testing.T) {
	env, campaign, svc := newReviewFixture(t)
	other := env.seedShop(t, "beta.myshopify.com")

	result, err := svc.Submit(context.Background(), submitInput(campaign.ID))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.SetStatus(campaign.ShopID, result.Review.ID, "archived"); err != ErrReviewStatusValue {
		t.Fatalf("expected ErrReviewStatusValue, got %v", err)
	}
	if _, err := svc.SetStatus(other.ID, result.Review.ID, constants.ReviewStatusRejected); err != ErrReviewNotFound {
		t.Fatalf("foreign moderation should read as missing, got %v", err)
	}

	updated, err := svc.SetStatus(campaign.ShopID, result.Review.ID, constants.ReviewStatusRejected)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != constants.ReviewStatusRejected {
		t.Fatalf("status not applied: %q", updated.Status)
	}
}

func TestReviewListByShop(t *testing.T) {
	env, campaign, svc := newReviewFixture(t)

	if _, err := svc.Submit(context.Background(), submitInput(campaign.ID)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	second := submitInput(campaign.ID)
	second.CustomerEmail = "grace@example.com"
	second.Rating = 3
	if _, err := svc.Submit(context.Background(), second); err != nil {
		t.Fatalf("Submit second: %v", err)
	}

	items, total, err := svc.ListByShop(campaign.ShopID, 1, 20, "", 0)
	if err != nil {
		t.Fatalf("ListByShop: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 reviews, got total=%d len=%d", total, len(items))
	}

	items, total, err = svc.ListByShop(campaign.ShopID, 1, 20, "", 3)
	if err != nil {
		t.Fatalf("ListByShop rating filter: %v", err)
	}
	if total != 1 || items[0].Rating != 3 {
		t.Fatalf("rating filter failed: total=%d", total)
	}

	other := env.seedShop(t, "beta.myshopify.com")
	items, total, err = svc.ListByShop(other.ID, 1, 20, "", 0)
	if err != nil {
		t.Fatalf("ListByShop empty shop: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Fatalf("foreign shop should see nothing, got %d", total)
	}
}
