package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reviewloop/reviewloop/internal/constants"
	"github.com/reviewloop/reviewloop/internal/models"
	"github.com/reviewloop/reviewloop/internal/provider"
	"github.com/reviewloop/reviewloop/internal/repository"
	"github.com/reviewloop/reviewloop/internal/service"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	StatusCode int                    `json:"status_code"`
	Msg        string                 `json:"msg"`
	Data       map[string]interface{} `json:"data"`
}

func newSubmitFixture(t *testing.T) (*gin.Engine, *models.Campaign, *provider.Container) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Shop{}, &models.Promo{}, &models.Campaign{}, &models.Review{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	shops := repository.NewShopRepository(db)
	promos := repository.NewPromoRepository(db)
	campaigns := repository.NewCampaignRepository(db)
	reviews := repository.NewReviewRepository(db)

	shop := &models.Shop{ShopDomain: "alpha.myshopify.com", AccessToken: "shpat", IsActive: true}
	if err := shops.Create(shop); err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	promoSvc := service.NewPromoService(promos, campaigns)
	promo, err := promoSvc.Create(shop.ID, service.CreatePromoInput{
		Name:          "10% Off",
		Type:          constants.PromoTypeDiscount,
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("seed promo: %v", err)
	}
	campaignSvc := service.NewCampaignService(campaigns, promos, shops, nil)
	campaign, err := campaignSvc.Create(shop.ID, service.CreateCampaignInput{
		Name:       "Launch",
		ProductIDs: []string{"1001"},
		PromoID:    promo.ID,
	})
	if err != nil {
		t.Fatalf("seed campaign: %v", err)
	}

	container := &provider.Container{
		ShopRepo:        shops,
		PromoRepo:       promos,
		CampaignRepo:    campaigns,
		ReviewRepo:      reviews,
		PromoService:    promoSvc,
		CampaignService: campaignSvc,
		ReviewService:   service.NewReviewService(reviews, campaigns, shops, nil),
	}
	handler := New(container)

	r := gin.New()
	r.POST("/api/v1/public/reviews", handler.SubmitReview)
	return r, campaign, container
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *envelope {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected HTTP 200 envelope, got %d: %s", w.Code, w.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return &env
}

func TestSubmitReviewEndpoint(t *testing.T) {
	r, campaign, _ := newSubmitFixture(t)

	env := postJSON(t, r, "/api/v1/public/reviews", `{
		"campaign_id": `+jsonUint(campaign.ID)+`,
		"customer_name": "Ada",
		"customer_email": "ada@example.com",
		"rating": 5,
		"review_text": "Great mug."
	}`)
	if env.StatusCode != 0 {
		t.Fatalf("expected success, got %d (%s)", env.StatusCode, env.Msg)
	}
	code, _ := env.Data["promo_code"].(string)
	if !strings.HasPrefix(code, "REVIEW-") {
		t.Fatalf("expected issued promo code, got %q", code)
	}
	if env.Data["status"] != constants.ReviewStatusApproved {
		t.Fatalf("expected auto-approved review, got %v", env.Data["status"])
	}

	// A second submission with the same email answers with the first code.
	dup := postJSON(t, r, "/api/v1/public/reviews", `{
		"campaign_id": `+jsonUint(campaign.ID)+`,
		"customer_name": "Ada",
		"customer_email": "ADA@example.com",
		"rating": 4
	}`)
	if dup.StatusCode != 409 {
		t.Fatalf("expected conflict status code, got %d", dup.StatusCode)
	}
	if dup.Data["promo_code"] != code {
		t.Fatalf("expected original code %q, got %v", code, dup.Data["promo_code"])
	}
}

func TestSubmitReviewEndpointMissingFields(t *testing.T) {
	r, _, _ := newSubmitFixture(t)

	env := postJSON(t, r, "/api/v1/public/reviews", `{"rating": 5}`)
	if env.StatusCode != 400 {
		t.Fatalf("expected bad request, got %d", env.StatusCode)
	}
	missing, _ := env.Data["missing_fields"].([]interface{})
	if len(missing) != 3 {
		t.Fatalf("expected 3 missing fields, got %v", env.Data["missing_fields"])
	}
}

func TestSubmitReviewEndpointPausedCampaign(t *testing.T) {
	r, campaign, container := newSubmitFixture(t)

	paused := constants.CampaignStatusPaused
	if _, err := container.CampaignService.Update(campaign.ShopID, campaign.ID, service.UpdateCampaignInput{Status: &paused}); err != nil {
		t.Fatalf("pause campaign: %v", err)
	}

	env := postJSON(t, r, "/api/v1/public/reviews", `{
		"campaign_id": `+jsonUint(campaign.ID)+`,
		"customer_name": "Ada",
		"customer_email": "ada@example.com",
		"rating": 5
	}`)
	if env.StatusCode != 409 {
		t.Fatalf("expected conflict status code for paused campaign, got %d", env.StatusCode)
	}
}

func TestSubmitReviewEndpointBadEmail(t *testing.T) {
	r, campaign, _ := newSubmitFixture(t)

	env := postJSON(t, r, "/api/v1/public/reviews", `{
		"campaign_id": `+jsonUint(campaign.ID)+`,
		"customer_name": "Ada",
		"customer_email": "not-an-email",
		"rating": 5
	}`)
	if env.StatusCode != 400 {
		t.Fatalf("expected bad request, got %d", env.StatusCode)
	}
}

func jsonUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
