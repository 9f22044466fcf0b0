package constants

// Promo reward kinds.
const (
	PromoTypeDiscount = "discount"
	PromoTypeWarranty = "warranty"
)

// Discount sub-kinds.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// DefaultCodePrefix is used when a promo carries no prefix of its own.
const DefaultCodePrefix = "REVIEW"

// Campaign lifecycle states.
const (
	CampaignStatusActive = "active"
	CampaignStatusPaused = "paused"
	CampaignStatusEnded  = "ended"
)

// Review moderation states.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Async task type names.
const (
	TaskShopUninstall      = "shop:uninstall"
	TaskReviewNotification = "review:notification"
)

// Queue names.
const (
	QueueDefault = "default"
)

// Shopify webhook topics handled by the app.
const (
	WebhookTopicAppUninstalled = "app/uninstalled"
)
