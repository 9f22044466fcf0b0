package queue

import (
	"encoding/json"

	"github.com/reviewloop/reviewloop/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskShopUninstall deactivates a store after an uninstall webhook.
	TaskShopUninstall = constants.TaskShopUninstall
	// TaskReviewNotification records merchant-facing notice of a new review.
	TaskReviewNotification = constants.TaskReviewNotification
)

// ShopUninstallPayload identifies the store to deactivate.
type ShopUninstallPayload struct {
	ShopDomain string `json:"shop_domain"`
}

// ReviewNotificationPayload identifies a freshly submitted review.
type ReviewNotificationPayload struct {
	ReviewID   uint `json:"review_id"`
	CampaignID uint `json:"campaign_id"`
}

// NewShopUninstallTask builds the uninstall task.
func NewShopUninstallTask(payload ShopUninstallPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskShopUninstall, body), nil
}

// NewReviewNotificationTask builds the notification task.
func NewReviewNotificationTask(payload ReviewNotificationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReviewNotification, body), nil
}
