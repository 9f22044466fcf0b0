package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/reviewloop/reviewloop/internal/logger"
	"github.com/reviewloop/reviewloop/internal/provider"
	"github.com/reviewloop/reviewloop/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles async tasks against the shared container.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskShopUninstall, c.handleShopUninstall)
	mux.HandleFunc(queue.TaskReviewNotification, c.handleReviewNotification)
}

func (c *Consumer) handleShopUninstall(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.ShopUninstallPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_shop_uninstall_unmarshal_failed", "error", err)
		return err
	}
	domain := strings.TrimSpace(payload.ShopDomain)
	if domain == "" {
		logger.Debugw("worker_shop_uninstall_skip_empty_domain")
		return nil
	}
	if err := c.ShopService.Deactivate(domain); err != nil {
		logger.Warnw("worker_shop_uninstall_failed", "shop_domain", domain, "error", err)
		return err
	}
	logger.Infow("worker_shop_uninstalled", "shop_domain", domain)
	return nil
}

func (c *Consumer) handleReviewNotification(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.ReviewNotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_review_notification_unmarshal_failed", "error", err)
		return err
	}
	if payload.ReviewID == 0 {
		return nil
	}
	review, err := c.ReviewRepo.GetByID(payload.ReviewID)
	if err != nil {
		logger.Warnw("worker_review_notification_fetch_failed", "review_id", payload.ReviewID, "error", err)
		return err
	}
	if review == nil {
		logger.Debugw("worker_review_notification_skip_missing", "review_id", payload.ReviewID)
		return nil
	}
	campaign, err := c.CampaignRepo.GetByID(review.CampaignID, false)
	if err != nil || campaign == nil {
		logger.Debugw("worker_review_notification_campaign_missing", "campaign_id", review.CampaignID, "error", err)
		return nil
	}
	// Notification is a merchant-dashboard concern; the worker records
	// the event so operators can trace issuance volume per campaign.
	logger.Infow("review_received",
		"review_id", review.ID,
		"campaign_id", campaign.ID,
		"shop_id", campaign.ShopID,
		"rating", review.Rating,
	)
	return nil
}
