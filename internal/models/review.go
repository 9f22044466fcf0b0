package models

import "time"

// Review is one customer submission. The composite unique index on
// (campaign_id, customer_email) enforces at most one review per
// customer per campaign at the storage level; the application-level
// pre-check exists only to return the previously issued code.
// Reviews are immutable except for Status.
type Review struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CampaignID    uint      `gorm:"not null;uniqueIndex:uq_reviews_campaign_email" json:"campaign_id"`
	CustomerName  string    `gorm:"not null" json:"customer_name"`
	CustomerEmail string    `gorm:"not null;uniqueIndex:uq_reviews_campaign_email" json:"customer_email"`
	Rating        int       `gorm:"not null" json:"rating"` // 1..5
	ReviewText    string    `gorm:"type:text" json:"review_text"`
	ProductID     string    `json:"product_id"`
	PromoCode     string    `gorm:"index" json:"promo_code"`
	Status        string    `gorm:"not null;default:approved" json:"status"` // pending / approved / rejected
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"-"`
}

// TableName sets the table name.
func (Review) TableName() string {
	return "reviews"
}
