package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringArray stores a JSON-encoded list of strings in a text column.
type StringArray []string

// Value implements driver.Valuer.
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return nil
}

// Campaign is a review-collection drive: a set of products bundled with
// one promo and published under a globally unique slug. The slug is
// issued once at creation and never changes; start/end dates are
// descriptive only and do not gate availability.
type Campaign struct {
	ID         uint        `gorm:"primarykey" json:"id"`
	ShopID     uint        `gorm:"index;not null" json:"shop_id"`
	Name       string      `gorm:"not null" json:"name"`
	ProductIDs StringArray `gorm:"type:text" json:"product_ids"` // external product ids; empty = any product
	PromoID    uint        `gorm:"index;not null" json:"promo_id"`
	Promo      *Promo      `gorm:"foreignKey:PromoID" json:"promo,omitempty"`
	Status     string      `gorm:"not null;default:active" json:"status"` // active / paused / ended
	PublicSlug string      `gorm:"uniqueIndex;not null" json:"public_slug"`
	StartsAt   *time.Time  `json:"starts_at"`
	EndsAt     *time.Time  `json:"ends_at"`
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// TableName sets the table name.
func (Campaign) TableName() string {
	return "campaigns"
}
