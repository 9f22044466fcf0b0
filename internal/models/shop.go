package models

import "time"

// Shop is one connected merchant store. Created at OAuth completion,
// refreshed on re-auth, deactivated on uninstall. Never hard-deleted.
type Shop struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ShopDomain  string    `gorm:"uniqueIndex;not null" json:"shop_domain"`
	AccessToken string    `gorm:"not null" json:"-"` // commerce API credential, never serialized
	Scope       string    `json:"scope"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (Shop) TableName() string {
	return "shops"
}
