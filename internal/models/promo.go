package models

import "time"

// Promo is a reusable reward template owned by a shop. Discount promos
// carry a discount type and value; warranty promos carry neither.
// Promos are soft-deleted via IsActive because campaigns reference them.
type Promo struct {
	ID            uint          `gorm:"primarykey" json:"id"`
	ShopID        uint          `gorm:"index;not null" json:"shop_id"`
	Name          string        `gorm:"not null" json:"name"`
	Type          string        `gorm:"not null" json:"type"`                          // discount / warranty
	DiscountType  string        `json:"discount_type"`                                 // percentage / fixed (discount only)
	DiscountValue DiscountValue `gorm:"type:decimal(20,2)" json:"discount_value"`      // > 0; <= 100 for percentage
	CodePrefix    string        `gorm:"not null;default:REVIEW" json:"code_prefix"`    // uppercase alphanumeric
	IsActive      bool          `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TableName sets the table name.
func (Promo) TableName() string {
	return "promos"
}
