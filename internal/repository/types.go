package repository

// PromoListFilter narrows promo listings.
type PromoListFilter struct {
	Page     int
	PageSize int
	ShopID   uint
	Type     string
	IsActive *bool
}

// CampaignListFilter narrows campaign listings.
type CampaignListFilter struct {
	Page      int
	PageSize  int
	ShopID    uint
	Status    string
	PromoID   uint
	WithPromo bool
}

// ReviewListFilter narrows review listings.
type ReviewListFilter struct {
	Page        int
	PageSize    int
	CampaignID  uint
	CampaignIDs []uint
	Status      string
	Rating      int
}
