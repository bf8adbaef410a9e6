package entity

import (
	"time"

	"epic_notifier/internal/domain/value"
)

const (
	NoDescription = "No description available."
	PriceNA       = "N/A"
	PriceFree     = "Free"
)

// GameOffer is a normalized storefront offer.
type GameOffer struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	OriginalPrice   string     `json:"original_price"`
	DiscountedPrice string     `json:"discounted_price"`
	ImageURL        string     `json:"image_url"`
	URL             string     `json:"url"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	IsFree          bool       `json:"is_free"`
	IsCheap         bool       `json:"is_cheap"`
}

func (g GameOffer) Key() value.NotificationKey {
	return value.NewNotificationKey(g.Title, g.EndDate)
}
