package entity

import "time"

// CatalogEntry is one raw storefront record after decoding, before any
// filtering. Prices are in minor currency units.
type CatalogEntry struct {
	Title         string
	Description   string
	Status        string
	URLSlug       string
	ProductSlug   string
	PageSlugs     []string
	Categories    []string
	KeyImages     []KeyImage
	DiscountPrice int64
	OriginalPrice int64
	FmtOriginal   string
	FmtDiscount   string
	// PriceMissing is set when the record carries no discount price at all.
	PriceMissing bool
	// Offers holds the promotional offers of the first promotion group only.
	Offers []PromotionWindow
}

type KeyImage struct {
	Type string
	URL  string
}

type PromotionWindow struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// Slug returns urlSlug, falling back to productSlug.
func (e CatalogEntry) Slug() string {
	if e.URLSlug != "" {
		return e.URLSlug
	}

	return e.ProductSlug
}

// PageSlug returns the first non-empty mapping page slug, falling back to Slug.
func (e CatalogEntry) PageSlug() string {
	for _, s := range e.PageSlugs {
		if s != "" {
			return s
		}
	}

	return e.Slug()
}
