package catalog

import (
	"epic_notifier/internal/domain/entity"
)

//nolint:gochecknoglobals
var preferredImageTypes = []string{"Thumbnail", "DieselStoreFrontWide"}

// WeeklyOffer normalizes a promotions entry. Only the first offer of the
// first promotion group is considered; later concurrent offers for the same
// title are ignored.
func WeeklyOffer(e entity.CatalogEntry, cfg entity.FilterConfig, storeURL string) (entity.GameOffer, bool) {
	if len(e.Offers) == 0 || e.PriceMissing {
		return entity.GameOffer{}, false
	}

	if e.DiscountPrice > cfg.Threshold {
		return entity.GameOffer{}, false
	}

	slug := e.PageSlug()
	if slug == "" {
		return entity.GameOffer{}, false
	}

	isFree := e.DiscountPrice == 0
	window := e.Offers[0]

	discounted := e.FmtDiscount
	if discounted == "" {
		discounted = entity.PriceNA
	}

	if isFree {
		discounted = entity.PriceFree
	}

	var image string
	if len(e.KeyImages) > 0 {
		image = e.KeyImages[0].URL
	}

	return entity.GameOffer{
		Title:           e.Title,
		Description:     descriptionOrDefault(e.Description),
		OriginalPrice:   priceOrNA(e.FmtOriginal),
		DiscountedPrice: discounted,
		ImageURL:        image,
		URL:             storeURL + slug,
		StartDate:       window.StartDate,
		EndDate:         window.EndDate,
		IsFree:          isFree,
		IsCheap:         !isFree && e.DiscountPrice <= cfg.Threshold && e.DiscountPrice < e.OriginalPrice,
	}, true
}

// SearchOffer normalizes an admitted broad search entry. Search offers carry
// no promotion window.
func SearchOffer(e entity.CatalogEntry, cls Classification, url string) entity.GameOffer {
	discounted := e.FmtDiscount
	if cls.IsFree {
		discounted = entity.PriceFree
	}

	return entity.GameOffer{
		Title:           e.Title,
		Description:     descriptionOrDefault(e.Description),
		OriginalPrice:   priceOrNA(e.FmtOriginal),
		DiscountedPrice: priceOrNA(discounted),
		ImageURL:        SearchImage(e.KeyImages),
		URL:             url,
		IsFree:          cls.IsFree,
		IsCheap:         cls.IsCheap,
	}
}

// SearchImage prefers a thumbnail or wide storefront image.
func SearchImage(images []entity.KeyImage) string {
	for _, img := range images {
		for _, t := range preferredImageTypes {
			if img.Type == t {
				return img.URL
			}
		}
	}

	if len(images) > 0 {
		return images[0].URL
	}

	return ""
}

func descriptionOrDefault(d string) string {
	if d == "" {
		return entity.NoDescription
	}

	return d
}

func priceOrNA(p string) string {
	if p == "" {
		return entity.PriceNA
	}

	return p
}
