package epicstore

import (
	"time"

	"github.com/samber/lo"

	"epic_notifier/internal/domain/entity"
)

type catalogResponse struct {
	Data struct {
		Catalog struct {
			SearchStore struct {
				Elements []element `json:"elements"`
			} `json:"searchStore"`
		} `json:"Catalog"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type element struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	URLSlug     string `json:"urlSlug"`
	ProductSlug string `json:"productSlug"`
	CatalogNs   *struct {
		Mappings []struct {
			PageSlug string `json:"pageSlug"`
		} `json:"mappings"`
	} `json:"catalogNs"`
	KeyImages []struct {
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"keyImages"`
	Categories []struct {
		Path string `json:"path"`
	} `json:"categories"`
	Price *struct {
		TotalPrice struct {
			DiscountPrice *int64 `json:"discountPrice"`
			OriginalPrice *int64 `json:"originalPrice"`
			FmtPrice      struct {
				OriginalPrice string `json:"originalPrice"`
				DiscountPrice string `json:"discountPrice"`
			} `json:"fmtPrice"`
		} `json:"totalPrice"`
	} `json:"price"`
	Promotions *struct {
		PromotionalOffers []struct {
			PromotionalOffers []struct {
				StartDate string `json:"startDate"`
				EndDate   string `json:"endDate"`
			} `json:"promotionalOffers"`
		} `json:"promotionalOffers"`
	} `json:"promotions"`
}

func (e element) toEntry() entity.CatalogEntry {
	entry := entity.CatalogEntry{
		Title:       e.Title,
		Description: e.Description,
		Status:      e.Status,
		URLSlug:     e.URLSlug,
		ProductSlug: e.ProductSlug,
	}

	if e.CatalogNs != nil {
		for _, m := range e.CatalogNs.Mappings {
			entry.PageSlugs = append(entry.PageSlugs, m.PageSlug)
		}
	}

	for _, img := range e.KeyImages {
		entry.KeyImages = append(entry.KeyImages, entity.KeyImage{Type: img.Type, URL: img.URL})
	}

	for _, c := range e.Categories {
		entry.Categories = append(entry.Categories, c.Path)
	}

	entry.PriceMissing = e.Price == nil || e.Price.TotalPrice.DiscountPrice == nil
	if e.Price != nil {
		p := e.Price.TotalPrice
		entry.DiscountPrice = lo.FromPtr(p.DiscountPrice)
		entry.OriginalPrice = lo.FromPtr(p.OriginalPrice)
		entry.FmtOriginal = p.FmtPrice.OriginalPrice
		entry.FmtDiscount = p.FmtPrice.DiscountPrice
	}

	if e.Promotions != nil && len(e.Promotions.PromotionalOffers) > 0 {
		for _, o := range e.Promotions.PromotionalOffers[0].PromotionalOffers {
			entry.Offers = append(entry.Offers, entity.PromotionWindow{
				StartDate: parseDate(o.StartDate),
				EndDate:   parseDate(o.EndDate),
			})
		}
	}

	return entry
}

// parseDate returns nil for empty or malformed dates so one bad element does
// not fail the whole payload.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}

	return &t
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

const searchStoreQuery = `query searchStoreQuery($allowCountries: String, $category: String, $count: Int, $country: String!, $locale: String, $sortBy: String, $sortDir: String, $start: Int) {
  Catalog {
    searchStore(allowCountries: $allowCountries, category: $category, count: $count, country: $country, locale: $locale, sortBy: $sortBy, sortDir: $sortDir, start: $start) {
      elements {
        title
        description
        status
        productSlug
        urlSlug
        keyImages { type url }
        categories { path }
        catalogNs { mappings(pageType: "productHome") { pageSlug } }
        price(country: $country) {
          totalPrice {
            discountPrice
            originalPrice
            fmtPrice(locale: $locale) { originalPrice discountPrice }
          }
        }
      }
      paging { count total }
    }
  }
}`
