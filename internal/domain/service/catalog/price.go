package catalog

import (
	"slices"
	"strings"

	"epic_notifier/internal/domain/entity"
)

type Classification struct {
	IsFree  bool
	IsCheap bool
	Include bool
}

// Classify applies the price rules. Cheap requires a real markdown below the
// original price; free-only mode admits nothing but free entries.
func Classify(discountPrice, originalPrice int64, cfg entity.FilterConfig) Classification {
	isFree := discountPrice == 0
	isCheap := discountPrice > 0 && discountPrice <= cfg.Threshold && discountPrice < originalPrice

	include := isFree || isCheap
	if cfg.FreeOnly {
		include = isFree
	}

	return Classification{
		IsFree:  isFree,
		IsCheap: isCheap,
		Include: include,
	}
}

// MatchesCategories reports whether any configured term is a case-insensitive
// substring of any category path. An empty list or one holding a wildcard
// admits everything.
func MatchesCategories(paths, terms []string) bool {
	if len(terms) == 0 || slices.Contains(terms, entity.CategoryWildcard) || slices.Contains(terms, "*") {
		return true
	}

	for _, term := range terms {
		term = strings.ToLower(term)

		for _, path := range paths {
			if strings.Contains(strings.ToLower(path), term) {
				return true
			}
		}
	}

	return false
}

// Admit runs the broad search gates in order: validity, category, price.
// Entries without a price are never admitted.
func Admit(e entity.CatalogEntry, cfg entity.FilterConfig) (Classification, bool) {
	if !IsValid(e) || e.PriceMissing {
		return Classification{}, false
	}

	if !MatchesCategories(e.Categories, cfg.Categories) {
		return Classification{}, false
	}

	cls := Classify(e.DiscountPrice, e.OriginalPrice, cfg)

	return cls, cls.Include
}
