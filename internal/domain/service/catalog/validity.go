package catalog

import (
	"strings"

	"epic_notifier/internal/domain/entity"
)

const StatusComingSoon = "COMING_SOON"

var (
	//nolint:gochecknoglobals
	devMarkers = []string{"audience", "dev ", " dev"}
	//nolint:gochecknoglobals
	addOnMarkers = []string{"dlc", " pack", "bundle", "skin", "add-on", "expansion"}
)

// IsValid rejects developer listings, add-on content, entries without a
// product slug, unreleased entries and suspiciously short titles.
func IsValid(e entity.CatalogEntry) bool {
	title := strings.ToLower(e.Title)

	if containsAny(title, devMarkers) || containsAny(title, addOnMarkers) {
		return false
	}

	if strings.TrimSpace(e.Slug()) == "" {
		return false
	}

	if e.Status == StatusComingSoon {
		return false
	}

	return len(strings.TrimSpace(title)) >= 3
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
