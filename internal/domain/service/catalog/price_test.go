package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/domain/service/catalog"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	normal := entity.NewFilterConfig(500, "INR", nil, false)
	freeOnly := entity.NewFilterConfig(500, "INR", nil, true)

	tests := []struct {
		name     string
		discount int64
		original int64
		cfg      entity.FilterConfig
		want     catalog.Classification
	}{
		{
			name:     "cheap markdown under threshold",
			discount: 300, original: 1000, cfg: normal,
			want: catalog.Classification{IsCheap: true, Include: true},
		},
		{
			name:     "free is never cheap",
			discount: 0, original: 1000, cfg: normal,
			want: catalog.Classification{IsFree: true, Include: true},
		},
		{
			name:     "no markdown is not cheap",
			discount: 300, original: 300, cfg: normal,
			want: catalog.Classification{},
		},
		{
			name:     "at threshold",
			discount: 500, original: 900, cfg: normal,
			want: catalog.Classification{IsCheap: true, Include: true},
		},
		{
			name:     "over threshold",
			discount: 501, original: 900, cfg: normal,
			want: catalog.Classification{},
		},
		{
			name:     "free only excludes paid",
			discount: 50, original: 1000, cfg: freeOnly,
			want: catalog.Classification{},
		},
		{
			name:     "free only admits free",
			discount: 0, original: 1000, cfg: freeOnly,
			want: catalog.Classification{IsFree: true, Include: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, catalog.Classify(tt.discount, tt.original, tt.cfg))
		})
	}
}

func TestMatchesCategories(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	paths := []string{"games", "games/edition/base", "applications"}

	rq.True(catalog.MatchesCategories(paths, nil))
	rq.True(catalog.MatchesCategories(paths, []string{"Racing", "All"}))
	rq.True(catalog.MatchesCategories(paths, []string{"*"}))
	rq.True(catalog.MatchesCategories(paths, []string{"EDITION"}))
	rq.False(catalog.MatchesCategories(paths, []string{"addons"}))
	rq.False(catalog.MatchesCategories(nil, []string{"games"}))
}

func TestAdmit(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	cfg := entity.NewFilterConfig(500, "INR", []string{"games"}, false)

	entry := entity.CatalogEntry{
		Title:         "Celeste",
		URLSlug:       "celeste",
		Categories:    []string{"games/edition/base"},
		DiscountPrice: 300,
		OriginalPrice: 1000,
	}

	cls, ok := catalog.Admit(entry, cfg)
	rq.True(ok)
	rq.True(cls.IsCheap)
	rq.False(cls.IsFree)

	entry.Categories = []string{"applications"}
	_, ok = catalog.Admit(entry, cfg)
	rq.False(ok)

	entry.Categories = []string{"games"}
	entry.Title = "Celeste Soundtrack Bundle"
	_, ok = catalog.Admit(entry, cfg)
	rq.False(ok)

	entry.Title = "Celeste"
	entry.DiscountPrice = 0
	entry.PriceMissing = true
	_, ok = catalog.Admit(entry, entity.NewFilterConfig(500, "INR", nil, true))
	rq.False(ok)
}
