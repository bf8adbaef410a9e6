package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/domain/service/catalog"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	base := entity.CatalogEntry{Title: "Hollow Knight", URLSlug: "hollow-knight", Status: "ACTIVE"}

	tests := []struct {
		name   string
		mutate func(*entity.CatalogEntry)
		want   bool
	}{
		{name: "plain game", mutate: func(*entity.CatalogEntry) {}, want: true},
		{name: "product slug only", mutate: func(e *entity.CatalogEntry) { e.URLSlug, e.ProductSlug = "", "hk" }, want: true},
		{name: "bundle any case", mutate: func(e *entity.CatalogEntry) { e.Title = "Hollow Knight BUNDLE" }},
		{name: "dlc any case", mutate: func(e *entity.CatalogEntry) { e.Title = "Godmaster DLC" }},
		{name: "pack", mutate: func(e *entity.CatalogEntry) { e.Title = "Starter Pack" }},
		{name: "skin", mutate: func(e *entity.CatalogEntry) { e.Title = "Golden Skin" }},
		{name: "add-on", mutate: func(e *entity.CatalogEntry) { e.Title = "Soundtrack Add-On" }},
		{name: "expansion", mutate: func(e *entity.CatalogEntry) { e.Title = "The Expansion" }},
		{name: "audience", mutate: func(e *entity.CatalogEntry) { e.Title = "Test Audience Build" }},
		{name: "dev suffix", mutate: func(e *entity.CatalogEntry) { e.Title = "Shooter Dev" }},
		{name: "dev prefix", mutate: func(e *entity.CatalogEntry) { e.Title = "Dev build" }},
		{name: "developer word", mutate: func(e *entity.CatalogEntry) { e.Title = "Game Developer Tycoon" }},
		{name: "no slug", mutate: func(e *entity.CatalogEntry) { e.URLSlug = "" }},
		{name: "blank slug", mutate: func(e *entity.CatalogEntry) { e.URLSlug = "   " }},
		{name: "coming soon", mutate: func(e *entity.CatalogEntry) { e.Status = catalog.StatusComingSoon }},
		{name: "short title", mutate: func(e *entity.CatalogEntry) { e.Title = " ab " }},
		{name: "three chars", mutate: func(e *entity.CatalogEntry) { e.Title = "Abc" }, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := base
			tt.mutate(&e)

			require.Equal(t, tt.want, catalog.IsValid(e))
		})
	}
}
