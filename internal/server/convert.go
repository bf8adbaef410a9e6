package server

import (
	"epic_notifier/internal/domain/entity"
	"epic_notifier/pkg/rest"
)

func newRESTSettings(s entity.Settings) rest.Settings {
	return rest.Settings{
		PriceThreshold: s.PriceThreshold,
		Currency:       s.Currency,
		Emails:         s.Emails,
		Categories:     s.Categories,
		DeepSearchFree: s.DeepSearchFree,
	}
}

func newDomainSettings(s rest.Settings) entity.Settings {
	emails := s.Emails
	if emails == nil {
		emails = []string{}
	}

	categories := s.Categories
	if categories == nil {
		categories = []string{}
	}

	return entity.Settings{
		PriceThreshold: s.PriceThreshold,
		Currency:       s.Currency,
		Emails:         emails,
		Categories:     categories,
		DeepSearchFree: s.DeepSearchFree,
	}
}

func newRESTGames(history []entity.HistoryGame) []rest.Game {
	games := make([]rest.Game, 0, len(history))

	for _, g := range history {
		games = append(games, rest.Game{
			ID:              g.ID.String(),
			Title:           g.Title,
			Description:     g.Description,
			OriginalPrice:   g.OriginalPrice,
			DiscountedPrice: g.DiscountedPrice,
			ImageURL:        g.ImageURL,
			URL:             g.URL,
			StartDate:       g.StartDate,
			EndDate:         g.EndDate,
			IsFree:          g.IsFree,
			IsCheap:         g.IsCheap,
			FoundDate:       g.FoundDate,
		})
	}

	return games
}

func newRESTStats(s entity.Stats) rest.Stats {
	return rest.Stats{
		Mode:             s.Mode,
		Backend:          s.Backend,
		BackendConnected: s.BackendConnected,
		SettingsCount:    s.SettingsCount,
		UserEmailsCount:  s.UserEmailsCount,
		GamesCount:       s.GamesCount,
		LedgerCount:      s.LedgerCount,
	}
}
