package epicstore

import (
	"context"
	"log/slog"
	"net/http"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/domain/service/catalog"
	"epic_notifier/pkg/logx"
)

// FetchWeeklyFree returns the current promotions at or below the threshold.
func (c *Client) FetchWeeklyFree(ctx context.Context, cfg entity.FilterConfig) []entity.GameOffer {
	elements, err := c.getCatalog(ctx, http.MethodGet, c.promotionsURL, nil)
	if err != nil {
		logger(ctx).Error("Error fetching free games", logx.Error(err))

		return nil
	}

	var offers []entity.GameOffer

	for _, el := range elements {
		offer, ok := catalog.WeeklyOffer(el.toEntry(), cfg, c.storeURL)
		if !ok {
			continue
		}

		offers = append(offers, offer)
	}

	logger(ctx).Info(
		"weekly promotions fetched",
		slog.Int("elements", len(elements)),
		slog.Int(logx.FieldCount, len(offers)),
	)

	return offers
}
