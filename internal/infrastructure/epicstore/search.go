package epicstore

import (
	"context"
	"fmt"
	"net/http"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/domain/service/catalog"
	"epic_notifier/pkg/logx"
)

const progressEvery = 10

// SearchCheap scans the catalog sorted by ascending price and returns every
// admitted entry whose store page is reachable. Progress and found events are
// published to events.
func (c *Client) SearchCheap(ctx context.Context, cfg entity.FilterConfig, events chan<- entity.Event) []entity.GameOffer {
	emit(ctx, events, entity.LogEvent(
		entity.LevelInfo,
		fmt.Sprintf("Fetching cheap games under %g %s...", cfg.ThresholdMajor(), cfg.Currency),
	))

	elements, err := c.search(ctx)
	if err != nil {
		logger(ctx).Error("Error fetching cheap games", logx.Error(err))
		emit(ctx, events, entity.LogEvent(entity.LevelError, "Error fetching cheap games: "+err.Error()))

		return nil
	}

	total := len(elements)

	emit(ctx, events, entity.LogEvent(entity.LevelInfo, fmt.Sprintf("Fetched %d items. Processing filters...", total)))
	emit(ctx, events, entity.ProgressEvent(0, total))

	var offers []entity.GameOffer

	for i, el := range elements {
		if processed := i + 1; processed%progressEvery == 0 {
			emit(ctx, events, entity.ProgressEvent(processed, total))
		}

		entry := el.toEntry()

		cls, ok := catalog.Admit(entry, cfg)
		if !ok {
			continue
		}

		url := c.storeURL + entry.Slug()

		if !c.checker.IsReachable(ctx, url) {
			emit(ctx, events, entity.LogEvent(entity.LevelWarning, "Skipped invalid URL: "+entry.Title))

			continue
		}

		offer := catalog.SearchOffer(entry, cls, url)
		offers = append(offers, offer)

		emit(ctx, events, entity.FoundEvent(offer))
	}

	emit(ctx, events, entity.ProgressEvent(total, total))

	return offers
}

func (c *Client) search(ctx context.Context) ([]element, error) {
	body, err := json.Marshal(graphQLRequest{
		Query: searchStoreQuery,
		Variables: map[string]any{
			"allowCountries": c.country,
			"count":          c.searchCount,
			"country":        c.country,
			"locale":         c.locale,
			"sortBy":         "currentPrice",
			"sortDir":        "ASC",
			"start":          0,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	elements, err := c.getCatalog(ctx, http.MethodPost, c.graphQLURL, body)
	if err != nil {
		return nil, fmt.Errorf("c.getCatalog: %w", err)
	}

	return elements, nil
}

func emit(ctx context.Context, events chan<- entity.Event, ev entity.Event) {
	if events == nil {
		return
	}

	select {
	case events <- ev:
	case <-ctx.Done():
	}
}
