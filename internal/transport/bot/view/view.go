package view

import (
	"fmt"
	"html"
	"strings"

	"epic_notifier/internal/domain/entity"
)

const (
	HistoryPageSize    = 10
	HistoryCallbackFmt = "history_page:%d"

	StartMessage = `👋 <b>Epic Free Games Notifier</b>

/status - storage and settings overview
/run - check for new offers and email them
/force - email current offers regardless of history
/search - broad search for cheap games, no email
/history - games found so far`

	RunStarted     = "⏳ Starting %s run..."
	RunFailedStart = "❌ Could not start run: %s"
	HistoryEmpty   = "📭 No games recorded yet."
	HistoryError   = "❌ Failed to read games history"
)

// Status renders the /status reply.
func Status(stats entity.Stats, settings entity.Settings, schedulerRunning *bool) string {
	var b strings.Builder

	b.WriteString("📊 <b>Status</b>\n\n")
	fmt.Fprintf(&b, "💾 <b>Storage:</b> %s (%s)\n", stats.Mode, connected(stats))
	fmt.Fprintf(&b, "💰 <b>Threshold:</b> %d %s\n", settings.PriceThreshold, html.EscapeString(settings.Currency))
	fmt.Fprintf(&b, "📧 <b>Recipients:</b> %d\n", len(settings.Emails))
	fmt.Fprintf(&b, "👥 <b>Subscribers:</b> %d\n", stats.UserEmailsCount)
	fmt.Fprintf(&b, "🎮 <b>Games recorded:</b> %d\n", stats.GamesCount)
	fmt.Fprintf(&b, "🗂 <b>Notified keys:</b> %d\n", stats.LedgerCount)

	if len(settings.Categories) > 0 {
		fmt.Fprintf(&b, "🏷 <b>Categories:</b> %s\n", html.EscapeString(strings.Join(settings.Categories, ", ")))
	}

	if settings.DeepSearchFree {
		b.WriteString("🆓 <b>Free only</b>\n")
	}

	if schedulerRunning != nil {
		state := "🔴 stopped"
		if *schedulerRunning {
			state = "🟢 running"
		}

		fmt.Fprintf(&b, "⏰ <b>Scheduler:</b> %s\n", state)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func connected(stats entity.Stats) string {
	if stats.Backend == "file" {
		return "local"
	}

	if stats.BackendConnected {
		return stats.Backend + " ✅"
	}

	return stats.Backend + " ❌"
}

// Pages returns the number of history pages, at least one.
func Pages(total int) int {
	return max(1, (total+HistoryPageSize-1)/HistoryPageSize)
}

// ClampPage keeps page within [1, Pages(total)].
func ClampPage(page, total int) int {
	return min(max(page, 1), Pages(total))
}

// HistoryPage renders one page of the games timeline.
func HistoryPage(history []entity.HistoryGame, page int) string {
	page = ClampPage(page, len(history))
	start := (page - 1) * HistoryPageSize
	end := min(start+HistoryPageSize, len(history))

	var b strings.Builder

	fmt.Fprintf(&b, "🎮 <b>Games found</b> (page %d/%d)\n\n", page, Pages(len(history)))

	for i, g := range history[start:end] {
		price := g.DiscountedPrice
		if g.IsFree {
			price = entity.PriceFree
		}

		fmt.Fprintf(&b, "%d. <a href=\"%s\">%s</a> - %s (%s)\n",
			start+i+1,
			html.EscapeString(g.URL),
			html.EscapeString(g.Title),
			html.EscapeString(price),
			g.FoundDate.Format("2006-01-02"),
		)
	}

	return strings.TrimSuffix(b.String(), "\n")
}
