package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/domain/service/pipeline"
	"epic_notifier/pkg/logx"
)

const maxListedOffers = 10

type MessageSender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

// TelegramAlert pushes a summary of every finished run to an admin chat.
type TelegramAlert struct {
	sender MessageSender
	chatID int64
}

func NewTelegramAlert(sender MessageSender, chatID int64) *TelegramAlert {
	return &TelegramAlert{
		sender: sender,
		chatID: chatID,
	}
}

// ForRun returns an observer that reports once the run of kind ends.
func (a *TelegramAlert) ForRun(kind pipeline.Kind) pipeline.Observer {
	return &runAlert{alert: a, kind: kind}
}

func (a *TelegramAlert) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(a.chatID), text).WithParseMode(telego.ModeHTML)

	if _, err := a.sender.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

type runAlert struct {
	alert  *TelegramAlert
	kind   pipeline.Kind
	mu     sync.Mutex
	found  []entity.GameOffer
	errors []string
}

func (r *runAlert) Observe(ctx context.Context, ev entity.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Type {
	case entity.EventFound:
		if ev.Game != nil {
			r.found = append(r.found, *ev.Game)
		}
	case entity.EventError:
		r.errors = append(r.errors, ev.Message)
	case entity.EventStatus:
		if err := r.alert.SendText(ctx, FormatRunSummary(r.kind, ev.Status, r.found, r.errors)); err != nil {
			logger(ctx).Error("failed to send run alert", logx.Error(err))
		}
	case entity.EventLog, entity.EventProgress, entity.EventComplete:
	}
}

// FormatRunSummary renders the HTML alert text for one finished run.
func FormatRunSummary(
	kind pipeline.Kind,
	status entity.RunStatus,
	found []entity.GameOffer,
	errs []string,
) string {
	var b strings.Builder

	icon := "✅"
	if status != entity.StatusSuccess {
		icon = "❌"
	}

	fmt.Fprintf(&b, "%s <b>%s run: %s</b>\n", icon, kind, status)
	fmt.Fprintf(&b, "🎮 <b>Found:</b> %d\n", len(found))

	for i, g := range found {
		if i == maxListedOffers {
			fmt.Fprintf(&b, "… and %d more\n", len(found)-maxListedOffers)

			break
		}

		price := g.DiscountedPrice
		if g.IsFree {
			price = entity.PriceFree
		}

		fmt.Fprintf(&b, "• <a href=\"%s\">%s</a> (%s)\n", html.EscapeString(g.URL), html.EscapeString(g.Title), html.EscapeString(price))
	}

	for _, e := range errs {
		fmt.Fprintf(&b, "⚠️ %s\n", html.EscapeString(e))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
