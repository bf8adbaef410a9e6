package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"epic_notifier/internal/config"
	"epic_notifier/internal/transport/bot/handler"
	"epic_notifier/pkg/logx"
)

const pollTimeout = 60

// Bot serves admin commands over long polling.
type Bot struct {
	api     *telego.Bot
	adminID int64
	handler *handler.Handler
}

func New(cfg config.Bot, h *handler.Handler) (*Bot, error) {
	api, err := telego.NewBot(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telego.NewBot: %w", err)
	}

	return &Bot{
		api:     api,
		adminID: cfg.AdminID,
		handler: h,
	}, nil
}

// API is shared with the run alert sender.
func (b *Bot) API() *telego.Bot {
	return b.api
}

// Run polls updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.api.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: pollTimeout,
	})
	if err != nil {
		return fmt.Errorf("api.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.api, updates)
	if err != nil {
		return fmt.Errorf("th.NewBotHandler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.adminID)

	go func() {
		if err := botHandler.Start(); err != nil {
			logger(ctx).Error("bot handler stopped", logx.Error(err))
		}
	}()

	logger(ctx).Info("telegram bot started")

	<-ctx.Done()

	if err := botHandler.Stop(); err != nil {
		logger(ctx).Error("botHandler.Stop", logx.Error(err))
	}

	logger(ctx).Info("telegram bot stopped")

	return nil
}
