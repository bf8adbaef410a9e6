package handler

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"epic_notifier/internal/domain/service/pipeline"
	"epic_notifier/internal/infrastructure/notifier"
	"epic_notifier/internal/transport/bot/view"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	settings, err := h.repo.ReadSettings(ctx)
	if err != nil {
		logger(ctx).Warn("settings unavailable, showing defaults")
	}

	var running *bool

	if h.scheduler != nil {
		v := h.scheduler.IsRunning()
		running = &v
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.Status(h.repo.Stats(ctx), settings, running))
}

func (h *Handler) OnRun(ctx *th.Context, msg telego.Message) error {
	return h.execute(ctx, msg.Chat.ID, pipeline.KindScheduled)
}

func (h *Handler) OnForce(ctx *th.Context, msg telego.Message) error {
	return h.execute(ctx, msg.Chat.ID, pipeline.KindForced)
}

func (h *Handler) OnSearch(ctx *th.Context, msg telego.Message) error {
	return h.execute(ctx, msg.Chat.ID, pipeline.KindSearch)
}

// execute blocks until the run finishes and replies with its summary. The
// run outlives a stopping bot.
func (h *Handler) execute(ctx *th.Context, chatID int64, kind pipeline.Kind) error {
	if err := h.sendHTML(ctx, chatID, fmt.Sprintf(view.RunStarted, kind)); err != nil {
		return err
	}

	summary, err := h.runner.Execute(context.WithoutCancel(ctx), kind)
	if err != nil {
		return h.sendHTML(ctx, chatID, fmt.Sprintf(view.RunFailedStart, err))
	}

	return h.sendHTML(ctx, chatID, notifier.FormatRunSummary(kind, summary.Status(), summary.Found(), summary.Errors()))
}

func (h *Handler) OnHistory(ctx *th.Context, msg telego.Message) error {
	history, err := h.repo.ReadGamesHistory(ctx)
	if err != nil {
		return h.sendHTML(ctx, msg.Chat.ID, view.HistoryError)
	}

	if len(history) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.HistoryEmpty)
	}

	_, err = ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: msg.Chat.ID},
		Text:        view.HistoryPage(history, 1),
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: paginationKeyboard(1, view.Pages(len(history))),
	})

	return err
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}
