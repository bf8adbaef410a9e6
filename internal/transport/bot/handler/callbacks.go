package handler

import (
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"epic_notifier/internal/transport/bot/view"
	"epic_notifier/pkg/logx"
)

// OnHistoryCallback flips the games history message to the requested page.
func (h *Handler) OnHistoryCallback(ctx *th.Context, query telego.CallbackQuery) error {
	var page int

	if _, err := fmt.Sscanf(query.Data, view.HistoryCallbackFmt, &page); err != nil {
		page = 1
	}

	history, err := h.repo.ReadGamesHistory(ctx)
	if err != nil {
		_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText(view.HistoryError).WithShowAlert())

		return fmt.Errorf("repo.ReadGamesHistory: %w", err)
	}

	page = view.ClampPage(page, len(history))

	_, err = ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:      tu.ID(query.Message.GetChat().ID),
		MessageID:   query.Message.GetMessageID(),
		Text:        view.HistoryPage(history, page),
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: paginationKeyboard(page, view.Pages(len(history))),
	})
	if err != nil {
		// Telegram rejects edits that leave the message unchanged.
		logger(ctx).Debug("EditMessageText", logx.Error(err))
	}

	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))
}

func paginationKeyboard(page, totalPages int) *telego.InlineKeyboardMarkup {
	var buttons []telego.InlineKeyboardButton

	if page > 1 {
		buttons = append(buttons, tu.InlineKeyboardButton("⬅️").
			WithCallbackData(fmt.Sprintf(view.HistoryCallbackFmt, page-1)))
	}

	buttons = append(buttons, tu.InlineKeyboardButton(fmt.Sprintf("%d / %d", page, totalPages)).
		WithCallbackData("noop"))

	if page < totalPages {
		buttons = append(buttons, tu.InlineKeyboardButton("➡️").
			WithCallbackData(fmt.Sprintf(view.HistoryCallbackFmt, page+1)))
	}

	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(buttons...),
	)
}
