package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"epic_notifier/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnRun, th.CommandEqual("run"))
	adminGroup.HandleMessage(h.OnForce, th.CommandEqual("force"))
	adminGroup.HandleMessage(h.OnSearch, th.CommandEqual("search"))
	adminGroup.HandleMessage(h.OnHistory, th.CommandEqual("history"))

	cbGroup := bh.Group(th.AnyCallbackQuery())
	cbGroup.Use(middleware.AdminOnly(adminID))

	cbGroup.HandleCallbackQuery(h.OnHistoryCallback, th.CallbackDataPrefix("history_page"))
}
