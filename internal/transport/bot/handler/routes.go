package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"realty_extractor/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnExtract, th.CommandEqual("extract"))
	adminGroup.HandleMessage(h.OnListing, th.CommandEqual("listing"))
	adminGroup.HandleMessage(h.OnRecent, th.CommandEqual("recent"))

	cbGroup := bh.Group(th.AnyCallbackQuery())
	cbGroup.Use(middleware.AdminOnly(adminID))

	cbGroup.HandleCallbackQuery(h.OnRecentCallback, th.CallbackDataPrefix(recentPagePrefix))
}
