package handler

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"realty_extractor/internal/transport/bot/view"
)

const (
	recentPagePrefix = "recent_page"
	recentPageSize   = 10
)

func (h *Handler) OnRecentCallback(ctx *th.Context, query telego.CallbackQuery) error {
	// Формат: "recent_page:<number>"
	var page int
	if _, err := fmt.Sscanf(query.Data, recentPagePrefix+":%d", &page); err != nil || page < 1 {
		page = 1
	}

	text, keyboard, err := h.recentPage(ctx, page)
	if err != nil {
		_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText(view.RecentError).WithShowAlert())
		return err
	}

	// Та же страница — Telegram вернёт ошибку "message is not modified", её не считаем сбоем.
	_, _ = ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:      tu.ID(query.Message.GetChat().ID),
		MessageID:   query.Message.GetMessageID(),
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: keyboard,
	})

	_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))

	return nil
}

// recentPage запрашивает на одну запись больше, чтобы понять, есть ли следующая страница.
func (h *Handler) recentPage(ctx context.Context, page int) (string, *telego.InlineKeyboardMarkup, error) {
	items, err := h.listings.List(ctx, recentPageSize+1, (page-1)*recentPageSize)
	if err != nil {
		return "", nil, fmt.Errorf("listings.List: %w", err)
	}

	hasNext := len(items) > recentPageSize
	if hasNext {
		items = items[:recentPageSize]
	}

	return view.RecentPage(page, items), PaginationKeyboard(page, hasNext), nil
}

func PaginationKeyboard(page int, hasNext bool) *telego.InlineKeyboardMarkup {
	var buttons []telego.InlineKeyboardButton

	if page > 1 {
		buttons = append(buttons, tu.InlineKeyboardButton("⬅️").
			WithCallbackData(fmt.Sprintf("%s:%d", recentPagePrefix, page-1)))
	}

	buttons = append(buttons, tu.InlineKeyboardButton(fmt.Sprint(page)).
		WithCallbackData("noop"))

	if hasNext {
		buttons = append(buttons, tu.InlineKeyboardButton("➡️").
			WithCallbackData(fmt.Sprintf("%s:%d", recentPagePrefix, page+1)))
	}

	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(buttons...),
	)
}
