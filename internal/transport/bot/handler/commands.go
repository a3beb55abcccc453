package handler

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"realty_extractor/internal/domain"
	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/transport/bot/view"
	"realty_extractor/pkg/errcodes"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

// OnExtract разбирает текст после команды, ничего не сохраняя.
func (h *Handler) OnExtract(ctx *th.Context, msg telego.Message) error {
	text := CommandArgs(msg.Text)
	if text == "" {
		return h.send(ctx, msg.Chat.ID, view.ExtractUsage)
	}

	ext := h.extractor.Extract(ctx, entity.Listing{Description: text}, nil)

	return h.sendHTML(ctx, msg.Chat.ID, view.Extraction(ext))
}

func (h *Handler) OnListing(ctx *th.Context, msg telego.Message) error {
	arg := CommandArgs(msg.Text)
	if arg == "" {
		return h.send(ctx, msg.Chat.ID, view.ListingUsage)
	}

	id, err := uuid.Parse(arg)
	if err != nil {
		return h.send(ctx, msg.Chat.ID, view.InvalidID)
	}

	l, err := h.listings.Get(ctx, id)
	if err != nil {
		if code, _ := domain.GetCode(err); code == errcodes.ListingNotFound {
			return h.send(ctx, msg.Chat.ID, view.NotFound)
		}
		return err
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.StoredListing(l))
}

func (h *Handler) OnRecent(ctx *th.Context, msg telego.Message) error {
	text, keyboard, err := h.recentPage(ctx, 1)
	if err != nil {
		_ = h.send(ctx, msg.Chat.ID, view.RecentError)
		return err
	}

	_, err = ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: msg.Chat.ID},
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: keyboard,
	})
	return err
}

// CommandArgs возвращает текст после команды: "/extract@bot 2-комн" -> "2-комн".
func CommandArgs(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}

	_, args, _ := strings.Cut(text, " ")
	return strings.TrimSpace(args)
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	return err
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})
	return err
}
