package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"realty_extractor/internal/domain/entity"
)

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run отправляет алерты из канала, пока канал открыт.
func (b *TelegramBot) Run(ctx context.Context, alerts <-chan entity.QualityAlert) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case alert, ok := <-alerts:
			if !ok {
				return nil
			}
			if err := b.SendAlert(ctx, alert); err != nil {
				logger(ctx).Error("failed to send alert", "listing_id", alert.ListingID, "error", err)
			}
		}
	}
}

func (b *TelegramBot) SendAlert(ctx context.Context, alert entity.QualityAlert) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		FormatAlert(alert),
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText отправляет простое текстовое сообщение.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// FormatStartup — уведомление о запуске сервиса с порогом алертов.
func FormatStartup(name, version string, threshold float64) string {
	return fmt.Sprintf("✅ %s %s started, alerting below quality %.2f", name, version, threshold)
}

// FormatAlert собирает HTML-сообщение для Telegram.
func FormatAlert(alert entity.QualityAlert) string {
	var sb strings.Builder

	sb.WriteString("⚠️ <b>Low extraction quality</b>\n\n")
	fmt.Fprintf(&sb, "🆔 <code>%s</code>\n", alert.ListingID)
	fmt.Fprintf(&sb, "📝 <b>Title:</b> %s\n", html.EscapeString(alert.Title))
	fmt.Fprintf(&sb, "📊 <b>Quality:</b> %.2f\n", alert.Quality)
	fmt.Fprintf(&sb, "🏠 <b>Type:</b> %s / %s\n", orDash(alert.PropertyType.String()), orDash(alert.ListingType.String()))

	if len(alert.Repairs) > 0 {
		fmt.Fprintf(&sb, "🔧 <b>Repairs:</b> %s\n", html.EscapeString(strings.Join(alert.Repairs, ", ")))
	}

	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
