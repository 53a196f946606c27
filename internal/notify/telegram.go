package notify

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"reel-tracker/internal/models"
	"reel-tracker/internal/timeutil"
)

// digest messages cap out at the same size as the terminal listing
const digestLimit = 6

// TelegramNotifier pushes recommendation digests to a Telegram chat.
type TelegramNotifier struct {
	bot    *tele.Bot
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram notifier not configured: missing bot token or chat ID")
	}

	bot, err := tele.NewBot(tele.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// SendDigest formats and sends a recommendation digest.
func (n *TelegramNotifier) SendDigest(titles []models.Title) error {
	digest := FormatDigest(titles)
	if _, err := n.bot.Send(tele.ChatID(n.chatID), digest, tele.ModeHTML); err != nil {
		return fmt.Errorf("failed to send telegram digest: %w", err)
	}
	return nil
}

// FormatDigest formats ranked titles into a digest message.
// Exported for testing purposes.
func FormatDigest(titles []models.Title) string {
	today := timeutil.Now().Format("2006-01-02")
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🎬 <b>Recommendation digest</b> (%s)\n\n", today))

	if len(titles) == 0 {
		sb.WriteString("Nothing to recommend yet. Add a few titles to your list!")
		return sb.String()
	}

	if len(titles) > digestLimit {
		titles = titles[:digestLimit]
	}

	for i, title := range titles {
		sb.WriteString(fmt.Sprintf("%d. <b>%s</b> (%s)\n", i+1, title.Name, title.ReleaseYear))
		if len(title.Genres) > 0 {
			sb.WriteString(fmt.Sprintf("   🎭 %s\n", strings.Join(title.Genres, ", ")))
		}
		if i < len(titles)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
