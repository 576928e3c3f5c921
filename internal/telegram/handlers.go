package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/saymealien/bloodpressurebot/internal/conversation"
)

// send renders one engine reply. The keyboard goes with the document, or with
// the last text chunk.
func (r *Router) send(chatID int64, reply conversation.Reply) error {
	markup := keyboardFor(reply.Menu, reply.Options)

	if reply.Document != nil {
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
			Name:  reply.Document.Name,
			Bytes: reply.Document.Data,
		})
		doc.Caption = reply.Document.Caption
		if markup != nil {
			doc.ReplyMarkup = markup
		}
		if _, err := r.bot.Send(doc); err != nil {
			return fmt.Errorf("send document %s: %w", reply.Document.Name, err)
		}
		if reply.Text == "" {
			return nil
		}
		markup = nil
	}

	parts := splitMessage(reply.Text, maxMessageLen)
	for i, part := range parts {
		msg := tgbotapi.NewMessage(chatID, part)
		if i == len(parts)-1 && markup != nil {
			msg.ReplyMarkup = markup
		}
		if _, err := r.bot.Send(msg); err != nil {
			return fmt.Errorf("send message part %d/%d: %w", i+1, len(parts), err)
		}
	}
	return nil
}

// splitMessage cuts text into pieces of at most limit characters, preferring
// to break after a newline.
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		if nl := lastNewline(runes[:limit]); nl > 0 {
			cut = nl + 1
		}
		parts = append(parts, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

func lastNewline(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			return i
		}
	}
	return -1
}
