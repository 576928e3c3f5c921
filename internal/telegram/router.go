// Package telegram adapts Telegram updates to the conversation engine and
// renders its replies.
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saymealien/bloodpressurebot/internal/conversation"
)

// botAPI is the part of *tgbotapi.BotAPI the router needs.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Router wires Telegram updates to the conversation engine.
type Router struct {
	bot    botAPI
	log    *zap.Logger
	engine *conversation.Engine
}

// NewRouter creates a new Telegram router.
func NewRouter(bot botAPI, log *zap.Logger, engine *conversation.Engine) *Router {
	return &Router{
		bot:    bot,
		log:    log,
		engine: engine,
	}
}

// HandleUpdate routes a single update through the engine and sends the reply.
// Only text messages are handled; everything else is dropped.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.Text == "" {
		return
	}

	chatID := msg.Chat.ID
	userID := chatID
	if msg.From != nil {
		userID = msg.From.ID
	}
	log := r.log.With(
		zap.String("request_id", uuid.NewString()),
		zap.Int("update_id", upd.UpdateID),
		zap.Int64("user_id", userID),
	)
	log.Debug("update received", zap.Int("text_len", len(msg.Text)))

	reply := r.engine.Handle(ctx, userID, msg.Text)
	if reply.Empty() {
		return
	}
	if err := r.send(chatID, reply); err != nil {
		log.Error("send reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// SendMessage sends a plain text message to the given chat.
// This makes Router satisfy scheduler.Sender.
func (r *Router) SendMessage(chatID int64, text string) error {
	for _, part := range splitMessage(text, maxMessageLen) {
		if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			return err
		}
	}
	return nil
}
