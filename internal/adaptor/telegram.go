// Package adaptor is the Telegram boundary. It decodes updates into
// typed engine events, renders structured replies into text and
// keyboards and routes notifications to other users. All user-facing
// strings live here.
package adaptor

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticket-booking/internal/engine"
)

const (
	pollTimeoutSeconds = 30
	// Telegram caps messages at 4096 characters; long admin listings
	// are split below that.
	maxMessageLen = 4000
)

type Telegram struct {
	api    *tgbotapi.BotAPI
	engine *engine.Engine
	log    *zap.Logger
}

func NewTelegram(token string, debug bool, eng *engine.Engine, log *zap.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Error("Failed to connect to telegram", zap.Error(err))
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	api.Debug = debug

	return &Telegram{
		api:    api,
		engine: eng,
		log:    log.With(zap.String("component", "telegram")),
	}, nil
}

// Run polls for updates until the context is cancelled. Each update is
// handled on its own goroutine; the engine serializes per user.
func (t *Telegram) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := t.api.GetUpdatesChan(cfg)

	t.log.Info("Bot started", zap.String("username", t.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go t.handleUpdate(ctx, update)
		}
	}
}

func (t *Telegram) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	log := t.log.With(zap.String("trace_id", uuid.NewString()))

	defer func() {
		if r := recover(); r != nil {
			log.Error("Recovered from panic while handling update", zap.Any("panic", r))
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		t.handleCallback(ctx, log, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		t.handleMessage(ctx, log, update.Message)
	}
}

func (t *Telegram) handleMessage(ctx context.Context, log *zap.Logger, msg *tgbotapi.Message) {
	in := decodeMessage(msg)
	log.Debug("Handling message",
		zap.Int64("user_id", in.UserID),
		zap.Int("command", int(in.Command)),
	)

	t.deliver(log, msg.Chat.ID, t.engine.Handle(ctx, in))
}

func (t *Telegram) handleCallback(ctx context.Context, log *zap.Logger, cb *tgbotapi.CallbackQuery) {
	action, err := decodeAction(cb.Data)
	if err != nil {
		log.Warn("Ignoring malformed callback",
			zap.Error(err),
			zap.Int64("user_id", cb.From.ID),
		)
		t.answerCallback(log, cb.ID, "❌ Произошла ошибка")
		return
	}
	t.answerCallback(log, cb.ID, "")

	chatID := cb.From.ID
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
	}

	in := engine.Inbound{
		UserID:   cb.From.ID,
		Username: cb.From.UserName,
		Action:   action,
	}

	t.deliver(log, chatID, t.engine.Handle(ctx, in))
}

// answerCallback clears the client's loading indicator.
func (t *Telegram) answerCallback(log *zap.Logger, callbackID, text string) {
	if _, err := t.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Warn("Failed to answer callback", zap.Error(err))
	}
}

// deliver sends each reply to its recipient. A zero To targets the
// originating chat; anything else is a notification to that user.
func (t *Telegram) deliver(log *zap.Logger, chatID int64, outs []engine.Outbound) {
	for _, out := range outs {
		target := chatID
		if out.To != 0 {
			target = out.To
		}
		t.send(log, target, out)
	}
}

func (t *Telegram) send(log *zap.Logger, chatID int64, out engine.Outbound) {
	chunks := splitMessage(renderText(out))
	for i, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if i == len(chunks)-1 {
			switch {
			case out.MainMenu:
				msg.ReplyMarkup = mainMenuKeyboard()
			case len(out.Buttons) > 0:
				msg.ReplyMarkup = inlineKeyboard(out.Buttons)
			}
		}
		if _, err := t.api.Send(msg); err != nil {
			log.Error("Failed to send message",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
			return
		}
	}
}

// decodeMessage classifies a message as a command, a main-menu press or
// free text.
func decodeMessage(msg *tgbotapi.Message) engine.Inbound {
	in := engine.Inbound{
		UserID:   msg.From.ID,
		Username: msg.From.UserName,
	}

	if msg.IsCommand() {
		in.Command = decodeCommand(msg.Command())
		in.CommandArg = msg.CommandArguments()
		if in.Command == engine.CommandNone {
			in.Text = msg.Text
		}
		return in
	}

	switch strings.TrimSpace(msg.Text) {
	case labelSchedule:
		in.Command = engine.CommandEvents
	case labelBook:
		in.Command = engine.CommandBook
	case labelMyBookings:
		in.Command = engine.CommandMyBookings
	case labelFeedback:
		in.Command = engine.CommandFeedback
	default:
		in.Text = msg.Text
	}
	return in
}

func decodeCommand(name string) engine.Command {
	switch name {
	case "start":
		return engine.CommandStart
	case "help":
		return engine.CommandHelp
	case "events":
		return engine.CommandEvents
	case "book":
		return engine.CommandBook
	case "mybookings":
		return engine.CommandMyBookings
	case "feedback":
		return engine.CommandFeedback
	case "cancel":
		return engine.CommandCancel
	case "admin_bookings":
		return engine.CommandAdminBookings
	case "admin_events":
		return engine.CommandAdminEvents
	case "event_feedback":
		return engine.CommandAdminEventFeedback
	}
	return engine.CommandNone
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(labelSchedule),
			tgbotapi.NewKeyboardButton(labelBook),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(labelMyBookings),
			tgbotapi.NewKeyboardButton(labelFeedback),
		),
	)
}

func inlineKeyboard(buttons [][]engine.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(
				buttonLabel(button),
				encodeAction(button.Action),
			))
		}
		rows = append(rows, btns)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// splitMessage chunks text on rune boundaries.
func splitMessage(text string) []string {
	runes := []rune(text)
	if len(runes) <= maxMessageLen {
		return []string{text}
	}

	parts := make([]string, 0, len(runes)/maxMessageLen+1)
	for len(runes) > 0 {
		n := maxMessageLen
		if n > len(runes) {
			n = len(runes)
		}
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	return parts
}
