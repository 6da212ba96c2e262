// Package telegram connects a bot.Bot to the Telegram Bot API: it polls for
// updates, hands each one to the bot on its own goroutine and implements
// bot.Messenger on top of the SDK.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/energyops/assetbot/internal/bot"
	"github.com/energyops/assetbot/internal/logging"
	"github.com/energyops/assetbot/internal/views"
)

// DefaultSendRate is Telegram's global outbound limit in messages per second.
const DefaultSendRate = 20

// pollTimeout is the long-poll timeout for getUpdates, in seconds.
const pollTimeout = 60

// botAPI is the subset of *tgbotapi.BotAPI used here.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Handler receives decoded updates. *bot.Bot implements it.
type Handler interface {
	HandleCommand(ctx context.Context, cmd bot.Command)
	HandleCallback(ctx context.Context, cb bot.Callback)
}

// Transport is a bot.Messenger backed by the Telegram Bot API.
type Transport struct {
	api     botAPI
	limiter *rate.Limiter
}

var _ bot.Messenger = (*Transport)(nil)

// New authenticates with token. sendRate caps outgoing sends and edits per
// second; zero or less uses DefaultSendRate.
func New(token string, sendRate float64) (*Transport, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}

	logging.Info("Authorized on Telegram", zap.String("username", api.Self.UserName))

	return newTransport(api, sendRate), nil
}

func newTransport(api botAPI, sendRate float64) *Transport {
	if sendRate <= 0 {
		sendRate = DefaultSendRate
	}
	burst := int(sendRate)
	if burst < 1 {
		burst = 1
	}
	return &Transport{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(sendRate), burst),
	}
}

// RegisterCommands publishes the command menu shown by Telegram clients.
func (t *Transport) RegisterCommands(commands []bot.CommandInfo) error {
	tgCommands := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, c := range commands {
		tgCommands = append(tgCommands, tgbotapi.BotCommand{Command: c.Name, Description: c.Description})
	}

	if _, err := t.api.Request(tgbotapi.NewSetMyCommands(tgCommands...)); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	return nil
}

// Run polls for updates until ctx is canceled. Every update is handled on
// its own goroutine; Run waits for in-flight handlers before returning.
// Handlers are detached from ctx cancellation so a shutdown never cuts an
// interaction short of its final screen.
func (t *Transport) Run(ctx context.Context, h Handler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := t.api.GetUpdatesChan(u)

	handlerCtx := context.WithoutCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()

	logging.Info("Polling for Telegram updates")

	for {
		select {
		case <-ctx.Done():
			logging.Info("Stopping Telegram polling")
			t.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				dispatch(handlerCtx, h, update)
			}()
		}
	}
}

// dispatch converts a Telegram update into a bot interaction.
func dispatch(ctx context.Context, h Handler, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		if cq.Message == nil || cq.Message.Chat == nil {
			// Inline-mode messages have no chat to edit.
			logging.Debug("Ignoring callback without message", zap.String("callback_id", cq.ID))
			return
		}
		h.HandleCallback(ctx, bot.Callback{
			ID:      cq.ID,
			Message: bot.MessageRef{ChatID: cq.Message.Chat.ID, MessageID: cq.Message.MessageID},
			Data:    cq.Data,
		})

	case update.Message != nil && update.Message.IsCommand() && update.Message.Chat != nil:
		h.HandleCommand(ctx, bot.Command{
			ChatID: update.Message.Chat.ID,
			Name:   update.Message.Command(),
		})

	default:
		logging.Debug("Ignoring update", zap.Int("update_id", update.UpdateID))
	}
}

// keyboard builds the inline keyboard for a screen. A button whose action
// cannot be encoded is dropped and logged. Returns nil for no buttons.
func keyboard(screen views.Screen) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, r := range screen.Rows {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, b := range r {
			data, err := b.Data()
			if err != nil {
				logging.Error("Dropping button with unencodable action",
					zap.String("label", b.Label),
					zap.Error(err),
				)
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, data))
		}
		if len(buttons) > 0 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
		}
	}
	if len(rows) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func parseMode(screen views.Screen) string {
	if screen.Markdown {
		return tgbotapi.ModeMarkdown
	}
	return ""
}

// Send implements bot.Messenger.
func (t *Transport) Send(ctx context.Context, chatID int64, screen views.Screen) (bot.MessageRef, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return bot.MessageRef{}, err
	}

	msg := tgbotapi.NewMessage(chatID, screen.Text)
	msg.ParseMode = parseMode(screen)
	if kb := keyboard(screen); kb != nil {
		msg.ReplyMarkup = *kb
	}

	sent, err := t.api.Send(msg)
	if err != nil {
		return bot.MessageRef{}, fmt.Errorf("failed to send message: %w", err)
	}
	return bot.MessageRef{ChatID: chatID, MessageID: sent.MessageID}, nil
}

// Edit implements bot.Messenger. Telegram rejects an edit that changes
// nothing; that case counts as success.
func (t *Transport) Edit(ctx context.Context, ref bot.MessageRef, screen views.Screen) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, screen.Text)
	edit.ParseMode = parseMode(screen)
	edit.ReplyMarkup = keyboard(screen)

	if _, err := t.api.Request(edit); err != nil {
		if isNotModified(err) {
			return nil
		}
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// Answer implements bot.Messenger.
func (t *Transport) Answer(_ context.Context, callbackID string) error {
	if _, err := t.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
