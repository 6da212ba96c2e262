package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/energyops/assetbot/internal/bot"
	"github.com/energyops/assetbot/internal/callback"
	"github.com/energyops/assetbot/internal/views"
)

type fakeAPI struct {
	mu         sync.Mutex
	sent       []tgbotapi.Chattable
	requests   []tgbotapi.Chattable
	requestErr error
	updates    chan tgbotapi.Update
	stopped    bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: 10 + len(f.sent)}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	if f.requestErr != nil {
		return nil, f.requestErr
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func TestSend(t *testing.T) {
	api := &fakeAPI{}
	tr := newTransport(api, 0)

	screen := views.Screen{
		Text:     "*hi*",
		Markdown: true,
		Rows: [][]views.Button{
			{{Label: "Devices", Action: callback.ShowDeviceList{}}},
			{{Label: "Control", Action: callback.ShowDeviceControls{DeviceID: "bat-42"}}},
		},
	}

	ref, err := tr.Send(context.Background(), 5, screen)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if ref.ChatID != 5 || ref.MessageID != 11 {
		t.Errorf("ref = %+v", ref)
	}

	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("sent %T, want MessageConfig", api.sent[0])
	}
	if msg.ParseMode != tgbotapi.ModeMarkdown {
		t.Errorf("ParseMode = %q", msg.ParseMode)
	}
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("ReplyMarkup = %T", msg.ReplyMarkup)
	}
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.InlineKeyboard))
	}
	if data := markup.InlineKeyboard[1][0].CallbackData; data == nil || *data != "device_control_bat-42" {
		t.Errorf("callback data = %v", data)
	}
}

func TestSend_PlainTextWithoutButtons(t *testing.T) {
	api := &fakeAPI{}
	tr := newTransport(api, 0)

	if _, err := tr.Send(context.Background(), 5, views.Screen{Text: "⏳ Fetching devices data..."}); err != nil {
		t.Fatal(err)
	}

	msg := api.sent[0].(tgbotapi.MessageConfig)
	if msg.ParseMode != "" {
		t.Errorf("ParseMode = %q, want plain text", msg.ParseMode)
	}
	if msg.ReplyMarkup != nil {
		t.Errorf("ReplyMarkup = %v, want none", msg.ReplyMarkup)
	}
}

func TestEdit(t *testing.T) {
	api := &fakeAPI{}
	tr := newTransport(api, 0)

	screen := views.InvalidRequest()
	if err := tr.Edit(context.Background(), bot.MessageRef{ChatID: 5, MessageID: 9}, screen); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}

	edit, ok := api.requests[0].(tgbotapi.EditMessageTextConfig)
	if !ok {
		t.Fatalf("request %T, want EditMessageTextConfig", api.requests[0])
	}
	if edit.ChatID != 5 || edit.MessageID != 9 || edit.Text != views.TextInvalidRequest {
		t.Errorf("edit = %+v", edit)
	}
	if edit.ReplyMarkup == nil || len(edit.ReplyMarkup.InlineKeyboard) != 1 {
		t.Errorf("ReplyMarkup = %+v, want one row", edit.ReplyMarkup)
	}
}

func TestEdit_NotModifiedIsSuccess(t *testing.T) {
	api := &fakeAPI{requestErr: errors.New("Bad Request: message is not modified: specified new message content is the same")}
	tr := newTransport(api, 0)

	if err := tr.Edit(context.Background(), bot.MessageRef{ChatID: 1, MessageID: 1}, views.Screen{Text: "x"}); err != nil {
		t.Errorf("Edit() error = %v, want nil", err)
	}

	api.requestErr = errors.New("Forbidden: bot was blocked by the user")
	if err := tr.Edit(context.Background(), bot.MessageRef{ChatID: 1, MessageID: 1}, views.Screen{Text: "x"}); err == nil {
		t.Error("other edit failures should be returned")
	}
}

func TestKeyboard_DropsUnencodableButtons(t *testing.T) {
	screen := views.Screen{Rows: [][]views.Button{
		{{Label: "bad", Action: callback.ShowDeviceControls{DeviceID: strings.Repeat("x", 80)}}},
		{{Label: "good", Action: callback.ShowDeviceList{}}},
	}}

	kb := keyboard(screen)
	if kb == nil || len(kb.InlineKeyboard) != 1 || kb.InlineKeyboard[0][0].Text != "good" {
		t.Errorf("keyboard = %+v, want only the encodable button", kb)
	}
	if keyboard(views.Screen{}) != nil {
		t.Error("screen without buttons should have no keyboard")
	}
}

func TestAnswer(t *testing.T) {
	api := &fakeAPI{}
	tr := newTransport(api, 0)

	if err := tr.Answer(context.Background(), "cb-1"); err != nil {
		t.Fatal(err)
	}
	cfg, ok := api.requests[0].(tgbotapi.CallbackConfig)
	if !ok || cfg.CallbackQueryID != "cb-1" {
		t.Errorf("request = %#v", api.requests[0])
	}
}

func TestRegisterCommands(t *testing.T) {
	api := &fakeAPI{}
	tr := newTransport(api, 0)

	if err := tr.RegisterCommands(bot.Commands); err != nil {
		t.Fatal(err)
	}
	cfg, ok := api.requests[0].(tgbotapi.SetMyCommandsConfig)
	if !ok {
		t.Fatalf("request %T, want SetMyCommandsConfig", api.requests[0])
	}
	if len(cfg.Commands) != len(bot.Commands) || cfg.Commands[0].Command != "start" {
		t.Errorf("commands = %+v", cfg.Commands)
	}
}

type recordingHandler struct {
	mu        sync.Mutex
	commands  []bot.Command
	callbacks []bot.Callback
}

func (h *recordingHandler) HandleCommand(_ context.Context, cmd bot.Command) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commands = append(h.commands, cmd)
}

func (h *recordingHandler) HandleCallback(_ context.Context, cb bot.Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = append(h.callbacks, cb)
}

func commandUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])},
		},
	}}
}

func TestRun_DispatchesUpdates(t *testing.T) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update, 4)}
	tr := newTransport(api, 0)
	h := &recordingHandler{}

	api.updates <- commandUpdate(7, "/devices")
	api.updates <- tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-9",
		Data:    "back_to_devices",
		Message: &tgbotapi.Message{MessageID: 3, Chat: &tgbotapi.Chat{ID: 7}},
	}}
	api.updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 7}}}
	api.updates <- tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{ID: "inline", Data: "x"}}
	close(api.updates)

	if err := tr.Run(context.Background(), h); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(h.commands) != 1 || h.commands[0] != (bot.Command{ChatID: 7, Name: "devices"}) {
		t.Errorf("commands = %+v", h.commands)
	}
	want := bot.Callback{ID: "cb-9", Message: bot.MessageRef{ChatID: 7, MessageID: 3}, Data: "back_to_devices"}
	if len(h.callbacks) != 1 || h.callbacks[0] != want {
		t.Errorf("callbacks = %+v", h.callbacks)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update)}
	tr := newTransport(api, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tr.Run(ctx, &recordingHandler{}) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if !api.stopped {
		t.Error("polling should be stopped")
	}
}
