package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/energyops/assetbot/internal/remote"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
	closed  bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return f.err
}

func (f *fakeConn) Close() { f.closed = true }

func TestPublishModeChanged(t *testing.T) {
	fc := &fakeConn{}
	p := newPublisher(fc, "assetbot.operation_mode.changed")

	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	ev := ModeChanged{InteractionID: "abc", DeviceID: "bat-42", Mode: remote.ModeExportFocus, ChatID: 99, At: at}

	if err := p.PublishModeChanged(context.Background(), ev); err != nil {
		t.Fatalf("PublishModeChanged() error = %v", err)
	}
	if fc.subject != "assetbot.operation_mode.changed" {
		t.Errorf("subject = %s", fc.subject)
	}

	var got map[string]any
	if err := json.Unmarshal(fc.data, &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	want := map[string]any{
		"interaction_id": "abc",
		"device_id":      "bat-42",
		"mode":           "EXPORT_FOCUS",
		"chat_id":        float64(99),
		"at":             "2025-05-01T12:00:00Z",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("payload[%s] = %v, want %v", k, got[k], v)
		}
	}
}

func TestPublishModeChanged_Errors(t *testing.T) {
	fc := &fakeConn{err: errors.New("connection closed")}
	p := newPublisher(fc, "s")

	if err := p.PublishModeChanged(context.Background(), ModeChanged{}); err == nil {
		t.Error("publish failure should be returned")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fc.err = nil
	fc.data = nil
	if err := p.PublishModeChanged(ctx, ModeChanged{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if fc.data != nil {
		t.Error("nothing should be published after cancellation")
	}
}

func TestClose(t *testing.T) {
	fc := &fakeConn{}
	if err := newPublisher(fc, "s").Close(); err != nil {
		t.Fatal(err)
	}
	if !fc.closed {
		t.Error("connection should be closed")
	}
}

func TestNewNATSPublisher_RequiresSubject(t *testing.T) {
	if _, err := NewNATSPublisher(Options{URL: "nats://127.0.0.1:1"}); err == nil {
		t.Error("missing subject should be rejected before connecting")
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.PublishModeChanged(context.Background(), ModeChanged{}); err != nil {
		t.Error(err)
	}
}
