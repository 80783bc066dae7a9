package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewSelectsDelivery(t *testing.T) {
	if _, ok := New("").(*Writer); !ok {
		t.Error("empty url should print to stdout")
	}
	if _, ok := New("http://127.0.0.1:1").(*Webhook); !ok {
		t.Error("url should select the webhook")
	}
}

func TestWriterNotify(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{Out: &buf}
	if err := w.Notify(context.Background(), "Time to check in"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Time to check in") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWebhookNotify(t *testing.T) {
	var got WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	hook := NewWebhook(server.URL)
	hook.now = func() time.Time { return time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC) }

	if err := hook.Notify(context.Background(), "Streak at risk"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if got.Text != "Streak at risk" || got.App != "dayly" || got.SentAt != "2024-01-01T20:00:00Z" {
		t.Errorf("payload = %+v", got)
	}
}

func TestWebhookNotifyFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad token"))
	}))
	defer server.Close()

	err := NewWebhook(server.URL).Notify(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "bad token") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWebhookCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewWebhook("http://127.0.0.1:1").Notify(ctx, "hi"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
