package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/julianstephens/dayly/internal/constants"
)

// Notifier delivers a reminder to the user
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// New returns a webhook notifier when url is set and a stdout notifier otherwise.
func New(url string) Notifier {
	if url == "" {
		return &Writer{Out: os.Stdout}
	}
	return NewWebhook(url)
}

// Writer prints reminders to Out
type Writer struct {
	Out io.Writer
}

func (w *Writer) Notify(_ context.Context, text string) error {
	_, err := fmt.Fprintf(w.Out, "🔔 %s\n", text)
	return err
}

type WebhookPayload struct {
	App    string `json:"app"`
	Text   string `json:"text"`
	SentAt string `json:"sent_at"`
}

// Webhook POSTs reminders as JSON
type Webhook struct {
	URL    string
	Client *http.Client
	now    func() time.Time
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
		now:    time.Now,
	}
}

func (w *Webhook) Notify(ctx context.Context, text string) error {
	payload := WebhookPayload{
		App:    constants.AppName,
		Text:   text,
		SentAt: w.now().Format(time.RFC3339),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", constants.AppName+"/"+constants.Version)

	res, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("reminder webhook failed with status %d: %s", res.StatusCode, string(body))
}
