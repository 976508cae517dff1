package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"img2gif/internal/config"
)

const userAgent = "img2gif/0.1.0"

// Event names a notification type.
type Event string

const (
	EventConversionCompleted Event = "conversion_completed"
	EventConversionFailed    Event = "conversion_failed"
	EventConversionSkipped   Event = "conversion_skipped"
	EventTest                Event = "test"
)

// Payload carries event fields. Known keys are "output", "frames", "width",
// "height", "bytes", "inputs" and "error".
type Payload map[string]any

// Service publishes events.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds an ntfy-backed service, or a no-op one when no topic is
// configured.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}
	timeout := cfg.NotifyTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint:       topic,
		client:         &http.Client{Timeout: timeout},
		notifyFailures: cfg.Notifications.NotifyFailures,
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint       string
	client         *http.Client
	notifyFailures bool
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, ok := n.render(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

func (n *ntfyService) render(event Event, payload Payload) (message, bool) {
	switch event {
	case EventConversionCompleted:
		body := fmt.Sprintf("🎞️ %s: %d frame(s) at %dx%d",
			payload.str("output"), payload.num("frames"), payload.num("width"), payload.num("height"))
		if size := payload.num("bytes"); size > 0 {
			body += ", " + humanize.IBytes(uint64(size))
		}
		return message{
			title: "img2gif - GIF Ready",
			body:  body,
			tags:  []string{"img2gif", "gif", "completed"},
		}, true
	case EventConversionFailed:
		if !n.notifyFailures {
			return message{}, false
		}
		reason := payload.str("error")
		if reason == "" {
			reason = "unknown"
		}
		return message{
			title:    "img2gif - Conversion Failed",
			body:     fmt.Sprintf("❌ Converting %d image(s) failed: %s", payload.num("inputs"), reason),
			tags:     []string{"img2gif", "error", "alert"},
			priority: "high",
		}, true
	case EventConversionSkipped:
		if !n.notifyFailures {
			return message{}, false
		}
		return message{
			title: "img2gif - Nothing Converted",
			body:  fmt.Sprintf("⚠️ No GIF was produced from %d image(s)", payload.num("inputs")),
			tags:  []string{"img2gif", "skipped"},
		}, true
	case EventTest:
		return message{
			title:    "img2gif - Test",
			body:     "🧪 Notification system test",
			tags:     []string{"img2gif", "test"},
			priority: "low",
		}, true
	default:
		return message{}, false
	}
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (p Payload) str(key string) string {
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return v.String()
	case error:
		return strings.TrimSpace(v.Error())
	default:
		return ""
	}
}

func (p Payload) num(key string) int64 {
	switch v := p[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
