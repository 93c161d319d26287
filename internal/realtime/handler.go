package realtime

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"github.com/wichananm65/beverage-shop/internal/metrics"
)

const heartbeatInterval = 25 * time.Second

// Stream writes Server-Sent Events to one client.
type Stream struct {
	w *bufio.Writer
}

func NewStream(w *bufio.Writer) *Stream {
	return &Stream{w: w}
}

// Send writes a named event with a JSON payload and flushes it. An error
// means the client is gone.
func (s *Stream) Send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	return s.w.Flush()
}

// Comment writes a keepalive comment.
func (s *Stream) Comment(msg string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", msg); err != nil {
		return err
	}
	return s.w.Flush()
}

type Handler struct {
	hub   *Hub
	delay time.Duration
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub, delay: DefaultDelay}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/realtime", h.stream)
}

func (h *Handler) stream(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	sub := h.hub.Subscribe()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		Serve(NewStream(w), sub, h.hub, h.delay, heartbeatInterval)
	}))
	return nil
}

// Serve pushes one debounced "refresh" event per burst of changes until
// the client disconnects. On return the pending refresh is cancelled and
// the subscription is removed.
func Serve(s *Stream, sub *Subscription, hub *Hub, delay, heartbeat time.Duration) {
	refresh := make(chan struct{}, 1)
	deb := NewDebouncer(delay, func() {
		select {
		case refresh <- struct{}{}:
		default:
		}
	})
	defer func() {
		deb.Stop()
		hub.Unsubscribe(sub)
	}()

	if err := s.Comment("connected"); err != nil {
		return
	}

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	var pending []string
	for {
		select {
		case table, ok := <-sub.C:
			if !ok {
				return
			}
			pending = appendUnique(pending, table)
			deb.Trigger()
		case <-refresh:
			err := s.Send("refresh", map[string]any{"tables": pending})
			pending = nil
			if err != nil {
				return
			}
			metrics.RealtimeRefreshes.Inc()
		case <-ticker.C:
			if err := s.Comment("ping"); err != nil {
				return
			}
		}
	}
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
