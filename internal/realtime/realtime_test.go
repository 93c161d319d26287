package realtime

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const testDelay = 50 * time.Millisecond

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(testDelay, func() { calls.Add(1) })

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(testDelay / 10)
	}
	time.Sleep(3 * testDelay)
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 call after burst, got %d", got)
	}

	d.Trigger()
	time.Sleep(3 * testDelay)
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected a second call after the window, got %d", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(testDelay, func() { calls.Add(1) })

	d.Trigger()
	d.Stop()
	d.Trigger()
	time.Sleep(3 * testDelay)
	if got := calls.Load(); got != 0 {
		t.Fatalf("expected no calls after Stop, got %d", got)
	}
}

func TestHub_PublishAndUnsubscribe(t *testing.T) {
	h := NewHub()
	a, b := h.Subscribe(), h.Subscribe()
	h.Publish("products")

	if got := <-a.C; got != "products" {
		t.Fatalf("unexpected table %q", got)
	}
	if got := <-b.C; got != "products" {
		t.Fatalf("unexpected table %q", got)
	}

	h.Unsubscribe(a)
	h.Unsubscribe(a)
	if _, ok := <-a.C; ok {
		t.Fatalf("channel should be closed after unsubscribe")
	}
	if h.Len() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", h.Len())
	}
	h.Unsubscribe(b)
}

func TestListener_DispatchFiltersTables(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()
	defer h.Unsubscribe(sub)
	l := NewListener("", h, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if l.Dispatch("orders") {
		t.Fatalf("unwatched table must be ignored")
	}
	if !l.Dispatch("brands") {
		t.Fatalf("watched table must be published")
	}
	if got := <-sub.C; got != "brands" {
		t.Fatalf("unexpected table %q", got)
	}
}

// lockedBuffer lets the test read what Serve writes from another goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServe_OneRefreshPerBurst(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()
	out := &lockedBuffer{}
	done := make(chan struct{})
	go func() {
		Serve(NewStream(bufio.NewWriter(out)), sub, h, testDelay, time.Hour)
		close(done)
	}()

	for _, table := range []string{"products", "product_images", "products", "categories"} {
		h.Publish(table)
	}
	time.Sleep(4 * testDelay)
	if n := strings.Count(out.String(), "event: refresh"); n != 1 {
		t.Fatalf("expected 1 refresh event, got %d:\n%s", n, out.String())
	}
	if !strings.Contains(out.String(), `"tables":["products","product_images","categories"]`) {
		t.Fatalf("refresh payload should list changed tables once, got:\n%s", out.String())
	}

	h.Publish("brands")
	time.Sleep(4 * testDelay)
	if n := strings.Count(out.String(), "event: refresh"); n != 2 {
		t.Fatalf("expected 2 refresh events, got %d", n)
	}

	h.Unsubscribe(sub)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Serve did not return after unsubscribe")
	}
}
