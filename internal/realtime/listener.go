package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

// Channel is the NOTIFY channel the catalog triggers publish on. The
// payload is the changed table's name.
const Channel = "catalog_changes"

const reconnectDelay = 2 * time.Second

// Listener forwards Postgres notifications for watched tables to a Hub.
type Listener struct {
	dsn    string
	hub    *Hub
	log    *slog.Logger
	tables map[string]bool
}

func NewListener(dsn string, hub *Hub, log *slog.Logger) *Listener {
	tables := make(map[string]bool, len(WatchedTables))
	for _, t := range WatchedTables {
		tables[t] = true
	}
	return &Listener{dsn: dsn, hub: hub, log: log, tables: tables}
}

// Run listens until ctx is cancelled, reconnecting after connection errors.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		l.log.Warn("realtime listener disconnected", "error", err)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("realtime: connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{Channel}.Sanitize()); err != nil {
		return fmt.Errorf("realtime: listen: %w", err)
	}
	l.log.Info("realtime listener started", "channel", Channel)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("realtime: wait: %w", err)
		}
		l.Dispatch(n.Payload)
	}
}

// Dispatch publishes payload when it names a watched table.
func (l *Listener) Dispatch(payload string) bool {
	if !l.tables[payload] {
		return false
	}
	l.hub.Publish(payload)
	return true
}
