package internal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// riverQueuePublisher inserts rendered messages straight into a RiverQueue
// jobs table, so delivery workers can drain them with the river client.
type riverQueuePublisher struct {
	db  *sql.DB
	cfg RiverQueueConfig
}

func newRiverQueuePublisher(cfg RiverQueueConfig) (*riverQueuePublisher, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "postgres"
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("riverqueue dsn is required")
	}
	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	return &riverQueuePublisher{db: db, cfg: cfg}, nil
}

// Publish inserts one job carrying the rendered message as its args.
func (p *riverQueuePublisher) Publish(ctx context.Context, topic string, msg RenderedMessage) error {
	args, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	metadata, err := json.Marshal(map[string]interface{}{
		"provider": msg.Provider,
		"event":    msg.Event,
		"hook_id":  msg.HookID,
		"topic":    topic,
	})
	if err != nil {
		return err
	}

	table := strings.TrimSpace(p.cfg.Table)
	if table == "" {
		table = "river_job"
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (args, kind, max_attempts, metadata, priority, queue, scheduled_at, tags)
VALUES ($1, $2, $3, $4, $5, $6, now(), $7)`,
		table,
	)

	_, err = p.db.ExecContext(
		ctx,
		query,
		string(args),
		p.cfg.Kind,
		p.cfg.MaxAttempts,
		string(metadata),
		p.cfg.Priority,
		p.cfg.Queue,
		pq.Array(p.cfg.Tags),
	)
	return err
}

func (p *riverQueuePublisher) PublishForDrivers(ctx context.Context, topic string, msg RenderedMessage, _ []string) error {
	return p.Publish(ctx, topic, msg)
}

func (p *riverQueuePublisher) Close() error {
	return p.db.Close()
}
