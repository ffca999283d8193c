package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/gradtohired/talentsearch/pkg/config"
	"github.com/gradtohired/talentsearch/pkg/retry"
)

// Client wraps the connection to the analytical warehouse
type Client struct {
	db *sql.DB
}

// NewClient opens the warehouse connection and verifies it with exponential
// backoff before returning
func NewClient(cfg *config.WarehouseConfig) (*Client, error) {
	db, err := sql.Open("postgres", cfg.WarehouseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	err = retry.Do(
		context.Background(),
		retry.DefaultConfig(),
		"warehouse",
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return db.PingContext(ctx)
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().
				Int("attempt", attempt).
				Err(err).
				Dur("next_delay", nextDelay).
				Msg("warehouse connection attempt failed, retrying")
		},
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to warehouse after retries: %w", err)
	}

	log.Info().Msg("connected to analytical warehouse")
	return &Client{db: db}, nil
}

// DB returns the underlying database handle
func (c *Client) DB() *sql.DB {
	return c.db
}

// Close closes the warehouse connection
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping verifies the connection to the warehouse
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
