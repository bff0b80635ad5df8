package redis

import (
	"context"
	"fmt"
	"time"

	"aura-ledger/config"
	"aura-ledger/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// keyPrefix namespaces every key the ledger writes.
const keyPrefix = "aura:"

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = time.Second
	pingTimeout = 2 * time.Second
)

// NewClient connects to Redis and pings it once before returning.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(clientOptions(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr(), err)
	}

	log.Info().Str("addr", cfg.Addr()).Int("db", cfg.DB).Msg("redis ready")
	return client, nil
}

func clientOptions(cfg config.RedisConfig) *goredis.Options {
	return &goredis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   logger.ServiceName,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	}
}

// Probe is the ports.HealthChecker for the Redis connection.
type Probe struct {
	client goredis.Cmdable
}

func NewProbe(client goredis.Cmdable) *Probe {
	return &Probe{client: client}
}

func (p *Probe) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return p.client.Ping(ctx).Err()
}

func (p *Probe) Name() string { return "redis" }
