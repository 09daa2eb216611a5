// Package checkers adapts infrastructure clients to health.Checker.
package checkers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/artem13815/cvdesk/pkg/health"
)

// Pinger is satisfied by the object store drivers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ping bounds a single dependency probe by its own timeout.
type ping struct {
	name    string
	timeout time.Duration
	probe   func(context.Context) error
}

func (p ping) Name() string { return p.name }

func (p ping) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.probe(ctx)
}

func Postgres(pool *pgxpool.Pool) health.Checker {
	return ping{name: "postgres", timeout: time.Second, probe: pool.Ping}
}

// Redis probes the instance behind the job queue.
func Redis(client redis.UniversalClient) health.Checker {
	return ping{name: "redis", timeout: time.Second, probe: func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}}
}

// ObjectStore probes the CV bucket.
func ObjectStore(store Pinger) health.Checker {
	return ping{name: "objectstore", timeout: 2 * time.Second, probe: store.Ping}
}
