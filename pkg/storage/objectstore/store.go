// Package objectstore keeps CV files in an S3 compatible bucket.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/artem13815/cvdesk/pkg/config"
	"github.com/artem13815/cvdesk/pkg/cv"
)

// Store is an ObjectStorage that can also be probed and prepared.
type Store interface {
	cv.ObjectStorage
	EnsureBucket(ctx context.Context) error
	Ping(ctx context.Context) error
}

var ErrUnknownDriver = errors.New("unknown storage driver")

// New builds a store for the configured driver.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "minio":
		return NewMinio(cfg)
	case "s3", "r2":
		return NewS3(ctx, cfg)
	case "memory":
		return NewMemory(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// publicURL joins base and key, or falls back to a path-style endpoint URL.
func publicURL(cfg config.StorageConfig, key string) string {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
	}
	return base + "/" + strings.TrimLeft(key, "/")
}

func readAll(r io.ReadCloser) ([]byte, error) {
	defer r.Close()
	return io.ReadAll(r)
}
