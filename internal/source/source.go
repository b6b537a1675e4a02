package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/bayneri/yearcfg/internal/settings"
)

var ErrNotFound = errors.New("document not found")

type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}

func New(ctx context.Context, cfg settings.Source, opts Options) (Source, error) {
	switch cfg.Type {
	case settings.SourceHTTP, "":
		return NewHTTPSource(cfg.BaseURL, opts)
	case settings.SourceFile:
		return NewDirSource(cfg.Dir)
	case settings.SourceS3:
		return NewS3Source(ctx, S3Options{
			Bucket:    cfg.Bucket,
			Prefix:    cfg.Prefix,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}
