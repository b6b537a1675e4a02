package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	ErrNotReady   = errors.New("parser not ready")
	ErrLoadFailed = errors.New("parser load failed")
)

type ParseFunc func(data []byte) (map[string]any, error)

type Loader func(ctx context.Context) (ParseFunc, error)

type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse failure: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Bootstrap struct {
	loader Loader
	logger *slog.Logger

	once sync.Once
	done chan struct{}

	mu      sync.RWMutex
	parse   ParseFunc
	loadErr error
}

func New(loader Loader, logger *slog.Logger) *Bootstrap {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bootstrap{
		loader: loader,
		logger: logger,
		done:   make(chan struct{}),
	}
}

func (b *Bootstrap) Load(ctx context.Context) {
	b.once.Do(func() {
		defer close(b.done)
		if b.loader == nil {
			b.fail(errors.New("no parser backend configured"))
			return
		}
		fn, err := b.loader(ctx)
		if err == nil && fn == nil {
			err = errors.New("parser backend returned no parse function")
		}
		if err != nil {
			b.fail(err)
			return
		}
		b.mu.Lock()
		b.parse = fn
		b.mu.Unlock()
		b.logger.Debug("parser ready")
	})
}

func (b *Bootstrap) fail(err error) {
	b.mu.Lock()
	b.loadErr = err
	b.mu.Unlock()
	b.logger.Error("failed to load parser", "error", err)
}

// Done is closed once the load attempt has finished, successfully or not.
func (b *Bootstrap) Done() <-chan struct{} {
	return b.done
}

func (b *Bootstrap) Ready() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.parse != nil
}

func (b *Bootstrap) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loadErr
}

func (b *Bootstrap) Wait(ctx context.Context) error {
	select {
	case <-b.done:
	case <-ctx.Done():
		return fmt.Errorf("wait for parser: %w", ctx.Err())
	}
	if err := b.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return nil
}

func (b *Bootstrap) Parse(text []byte) (map[string]any, error) {
	b.mu.RLock()
	fn := b.parse
	b.mu.RUnlock()
	if fn == nil {
		return nil, ErrNotReady
	}
	out, err := fn(text)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
