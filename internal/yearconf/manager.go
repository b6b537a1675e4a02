package yearconf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/bayneri/yearcfg/internal/settings"
	"github.com/bayneri/yearcfg/internal/source"
)

var (
	ErrNotInitialized    = errors.New("config manager not initialized")
	ErrYearNotFound      = errors.New("year not found")
	ErrYearNotLoaded     = errors.New("year not loaded")
	ErrParserUnavailable = errors.New("parser unavailable")
)

type Parser interface {
	Wait(ctx context.Context) error
	Parse(text []byte) (map[string]any, error)
}

type Options struct {
	Years        []string
	DefaultYear  string
	Documents    []settings.Document
	ImagePrefix  string
	ReadyTimeout time.Duration
	Now          func() time.Time
}

func OptionsFromSettings(s settings.Settings) Options {
	return Options{
		Years:        s.Years,
		DefaultYear:  s.DefaultYear,
		Documents:    s.Documents,
		ImagePrefix:  s.ImagePrefix,
		ReadyTimeout: s.Parser.ReadyTimeout,
	}
}

type Manager struct {
	parser Parser
	source source.Source
	opts   Options
	logger *slog.Logger

	mu      sync.RWMutex
	store   map[string]YearConfig
	current string
	loaded  bool
}

func NewManager(parser Parser, src source.Source, opts Options, logger *slog.Logger) *Manager {
	if len(opts.Years) == 0 {
		opts.Years = append([]string(nil), settings.DefaultYears...)
	}
	if opts.DefaultYear == "" {
		opts.DefaultYear = settings.DefaultYear
	}
	if len(opts.Documents) == 0 {
		opts.Documents = settings.DefaultDocuments()
	}
	if opts.ImagePrefix == "" {
		opts.ImagePrefix = settings.DefaultImagePrefix
	}
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = settings.DefaultReadyTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		parser:  parser,
		source:  src,
		opts:    opts,
		logger:  logger,
		store:   map[string]YearConfig{},
		current: opts.DefaultYear,
	}
}

// Initialize leaves years whose enabled documents all failed out of the store.
// A cancelled run stores nothing for the year in flight.
func (m *Manager) Initialize(ctx context.Context) (LoadReport, error) {
	started := m.opts.Now().UTC()
	report := LoadReport{
		SchemaVersion: SchemaVersion,
		StartedAt:     started,
	}

	waitCtx, cancel := context.WithTimeout(ctx, m.opts.ReadyTimeout)
	err := m.parser.Wait(waitCtx)
	cancel()
	if err != nil {
		m.logger.Error("parser unavailable, configuration not loaded", "error", err)
		report.Status = StatusError
		report.Errors = append(report.Errors, err.Error())
		m.finish(&report)
		return report, fmt.Errorf("%w: %w", ErrParserUnavailable, err)
	}

	for _, year := range m.opts.Years {
		if err := ctx.Err(); err != nil {
			report.Status = overallStatus(report.Years, len(m.opts.Years))
			m.finish(&report)
			return report, fmt.Errorf("load years: %w", err)
		}

		cfg, result := m.LoadYear(ctx, year)
		if err := ctx.Err(); err != nil {
			// Failures caused by the cancellation are not the document's own.
			m.logger.Warn("load cancelled, year not stored", "year", year)
			report.Status = overallStatus(report.Years, len(m.opts.Years))
			m.finish(&report)
			return report, fmt.Errorf("load years: %w", err)
		}
		report.Years = append(report.Years, result)
		for _, warning := range result.Warnings {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", year, warning))
		}
		if result.Status == StatusError {
			m.logger.Warn("skipping year, no documents could be loaded", "year", year)
			continue
		}

		m.mu.Lock()
		m.store[year] = cfg
		m.mu.Unlock()
		m.logger.Debug("loaded year", "year", year, "status", result.Status)
	}

	m.mu.Lock()
	m.loaded = true
	m.mu.Unlock()

	report.Status = overallStatus(report.Years, len(m.opts.Years))
	m.finish(&report)
	m.logger.Info("configuration loaded",
		"status", report.Status,
		"years", len(m.AvailableYears()),
		"duration_ms", report.DurationMillis)
	return report, nil
}

func (m *Manager) finish(report *LoadReport) {
	report.FinishedAt = m.opts.Now().UTC()
	report.DurationMillis = report.FinishedAt.Sub(report.StartedAt).Milliseconds()
}

func overallStatus(years []YearResult, expected int) string {
	if len(years) == 0 {
		if expected == 0 {
			return StatusOK
		}
		return StatusError
	}
	failed := 0
	status := StatusOK
	for _, year := range years {
		switch year.Status {
		case StatusError:
			failed++
			status = StatusPartial
		case StatusPartial:
			status = StatusPartial
		}
	}
	if failed == expected {
		return StatusError
	}
	if len(years) < expected {
		return StatusPartial
	}
	return status
}

func (m *Manager) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

func (m *Manager) Config(year string) (YearConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return YearConfig{}, ErrNotInitialized
	}
	cfg, ok := m.store[year]
	if !ok {
		return YearConfig{}, fmt.Errorf("%w: %q", ErrYearNotFound, year)
	}
	return cfg.clone(), nil
}

func (m *Manager) CurrentConfig() (YearConfig, error) {
	return m.Config(m.CurrentYear())
}

func (m *Manager) CurrentYear() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) SetCurrentYear(year string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[year]; !ok {
		return fmt.Errorf("%w: %q", ErrYearNotLoaded, year)
	}
	m.current = year
	return nil
}

func (m *Manager) AvailableYears() []string {
	m.mu.RLock()
	years := make([]string, 0, len(m.store))
	for year := range m.store {
		years = append(years, year)
	}
	m.mu.RUnlock()
	sort.Strings(years)
	return years
}
