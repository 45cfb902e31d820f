// Package zaplogger adapts go.uber.org/zap to the landing logging contract.
package zaplogger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// Config selects the zap level and encoding (json or console).
type Config struct {
	Level       string
	Format      string
	Development bool
}

// Provider hands out named sugared loggers.
type Provider struct {
	root *zap.SugaredLogger
}

// NewProvider builds a zap logger from cfg.
func NewProvider(cfg Config) (*Provider, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}

	level := zapcore.InfoLevel
	if trimmed := strings.TrimSpace(cfg.Level); trimmed != "" {
		if strings.EqualFold(trimmed, "trace") {
			trimmed = "debug"
		}
		if err := level.UnmarshalText([]byte(strings.ToLower(trimmed))); err != nil {
			return nil, fmt.Errorf("logging: invalid zap level %q: %w", cfg.Level, err)
		}
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		zcfg.Encoding = "json"
	case "console", "pretty":
		zcfg.Encoding = "console"
	default:
		return nil, fmt.Errorf("logging: unsupported zap format %q", cfg.Format)
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build zap logger: %w", err)
	}
	return FromLogger(logger), nil
}

// FromLogger wraps an existing zap logger.
func FromLogger(logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{root: logger.Sugar()}
}

// Sync flushes buffered entries.
func (p *Provider) Sync() error {
	if p == nil {
		return nil
	}
	return p.root.Sync()
}

func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return &adapter{inner: p.root}
	}
	return &adapter{inner: p.root.Named(name)}
}

type adapter struct {
	inner *zap.SugaredLogger
	ctx   context.Context
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func (l *adapter) Trace(msg string, args ...any) { l.sugar().Debugw(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.sugar().Debugw(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.sugar().Infow(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.sugar().Warnw(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.sugar().Errorw(msg, args...) }
func (l *adapter) Fatal(msg string, args ...any) { l.sugar().Fatalw(msg, args...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	return &adapter{inner: l.inner.With(pairs(fields)...), ctx: l.ctx}
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	return &adapter{inner: l.inner, ctx: ctx}
}

// sugar merges fields carried on the bound context.
func (l *adapter) sugar() *zap.SugaredLogger {
	fields := logging.ContextFields(l.ctx)
	if len(fields) == 0 {
		return l.inner
	}
	return l.inner.With(pairs(fields)...)
}

func pairs(fields map[string]any) []any {
	out := make([]any, 0, len(fields)*2)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		out = append(out, key, fields[key])
	}
	return out
}
