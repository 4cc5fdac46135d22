package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/GusBusDraws/aps-directional/internal/config"
	"github.com/GusBusDraws/aps-directional/internal/history"
	"github.com/GusBusDraws/aps-directional/internal/logging"
	"github.com/GusBusDraws/aps-directional/internal/services"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerFor returns a logger carrying the invocation's context fields. It
// falls back to a no-op logger when configuration failed, since the config
// error itself is reported through the command result.
func (c *commandContext) loggerFor(ctx context.Context) *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return logging.WithContext(ctx, c.logger)
}

// recordHistory persists a render record unless history is disabled.
// Failures are logged, never fatal: the render result matters more than the
// bookkeeping.
func (c *commandContext) recordHistory(ctx context.Context, logger *slog.Logger, rec history.Record) {
	cfg, err := c.ensureConfig()
	if err != nil || !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg)
	if err != nil {
		logger.Warn("open history store", logging.Error(err))
		return
	}
	defer store.Close()
	if _, err := store.Record(ctx, rec); err != nil {
		logger.Warn("record render history", logging.Error(err))
	}
}
