package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"synco/internal/config"
	"synco/internal/logging"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// ensureConfig loads the config file, failing on a missing or invalid
// file. The run path requires this before any lock or sync activity.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// configOrDefault loads the config file when present and falls back to
// defaults when absent. Stop and status work against the default lock
// path even before a config file exists, matching the original
// stop-before-config-load ordering.
func (c *commandContext) configOrDefault() (*config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		defaults := config.Default()
		return &defaults, nil
	}
	return cfg, err
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  *c.logLevelFlag,
		Format: *c.logFormatFlag,
	})
}
