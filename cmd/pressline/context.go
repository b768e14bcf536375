package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"pressline/internal/config"
	"pressline/internal/logging"
	"pressline/internal/store"
)

// defaultOwnerEnv names the environment variable consulted when --owner is
// not given.
const defaultOwnerEnv = "PRESSLINE_OWNER"

type commandContext struct {
	configFlag *string
	ownerFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, ownerFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		ownerFlag:  ownerFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ownerID() (string, error) {
	if c.ownerFlag != nil {
		if owner := strings.TrimSpace(*c.ownerFlag); owner != "" {
			return owner, nil
		}
	}
	if owner := strings.TrimSpace(os.Getenv(defaultOwnerEnv)); owner != "" {
		return owner, nil
	}
	return "", errors.New("owner id is required (use --owner or set " + defaultOwnerEnv + ")")
}

// slogger returns a logger mirroring to the configured log directory, or a
// no-op logger when the configuration cannot provide one.
func (c *commandContext) slogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.Nop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.Nop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withStore opens the release store and guarantees it is closed after fn
// returns.
func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
