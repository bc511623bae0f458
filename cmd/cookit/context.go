package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"cookit/internal/api"
	"cookit/internal/config"
	"cookit/internal/videoid"
)

type commandContext struct {
	apiFlag    *string
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(apiFlag, configFlag *string) *commandContext {
	return &commandContext{
		apiFlag:    apiFlag,
		configFlag: configFlag,
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
		c.config = cfg
	})
	return c.config, c.configErr
}

// apiBind resolves the daemon address: flag first, then config, then
// the built-in default.
func (c *commandContext) apiBind() string {
	if c.apiFlag != nil && strings.TrimSpace(*c.apiFlag) != "" {
		return strings.TrimSpace(*c.apiFlag)
	}
	if cfg, err := c.ensureConfig(); err == nil && cfg != nil && cfg.Paths.APIBind != "" {
		return cfg.Paths.APIBind
	}
	return config.Default().Paths.APIBind
}

func (c *commandContext) client() *api.Client {
	return api.NewClient(c.apiBind())
}

// resolveVideoID accepts either a derived video id or a raw video URL.
func resolveVideoID(arg string) (string, error) {
	trimmed := strings.TrimSpace(arg)
	if strings.Contains(trimmed, "://") {
		_, videoID, err := videoid.Derive(trimmed)
		return videoID, err
	}
	return trimmed, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
