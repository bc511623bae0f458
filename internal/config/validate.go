package config

import (
	"errors"
	"fmt"
)

var validCropRegions = map[string]struct{}{
	"bottom_quarter": {},
	"bottom_third":   {},
	"bottom_half":    {},
	"full":           {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	return c.validateWorkflow()
}

func (c *Config) validatePaths() error {
	if c.Paths.StagingDir == "" {
		return errors.New("paths.staging_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateExtraction() error {
	if c.Extraction.FrameInterval <= 0 {
		return errors.New("extraction.frame_interval must be positive")
	}
	if _, ok := validCropRegions[c.Extraction.CropRegion]; !ok {
		return fmt.Errorf("extraction.crop_region: unsupported value %q", c.Extraction.CropRegion)
	}
	if c.Extraction.DedupeThreshold <= 0 || c.Extraction.DedupeThreshold > 1 {
		return errors.New("extraction.dedupe_threshold must be in (0, 1]")
	}
	if len(c.Extraction.OCRLanguages) == 0 {
		return errors.New("extraction.ocr_languages must not be empty")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/cookit/config.toml"
		}
		return fmt.Errorf("llm.api_key is required. Set COOKIT_LLM_API_KEY or edit %s (create with 'cookit config init')", defaultPath)
	}
	if c.LLM.BaseURL == "" {
		return errors.New("llm.base_url must be set")
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model must be set")
	}
	if c.LLM.TimeoutSeconds < 0 {
		return errors.New("llm.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.QueuePollInterval <= 0 {
		return errors.New("workflow.queue_poll_interval must be positive")
	}
	if c.Workflow.ErrorRetryInterval <= 0 {
		return errors.New("workflow.error_retry_interval must be positive")
	}
	if c.Workflow.HeartbeatInterval <= 0 || c.Workflow.HeartbeatTimeout <= c.Workflow.HeartbeatInterval {
		return errors.New("workflow.heartbeat_timeout must exceed workflow.heartbeat_interval")
	}
	if c.Workflow.JobTimeoutMinutes <= 0 {
		return errors.New("workflow.job_timeout_minutes must be positive")
	}
	return nil
}
