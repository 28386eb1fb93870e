package main

import (
	"fmt"

	"github.com/kbukum/catalogq/catalog"
	"github.com/kbukum/catalogq/config"
	"github.com/kbukum/catalogq/observability"
	"github.com/kbukum/catalogq/report"
	"github.com/kbukum/catalogq/runner"
	"github.com/kbukum/catalogq/validation"
	"github.com/kbukum/catalogq/version"
)

const serviceName = "catalogq"

// maxTitleLength bounds the banner title.
const maxTitleLength = 80

// AppConfig is the full configuration of a catalogq run.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Catalog       catalog.Config       `yaml:"catalog" mapstructure:"catalog"`
	Query         runner.Config        `yaml:"query" mapstructure:"query"`
	Report        ReportConfig         `yaml:"report" mapstructure:"report"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ReportConfig controls the report layout.
type ReportConfig struct {
	Title string `yaml:"title" mapstructure:"title"`
}

// loaderDefaults are the values used when neither the config file nor the
// environment sets them.
func loaderDefaults() map[string]any {
	d := runner.Defaults("query")
	d["name"] = serviceName
	d["report.title"] = report.DefaultTitle
	d["logging.output"] = "stderr"
	d["observability.enabled"] = false
	return d
}

// ApplyDefaults fills the service identity and every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.GetShortVersion()
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Catalog.ApplyDefaults()
	if c.Report.Title == "" {
		c.Report.Title = report.DefaultTitle
	}
	c.Observability.ApplyDefaults()
}

// Validate checks the base config, then each section in order.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := c.Query.Validate(); err != nil {
		return fmt.Errorf("query: %w", err)
	}
	v := validation.New().MaxLength("report.title", c.Report.Title, maxTitleLength)
	if err := v.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}

// loadConfig reads config.yml, .env and the environment into cfg.
func loadConfig(cfg *AppConfig, opts ...config.LoaderOption) error {
	opts = append([]config.LoaderOption{config.WithDefaults(loaderDefaults())}, opts...)
	return config.LoadConfig(serviceName, cfg, opts...)
}
