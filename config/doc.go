// Package config loads catalogq configuration from a YAML file, an optional
// .env file and the process environment.
//
// Files are resolved from standard locations (./cmd/<name>/config.yml,
// ./config/config.yml, ./config.yml) unless an explicit path is given.
// Environment variables override file values: REPORT_TITLE maps to
// report.title, LOGGING_LEVEL to logging.level.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("catalogq", &cfg, config.WithConfigFile(path))
//
// Decimal fields decode through DecimalHookFunc, so prices written as
// quoted strings keep their exact scale.
package config
