// Package logger provides structured logging for catalogq using zerolog.
//
// Logs go to stderr by default so that standard output carries only the
// query report. Loggers can be scoped to a component and enriched from a
// context carrying a run id and an OpenTelemetry span.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("runner").WithContext(ctx)
//	log.Info("operation completed", logger.Fields("operation", "sort"))
package logger
