// Package logger provides structured logging for sitekit using zerolog.
//
// Loggers are scoped by component ("fetch", "provider.faq", "theme") and
// carry map-based fields built with Fields, ErrorFields and DurationFields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("fetch")
//	log.Info("loaded", logger.Fields(logger.FieldURL, url, logger.FieldItems, 3))
package logger
