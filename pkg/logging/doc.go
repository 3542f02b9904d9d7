// Package logging provides structured logging utilities for the recipe index builder.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// so every command logs in the same shape. It supports environment-based log
// level configuration, module/version context injection, and source location
// tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: per-file decisions (skipped deprecated recipes, resolved variables)
//   - INFO: repository progress and the build summary (default)
//   - WARN/WARNING: recoverable recipe problems (parse errors, dangling parents)
//   - ERROR: failures that stop a command
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("recipe-index", "v1.0.0")
//	    slog.Info("indexing repository", "repo", "autopkg/recipes")
//	}
//
// Setting explicit log level and format:
//
//	logging.SetDefaultStructuredLoggerWithLevel("recipe-index", version, "debug")
//	logging.SetDefault(logging.NewTextLogger("recipe-index", version, "warn"))
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is given:
//
//	LOG_LEVEL=debug recipe-index build
//
// # Output Format
//
// JSON logs are written to stderr:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "WARN",
//	    "msg": "recipe diagnostic",
//	    "module": "recipe-index",
//	    "version": "v1.0.0",
//	    "category": "yaml_parse_errors",
//	    "path": "repos/autopkg/recipes/Foo/Foo.munki.recipe.yaml"
//	}
package logging
