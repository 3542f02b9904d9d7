// Copyright (c) 2025, The AutoPkg Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable consulted when no level is given.
const EnvLogLevel = "LOG_LEVEL"

// ParseLevel converts a level name into a slog.Level.
// Unknown or empty names map to slog.LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func levelOrEnv(level string) slog.Level {
	if strings.TrimSpace(level) == "" {
		level = os.Getenv(EnvLogLevel)
	}
	return ParseLevel(level)
}

func handlerOptions(lvl slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource: lvl <= slog.LevelDebug,
		Level:     lvl,
	}
}

// NewStructuredLogger returns a JSON logger writing to stderr with module and
// version attributes attached to every record.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return newLogger(os.Stderr, module, version, level, true)
}

// NewTextLogger returns a human-oriented key=value logger writing to stderr.
func NewTextLogger(module, version, level string) *slog.Logger {
	return newLogger(os.Stderr, module, version, level, false)
}

func newLogger(w io.Writer, module, version, level string, asJSON bool) *slog.Logger {
	lvl := levelOrEnv(level)
	var h slog.Handler
	if asJSON {
		h = slog.NewJSONHandler(w, handlerOptions(lvl))
	} else {
		h = slog.NewTextHandler(w, handlerOptions(lvl))
	}
	return slog.New(h).With("module", module, "version", version)
}

// SetDefault installs logger as the process-wide slog default.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}

// SetDefaultStructuredLogger installs a JSON logger using LOG_LEVEL.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, "")
}

// SetDefaultStructuredLoggerWithLevel installs a JSON logger at the given level.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	SetDefault(NewStructuredLogger(module, version, level))
}

// NewLogLogger adapts the default slog logger to the standard log package.
func NewLogLogger(level slog.Level, addSource bool) *log.Logger {
	if addSource {
		return slog.NewLogLogger(slog.NewJSONHandler(os.Stderr, handlerOptions(level)), level)
	}
	return slog.NewLogLogger(slog.Default().Handler(), level)
}
