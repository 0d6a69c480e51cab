// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFilePermissions = 0o666

// setupAudit configures the global zerolog logger.
func (cfg *ServerConfig) setupAudit() {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || cfg.Development.InDevelopment {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(zerolog.MultiLevelWriter(cfg.logWriters()...))
}

func (cfg *ServerConfig) logWriters() []io.Writer {
	if len(cfg.Log.Outputs) == 0 {
		return []io.Writer{cfg.streamWriter(os.Stderr)}
	}

	writers := make([]io.Writer, 0, len(cfg.Log.Outputs))

	for _, output := range cfg.Log.Outputs {
		switch output {
		case "/dev/stdout":
			writers = append(writers, cfg.streamWriter(os.Stdout))
		case "/dev/stderr":
			writers = append(writers, cfg.streamWriter(os.Stderr))
		default:
			file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec:G302,G304
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", output, err)

				continue
			}

			writers = append(writers, cfg.streamWriter(file))
		}
	}

	return writers
}

func (cfg *ServerConfig) streamWriter(f *os.File) io.Writer {
	if cfg.Log.Format == "json" {
		return f
	}

	return ConsoleWriter(f)
}

// ConsoleWriter returns a human-readable zerolog writer, colourised only
// when f is a terminal.
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isatty.IsTerminal(f.Fd())

	w := zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}

	if !noColor {
		w.FormatPrepare = prettyRequestLog
	}

	return w
}

// prettyRequestLog folds the fields of request span logs into the message.
func prettyRequestLog(m map[string]any) error {
	if sys, ok := m["sys"]; !ok || sys != "http" {
		return nil
	}

	m["message"] = fmt.Sprintf("[%s] %v %-5s %s", m["destination"], m["status_code"], m["method"], m["url"])

	for _, field := range []string{"sys", "method", "status_code", "url", "destination", "request_id"} {
		delete(m, field)
	}

	return nil
}
