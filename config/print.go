// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const redactedValue = "[redacted]"

// Redacted returns a copy of cfg that is safe to log.
func (cfg *ServerConfig) Redacted() ServerConfig {
	printable := *cfg

	if printable.Tolgee.APIKey != "" {
		printable.Tolgee.APIKey = redactedValue
	}

	printable.Log.Outputs = append([]string(nil), cfg.Log.Outputs...)

	return printable
}

// marshalRedacted renders the redacted configuration as YAML.
func (cfg *ServerConfig) marshalRedacted() ([]byte, error) {
	return yaml.MarshalWithOptions(cfg.Redacted(), GetDurationEncoderOption())
}

func (cfg *ServerConfig) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Stringer("mode", cfg.Internationalization.Mode).
		Msg("Starting tolgeefe")

	configYAML, err := cfg.marshalRedacted()
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Info().Msg("Application configuration:")
	fmt.Fprintln(os.Stderr, string(configYAML))
}
