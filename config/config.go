// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package config loads the server configuration from defaults, a YAML file,
// a .env file and environment variables, in increasing order of precedence.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/tolgeefe/i18n"
)

// Legacy lookup backends.
const (
	LegacyNone    = "none"
	LegacyGoI18n  = "go-i18n"
	LegacyGettext = "gettext"
)

// configFileEnv names the environment variable that points at the YAML file.
const configFileEnv = "TOLGEEFE_CONFIGFILE"

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host string `env:"TOLGEEFE_HOST,overwrite" yaml:"host"`
		Port string `env:"TOLGEEFE_PORT,overwrite" yaml:"port"`
	} `yaml:"basic"`

	Tolgee struct {
		APIURL    string        `env:"TOLGEEFE_TOLGEE_API_URL,overwrite"    yaml:"apiUrl"`
		APIKey    string        `env:"TOLGEEFE_TOLGEE_API_KEY,overwrite"    yaml:"apiKey"`
		ProjectID string        `env:"TOLGEEFE_TOLGEE_PROJECT_ID,overwrite" yaml:"projectId"`
		Timeout   time.Duration `env:"TOLGEEFE_TOLGEE_TIMEOUT,overwrite"    yaml:"timeout"`
	} `yaml:"tolgee"`

	Internationalization struct {
		DefaultLocale string    `env:"TOLGEEFE_DEFAULT_LOCALE,overwrite" yaml:"defaultLocale"`
		RawMode       string    `env:"TOLGEEFE_MODE,overwrite"           yaml:"mode"`
		Mode          i18n.Mode `yaml:"-"`
		// Directory of <locale>.{json,yaml,yml,toml} dictionaries served in production.
		StaticDataDir string `env:"TOLGEEFE_STATIC_DATA_DIR,overwrite" yaml:"staticDataDir"`
		// When enabled, keys that fail to resolve are logged once per locale.
		StrictMissingKeys       bool `env:"TOLGEEFE_STRICT_MISSING_KEYS"       yaml:"strictMissingKeys"`
		KeepUnknownPlaceholders bool `env:"TOLGEEFE_KEEP_UNKNOWN_PLACEHOLDERS" yaml:"keepUnknownPlaceholders"`
		// Production lookups through an existing framework instead of static data.
		LegacyBackend string `env:"TOLGEEFE_LEGACY_BACKEND,overwrite" yaml:"legacyBackend"`
		LegacyDir     string `env:"TOLGEEFE_LEGACY_DIR,overwrite"     yaml:"legacyDir"`
	} `yaml:"internationalization"`

	// Cache configures the encoded marker cache.
	Cache struct {
		Enabled  bool `env:"TOLGEEFE_CACHE,overwrite"          yaml:"enabled"`
		Size     int  `env:"TOLGEEFE_CACHE_SIZE,overwrite"     yaml:"cacheSize"`
		Compress bool `env:"TOLGEEFE_CACHE_COMPRESS,overwrite" yaml:"compress"`
	} `yaml:"cache"`

	Log struct {
		Level   string   `env:"TOLGEEFE_LOG_LEVEL,overwrite"   yaml:"logLevel"`
		Outputs []string `env:"TOLGEEFE_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"TOLGEEFE_LOG_FORMAT,overwrite"  yaml:"logFormat"`
	} `yaml:"log"`

	Development struct {
		InDevelopment bool `env:"TOLGEEFE_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`
}

// LoadConfig loads the configuration, sets up logging and prints the result.
// args are the command-line arguments without the program name.
func (cfg *ServerConfig) LoadConfig(args []string) error {
	if err := cfg.load(args); err != nil {
		return err
	}

	cfg.setupAudit()
	cfg.print()

	if isContainerized() && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a containerized environment but host is not a wildcard address (e.g., '0.0.0.0' or '::'). This may prevent the service from being accessible outside the container.")
	}

	return nil
}

func (cfg *ServerConfig) load(args []string) error {
	configFilePath, err := resolveConfigPath(args)
	if err != nil {
		return err
	}

	cfg.SetDefaults()
	cfg.Build.load()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	useDotEnv()

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	return nil
}

// resolveConfigPath picks the YAML file: the -config flag, then
// TOLGEEFE_CONFIGFILE, then ./config.yaml falling back to ./config.yml.
func resolveConfigPath(args []string) (string, error) {
	fs := flag.NewFlagSet("tolgeefe", flag.ContinueOnError)
	configFlag := fs.String("config", "./config.yaml", "Path to a configuration file in YAML format.")

	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("parse flags: %w", err)
	}

	userSet := false

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			userSet = true
		}
	})

	if userSet {
		return *configFlag, nil
	}

	if envVar := os.Getenv(configFileEnv); envVar != "" {
		return envVar, nil
	}

	if _, err := os.Stat(*configFlag); os.IsNotExist(err) {
		if _, statErr := os.Stat("./config.yml"); statErr == nil {
			return "./config.yml", nil
		}
	}

	return *configFlag, nil
}

// isContainerized checks for common indicators of a containerized environment.
func isContainerized() bool {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	for _, marker := range []string{"/.dockerenv", "/.containerenv"} {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}

	// #nosec G304 -- well-known system file
	cgroup, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}

	content := string(cgroup)

	for _, keyword := range []string{"docker", "kubepods", "containerd", "lxc", "crio", ".machine"} {
		if strings.Contains(content, keyword) {
			return true
		}
	}

	return false
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
