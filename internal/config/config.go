/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	keyring "github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in
// the user scope. Environment variables are read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"`    // "system" | "light" | "dark"
	Language       string `yaml:"language"` // catalog code, e.g. "en", "de"
}

// DesignerConfig carries the layout-designer defaults applied to new reports.
type DesignerConfig struct {
	GridSize            float64 `yaml:"grid_size"`
	ShowGrid            bool    `yaml:"show_grid"`
	SnapToGrid          bool    `yaml:"snap_to_grid"`
	AutosaveIntervalSec int     `yaml:"autosave_interval_sec"`
}

// LedgerConfig selects the accounting data source: the local SQLite company
// file or a shared Postgres database. The Postgres password is not stored on
// disk; it lives in the OS keychain.
type LedgerConfig struct {
	Driver    string `yaml:"driver"` // "sqlite" | "postgres"
	Path      string `yaml:"path"`   // sqlite company file
	DSN       string `yaml:"dsn"`    // postgres connection string (without password)
	TimeoutMs int    `yaml:"timeout_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	General       GeneralConfig  `yaml:"general"`
	Designer      DesignerConfig `yaml:"designer"`
	Ledger        LedgerConfig   `yaml:"ledger"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system", Language: "en"},
		Designer:      DesignerConfig{GridSize: 20, ShowGrid: true, SnapToGrid: false, AutosaveIntervalSec: 120},
		Ledger:        LedgerConfig{Driver: "sqlite", Path: "", DSN: "", TimeoutMs: 15000},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvLedgerDriver    = "AGB_LEDGER_DRIVER"
	EnvLedgerPath      = "AGB_LEDGER_PATH"
	EnvLedgerDSN       = "AGB_LEDGER_DSN"
	EnvLedgerTimeoutMs = "AGB_LEDGER_TIMEOUT_MS"
	EnvTelemetryOptIn  = "AGB_TELEMETRY_OPT_IN"
	EnvLanguage        = "AGB_LANGUAGE"
	EnvLogLevel        = "AGB_LOG_LEVEL"
	EnvLogFormat       = "AGB_LOG_FORMAT"
	EnvLogSource       = "AGB_LOG_SOURCE"
	EnvLogFile         = "AGB_LOG_FILE"
)

// Service/keys for the OS keyring.
const (
	keyringService        = "ArgoBooks"
	keyringLedgerPassword = "ledger_password"
)

// SecretStore abstracts the OS keychain so tests can stub it.
type SecretStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }
func (osKeyring) Delete(service, key string) error        { return keyring.Delete(service, key) }

var secrets SecretStore = osKeyring{}

// SetSecretStore swaps the keychain backend and returns the previous one.
func SetSecretStore(s SecretStore) SecretStore {
	prev := secrets
	secrets = s
	return prev
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "ArgoBooks")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "ArgoBooks")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "argobooks")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. The ledger password comes from the keyring and is
// returned separately, never kept inside the struct.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	pw, _ := secrets.Get(keyringService, keyringLedgerPassword)
	return cfg, pw, nil
}

// Save writes the user config YAML and persists the ledger password into the
// OS keyring (if non-empty).
func Save(cfg AppConfig, ledgerPassword string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if ledgerPassword != "" {
		if err := secrets.Set(keyringService, keyringLedgerPassword, ledgerPassword); err != nil {
			return err
		}
	}
	return nil
}

// ForgetLedgerPassword removes the stored password from the keychain.
func ForgetLedgerPassword() error {
	return secrets.Delete(keyringService, keyringLedgerPassword)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	if src.General.Language != "" {
		dst.General.Language = src.General.Language
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn

	if src.Designer.GridSize > 0 {
		dst.Designer.GridSize = src.Designer.GridSize
	}
	dst.Designer.ShowGrid = src.Designer.ShowGrid
	dst.Designer.SnapToGrid = src.Designer.SnapToGrid
	if src.Designer.AutosaveIntervalSec > 0 {
		dst.Designer.AutosaveIntervalSec = src.Designer.AutosaveIntervalSec
	}

	if src.Ledger.Driver != "" {
		dst.Ledger.Driver = strings.ToLower(strings.TrimSpace(src.Ledger.Driver))
	}
	if src.Ledger.Path != "" {
		dst.Ledger.Path = src.Ledger.Path
	}
	if src.Ledger.DSN != "" {
		dst.Ledger.DSN = src.Ledger.DSN
	}
	if src.Ledger.TimeoutMs != 0 {
		dst.Ledger.TimeoutMs = src.Ledger.TimeoutMs
	}

	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvLedgerDriver)); v != "" {
		cfg.Ledger.Driver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLedgerPath)); v != "" {
		cfg.Ledger.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLedgerDSN)); v != "" {
		cfg.Ledger.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLedgerTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Ledger.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = isTruthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLanguage)); v != "" {
		cfg.General.Language = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = isTruthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func isTruthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// EnvOverrideFor returns the env var name if the field is overridden by
// environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var env string
	switch key {
	case "ledger.driver":
		env = EnvLedgerDriver
	case "ledger.path":
		env = EnvLedgerPath
	case "ledger.dsn":
		env = EnvLedgerDSN
	case "ledger.timeout_ms":
		env = EnvLedgerTimeoutMs
	case "general.telemetry_opt_in":
		env = EnvTelemetryOptIn
	case "general.language":
		env = EnvLanguage
	case "logging.level":
		env = EnvLogLevel
	case "logging.format":
		env = EnvLogFormat
	case "logging.source":
		env = EnvLogSource
	case "logging.file":
		env = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
