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
	"runtime"
	"testing"
)

type fakeSecrets struct {
	values map[string]string
}

func (f *fakeSecrets) Get(service, key string) (string, error) {
	v, ok := f.values[service+"/"+key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (f *fakeSecrets) Set(service, key, value string) error {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[service+"/"+key] = value
	return nil
}

func (f *fakeSecrets) Delete(service, key string) error {
	delete(f.values, service+"/"+key)
	return nil
}

func useTempConfig(t *testing.T) *fakeSecrets {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Setenv("AppData", t.TempDir())
	} else {
		t.Setenv("HOME", t.TempDir())
	}
	fs := &fakeSecrets{}
	prev := SetSecretStore(fs)
	t.Cleanup(func() { SetSecretStore(prev) })
	return fs
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	useTempConfig(t)
	cfg, pw, err := Load()
	if err != nil {
		t.Fatalf("load: %+v", err)
	}
	if pw != "" {
		t.Fatalf("expected no stored password, got %q", pw)
	}
	if cfg.Ledger.Driver != "sqlite" || cfg.Designer.GridSize != 20 || cfg.Logging.Level != "info" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := useTempConfig(t)
	cfg := Defaults()
	cfg.General.Language = "de"
	cfg.Ledger.Driver = "postgres"
	cfg.Ledger.DSN = "postgres://books@db/ledger"
	if err := Save(cfg, "s3cret"); err != nil {
		t.Fatalf("save: %+v", err)
	}
	if len(fs.values) != 1 {
		t.Fatalf("password not stored in keyring stub")
	}

	got, pw, err := Load()
	if err != nil {
		t.Fatalf("load: %+v", err)
	}
	if got.General.Language != "de" || got.Ledger.Driver != "postgres" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if pw != "s3cret" {
		t.Fatalf("password not returned from keyring, got %q", pw)
	}
}

func TestEnvOverrides(t *testing.T) {
	useTempConfig(t)
	t.Setenv(EnvLedgerDriver, "POSTGRES")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLedgerTimeoutMs, "2500")

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("load: %+v", err)
	}
	if cfg.Ledger.Driver != "postgres" {
		t.Fatalf("driver override not applied: %q", cfg.Ledger.Driver)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level override not applied: %q", cfg.Logging.Level)
	}
	if cfg.Ledger.TimeoutMs != 2500 {
		t.Fatalf("timeout override not applied: %d", cfg.Ledger.TimeoutMs)
	}

	if env, ok := EnvOverrideFor("ledger.driver"); !ok || env != EnvLedgerDriver {
		t.Fatalf("EnvOverrideFor should report the active override")
	}
	if _, ok := EnvOverrideFor("general.language"); ok {
		t.Fatalf("EnvOverrideFor must not report unset overrides")
	}
}

func TestForgetLedgerPassword(t *testing.T) {
	fs := useTempConfig(t)
	if err := Save(Defaults(), "pw"); err != nil {
		t.Fatalf("save: %+v", err)
	}
	if err := ForgetLedgerPassword(); err != nil {
		t.Fatalf("forget: %+v", err)
	}
	if len(fs.values) != 0 {
		t.Fatalf("password still present after delete")
	}
}
