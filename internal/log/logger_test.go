/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConsoleHandlerOutput(t *testing.T) {
	var sb strings.Builder
	h := &consoleHandler{level: slog.LevelInfo, w: &sb}
	l := slog.New(h).With(slog.String("component", "render"))
	l.Info("frame painted", slog.Int("page", 2))
	out := sb.String()
	if !strings.Contains(out, "INF") || !strings.Contains(out, "frame painted") {
		t.Fatalf("unexpected console line: %q", out)
	}
	if !strings.Contains(out, "component=render") || !strings.Contains(out, "page=2") {
		t.Fatalf("attrs missing from console line: %q", out)
	}
}

func TestConsoleHandlerLevelGate(t *testing.T) {
	h := &consoleHandler{level: slog.LevelWarn, w: &strings.Builder{}}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should be gated at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error should pass at warn level")
	}
}

func TestWithGroupPrefixesKeys(t *testing.T) {
	var sb strings.Builder
	h := (&consoleHandler{level: slog.LevelInfo, w: &sb}).WithGroup("ui")
	slog.New(h).Info("event", slog.String("kind", "drag"))
	if !strings.Contains(sb.String(), "ui.kind=drag") {
		t.Fatalf("expected grouped key, got %q", sb.String())
	}
}
