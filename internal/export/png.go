/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes finished report output: one PNG per page, or a
// multi-page PDF embedding the rendered page rasters. Interaction chrome is
// never part of an export.
package export

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"argobooks/internal/ledger"
	"argobooks/internal/render"
	"argobooks/internal/storage"
)

// Options controls both exporters.
//   - Pages: 1-based page numbers; empty exports all.
//   - Data: accounting provider for live table/summary content; nil exports
//     design-time placeholders.
//   - Timestamp: footer timestamp; zero uses the current time.
type Options struct {
	Pages     []int
	Data      ledger.Provider
	Timestamp time.Time
	Translate func(string) string
}

// ExportPNGPages writes each page as a separate PNG named report-page-<n>.png.
// A relative outDir is placed under the workspace's exports folder.
func ExportPNGPages(ctx context.Context, h *storage.Handle, outDir string, opt Options) error {
	if h == nil || h.Config == nil {
		return fmt.Errorf("report handle is nil")
	}
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(h.Root, "exports", outDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}

	r := newRenderer(h, opt)
	for _, page := range pageNumbers(h.Config.PageCount, opt.Pages) {
		img := r.RenderPage(ctx, page, render.Overlay{})
		name := filepath.Join(outDir, fmt.Sprintf("report-page-%d.png", page))
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create png: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode png: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close png: %w", err)
		}
	}
	return nil
}

func newRenderer(h *storage.Handle, opt Options) *render.Renderer {
	r := render.New(h.Config)
	r.Data = opt.Data
	r.Timestamp = opt.Timestamp
	r.Translate = opt.Translate
	return r
}

// pageNumbers expands an empty selection to all pages (1-based) and drops
// out-of-range entries.
func pageNumbers(total int, specific []int) []int {
	if total < 1 {
		total = 1
	}
	if len(specific) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}
	var out []int
	for _, p := range specific {
		if p >= 1 && p <= total {
			out = append(out, p)
		}
	}
	return out
}
