/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"argobooks/internal/model"
	"argobooks/internal/storage"
)

func testHandle(t *testing.T, pages int) *storage.Handle {
	t.Helper()
	cfg := model.NewReportConfiguration("Export Test")
	cfg.PageSize = "A5"
	cfg.PageCount = pages
	e := model.NewElement(model.KindLabel)
	e.X, e.Y = 100, 200
	cfg.AddElement(e)
	h, err := storage.Init(t.TempDir(), cfg)
	if err != nil {
		t.Fatalf("init workspace: %+v", err)
	}
	return h
}

func TestExportPNGPages(t *testing.T) {
	h := testHandle(t, 2)
	opt := Options{Timestamp: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	if err := ExportPNGPages(context.Background(), h, "png", opt); err != nil {
		t.Fatalf("export png: %+v", err)
	}

	w, pgH := h.Config.PageDims()
	for _, page := range []int{1, 2} {
		name := filepath.Join(h.Root, "exports", "png", "report-page-1.png")
		if page == 2 {
			name = filepath.Join(h.Root, "exports", "png", "report-page-2.png")
		}
		data, err := os.ReadFile(name)
		if err != nil {
			t.Fatalf("missing exported page %d: %+v", page, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("page %d is not a valid png: %+v", page, err)
		}
		if img.Bounds().Dx() != int(w) || img.Bounds().Dy() != int(pgH) {
			t.Fatalf("page %d has wrong dimensions: %v", page, img.Bounds())
		}
	}
}

func TestExportPNGSpecificPages(t *testing.T) {
	h := testHandle(t, 3)
	if err := ExportPNGPages(context.Background(), h, "subset", Options{Pages: []int{2, 99}}); err != nil {
		t.Fatalf("export png: %+v", err)
	}
	dir := filepath.Join(h.Root, "exports", "subset")
	if _, err := os.Stat(filepath.Join(dir, "report-page-2.png")); err != nil {
		t.Fatalf("requested page missing: %+v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "report-page-1.png")); err == nil {
		t.Fatalf("unrequested page was exported")
	}
	if _, err := os.Stat(filepath.Join(dir, "report-page-99.png")); err == nil {
		t.Fatalf("out-of-range page was exported")
	}
}

func TestExportPDF(t *testing.T) {
	h := testHandle(t, 2)
	if err := ExportPDF(context.Background(), h, "report.pdf", Options{}); err != nil {
		t.Fatalf("export pdf: %+v", err)
	}
	data, err := os.ReadFile(filepath.Join(h.Root, "exports", "report.pdf"))
	if err != nil {
		t.Fatalf("missing pdf: %+v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a pdf")
	}
}

func TestPageNumbers(t *testing.T) {
	got := pageNumbers(3, nil)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("empty selection should expand to all pages, got %v", got)
	}
	got = pageNumbers(3, []int{0, 2, 4})
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("out-of-range pages must be dropped, got %v", got)
	}
}
