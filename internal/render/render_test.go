/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"context"
	"image"
	"testing"
	"time"

	"argobooks/internal/geom"
	"argobooks/internal/ledger"
	"argobooks/internal/model"
)

func plainConfig() *model.ReportConfiguration {
	cfg := model.NewReportConfiguration("Test Report")
	cfg.ShowGrid = false
	cfg.ShowHeader = false
	cfg.ShowFooter = false
	return cfg
}

func addRect(cfg *model.ReportConfiguration, kind model.ElementKind, x, y, w, h float64, z int) *model.Element {
	e := model.NewElement(kind)
	e.X, e.Y, e.Width, e.Height = x, y, w, h
	e.ZOrder = z
	return cfg.AddElement(e)
}

func TestPageBackgroundAndBorder(t *testing.T) {
	cfg := plainConfig()
	r := New(cfg)
	img := r.RenderPage(context.Background(), 1, Overlay{})

	w, h := cfg.PageDims()
	if img.Bounds() != image.Rect(0, 0, int(w), int(h)) {
		t.Fatalf("unexpected page raster bounds: %v", img.Bounds())
	}
	if c := img.RGBAAt(0, 0); c != pageBorder {
		t.Fatalf("page corner should be the border color, got %v", c)
	}
	if c := img.RGBAAt(200, 300); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Fatalf("page interior should be white, got %v", c)
	}
}

func TestGridMajorEveryFifthLine(t *testing.T) {
	cfg := plainConfig()
	cfg.ShowGrid = true
	cfg.GridSize = 20
	r := New(cfg)
	img := r.RenderPage(context.Background(), 1, Overlay{})

	if c := img.RGBAAt(100, 290); c != gridMajor {
		t.Fatalf("every 5th vertical line must be major, got %v", c)
	}
	// y=290 sits between grid rows, so only the vertical line at x=20 colors it.
	if c := img.RGBAAt(20, 290); c != gridMinor {
		t.Fatalf("regular grid line must be minor, got %v", c)
	}
	if c := img.RGBAAt(30, 300); c != gridMajor {
		t.Fatalf("every 5th horizontal line must be major, got %v", c)
	}
	if c := img.RGBAAt(30, 320); c != gridMinor {
		t.Fatalf("regular horizontal line must be minor, got %v", c)
	}
}

func TestHeaderAndFooterBands(t *testing.T) {
	cfg := plainConfig()
	cfg.ShowHeader = true
	cfg.ShowFooter = true
	r := New(cfg)
	r.Timestamp = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	img := r.RenderPage(context.Background(), 1, Overlay{})

	if c := img.RGBAAt(5, 5); c != bandFill {
		t.Fatalf("header band missing, got %v", c)
	}
	_, h := cfg.PageDims()
	if c := img.RGBAAt(5, int(h)-5); c != bandFill {
		t.Fatalf("footer band missing, got %v", c)
	}
}

func TestSelectionChromeDrawn(t *testing.T) {
	cfg := plainConfig()
	e := addRect(cfg, model.KindLabel, 100, 100, 200, 60, 1)
	r := New(cfg)
	img := r.RenderPage(context.Background(), 1, Overlay{SelectedIDs: []string{e.ID}})

	// top border between the corner and edge-midpoint handles
	if c := img.RGBAAt(150, 100); c != selectionBlue {
		t.Fatalf("selection border missing, got %v", c)
	}
	// outline of the east edge-midpoint handle, outside the element border
	if c := img.RGBAAt(295, 130); c != selectionBlue {
		t.Fatalf("resize handle missing, got %v", c)
	}
}

func TestHoverOutline(t *testing.T) {
	cfg := plainConfig()
	e := addRect(cfg, model.KindLabel, 100, 100, 200, 60, 1)
	r := New(cfg)
	img := r.RenderPage(context.Background(), 1, Overlay{HoverID: e.ID})

	if c := img.RGBAAt(99, 99); c != hoverBlue {
		t.Fatalf("hover outline missing, got %v", c)
	}
}

func TestChromeClippedByHigherZOrder(t *testing.T) {
	cfg := plainConfig()
	a := addRect(cfg, model.KindLabel, 50, 50, 100, 80, 1)
	b := addRect(cfg, model.KindLabel, 30, 30, 200, 150, 2)
	r := New(cfg)
	img := r.RenderPage(context.Background(), 1, Overlay{SelectedIDs: []string{a.ID}})

	// a's chrome footprint (border, handles, badge) lies entirely under b, so
	// not a single selection-colored pixel may survive anywhere.
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.RGBAAt(x, y) == selectionBlue {
				t.Fatalf("chrome painted over higher z-order element at (%d,%d)", x, y)
			}
		}
	}

	// with the occluder hidden the chrome must reappear
	b.Visible = false
	img = r.RenderPage(context.Background(), 1, Overlay{SelectedIDs: []string{a.ID}})
	if c := img.RGBAAt(80, 50); c != selectionBlue {
		t.Fatalf("chrome missing once occluder is hidden, got %v", c)
	}
}

func TestDocumentStacksPagesWithGap(t *testing.T) {
	cfg := plainConfig()
	cfg.PageCount = 2
	r := New(cfg)
	img := r.RenderDocument(context.Background(), Overlay{})

	w, h := cfg.PageDims()
	wantH := int(2*h + geom.PageGap)
	if img.Bounds().Dx() != int(w) || img.Bounds().Dy() != wantH {
		t.Fatalf("unexpected document bounds: %v", img.Bounds())
	}
	if c := img.RGBAAt(10, int(h)+5); c != workspaceGray {
		t.Fatalf("inter-page gap must stay workspace-colored, got %v", c)
	}
}

func TestElementOnSecondPageOnly(t *testing.T) {
	cfg := plainConfig()
	cfg.PageCount = 2
	e := addRect(cfg, model.KindLabel, 100, 100, 200, 60, 1)
	e.PageNumber = 2
	r := New(cfg)

	img := r.RenderPage(context.Background(), 1, Overlay{SelectedIDs: []string{e.ID}})
	if c := img.RGBAAt(100, 100); c == selectionBlue {
		t.Fatalf("page 1 must not draw chrome for a page-2 element")
	}

	doc := r.RenderDocument(context.Background(), Overlay{SelectedIDs: []string{e.ID}})
	_, h := cfg.PageDims()
	y := int(geom.PageOriginY(2, h)) + 100
	if c := doc.RGBAAt(150, y); c != selectionBlue {
		t.Fatalf("page 2 chrome missing in stacked document, got %v", c)
	}
}

func TestTableRendersAlternatingLiveRows(t *testing.T) {
	cfg := plainConfig()
	e := addRect(cfg, model.KindTable, 100, 100, 300, 200, 1)
	e.Table = &model.TableStyle{ShowDate: true, ShowAmount: true, AlternateRows: true, SortBy: "date"}

	r := New(cfg)
	r.Data = &ledger.Static{Rows: []ledger.Transaction{
		{Kind: ledger.KindSale, Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 10},
		{Kind: ledger.KindSale, Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Amount: 20},
		{Kind: ledger.KindSale, Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), Amount: 30},
	}}
	img := r.RenderPage(context.Background(), 1, Overlay{})

	// header 20px then 17px rows: the second data row carries the alternate fill
	if c := img.RGBAAt(210, 146); c != placeholderBg {
		t.Fatalf("alternate row striping missing, got %v", c)
	}
}

func TestMissingImageFallsBack(t *testing.T) {
	cfg := plainConfig()
	e := addRect(cfg, model.KindImage, 100, 100, 120, 120, 1)
	e.Image = &model.ImageStyle{Path: "/does/not/exist.png"}
	r := New(cfg)
	img := r.RenderPage(context.Background(), 1, Overlay{})

	if c := img.RGBAAt(105, 105); c != placeholderBg {
		t.Fatalf("missing image must render the placeholder box, got %v", c)
	}
}
