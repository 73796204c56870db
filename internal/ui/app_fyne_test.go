//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
//
// Ensure you have the Fyne dependencies installed and a working OS driver.
package ui

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"

	"argobooks/internal/geom"
	"argobooks/internal/interact"
	"argobooks/internal/model"
	"argobooks/internal/undo"
	"argobooks/internal/viewport"
)

func almostEqual(a, b, eps float32) bool {
	if a > b {
		return a-b <= eps
	}
	return b-a <= eps
}

func testState() *appState {
	cfg := model.NewReportConfiguration("Layout Test")
	um := undo.NewManager(cfg, 10)
	st := &appState{
		cfg:  cfg,
		undo: um,
		ctrl: interact.NewController(cfg, um),
		view: viewport.NewController(),
	}
	st.dc = newDesignerCanvas(st)
	st.syncContentSize()
	return st
}

func TestDesignerCanvas_Defaults(t *testing.T) {
	st := testState()
	if z := st.view.Zoom(); z != 1 {
		t.Fatalf("expected default zoom 1, got %v", z)
	}
	r := st.dc.CreateRenderer()
	sz := r.MinSize()
	if sz.Width != 800 || sz.Height != 600 {
		t.Fatalf("unexpected MinSize: %v", sz)
	}
}

func TestDesignerCanvas_LayoutScalesWithZoom(t *testing.T) {
	st := testState()
	r, ok := st.dc.CreateRenderer().(*designerCanvasRenderer)
	if !ok {
		t.Fatalf("expected designerCanvasRenderer, got %T", st.dc.CreateRenderer())
	}

	// A rendered document raster at 1x, two A4 pages tall.
	w, h := 794, 2*1123+24
	st.dc.img.Image = image.NewRGBA(image.Rect(0, 0, w, h))

	containerSize := fyne.NewSize(1000, 800)
	r.Layout(containerSize)
	got := st.dc.img.Size()
	if !almostEqual(got.Width, float32(w), 0.2) || !almostEqual(got.Height, float32(h), 0.2) {
		t.Fatalf("unexpected image size at zoom 1: %v", got)
	}

	st.view.ZoomAt(geom.Pt{X: 0, Y: 0}, 0.5)
	r.Layout(containerSize)
	got = st.dc.img.Size()
	if !almostEqual(got.Width, float32(w)*0.5, 0.2) || !almostEqual(got.Height, float32(h)*0.5, 0.2) {
		t.Fatalf("unexpected image size at zoom 0.5: %v", got)
	}
}

func TestDesignerCanvas_ToContentInvertsPan(t *testing.T) {
	st := testState()
	st.view.SetViewSize(600, 800)
	st.view.Pan(-60, -90) // scroll down-right by (60, 90)

	p := st.dc.toContent(fyne.NewPos(100, 100))
	if !almostEqual(float32(p.X), 160, 0.01) || !almostEqual(float32(p.Y), 190, 0.01) {
		t.Fatalf("unexpected content point: %+v", p)
	}
}
