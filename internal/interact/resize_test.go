/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

import (
	"testing"

	"argobooks/internal/geom"
)

func TestResizeRectMinSizePinsOppositeEdge(t *testing.T) {
	start := geom.R(100, 100, 100, 50)
	min := geom.Pt{X: 50, Y: 30}

	// Dragging the NW corner far past the SE corner collapses to the minimum
	// with the bottom-right edges anchored.
	r := ResizeRect(start, geom.HandleNW, geom.Pt{X: 200, Y: 200}, min, 794, 1123, 0)
	if r.W != 50 || r.H != 30 {
		t.Fatalf("expected min size 50x30, got %vx%v", r.W, r.H)
	}
	if r.X+r.W != 200 || r.Y+r.H != 150 {
		t.Fatalf("opposite edge moved: right=%v bottom=%v", r.X+r.W, r.Y+r.H)
	}
}

func TestResizeRectEdgeHandleSingleAxis(t *testing.T) {
	start := geom.R(100, 100, 100, 50)
	r := ResizeRect(start, geom.HandleE, geom.Pt{X: 30, Y: 999}, geom.Pt{X: 50, Y: 30}, 794, 1123, 0)
	if r.X != 100 || r.Y != 100 || r.H != 50 {
		t.Fatalf("east handle must only change width, got %+v", r)
	}
	if r.W != 130 {
		t.Fatalf("expected width 130, got %v", r.W)
	}
}

func TestResizeRectSnapAfterClamp(t *testing.T) {
	start := geom.R(40, 40, 100, 60)
	r := ResizeRect(start, geom.HandleSE, geom.Pt{X: 13, Y: 7}, geom.Pt{X: 50, Y: 30}, 794, 1123, 20)
	if r.W != 120 || r.H != 60 {
		t.Fatalf("expected snapped size 120x60, got %vx%v", r.W, r.H)
	}
	if r.X != 40 || r.Y != 40 {
		t.Fatalf("origin must stay put for a SE resize, got (%v,%v)", r.X, r.Y)
	}
}

func TestResizeRectStaysInsidePage(t *testing.T) {
	start := geom.R(700, 1000, 80, 100)
	r := ResizeRect(start, geom.HandleSE, geom.Pt{X: 500, Y: 500}, geom.Pt{X: 50, Y: 30}, 794, 1123, 0)
	if r.X+r.W > 794 || r.Y+r.H > 1123 {
		t.Fatalf("resize escaped the page: %+v", r)
	}
}

func TestResizeGestureSingleUndoEntry(t *testing.T) {
	c, cfg, um := newTestController()
	e := addLabel(cfg, geom.R(100, 100, 100, 50))
	c.Selection.Set(e.ID)

	// Press on the SE handle, drag, release: one recorded entry, nothing
	// recorded mid-gesture.
	c.PointerDown(geom.Pt{X: 200, Y: 150}, ButtonLeft, Modifiers{})
	if c.State() != Resizing {
		t.Fatalf("press on a handle should begin a resize, state=%v", c.State())
	}
	c.PointerMove(geom.Pt{X: 220, Y: 160})
	if u, _ := um.Stats(); u != 0 {
		t.Fatalf("no undo entries may be recorded mid-gesture, got %d", u)
	}
	c.PointerMove(geom.Pt{X: 240, Y: 180})
	c.PointerUp(geom.Pt{X: 240, Y: 180})

	if e.Width != 140 || e.Height != 80 {
		t.Fatalf("expected 140x80 after resize, got %vx%v", e.Width, e.Height)
	}
	if u, _ := um.Stats(); u != 1 {
		t.Fatalf("a resize gesture is one undo entry, got %d", u)
	}
	um.Undo()
	if e.Bounds() != geom.R(100, 100, 100, 50) {
		t.Fatalf("undo must restore the pre-resize rect, got %+v", e.Bounds())
	}
}

func TestHandleWinsOverElementBody(t *testing.T) {
	c, cfg, _ := newTestController()
	under := addLabel(cfg, geom.R(195, 145, 100, 50))
	sel := addLabel(cfg, geom.R(100, 100, 100, 50))
	c.Selection.Set(sel.ID)

	// (200,150) is the SE corner of the selected element and also inside the
	// body of the other one; the handle must win.
	c.PointerDown(geom.Pt{X: 200, Y: 150}, ButtonLeft, Modifiers{})
	if c.State() != Resizing {
		t.Fatalf("handle hit-box must win over element bodies, state=%v", c.State())
	}
	c.PointerUp(geom.Pt{X: 200, Y: 150})
	if c.Selection.Contains(under.ID) {
		t.Fatalf("handle press must not change the selection")
	}
}
