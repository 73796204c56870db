/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "testing"

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
}

func TestRectIntersects(t *testing.T) {
	a := R(0, 0, 50, 50)
	if !a.Intersects(R(40, 40, 50, 50)) {
		t.Fatalf("overlapping rects should intersect")
	}
	if !a.Intersects(R(50, 0, 10, 10)) {
		t.Fatalf("edge-touching rects should intersect")
	}
	if a.Intersects(R(60, 60, 10, 10)) {
		t.Fatalf("disjoint rects should not intersect")
	}
}

func TestRectNormalized(t *testing.T) {
	r := R(100, 100, -40, -30).Normalized()
	if r.X != 60 || r.Y != 70 || r.W != 40 || r.H != 30 {
		t.Fatalf("unexpected normalized rect: %+v", r)
	}
}

func TestSnap(t *testing.T) {
	if got := Snap(47, 20); got != 40 {
		t.Fatalf("Snap(47,20) = %v, want 40", got)
	}
	if got := Snap(50, 20); got != 60 {
		t.Fatalf("Snap(50,20) = %v, want 60 (round half away from zero)", got)
	}
	if got := Snap(33, 0); got != 33 {
		t.Fatalf("zero grid must be a no-op, got %v", got)
	}
}

func TestClampToPage(t *testing.T) {
	r := ClampToPage(R(-10, 1100, 100, 50), 794, 1123)
	if r.X != 0 || r.Y != 1073 {
		t.Fatalf("unexpected clamp: %+v", r)
	}
	if r.X+r.W > 794 || r.Y+r.H > 1123 {
		t.Fatalf("rect escapes page bounds: %+v", r)
	}
}

func TestPageDims(t *testing.T) {
	w, h := PageDims(PageA4, Portrait)
	if w != 794 || h != 1123 {
		t.Fatalf("unexpected A4 portrait dims: %v x %v", w, h)
	}
	lw, lh := PageDims(PageA4, Landscape)
	if lw != h || lh != w {
		t.Fatalf("landscape should swap dims, got %v x %v", lw, lh)
	}
	uw, uh := PageDims(PageSize("Tabloid"), Portrait)
	if uw != 794 || uh != 1123 {
		t.Fatalf("unknown preset should fall back to A4, got %v x %v", uw, uh)
	}
}

func TestPageAt(t *testing.T) {
	pageH := 1000.0
	pg, local, ok := PageAt(1024+500, pageH, 3)
	if !ok || pg != 2 || local != 500 {
		t.Fatalf("expected page 2 local 500, got pg=%d local=%v ok=%v", pg, local, ok)
	}
	if _, _, ok := PageAt(1010, pageH, 3); ok {
		t.Fatalf("point in inter-page gap must hit nothing")
	}
	if _, _, ok := PageAt(5000, pageH, 3); ok {
		t.Fatalf("point below last page must hit nothing")
	}
	if _, _, ok := PageAt(-1, pageH, 3); ok {
		t.Fatalf("negative Y must hit nothing")
	}
}
