/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

import "argobooks/internal/geom"

// ResizeRect applies a pointer delta to the gesture's start rect for the
// given handle. Corner handles affect two dimensions, edge handles one. When
// a dimension would fall below the minimum it is pinned to the minimum with
// the opposite edge held fixed, so the element never jumps. Grid snapping
// (grid > 0) rounds x/y/width/height independently after the minimum-size
// clamp; the result is finally kept inside the page and above the minimum.
func ResizeRect(start geom.Rect, h geom.Handle, delta geom.Pt, min geom.Pt, pageW, pageH, grid float64) geom.Rect {
	west := h == geom.HandleNW || h == geom.HandleW || h == geom.HandleSW
	east := h == geom.HandleNE || h == geom.HandleE || h == geom.HandleSE
	north := h == geom.HandleNW || h == geom.HandleN || h == geom.HandleNE
	south := h == geom.HandleSW || h == geom.HandleS || h == geom.HandleSE

	r := start
	if west {
		r.X += delta.X
		r.W -= delta.X
	}
	if east {
		r.W += delta.X
	}
	if north {
		r.Y += delta.Y
		r.H -= delta.Y
	}
	if south {
		r.H += delta.Y
	}

	// Minimum-size clamp, opposite edge fixed.
	if r.W < min.X {
		if west {
			r.X = start.X + start.W - min.X
		}
		r.W = min.X
	}
	if r.H < min.Y {
		if north {
			r.Y = start.Y + start.H - min.Y
		}
		r.H = min.Y
	}

	if grid > 0 {
		r.X = geom.Snap(r.X, grid)
		r.Y = geom.Snap(r.Y, grid)
		r.W = geom.Snap(r.W, grid)
		r.H = geom.Snap(r.H, grid)
	}

	// Page bounds: shrink the dragged side rather than moving the anchor.
	if r.X < 0 {
		r.W += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.H += r.Y
		r.Y = 0
	}
	if r.X+r.W > pageW {
		r.W = pageW - r.X
	}
	if r.Y+r.H > pageH {
		r.H = pageH - r.Y
	}

	// Final guard: snapping or page clamping must not undercut the minimum.
	if r.W < min.X {
		r.W = min.X
	}
	if r.H < min.Y {
		r.H = min.Y
	}
	return r
}
