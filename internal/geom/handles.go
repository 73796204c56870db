/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Handle identifies one of the 8 resize handles around a selection.
type Handle int

const (
	HandleNW Handle = iota
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

// HandleRects returns the 8 handle squares (corners plus edge midpoints)
// centered on the bounds of r, each size×size. The same layout is used for
// hit testing (with a larger size) and for painting selection chrome.
func HandleRects(r Rect, size float64) [8]Rect {
	half := size / 2
	cx := r.X + r.W/2
	cy := r.Y + r.H/2
	at := func(x, y float64) Rect { return Rect{X: x - half, Y: y - half, W: size, H: size} }
	return [8]Rect{
		HandleNW: at(r.X, r.Y),
		HandleN:  at(cx, r.Y),
		HandleNE: at(r.X+r.W, r.Y),
		HandleE:  at(r.X+r.W, cy),
		HandleSE: at(r.X+r.W, r.Y+r.H),
		HandleS:  at(cx, r.Y+r.H),
		HandleSW: at(r.X, r.Y+r.H),
		HandleW:  at(r.X, cy),
	}
}
