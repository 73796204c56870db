/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"image"
	"math"

	"argobooks/internal/geom"
	"argobooks/internal/model"
)

// handleVisual is the drawn size of a resize handle; the interaction layer
// uses a larger hit box around the same centers.
const handleVisual = 10

const badgeHeight = 16

// paintOverlay draws hover and selection decorations after all elements.
// Chrome for an element must not paint over any same-page element with a
// strictly greater z-order, so each element's decorations are rendered to a
// scratch layer and composited with those rectangles excluded.
func (r *Renderer) paintOverlay(img *image.RGBA, page int, offY float64, ov Overlay) {
	selected := make(map[string]bool, len(ov.SelectedIDs))
	for _, id := range ov.SelectedIDs {
		selected[id] = true
	}

	if ov.HoverID != "" && !selected[ov.HoverID] {
		if e := r.Cfg.FindElement(ov.HoverID); e != nil && e.Visible && e.PageNumber == page {
			rect := devRect(e.Bounds(), 0, offY)
			scratch := image.NewRGBA(rect.Inset(-2))
			strokeRectN(scratch, rect.Inset(-1), hoverBlue, 1)
			compositeMasked(img, scratch, r.occluders(e, page, offY))
		}
	}

	for _, id := range ov.SelectedIDs {
		e := r.Cfg.FindElement(id)
		if e == nil || !e.Visible || e.PageNumber != page {
			continue
		}
		r.paintSelectionChrome(img, e, page, offY)
	}
}

func (r *Renderer) paintSelectionChrome(img *image.RGBA, e *model.Element, page int, offY float64) {
	rect := devRect(e.Bounds(), 0, offY)

	// Scratch covers the border, the handles overhanging the corners and the
	// kind badge above the element.
	bounds := rect.Inset(-(handleVisual/2 + 2))
	badge := r.badgeRect(e, rect)
	bounds = bounds.Union(badge)
	scratch := image.NewRGBA(bounds)

	strokeRectN(scratch, rect, selectionBlue, 2)

	dr := geom.R(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()))
	for _, hr := range geom.HandleRects(dr, handleVisual) {
		h := image.Rect(
			int(math.Round(hr.X)), int(math.Round(hr.Y)),
			int(math.Round(hr.X+hr.W)), int(math.Round(hr.Y+hr.H)),
		)
		fillRect(scratch, h, handleFill)
		strokeRect(scratch, h, selectionBlue)
	}

	fillRect(scratch, badge, selectionBlue)
	face := r.fonts.face(9, false)
	drawStringCentered(scratch, face, r.tr(e.Kind.DisplayName()), badge.Min.X, badge.Max.X,
		badge.Min.Y+(badgeHeight+faceAscent(face))/2-1, handleFill)

	compositeMasked(img, scratch, r.occluders(e, page, offY))
}

// badgeRect places the type-name badge above the element's top-left corner,
// or inside it when the element touches the top page edge.
func (r *Renderer) badgeRect(e *model.Element, rect image.Rectangle) image.Rectangle {
	face := r.fonts.face(9, false)
	w := textWidth(face, r.tr(e.Kind.DisplayName())) + 10
	y0 := rect.Min.Y - badgeHeight - 2
	if y0 < 0 {
		y0 = rect.Min.Y + 2
	}
	return image.Rect(rect.Min.X, y0, rect.Min.X+w, y0+badgeHeight)
}

// occluders returns the device rectangles of every visible same-page element
// with a strictly greater z-order than e.
func (r *Renderer) occluders(e *model.Element, page int, offY float64) []image.Rectangle {
	var out []image.Rectangle
	for _, o := range r.Cfg.Elements {
		if o.ID == e.ID || o.PageNumber != page || !o.Visible {
			continue
		}
		if o.ZOrder > e.ZOrder {
			out = append(out, devRect(o.Bounds(), 0, offY))
		}
	}
	return out
}
