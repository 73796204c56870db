/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Page-size presets and multi-page stacking math. Dimensions are pixels at
// 96 DPI, the designer's working resolution.

type PageSize string

const (
	PageA4     PageSize = "A4"
	PageA5     PageSize = "A5"
	PageLetter PageSize = "Letter"
)

type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

const (
	// HeaderHeight and FooterHeight are the band heights reserved when the
	// configuration enables them.
	HeaderHeight = 60.0
	FooterHeight = 40.0

	// PageGap is the background-colored vertical gap between stacked pages.
	PageGap = 24.0
)

var pageDims = map[PageSize]Pt{
	PageA4:     {X: 794, Y: 1123},
	PageA5:     {X: 559, Y: 794},
	PageLetter: {X: 816, Y: 1056},
}

// PageDims returns pixel dimensions for a preset and orientation. Unknown
// presets fall back to A4.
func PageDims(size PageSize, orient Orientation) (w, h float64) {
	d, ok := pageDims[size]
	if !ok {
		d = pageDims[PageA4]
	}
	if orient == Landscape {
		return d.Y, d.X
	}
	return d.X, d.Y
}

// PageStride is the vertical distance between the origins of two stacked pages.
func PageStride(pageH float64) float64 { return pageH + PageGap }

// PageOriginY returns the canvas Y offset of a 1-based page number.
func PageOriginY(pageNumber int, pageH float64) float64 {
	if pageNumber < 1 {
		pageNumber = 1
	}
	return float64(pageNumber-1) * PageStride(pageH)
}

// PageAt maps a canvas Y coordinate to a 1-based page number and page-local Y.
// Points in the inter-page gap or outside the stacked pages hit nothing.
func PageAt(canvasY, pageH float64, pageCount int) (pageNumber int, localY float64, ok bool) {
	if canvasY < 0 || pageH <= 0 || pageCount < 1 {
		return 0, 0, false
	}
	stride := PageStride(pageH)
	idx := int(canvasY / stride)
	if idx >= pageCount {
		return 0, 0, false
	}
	localY = canvasY - float64(idx)*stride
	if localY > pageH {
		// inside the gap below page idx+1
		return 0, 0, false
	}
	return idx + 1, localY, true
}
