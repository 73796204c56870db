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
	"image/color"
	"image/draw"
	"math"

	"argobooks/internal/geom"
)

// devRect converts a content rectangle to device pixels at the given page
// origin offset.
func devRect(r geom.Rect, offX, offY float64) image.Rectangle {
	x0 := int(math.Round(r.X + offX))
	y0 := int(math.Round(r.Y + offY))
	x1 := int(math.Round(r.X + r.W + offX))
	y1 := int(math.Round(r.Y + r.H + offY))
	return image.Rect(x0, y0, x1, y1)
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// blendRect composites a translucent fill over the existing pixels.
func blendRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Over)
}

// strokeRect draws a 1px axis-aligned border just inside r.
func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}

// strokeRectN draws an n-pixel border by stroking n nested rectangles.
func strokeRectN(img *image.RGBA, r image.Rectangle, c color.RGBA, n int) {
	for i := 0; i < n; i++ {
		strokeRect(img, r.Inset(i), c)
	}
}

func hline(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y, c)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, c)
	}
}

// drawLine rasterizes a straight segment (Bresenham).
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// compositeMasked copies every opaque pixel of src onto dst except those
// falling inside one of the excluded rectangles. Overlay chrome uses this to
// stay visually underneath higher-z elements.
func compositeMasked(dst, src *image.RGBA, excl []image.Rectangle) {
	b := src.Bounds().Intersect(dst.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.RGBAAt(x, y)
			if c.A == 0 || inAny(x, y, excl) {
				continue
			}
			if c.A == 255 {
				dst.SetRGBA(x, y, c)
			} else {
				dst.Set(x, y, blend(dst.RGBAAt(x, y), c))
			}
		}
	}
}

func inAny(x, y int, rects []image.Rectangle) bool {
	for _, r := range rects {
		if x >= r.Min.X && x < r.Max.X && y >= r.Min.Y && y < r.Max.Y {
			return true
		}
	}
	return false
}

// blend composites src over bg (non-premultiplied source alpha).
func blend(bg, src color.RGBA) color.RGBA {
	a := uint32(src.A)
	inv := 255 - a
	return color.RGBA{
		R: uint8((uint32(src.R)*a + uint32(bg.R)*inv) / 255),
		G: uint8((uint32(src.G)*a + uint32(bg.G)*inv) / 255),
		B: uint8((uint32(src.B)*a + uint32(bg.B)*inv) / 255),
		A: 255,
	}
}
