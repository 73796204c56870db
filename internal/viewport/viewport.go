/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package viewport owns the zoom/pan/overscroll state of the designer canvas:
// scale transforms, cursor-anchored zoom, and rubber-band panning past the
// content edges.
package viewport

import (
	"math"

	"argobooks/internal/geom"
)

const (
	MinZoom  = 0.25
	MaxZoom  = 2.0
	ZoomStep = 0.25

	// Overscroll resistance and cap for rubber-band panning.
	overscrollResistance = 0.4
	maxOverscroll        = 120.0

	// snapBackEase is the per-step decay of the snap-back animation.
	snapBackEase = 0.65
)

// Controller maps between device (widget) coordinates and unscaled content
// coordinates, and tracks scroll/zoom/overscroll.
type Controller struct {
	zoom             float64
	scrollX, scrollY float64 // device-space scroll offset into scaled content
	overX, overY     float64 // rubber-band offset past the content edges

	viewW, viewH       float64
	contentW, contentH float64 // unscaled content size
}

func NewController() *Controller {
	return &Controller{zoom: 1}
}

func (c *Controller) Zoom() float64 { return c.zoom }

// Offset returns the effective device-space translation applied to content,
// including any rubber-band overscroll.
func (c *Controller) Offset() (x, y float64) {
	return c.scrollX - c.overX, c.scrollY - c.overY
}

func (c *Controller) SetViewSize(w, h float64)    { c.viewW, c.viewH = w, h; c.clampScroll() }
func (c *Controller) SetContentSize(w, h float64) { c.contentW, c.contentH = w, h; c.clampScroll() }

// ToContent converts a device point to unscaled content coordinates.
func (c *Controller) ToContent(p geom.Pt) geom.Pt {
	ox, oy := c.Offset()
	return geom.Pt{X: (p.X + ox) / c.zoom, Y: (p.Y + oy) / c.zoom}
}

// ToDevice converts an unscaled content point to device coordinates.
func (c *Controller) ToDevice(p geom.Pt) geom.Pt {
	ox, oy := c.Offset()
	return geom.Pt{X: p.X*c.zoom - ox, Y: p.Y*c.zoom - oy}
}

// ZoomIn/ZoomOut step the zoom by 0.25 anchored at the viewport center.
func (c *Controller) ZoomIn()  { c.ZoomAt(geom.Pt{X: c.viewW / 2, Y: c.viewH / 2}, c.zoom+ZoomStep) }
func (c *Controller) ZoomOut() { c.ZoomAt(geom.Pt{X: c.viewW / 2, Y: c.viewH / 2}, c.zoom-ZoomStep) }

// ZoomAt sets the zoom so the content point under the device cursor stays
// fixed on screen: convert the cursor to content space at the old zoom, apply
// the new zoom, and solve for the scroll offset that puts the content point
// back under the cursor, clamped to the valid scroll range.
func (c *Controller) ZoomAt(cursor geom.Pt, newZoom float64) {
	newZoom = geom.Clamp(newZoom, MinZoom, MaxZoom)
	if newZoom == c.zoom {
		return
	}
	cp := c.ToContent(cursor)
	c.zoom = newZoom
	c.scrollX = cp.X*newZoom - cursor.X
	c.scrollY = cp.Y*newZoom - cursor.Y
	c.overX, c.overY = 0, 0
	c.clampScroll()
}

// WheelZoom applies a continuous wheel delta anchored at the cursor.
func (c *Controller) WheelZoom(cursor geom.Pt, deltaY float64) {
	c.ZoomAt(cursor, c.zoom+deltaY*0.1)
}

// Pan scrolls by a device-space delta. Past the content edges the excess goes
// into the rubber-band offset, scaled by the resistance factor and capped.
func (c *Controller) Pan(dx, dy float64) {
	c.scrollX -= dx
	c.scrollY -= dy
	maxX, maxY := c.maxScroll()

	if c.scrollX < 0 {
		c.overX = geom.Clamp(c.overX-c.scrollX*overscrollResistance, -maxOverscroll, maxOverscroll)
		c.scrollX = 0
	} else if c.scrollX > maxX {
		c.overX = geom.Clamp(c.overX-(c.scrollX-maxX)*overscrollResistance, -maxOverscroll, maxOverscroll)
		c.scrollX = maxX
	}
	if c.scrollY < 0 {
		c.overY = geom.Clamp(c.overY-c.scrollY*overscrollResistance, -maxOverscroll, maxOverscroll)
		c.scrollY = 0
	} else if c.scrollY > maxY {
		c.overY = geom.Clamp(c.overY-(c.scrollY-maxY)*overscrollResistance, -maxOverscroll, maxOverscroll)
		c.scrollY = maxY
	}
}

// Overscroll reports the current rubber-band offset.
func (c *Controller) Overscroll() (x, y float64) { return c.overX, c.overY }

// SnapBackStep advances the eased snap-back animation one frame after a pan
// release; it reports true when the overscroll has settled to zero.
func (c *Controller) SnapBackStep() (done bool) {
	c.overX *= snapBackEase
	c.overY *= snapBackEase
	if math.Abs(c.overX) < 0.5 && math.Abs(c.overY) < 0.5 {
		c.overX, c.overY = 0, 0
		return true
	}
	return false
}

func (c *Controller) maxScroll() (x, y float64) {
	x = math.Max(0, c.contentW*c.zoom-c.viewW)
	y = math.Max(0, c.contentH*c.zoom-c.viewH)
	return x, y
}

func (c *Controller) clampScroll() {
	maxX, maxY := c.maxScroll()
	c.scrollX = geom.Clamp(c.scrollX, 0, maxX)
	c.scrollY = geom.Clamp(c.scrollY, 0, maxY)
}
