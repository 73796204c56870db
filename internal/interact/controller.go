/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package interact implements the selection and interaction state machine of
// the report designer: hit testing, dragging, handle resizing, marquee
// selection, keyboard nudging, and the arrange operations. All coordinates
// passed in are content-space (unscaled canvas) pixels; the viewport converts
// device coordinates before calling in.
package interact

import (
	"log/slog"

	applog "argobooks/internal/log"

	"argobooks/internal/geom"
	"argobooks/internal/model"
	"argobooks/internal/undo"
)

// State is the interaction state machine's current mode.
type State int

const (
	Idle State = iota
	Selecting
	Dragging
	Resizing
	Panning
)

// Button distinguishes the pointer buttons the designer reacts to.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// Modifiers carries the keyboard modifier state of a pointer event.
type Modifiers struct {
	Ctrl  bool
	Shift bool
}

const (
	// HandleVisual is the painted handle size; HandleHit is the larger
	// hit-box for fat-finger tolerance.
	HandleVisual = 10.0
	HandleHit    = 14.0

	// panThreshold is the movement in pixels that turns a right-button press
	// into a pan instead of a context-menu request.
	panThreshold = 4.0

	// dragEpsilon: gestures netting less than this per field record no undo
	// entry.
	dragEpsilon = 0.1

	pasteOffset = 20.0

	nudgeStep      = 1.0
	nudgeStepLarge = 10.0
)

// Controller drives the interaction state machine over one configuration.
type Controller struct {
	cfg  *model.ReportConfiguration
	undo *undo.Manager
	log  *slog.Logger

	Selection *Selection

	state State

	// gesture bookkeeping
	pressPt      geom.Pt
	lastPt       geom.Pt
	button       Button
	maybePan     bool
	panConfirmed bool

	dragStart   map[string]geom.Rect // start-snapshot rects, captured once
	resizeID    string
	resizeStart geom.Rect
	handle      geom.Handle

	marqueePage  int
	marqueeStart geom.Pt // page-local on marqueePage
	marqueeRect  geom.Rect

	hovered string

	clipboard  []*model.Element
	pasteCount int

	// OnPan receives incremental pan deltas once a right-button pan is
	// confirmed.
	OnPan func(dx, dy float64)
	// OnContextMenu fires when a right-button press releases without
	// exceeding the pan threshold.
	OnContextMenu func(at geom.Pt)
}

func NewController(cfg *model.ReportConfiguration, um *undo.Manager) *Controller {
	c := &Controller{
		cfg:       cfg,
		undo:      um,
		log:       applog.WithComponent("interact"),
		Selection: NewSelection(cfg),
	}
	cfg.Subscribe(func(ch model.Change) {
		if ch.Field == model.FieldElements {
			c.Selection.Invalidate()
		}
	})
	return c
}

func (c *Controller) State() State { return c.state }

// Hovered returns the id of the element under the cursor, or "".
func (c *Controller) Hovered() string { return c.hovered }

// Marquee returns the live marquee rectangle (page-local) while Selecting.
func (c *Controller) Marquee() (r geom.Rect, pageNumber int, active bool) {
	return c.marqueeRect.Normalized(), c.marqueePage, c.state == Selecting
}

// PointerDown starts a gesture at the given content-space point.
func (c *Controller) PointerDown(p geom.Pt, btn Button, mods Modifiers) {
	c.pressPt = p
	c.lastPt = p
	c.button = btn

	if btn == ButtonRight {
		// Maybe-pan: confirmed only once movement exceeds the threshold,
		// otherwise release requests a context menu.
		c.maybePan = true
		c.panConfirmed = false
		return
	}

	// 1. Resize handles of every selected element win over element bodies.
	if el, h, ok := c.hitHandle(p); ok {
		c.state = Resizing
		c.resizeID = el.ID
		c.resizeStart = el.Bounds()
		c.handle = h
		c.undo.SuppressRecording = true
		return
	}

	// 2. Elements, topmost first, on the page under the cursor.
	if el := c.HitTest(p); el != nil {
		switch {
		case mods.Ctrl || mods.Shift:
			c.Selection.Toggle(el.ID)
		case c.Selection.Contains(el.ID):
			// keep the selection, drag it as a whole
			c.beginDrag()
		default:
			c.Selection.Set(el.ID)
			c.beginDrag()
		}
		return
	}

	// 3. Empty space: clear and start a marquee on the page under the cursor.
	c.Selection.Clear()
	pg, localY, ok := geom.PageAt(p.Y, c.pageH(), c.cfg.PageCount)
	if !ok {
		return
	}
	c.state = Selecting
	c.marqueePage = pg
	c.marqueeStart = geom.Pt{X: p.X, Y: localY}
	c.marqueeRect = geom.Rect{X: p.X, Y: localY}
}

func (c *Controller) beginDrag() {
	c.dragStart = make(map[string]geom.Rect)
	for _, e := range c.Selection.Elements() {
		if e.Locked {
			continue
		}
		c.dragStart[e.ID] = e.Bounds()
	}
	if len(c.dragStart) == 0 {
		return
	}
	c.state = Dragging
	c.undo.SuppressRecording = true
}

// PointerMove advances the active gesture.
func (c *Controller) PointerMove(p geom.Pt) {
	defer func() { c.lastPt = p }()

	if c.maybePan {
		if !c.panConfirmed {
			dx := p.X - c.pressPt.X
			dy := p.Y - c.pressPt.Y
			if dx*dx+dy*dy > panThreshold*panThreshold {
				c.panConfirmed = true
				c.state = Panning
			}
		}
		if c.panConfirmed && c.OnPan != nil {
			c.OnPan(p.X-c.lastPt.X, p.Y-c.lastPt.Y)
		}
		return
	}

	switch c.state {
	case Dragging:
		c.moveSelection(p)
	case Resizing:
		c.resizeElement(p)
	case Selecting:
		c.updateMarquee(p)
	default:
		if el := c.HitTest(p); el != nil {
			c.hovered = el.ID
		} else {
			c.hovered = ""
		}
	}
}

// PointerUp finishes the gesture, recording a single batched undo entry when
// the gesture actually changed something.
func (c *Controller) PointerUp(p geom.Pt) {
	if c.maybePan {
		if !c.panConfirmed && c.OnContextMenu != nil {
			c.OnContextMenu(p)
		}
		c.maybePan = false
		c.panConfirmed = false
		c.state = Idle
		return
	}

	switch c.state {
	case Dragging:
		c.undo.SuppressRecording = false
		c.recordMoveBatch()
		c.dragStart = nil
	case Resizing:
		c.undo.SuppressRecording = false
		c.recordResize()
		c.resizeID = ""
	case Selecting:
		// live marquee already replaced the selection on every move
	}
	c.state = Idle
}

func (c *Controller) moveSelection(p geom.Pt) {
	dx := p.X - c.pressPt.X
	dy := p.Y - c.pressPt.Y
	pageW, pageH := c.cfg.PageDims()
	snap := c.cfg.ShowGrid && c.cfg.SnapToGrid
	changed := false
	for id, start := range c.dragStart {
		e := c.cfg.FindElement(id)
		if e == nil {
			continue
		}
		nx := start.X + dx
		ny := start.Y + dy
		if snap {
			nx = geom.Snap(nx, c.cfg.GridSize)
			ny = geom.Snap(ny, c.cfg.GridSize)
		}
		r := geom.ClampToPage(geom.R(nx, ny, start.W, start.H), pageW, pageH)
		if e.X != r.X || e.Y != r.Y {
			e.X, e.Y = r.X, r.Y
			changed = true
		}
	}
	if changed {
		c.cfg.HasManualChartLayout = true
		c.cfg.Notify(model.Change{Field: model.FieldElements})
	}
}

func (c *Controller) recordMoveBatch() {
	entries := make(map[string]undo.RectChange)
	for id, before := range c.dragStart {
		e := c.cfg.FindElement(id)
		if e == nil {
			continue
		}
		after := e.Bounds()
		if !after.NearlyEqual(before, dragEpsilon) {
			entries[id] = undo.RectChange{Before: before, After: after}
		}
	}
	if len(entries) == 0 {
		return // a drag netting zero movement records nothing
	}
	if len(entries) == 1 {
		for id, ch := range entries {
			c.undo.Record(&undo.MoveResize{ElementID: id, Change: ch})
		}
		return
	}
	c.undo.Record(&undo.BatchMoveResize{Entries: entries})
}

func (c *Controller) resizeElement(p geom.Pt) {
	e := c.cfg.FindElement(c.resizeID)
	if e == nil {
		return
	}
	delta := geom.Pt{X: p.X - c.pressPt.X, Y: p.Y - c.pressPt.Y}
	pageW, pageH := c.cfg.PageDims()
	snap := c.cfg.ShowGrid && c.cfg.SnapToGrid
	grid := 0.0
	if snap {
		grid = c.cfg.GridSize
	}
	r := ResizeRect(c.resizeStart, c.handle, delta, e.MinSize(), pageW, pageH, grid)
	if r != e.Bounds() {
		e.SetBounds(r)
		c.cfg.HasManualChartLayout = true
		c.cfg.Notify(model.Change{Field: model.FieldElements})
	}
}

func (c *Controller) recordResize() {
	e := c.cfg.FindElement(c.resizeID)
	if e == nil {
		return
	}
	after := e.Bounds()
	if after.NearlyEqual(c.resizeStart, dragEpsilon) {
		return
	}
	c.undo.Record(&undo.MoveResize{
		ElementID: e.ID,
		Change:    undo.RectChange{Before: c.resizeStart, After: after},
	})
}

func (c *Controller) updateMarquee(p geom.Pt) {
	localY := p.Y - geom.PageOriginY(c.marqueePage, c.pageH())
	c.marqueeRect = geom.Rect{
		X: c.marqueeStart.X,
		Y: c.marqueeStart.Y,
		W: p.X - c.marqueeStart.X,
		H: localY - c.marqueeStart.Y,
	}
	// Recompute live, replacing the selection: any element whose bounds
	// intersect the marquee, restricted to the marquee's page.
	box := c.marqueeRect.Normalized()
	var ids []string
	for _, e := range c.cfg.OnPage(c.marqueePage) {
		if e.Visible && e.Bounds().Intersects(box) {
			ids = append(ids, e.ID)
		}
	}
	c.Selection.Set(ids...)
}

// KeyNudge moves all selected unlocked elements by one step (10px with
// shift), clamped to page bounds. Each keypress is its own undo step.
func (c *Controller) KeyNudge(dx, dy float64, large bool) {
	step := nudgeStep
	if large {
		step = nudgeStepLarge
	}
	pageW, pageH := c.cfg.PageDims()
	entries := make(map[string]undo.RectChange)
	for _, e := range c.Selection.Elements() {
		if e.Locked {
			continue
		}
		before := e.Bounds()
		after := geom.ClampToPage(geom.R(before.X+dx*step, before.Y+dy*step, before.W, before.H), pageW, pageH)
		if after == before {
			continue
		}
		e.SetBounds(after)
		entries[e.ID] = undo.RectChange{Before: before, After: after}
	}
	if len(entries) == 0 {
		return
	}
	c.cfg.HasManualChartLayout = true
	c.cfg.Notify(model.Change{Field: model.FieldElements})
	c.undo.Record(&undo.BatchMoveResize{Entries: entries})
}

// AddNew creates a toolbox element of the given kind on a page and selects it.
func (c *Controller) AddNew(kind model.ElementKind, pageNumber int) *model.Element {
	e := model.NewElement(kind)
	e.PageNumber = pageNumber
	pageW, pageH := c.cfg.PageDims()
	e.SetBounds(geom.ClampToPage(geom.R(c.cfg.Margins.Left, c.cfg.Margins.Top, e.Width, e.Height), pageW, pageH))
	c.cfg.AddElement(e)
	c.undo.Record(&undo.AddElement{Element: e})
	c.Selection.Set(e.ID)
	c.log.Debug("element added", slog.String("id", e.ID), slog.String("kind", string(e.Kind)))
	return e
}

// DeleteSelection removes every selected element as one undo entry.
func (c *Controller) DeleteSelection() {
	els := c.Selection.Elements()
	if len(els) == 0 {
		return
	}
	var acts []undo.Action
	for _, e := range els {
		c.cfg.RemoveElement(e.ID)
		acts = append(acts, &undo.RemoveElement{Element: e})
	}
	c.Selection.Clear()
	if len(acts) == 1 {
		c.undo.Record(acts[0])
		return
	}
	c.undo.Record(&undo.Composite{Label: "delete selection", Actions: acts})
}

func (c *Controller) pageH() float64 {
	_, h := c.cfg.PageDims()
	return h
}
