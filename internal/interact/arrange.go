/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

import (
	"math"
	"sort"

	"argobooks/internal/geom"
	"argobooks/internal/model"
	"argobooks/internal/undo"
)

// Alignment and distribution operate on the current selection's geometry as
// pure functions. Each operation is atomic: every selected element moves,
// one notification fires, one undo entry covers the whole batch.

type AlignMode int

const (
	AlignLeft AlignMode = iota
	AlignRight
	AlignTop
	AlignBottom
	AlignCenterH
	AlignCenterV
)

// Align applies the mode to all selected elements. Requires at least two.
func (c *Controller) Align(mode AlignMode) {
	els := c.Selection.Elements()
	if len(els) < 2 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxR, maxB := math.Inf(-1), math.Inf(-1)
	for _, e := range els {
		minX = math.Min(minX, e.X)
		minY = math.Min(minY, e.Y)
		maxR = math.Max(maxR, e.X+e.Width)
		maxB = math.Max(maxB, e.Y+e.Height)
	}
	centerX := (minX + maxR) / 2
	centerY := (minY + maxB) / 2

	c.applyBatch(els, func(e *model.Element, r geom.Rect) geom.Rect {
		switch mode {
		case AlignLeft:
			r.X = minX
		case AlignRight:
			r.X = maxR - r.W
		case AlignTop:
			r.Y = minY
		case AlignBottom:
			r.Y = maxB - r.H
		case AlignCenterH:
			r.X = centerX - r.W/2
		case AlignCenterV:
			r.Y = centerY - r.H/2
		}
		return r
	})
}

// DistributeHorizontal re-lays the selection out with equal gaps between the
// leftmost and rightmost elements' current edges. Requires at least three.
func (c *Controller) DistributeHorizontal() {
	els := c.Selection.Elements()
	if len(els) < 3 {
		return
	}
	sorted := append([]*model.Element(nil), els...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	first := sorted[0]
	last := sorted[len(sorted)-1]
	span := (last.X + last.Width) - first.X
	total := 0.0
	for _, e := range sorted {
		total += e.Width
	}
	gap := (span - total) / float64(len(sorted)-1)

	x := first.X
	targets := make(map[string]float64, len(sorted))
	for _, e := range sorted {
		targets[e.ID] = x
		x += e.Width + gap
	}
	c.applyBatch(els, func(e *model.Element, r geom.Rect) geom.Rect {
		r.X = targets[e.ID]
		return r
	})
}

// DistributeVertical is the vertical counterpart of DistributeHorizontal.
func (c *Controller) DistributeVertical() {
	els := c.Selection.Elements()
	if len(els) < 3 {
		return
	}
	sorted := append([]*model.Element(nil), els...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })

	first := sorted[0]
	last := sorted[len(sorted)-1]
	span := (last.Y + last.Height) - first.Y
	total := 0.0
	for _, e := range sorted {
		total += e.Height
	}
	gap := (span - total) / float64(len(sorted)-1)

	y := first.Y
	targets := make(map[string]float64, len(sorted))
	for _, e := range sorted {
		targets[e.ID] = y
		y += e.Height + gap
	}
	c.applyBatch(els, func(e *model.Element, r geom.Rect) geom.Rect {
		r.Y = targets[e.ID]
		return r
	})
}

// applyBatch captures before/after rects around fn, writes them back, fires
// one notification and records one undo entry when anything moved.
func (c *Controller) applyBatch(els []*model.Element, fn func(*model.Element, geom.Rect) geom.Rect) {
	entries := make(map[string]undo.RectChange)
	for _, e := range els {
		before := e.Bounds()
		after := fn(e, before)
		if after.NearlyEqual(before, dragEpsilon) {
			continue
		}
		e.SetBounds(after)
		entries[e.ID] = undo.RectChange{Before: before, After: after}
	}
	if len(entries) == 0 {
		return
	}
	c.cfg.Notify(model.Change{Field: model.FieldElements})
	c.undo.Record(&undo.BatchMoveResize{Entries: entries})
}

// BringToFront raises the selection above everything else, preserving the
// selection's internal stacking order.
func (c *Controller) BringToFront() {
	els := c.Selection.Elements()
	if len(els) == 0 {
		return
	}
	sorted := append([]*model.Element(nil), els...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ZOrder < sorted[j].ZOrder })
	z := c.cfg.MaxZOrder()
	entries := make(map[string]undo.ZChange)
	for _, e := range sorted {
		z++
		entries[e.ID] = undo.ZChange{Before: e.ZOrder, After: z}
		e.ZOrder = z
	}
	c.cfg.Notify(model.Change{Field: model.FieldElements})
	c.undo.Record(&undo.BatchZOrder{Entries: entries})
}

// SendToBack lowers the selection below everything else, preserving order.
func (c *Controller) SendToBack() {
	els := c.Selection.Elements()
	if len(els) == 0 {
		return
	}
	sorted := append([]*model.Element(nil), els...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ZOrder < sorted[j].ZOrder })
	z := c.cfg.MinZOrder() - len(sorted)
	entries := make(map[string]undo.ZChange)
	for _, e := range sorted {
		entries[e.ID] = undo.ZChange{Before: e.ZOrder, After: z}
		e.ZOrder = z
		z++
	}
	c.cfg.Notify(model.Change{Field: model.FieldElements})
	c.undo.Record(&undo.BatchZOrder{Entries: entries})
}
