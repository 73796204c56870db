/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import (
	"fmt"
	"sort"

	"argobooks/internal/geom"
)

// Field tags identify which element property a change notification refers to.
type Field string

const (
	FieldX        Field = "x"
	FieldY        Field = "y"
	FieldWidth    Field = "width"
	FieldHeight   Field = "height"
	FieldZOrder   Field = "zOrder"
	FieldVisible  Field = "visible"
	FieldLocked   Field = "locked"
	FieldStyle    Field = "style"
	FieldElements Field = "elements" // element added/removed or batch geometry change
)

// Change is the generic "element changed" notification fanned out to
// subscribers (renderer invalidation, undo recorder, property panel). For
// FieldElements the ElementID may be empty.
type Change struct {
	ElementID string
	Field     Field
	Old, New  any
}

// Margins are the page margins in pixels.
type Margins struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// ReportConfiguration owns the ordered element collection and the page setup.
// Element order is insertion order; paint order is ZOrder.
type ReportConfiguration struct {
	Title       string           `json:"title"`
	PageSize    geom.PageSize    `json:"pageSize"`
	Orientation geom.Orientation `json:"orientation"`
	Margins     Margins          `json:"margins"`
	Background  string           `json:"background"` // "#RRGGBB" or "#AARRGGBB"
	ShowHeader  bool             `json:"showHeader"`
	ShowFooter  bool             `json:"showFooter"`
	HeaderText  string           `json:"headerText"`
	PageCount   int              `json:"pageCount"`

	GridSize   float64 `json:"gridSize"`
	ShowGrid   bool    `json:"showGrid"`
	SnapToGrid bool    `json:"snapToGrid"`

	// HasManualChartLayout is set once any element is interactively moved or
	// resized; downstream auto-layout stops re-flowing elements. Its consumer
	// lives outside this subsystem.
	HasManualChartLayout bool `json:"hasManualChartLayout"`

	Elements []*Element `json:"elements"`

	NextID int `json:"nextId"`

	subs []func(Change)
}

// NewReportConfiguration returns a single-page A4 portrait configuration with
// the designer defaults.
func NewReportConfiguration(title string) *ReportConfiguration {
	return &ReportConfiguration{
		Title:       title,
		PageSize:    geom.PageA4,
		Orientation: geom.Portrait,
		Margins:     Margins{Left: 40, Top: 40, Right: 40, Bottom: 40},
		Background:  "#FFFFFF",
		ShowHeader:  true,
		ShowFooter:  true,
		HeaderText:  title,
		PageCount:   1,
		GridSize:    20,
		ShowGrid:    true,
		SnapToGrid:  false,
		NextID:      1,
	}
}

// PageDims returns the pixel dimensions of one page.
func (c *ReportConfiguration) PageDims() (w, h float64) {
	return geom.PageDims(c.PageSize, c.Orientation)
}

// Subscribe registers a change listener and returns an unsubscribe func.
func (c *ReportConfiguration) Subscribe(fn func(Change)) func() {
	c.subs = append(c.subs, fn)
	idx := len(c.subs) - 1
	return func() { c.subs[idx] = nil }
}

// Notify fans a change out to all subscribers.
func (c *ReportConfiguration) Notify(ch Change) {
	for _, fn := range c.subs {
		if fn != nil {
			fn(ch)
		}
	}
}

// NewElementID allocates the next sequential element id ("e1", "e2", ...).
func (c *ReportConfiguration) NewElementID() string {
	if c.NextID < 1 {
		c.NextID = 1
	}
	id := fmt.Sprintf("e%d", c.NextID)
	c.NextID++
	return id
}

// AddElement appends to the collection, assigning id and z-order when unset,
// and notifies subscribers. Returns the element for convenience.
func (c *ReportConfiguration) AddElement(e *Element) *Element {
	if e.ID == "" {
		e.ID = c.NewElementID()
	}
	if e.ZOrder == 0 {
		e.ZOrder = c.MaxZOrder() + 1
	}
	if e.PageNumber < 1 {
		e.PageNumber = 1
	}
	c.Elements = append(c.Elements, e)
	c.Notify(Change{ElementID: e.ID, Field: FieldElements, New: e})
	return e
}

// RemoveElement deletes by id; unknown ids are a no-op returning false.
func (c *ReportConfiguration) RemoveElement(id string) bool {
	for i, e := range c.Elements {
		if e.ID == id {
			c.Elements = append(c.Elements[:i], c.Elements[i+1:]...)
			c.Notify(Change{ElementID: id, Field: FieldElements, Old: e})
			return true
		}
	}
	return false
}

// FindElement returns the element with the given id, or nil.
func (c *ReportConfiguration) FindElement(id string) *Element {
	for _, e := range c.Elements {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// MaxZOrder returns the highest z-order in use, 0 when empty.
func (c *ReportConfiguration) MaxZOrder() int {
	max := 0
	for _, e := range c.Elements {
		if e.ZOrder > max {
			max = e.ZOrder
		}
	}
	return max
}

// MinZOrder returns the lowest z-order in use, 0 when empty.
func (c *ReportConfiguration) MinZOrder() int {
	if len(c.Elements) == 0 {
		return 0
	}
	min := c.Elements[0].ZOrder
	for _, e := range c.Elements[1:] {
		if e.ZOrder < min {
			min = e.ZOrder
		}
	}
	return min
}

// ByZOrder returns elements sorted ascending by z-order, insertion order
// breaking ties (stable).
func (c *ReportConfiguration) ByZOrder() []*Element {
	out := append([]*Element(nil), c.Elements...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZOrder < out[j].ZOrder })
	return out
}

// Clone returns a deep copy with no subscribers, suitable as a read-only
// snapshot handed to a render worker.
func (c *ReportConfiguration) Clone() *ReportConfiguration {
	cp := *c
	cp.subs = nil
	cp.Elements = make([]*Element, len(c.Elements))
	for i, e := range c.Elements {
		cp.Elements[i] = e.Clone(e.ID)
	}
	return &cp
}

// OnPage returns elements belonging to the given 1-based page, insertion order.
func (c *ReportConfiguration) OnPage(pageNumber int) []*Element {
	var out []*Element
	for _, e := range c.Elements {
		if e.PageNumber == pageNumber {
			out = append(out, e)
		}
	}
	return out
}
