/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package model defines the report layout data model: typed, positioned
// elements placed on report pages, and the configuration that owns them.
// The model intentionally serializes to a human-readable JSON manifest.
package model

import "argobooks/internal/geom"

// ElementKind is the closed variant set of report element types.
type ElementKind string

const (
	KindChart     ElementKind = "chart"
	KindTable     ElementKind = "table"
	KindLabel     ElementKind = "label"
	KindImage     ElementKind = "image"
	KindDateRange ElementKind = "dateRange"
	KindSummary   ElementKind = "summary"
)

// DisplayName is the human-readable badge text for a kind.
func (k ElementKind) DisplayName() string {
	switch k {
	case KindChart:
		return "Chart"
	case KindTable:
		return "Table"
	case KindLabel:
		return "Label"
	case KindImage:
		return "Image"
	case KindDateRange:
		return "Date Range"
	case KindSummary:
		return "Summary"
	}
	return "Element"
}

// MinSize is the per-kind minimum width/height enforced by the resize logic.
// Model setters do not enforce it so undo can restore any historical rect.
func (k ElementKind) MinSize() geom.Pt {
	switch k {
	case KindChart:
		return geom.Pt{X: 80, Y: 60}
	case KindTable:
		return geom.Pt{X: 100, Y: 60}
	case KindImage:
		return geom.Pt{X: 50, Y: 50}
	case KindDateRange:
		return geom.Pt{X: 80, Y: 24}
	default:
		return geom.Pt{X: 50, Y: 30}
	}
}

// ChartStyle configures the chart preview.
type ChartStyle struct {
	ChartType  string `json:"chartType"` // bar, pie, line
	ShowLegend bool   `json:"showLegend"`
	ShowValues bool   `json:"showValues"`
}

// TableStyle configures column visibility, sorting and row styling of the
// transaction table.
type TableStyle struct {
	ShowDate         bool   `json:"showDate"`
	ShowCounterparty bool   `json:"showCounterparty"`
	ShowDescription  bool   `json:"showDescription"`
	ShowAmount       bool   `json:"showAmount"`
	ShowStatus       bool   `json:"showStatus"`
	SortBy           string `json:"sortBy"`    // date, amount, counterparty
	SortOrder        string `json:"sortOrder"` // asc, desc
	AlternateRows    bool   `json:"alternateRows"`
	MaxRows          int    `json:"maxRows"`
}

// LabelStyle is free text with basic typography.
type LabelStyle struct {
	Text      string  `json:"text"`
	FontSize  float64 `json:"fontSize"`
	Bold      bool    `json:"bold"`
	Alignment string  `json:"alignment"` // left, center, right
	Color     string  `json:"color"`     // "#RRGGBB" or "#AARRGGBB"
}

// ImageStyle references an external image file.
type ImageStyle struct {
	Path      string  `json:"path"`
	ScaleMode string  `json:"scaleMode"` // fit, fill, stretch
	Opacity   float64 `json:"opacity"`
}

// DateRangeStyle renders the report's covered period.
type DateRangeStyle struct {
	Format string `json:"format"` // e.g. "2006-01-02"
}

// SummaryStyle selects which aggregate metrics the summary block includes.
type SummaryStyle struct {
	IncludeSales     bool `json:"includeSales"`
	IncludePurchases bool `json:"includePurchases"`
	IncludeBalance   bool `json:"includeBalance"`
	IncludeCount     bool `json:"includeCount"`
}

// Element is a positioned, typed, resizable unit placed on a report page.
// Geometry setters are unchecked; the interaction layer owns the minimum-size
// and page-bound invariants.
type Element struct {
	ID         string      `json:"id"`
	Kind       ElementKind `json:"kind"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	ZOrder     int         `json:"zOrder"`
	PageNumber int         `json:"pageNumber"` // 1-based
	Visible    bool        `json:"visible"`
	Locked     bool        `json:"locked"`

	Chart     *ChartStyle     `json:"chart,omitempty"`
	Table     *TableStyle     `json:"table,omitempty"`
	Label     *LabelStyle     `json:"label,omitempty"`
	Image     *ImageStyle     `json:"image,omitempty"`
	DateRange *DateRangeStyle `json:"dateRange,omitempty"`
	Summary   *SummaryStyle   `json:"summary,omitempty"`
}

// Bounds returns the element's page-local rectangle.
func (e *Element) Bounds() geom.Rect { return geom.R(e.X, e.Y, e.Width, e.Height) }

// SetBounds writes the rectangle back without validation.
func (e *Element) SetBounds(r geom.Rect) {
	e.X, e.Y, e.Width, e.Height = r.X, r.Y, r.W, r.H
}

// MinSize returns the per-kind minimum size.
func (e *Element) MinSize() geom.Pt { return e.Kind.MinSize() }

// Clone returns a deep copy under a new identity. Paste must not collide ids.
func (e *Element) Clone(newID string) *Element {
	c := *e
	c.ID = newID
	if e.Chart != nil {
		v := *e.Chart
		c.Chart = &v
	}
	if e.Table != nil {
		v := *e.Table
		c.Table = &v
	}
	if e.Label != nil {
		v := *e.Label
		c.Label = &v
	}
	if e.Image != nil {
		v := *e.Image
		c.Image = &v
	}
	if e.DateRange != nil {
		v := *e.DateRange
		c.DateRange = &v
	}
	if e.Summary != nil {
		v := *e.Summary
		c.Summary = &v
	}
	return &c
}

// NewElement builds an element of the given kind with its default style and a
// kind-appropriate starting size. The caller assigns id, page and z-order.
func NewElement(kind ElementKind) *Element {
	e := &Element{Kind: kind, Visible: true, PageNumber: 1}
	min := kind.MinSize()
	e.Width = min.X * 2
	e.Height = min.Y * 2
	switch kind {
	case KindChart:
		e.Chart = &ChartStyle{ChartType: "bar", ShowLegend: true}
	case KindTable:
		e.Table = &TableStyle{
			ShowDate: true, ShowCounterparty: true, ShowAmount: true,
			SortBy: "date", SortOrder: "desc", AlternateRows: true, MaxRows: 10,
		}
	case KindLabel:
		e.Label = &LabelStyle{Text: "Label", FontSize: 14, Alignment: "left", Color: "#000000"}
	case KindImage:
		e.Image = &ImageStyle{ScaleMode: "fit", Opacity: 1}
	case KindDateRange:
		e.DateRange = &DateRangeStyle{Format: "2006-01-02"}
	case KindSummary:
		e.Summary = &SummaryStyle{IncludeSales: true, IncludePurchases: true, IncludeBalance: true}
	}
	return e
}
