/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render rasterizes a report configuration to an RGBA image: page
// background, grid, header/footer bands, element previews in z-order, and
// the hover/selection overlay chrome. Rendering never fails on bad
// per-element data; broken values degrade to placeholder visuals.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"argobooks/internal/geom"
	"argobooks/internal/ledger"
	applog "argobooks/internal/log"
	"argobooks/internal/model"
)

// Designer palette.
var (
	workspaceGray = color.RGBA{R: 90, G: 94, B: 100, A: 255}
	gridMinor     = color.RGBA{R: 224, G: 228, B: 233, A: 255}
	gridMajor     = color.RGBA{R: 198, G: 204, B: 212, A: 255}
	pageBorder    = color.RGBA{R: 150, G: 156, B: 164, A: 255}
	marginGuide   = color.RGBA{R: 189, G: 212, B: 235, A: 255}
	bandFill      = color.RGBA{R: 245, G: 247, B: 249, A: 255}
	bandRule      = color.RGBA{R: 208, G: 213, B: 219, A: 255}
	textPrimary   = color.RGBA{R: 33, G: 37, B: 41, A: 255}
	textMuted     = color.RGBA{R: 120, G: 126, B: 133, A: 255}
	selectionBlue = color.RGBA{R: 41, G: 121, B: 255, A: 255}
	hoverBlue     = color.RGBA{R: 120, G: 170, B: 255, A: 255}
	handleFill    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	placeholderBg = color.RGBA{R: 233, G: 236, B: 239, A: 255}
)

// Chart/series accent palette.
var accents = []color.RGBA{
	{R: 54, G: 123, B: 201, A: 255},
	{R: 230, G: 126, B: 34, A: 255},
	{R: 39, G: 174, B: 96, A: 255},
	{R: 155, G: 89, B: 182, A: 255},
	{R: 231, G: 76, B: 60, A: 255},
}

// Overlay selects which interaction decorations a render pass includes.
type Overlay struct {
	SelectedIDs []string
	HoverID     string
}

// Renderer paints a configuration. Data, Translate and the period fields are
// optional; absent data renders as placeholders.
type Renderer struct {
	Cfg  *model.ReportConfiguration
	Data ledger.Provider

	// Report period shown by date-range elements and used for ledger queries.
	PeriodFrom, PeriodTo time.Time

	// Timestamp is printed in the footer; zero means time.Now().
	Timestamp time.Time

	// Translate resolves UI label keys; nil renders keys verbatim.
	Translate func(string) string

	fonts *fontSet
	log   *slog.Logger
}

func New(cfg *model.ReportConfiguration) *Renderer {
	return &Renderer{
		Cfg:   cfg,
		fonts: newFontSet(),
		log:   applog.WithComponent("render"),
	}
}

func (r *Renderer) tr(key string) string {
	if r.Translate != nil {
		return r.Translate(key)
	}
	return key
}

// RenderPage rasterizes one page (1-based) at its natural pixel size.
func (r *Renderer) RenderPage(ctx context.Context, page int, ov Overlay) *image.RGBA {
	w, h := r.Cfg.PageDims()
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	r.renderPageInto(ctx, img, page, 0, ov)
	return img
}

// RenderDocument rasterizes all pages stacked vertically with the inter-page
// gap filled in the workspace color.
func (r *Renderer) RenderDocument(ctx context.Context, ov Overlay) *image.RGBA {
	w, h := r.Cfg.PageDims()
	pages := r.Cfg.PageCount
	if pages < 1 {
		pages = 1
	}
	totalH := float64(pages)*h + float64(pages-1)*geom.PageGap
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(totalH)))
	fillRect(img, img.Bounds(), workspaceGray)
	for p := 1; p <= pages; p++ {
		r.renderPageInto(ctx, img, p, geom.PageOriginY(p, h), ov)
	}
	return img
}

// renderPageInto paints one page at the given vertical device offset. Paint
// order: background, grid, margin guides, header/footer bands, elements in
// ascending z-order, then the overlay chrome pass.
func (r *Renderer) renderPageInto(ctx context.Context, img *image.RGBA, page int, offY float64, ov Overlay) {
	w, h := r.Cfg.PageDims()
	pageRect := devRect(geom.R(0, 0, w, h), 0, offY)

	bg := model.ColorOr(r.Cfg.Background, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	fillRect(img, pageRect, bg)

	if r.Cfg.ShowGrid {
		r.paintGrid(img, pageRect)
	}
	r.paintMarginGuides(img, pageRect)
	if r.Cfg.ShowHeader {
		r.paintHeader(img, pageRect)
	}
	if r.Cfg.ShowFooter {
		r.paintFooter(img, pageRect, page)
	}
	strokeRect(img, pageRect, pageBorder)

	for _, e := range r.Cfg.ByZOrder() {
		if e.PageNumber != page || !e.Visible {
			continue
		}
		r.paintElement(ctx, img, e, devRect(e.Bounds(), 0, offY))
	}

	r.paintOverlay(img, page, offY, ov)
}

// paintGrid draws the configured grid with a heavier line every 5th cell.
func (r *Renderer) paintGrid(img *image.RGBA, pageRect image.Rectangle) {
	grid := r.Cfg.GridSize
	if grid <= 1 {
		return
	}
	step := int(grid)
	if step < 2 {
		return
	}
	for i, x := 1, pageRect.Min.X+step; x < pageRect.Max.X; i, x = i+1, x+step {
		c := gridMinor
		if i%5 == 0 {
			c = gridMajor
		}
		vline(img, x, pageRect.Min.Y, pageRect.Max.Y-1, c)
	}
	for i, y := 1, pageRect.Min.Y+step; y < pageRect.Max.Y; i, y = i+1, y+step {
		c := gridMinor
		if i%5 == 0 {
			c = gridMajor
		}
		hline(img, pageRect.Min.X, pageRect.Max.X-1, y, c)
	}
}

func (r *Renderer) paintMarginGuides(img *image.RGBA, pageRect image.Rectangle) {
	m := r.Cfg.Margins
	inner := image.Rect(
		pageRect.Min.X+int(m.Left),
		pageRect.Min.Y+int(m.Top),
		pageRect.Max.X-int(m.Right),
		pageRect.Max.Y-int(m.Bottom),
	)
	if inner.Dx() > 0 && inner.Dy() > 0 {
		strokeRect(img, inner, marginGuide)
	}
}

func (r *Renderer) paintHeader(img *image.RGBA, pageRect image.Rectangle) {
	band := image.Rect(pageRect.Min.X, pageRect.Min.Y, pageRect.Max.X, pageRect.Min.Y+int(geom.HeaderHeight))
	fillRect(img, band, bandFill)
	hline(img, band.Min.X, band.Max.X-1, band.Max.Y-1, bandRule)

	title := r.Cfg.HeaderText
	if title == "" {
		title = r.Cfg.Title
	}
	face := r.fonts.face(16, true)
	baseline := band.Min.Y + (band.Dy()+faceAscent(face))/2 - 2
	drawStringCentered(img, face, title, band.Min.X, band.Max.X, baseline, textPrimary)
}

func (r *Renderer) paintFooter(img *image.RGBA, pageRect image.Rectangle, page int) {
	band := image.Rect(pageRect.Min.X, pageRect.Max.Y-int(geom.FooterHeight), pageRect.Max.X, pageRect.Max.Y)
	fillRect(img, band, bandFill)
	hline(img, band.Min.X, band.Max.X-1, band.Min.Y, bandRule)

	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	face := r.fonts.face(10, false)
	baseline := band.Min.Y + (band.Dy()+faceAscent(face))/2 - 1
	drawString(img, face, ts.Format("2006-01-02 15:04"), band.Min.X+8, baseline, textMuted)

	pages := r.Cfg.PageCount
	if pages < 1 {
		pages = 1
	}
	label := fmt.Sprintf("%s %d / %d", r.tr("page"), page, pages)
	drawString(img, face, label, band.Max.X-8-textWidth(face, label), baseline, textMuted)
}
