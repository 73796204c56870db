/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/font"

	"argobooks/internal/ledger"
	"argobooks/internal/model"
)

// paintElement dispatches to the per-kind preview painter. The target is
// clipped to the element rectangle so painters cannot bleed outside their
// bounds, and painters degrade to placeholders instead of failing.
func (r *Renderer) paintElement(ctx context.Context, img *image.RGBA, e *model.Element, rect image.Rectangle) {
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return
	}
	clip := img.SubImage(rect).(*image.RGBA)
	switch e.Kind {
	case model.KindChart:
		r.paintChart(clip, e, rect)
	case model.KindTable:
		r.paintTable(ctx, clip, e, rect)
	case model.KindLabel:
		r.paintLabel(clip, e, rect)
	case model.KindImage:
		r.paintImage(clip, e, rect)
	case model.KindDateRange:
		r.paintDateRange(clip, e, rect)
	case model.KindSummary:
		r.paintSummary(ctx, clip, e, rect)
	default:
		fillRect(clip, rect, placeholderBg)
		strokeRect(clip, rect, bandRule)
	}
}

// placeholderBox fills the element with the neutral placeholder look and a
// centered message.
func (r *Renderer) placeholderBox(img *image.RGBA, rect image.Rectangle, msg string) {
	fillRect(img, rect, placeholderBg)
	strokeRect(img, rect, bandRule)
	face := r.fonts.face(11, false)
	drawStringCentered(img, face, msg, rect.Min.X, rect.Max.X, rect.Min.Y+(rect.Dy()+faceAscent(face))/2, textMuted)
}

var chartSeries = []float64{0.55, 0.82, 0.41, 0.95, 0.63}

func (r *Renderer) paintChart(img *image.RGBA, e *model.Element, rect image.Rectangle) {
	st := e.Chart
	if st == nil {
		st = &model.ChartStyle{ChartType: "bar"}
	}
	fillRect(img, rect, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	strokeRect(img, rect, bandRule)

	plot := rect.Inset(8)
	if st.ShowLegend && plot.Dy() > 40 {
		legend := image.Rect(plot.Min.X, plot.Max.Y-14, plot.Max.X, plot.Max.Y)
		plot.Max.Y = legend.Min.Y - 4
		r.paintChartLegend(img, legend)
	}
	if plot.Dx() <= 4 || plot.Dy() <= 4 {
		return
	}

	switch st.ChartType {
	case "pie":
		r.paintPie(img, plot)
	case "line":
		r.paintLineSeries(img, plot)
	default:
		r.paintBars(img, plot, st.ShowValues)
	}
}

func (r *Renderer) paintBars(img *image.RGBA, plot image.Rectangle, values bool) {
	n := len(chartSeries)
	slot := plot.Dx() / n
	barW := slot * 7 / 10
	if barW < 2 {
		barW = 2
	}
	face := r.fonts.face(9, false)
	for i, v := range chartSeries {
		h := int(float64(plot.Dy()) * v)
		x0 := plot.Min.X + i*slot + (slot-barW)/2
		bar := image.Rect(x0, plot.Max.Y-h, x0+barW, plot.Max.Y)
		fillRect(img, bar, accents[i%len(accents)])
		if values && bar.Min.Y-faceHeight(face) > plot.Min.Y {
			label := fmt.Sprintf("%d%%", int(v*100))
			drawStringCentered(img, face, label, bar.Min.X, bar.Max.X, bar.Min.Y-2, textMuted)
		}
	}
	hline(img, plot.Min.X, plot.Max.X-1, plot.Max.Y-1, textMuted)
}

func (r *Renderer) paintPie(img *image.RGBA, plot image.Rectangle) {
	cx := float64(plot.Min.X+plot.Max.X) / 2
	cy := float64(plot.Min.Y+plot.Max.Y) / 2
	rad := math.Min(float64(plot.Dx()), float64(plot.Dy()))/2 - 1
	if rad < 2 {
		return
	}
	fractions := []float64{0.45, 0.30, 0.25}
	for y := plot.Min.Y; y < plot.Max.Y; y++ {
		for x := plot.Min.X; x < plot.Max.X; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy > rad*rad {
				continue
			}
			// angle from 12 o'clock, clockwise, normalized to [0,1)
			ang := math.Atan2(dx, -dy)
			if ang < 0 {
				ang += 2 * math.Pi
			}
			frac := ang / (2 * math.Pi)
			acc := 0.0
			for i, f := range fractions {
				acc += f
				if frac < acc || i == len(fractions)-1 {
					img.SetRGBA(x, y, accents[i%len(accents)])
					break
				}
			}
		}
	}
}

func (r *Renderer) paintLineSeries(img *image.RGBA, plot image.Rectangle) {
	n := len(chartSeries)
	prevX, prevY := 0, 0
	for i, v := range chartSeries {
		x := plot.Min.X + i*(plot.Dx()-1)/(n-1)
		y := plot.Max.Y - 1 - int(float64(plot.Dy()-1)*v)
		if i > 0 {
			drawLine(img, prevX, prevY, x, y, accents[0])
		}
		fillRect(img, image.Rect(x-2, y-2, x+2, y+2), accents[0])
		prevX, prevY = x, y
	}
	hline(img, plot.Min.X, plot.Max.X-1, plot.Max.Y-1, textMuted)
}

func (r *Renderer) paintChartLegend(img *image.RGBA, legend image.Rectangle) {
	face := r.fonts.face(9, false)
	x := legend.Min.X
	baseline := legend.Min.Y + faceAscent(face)
	for i, key := range []string{"sales", "purchases"} {
		fillRect(img, image.Rect(x, legend.Min.Y+1, x+9, legend.Min.Y+10), accents[i%len(accents)])
		label := r.tr(key)
		drawString(img, face, label, x+13, baseline, textMuted)
		x += 13 + textWidth(face, label) + 14
	}
}

type tableColumn struct {
	key        string
	weight     float64
	alignRight bool
}

func (r *Renderer) paintTable(ctx context.Context, img *image.RGBA, e *model.Element, rect image.Rectangle) {
	st := e.Table
	if st == nil {
		st = &model.TableStyle{ShowDate: true, ShowAmount: true}
	}
	fillRect(img, rect, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	strokeRect(img, rect, bandRule)

	var cols []tableColumn
	if st.ShowDate {
		cols = append(cols, tableColumn{key: "date", weight: 1})
	}
	if st.ShowCounterparty {
		cols = append(cols, tableColumn{key: "counterparty", weight: 1.4})
	}
	if st.ShowDescription {
		cols = append(cols, tableColumn{key: "description", weight: 1.8})
	}
	if st.ShowAmount {
		cols = append(cols, tableColumn{key: "amount", weight: 1, alignRight: true})
	}
	if st.ShowStatus {
		cols = append(cols, tableColumn{key: "status", weight: 0.9})
	}
	if len(cols) == 0 {
		r.placeholderBox(img, rect, r.tr("no columns"))
		return
	}

	const headerH, rowH = 20, 17
	maxRows := (rect.Dy() - headerH - 2) / rowH
	if st.MaxRows > 0 && st.MaxRows < maxRows {
		maxRows = st.MaxRows
	}
	if maxRows < 0 {
		maxRows = 0
	}

	rows := r.tableRows(ctx, st, maxRows)

	total := 0.0
	for _, c := range cols {
		total += c.weight
	}
	xs := make([]int, len(cols)+1)
	xs[0] = rect.Min.X + 1
	acc := 0.0
	for i, c := range cols {
		acc += c.weight
		xs[i+1] = rect.Min.X + 1 + int(float64(rect.Dx()-2)*acc/total)
	}

	header := image.Rect(rect.Min.X+1, rect.Min.Y+1, rect.Max.X-1, rect.Min.Y+1+headerH)
	fillRect(img, header, bandFill)
	hline(img, header.Min.X, header.Max.X-1, header.Max.Y-1, bandRule)
	hdrFace := r.fonts.face(10, true)
	rowFace := r.fonts.face(10, false)
	for i, c := range cols {
		r.drawCell(img, hdrFace, r.tr(c.key), xs[i], xs[i+1], header.Min.Y+(headerH+faceAscent(hdrFace))/2-1, c.alignRight, textPrimary)
		if i > 0 {
			vline(img, xs[i], header.Min.Y, rect.Max.Y-2, gridMinor)
		}
	}

	if len(rows) == 0 {
		body := image.Rect(rect.Min.X, header.Max.Y, rect.Max.X, rect.Max.Y)
		face := r.fonts.face(11, false)
		drawStringCentered(img, face, r.tr("no data"), body.Min.X, body.Max.X, body.Min.Y+(body.Dy()+faceAscent(face))/2, textMuted)
		return
	}

	y := header.Max.Y
	for ri, row := range rows {
		if y+rowH > rect.Max.Y-1 {
			break
		}
		if st.AlternateRows && ri%2 == 1 {
			fillRect(img, image.Rect(rect.Min.X+1, y, rect.Max.X-1, y+rowH), placeholderBg)
		}
		baseline := y + (rowH+faceAscent(rowFace))/2 - 1
		for i, c := range cols {
			r.drawCell(img, rowFace, cellText(row, c.key), xs[i], xs[i+1], baseline, c.alignRight, textPrimary)
		}
		y += rowH
	}
}

func (r *Renderer) drawCell(img *image.RGBA, face font.Face, text string, x0, x1, baseline int, alignRight bool, col color.Color) {
	const pad = 4
	x := x0 + pad
	if alignRight {
		x = x1 - pad - textWidth(face, text)
	}
	drawString(img, face, text, x, baseline, col)
}

func cellText(t ledger.Transaction, key string) string {
	switch key {
	case "date":
		return t.Date.Format("2006-01-02")
	case "counterparty":
		return t.Counterparty
	case "description":
		return t.Description
	case "amount":
		return fmt.Sprintf("%.2f", t.Amount)
	case "status":
		return string(t.Status)
	}
	return ""
}

// tableRows fetches live data for the element's configured query; a missing
// provider or a query error renders as an empty table, never an error.
func (r *Renderer) tableRows(ctx context.Context, st *model.TableStyle, limit int) []ledger.Transaction {
	if r.Data == nil || limit <= 0 {
		return nil
	}
	rows, err := r.Data.Transactions(ctx, ledger.Query{
		From: r.PeriodFrom, To: r.PeriodTo,
		SortBy: st.SortBy, SortOrder: st.SortOrder,
		Limit: limit,
	})
	if err != nil {
		r.log.Debug("table query failed", slog.Any("err", err))
		return nil
	}
	return rows
}

func (r *Renderer) paintLabel(img *image.RGBA, e *model.Element, rect image.Rectangle) {
	st := e.Label
	if st == nil {
		st = &model.LabelStyle{Text: "Label", FontSize: 14}
	}
	col := model.ColorOr(st.Color, textPrimary)
	face := r.fonts.face(st.FontSize, st.Bold)
	const pad = 4
	baseline := rect.Min.Y + (rect.Dy()+faceAscent(face))/2 - 1
	switch st.Alignment {
	case "center":
		drawStringCentered(img, face, st.Text, rect.Min.X, rect.Max.X, baseline, col)
	case "right":
		drawString(img, face, st.Text, rect.Max.X-pad-textWidth(face, st.Text), baseline, col)
	default:
		drawString(img, face, st.Text, rect.Min.X+pad, baseline, col)
	}
}

func (r *Renderer) paintImage(img *image.RGBA, e *model.Element, rect image.Rectangle) {
	st := e.Image
	if st == nil || st.Path == "" {
		r.placeholderBox(img, rect, r.tr("image not found"))
		return
	}
	src, err := loadImage(st.Path)
	if err != nil {
		r.log.Debug("image load failed", slog.String("path", st.Path), slog.Any("err", err))
		r.placeholderBox(img, rect, r.tr("image not found"))
		return
	}
	opacity := st.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	drawImageScaled(img, rect, src, st.ScaleMode, opacity)
	strokeRect(img, rect, bandRule)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	return src, err
}

// drawImageScaled paints src into rect with nearest-neighbor sampling.
// fit letterboxes, fill covers (relying on the caller's clip), stretch maps
// the full source onto the full rect.
func drawImageScaled(dst *image.RGBA, rect image.Rectangle, src image.Image, mode string, opacity float64) {
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return
	}
	target := rect
	switch mode {
	case "fill":
		scale := math.Max(float64(rect.Dx())/float64(sb.Dx()), float64(rect.Dy())/float64(sb.Dy()))
		target = centeredRect(rect, int(float64(sb.Dx())*scale), int(float64(sb.Dy())*scale))
	case "stretch":
		// target stays rect
	default: // fit
		scale := math.Min(float64(rect.Dx())/float64(sb.Dx()), float64(rect.Dy())/float64(sb.Dy()))
		target = centeredRect(rect, int(float64(sb.Dx())*scale), int(float64(sb.Dy())*scale))
	}
	if target.Dx() <= 0 || target.Dy() <= 0 {
		return
	}
	a := uint8(opacity * 255)
	visible := target.Intersect(rect)
	for y := visible.Min.Y; y < visible.Max.Y; y++ {
		sy := sb.Min.Y + (y-target.Min.Y)*sb.Dy()/target.Dy()
		for x := visible.Min.X; x < visible.Max.X; x++ {
			sx := sb.Min.X + (x-target.Min.X)*sb.Dx()/target.Dx()
			cr, cg, cb, ca := src.At(sx, sy).RGBA()
			px := color.RGBA{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8), A: uint8(ca >> 8)}
			if a < 255 {
				px.A = uint8(uint32(px.A) * uint32(a) / 255)
			}
			if px.A == 255 {
				dst.SetRGBA(x, y, px)
			} else if px.A > 0 {
				dst.SetRGBA(x, y, blend(dst.RGBAAt(x, y), px))
			}
		}
	}
}

func centeredRect(in image.Rectangle, w, h int) image.Rectangle {
	x0 := in.Min.X + (in.Dx()-w)/2
	y0 := in.Min.Y + (in.Dy()-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

func (r *Renderer) paintDateRange(img *image.RGBA, e *model.Element, rect image.Rectangle) {
	st := e.DateRange
	if st == nil {
		st = &model.DateRangeStyle{}
	}
	format := st.Format
	if format == "" {
		format = "2006-01-02"
	}
	fillRect(img, rect, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	strokeRect(img, rect, bandRule)

	text := r.tr("all dates")
	if !r.PeriodFrom.IsZero() || !r.PeriodTo.IsZero() {
		text = fmt.Sprintf("%s – %s", r.PeriodFrom.Format(format), r.PeriodTo.Format(format))
	}
	face := r.fonts.face(11, false)
	drawStringCentered(img, face, text, rect.Min.X, rect.Max.X, rect.Min.Y+(rect.Dy()+faceAscent(face))/2, textPrimary)
}

func (r *Renderer) paintSummary(ctx context.Context, img *image.RGBA, e *model.Element, rect image.Rectangle) {
	st := e.Summary
	if st == nil {
		st = &model.SummaryStyle{IncludeSales: true, IncludeBalance: true}
	}
	fillRect(img, rect, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	strokeRect(img, rect, bandRule)

	var tot ledger.Totals
	haveData := false
	if r.Data != nil {
		if t, err := r.Data.Totals(ctx, r.PeriodFrom, r.PeriodTo); err == nil {
			tot, haveData = t, true
		} else {
			r.log.Debug("summary totals failed", slog.Any("err", err))
		}
	}
	amount := func(v float64) string {
		if !haveData {
			return "—"
		}
		return fmt.Sprintf("%.2f", v)
	}

	type line struct{ label, value string }
	var lines []line
	if st.IncludeSales {
		lines = append(lines, line{r.tr("sales"), amount(tot.Sales)})
	}
	if st.IncludePurchases {
		lines = append(lines, line{r.tr("purchases"), amount(tot.Purchases)})
	}
	if st.IncludeBalance {
		lines = append(lines, line{r.tr("balance"), amount(tot.Balance)})
	}
	if st.IncludeCount {
		v := "—"
		if haveData {
			v = fmt.Sprintf("%d", tot.Count)
		}
		lines = append(lines, line{r.tr("transactions"), v})
	}

	titleFace := r.fonts.face(12, true)
	lineFace := r.fonts.face(11, false)
	const pad = 8
	y := rect.Min.Y + pad + faceAscent(titleFace)
	drawString(img, titleFace, r.tr("summary"), rect.Min.X+pad, y, textPrimary)
	y += 6
	for _, ln := range lines {
		y += faceHeight(lineFace) + 3
		if y > rect.Max.Y-2 {
			break
		}
		drawString(img, lineFace, ln.label, rect.Min.X+pad, y, textMuted)
		drawString(img, lineFace, ln.value, rect.Max.X-pad-textWidth(lineFace, ln.value), y, textPrimary)
	}
}
