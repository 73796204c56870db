//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"argobooks/internal/config"
	"argobooks/internal/crash"
	"argobooks/internal/export"
	"argobooks/internal/geom"
	"argobooks/internal/i18n"
	"argobooks/internal/interact"
	"argobooks/internal/ledger"
	applog "argobooks/internal/log"
	"argobooks/internal/model"
	"argobooks/internal/preview"
	"argobooks/internal/render"
	"argobooks/internal/storage"
	"argobooks/internal/telemetry"
	"argobooks/internal/undo"
	"argobooks/internal/viewport"
)

// Run starts the Fyne-based report designer on the given workspace directory.
// An empty directory opens (or initializes) the current directory.
func Run(workspaceDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting designer")

	var h *storage.Handle
	defer func() { crash.Recover(h) }()

	appCfg, _, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		appCfg = config.Defaults()
	}
	cat, err := i18n.LoadCatalog(appCfg.General.Language)
	if err != nil {
		l.Warn("catalog load failed, labels render as keys", slog.Any("err", err))
	}

	if workspaceDir == "" {
		workspaceDir = "."
	}
	h, err = storage.Open(workspaceDir)
	if err != nil {
		l.Info("no report manifest found, initializing workspace", slog.String("dir", workspaceDir))
		h, err = storage.Init(workspaceDir, model.NewReportConfiguration("Untitled Report"))
		if err != nil {
			return fmt.Errorf("open workspace %s: %w", workspaceDir, err)
		}
	}
	rcfg := h.Config

	telemetry.InitDefault()
	telemetry.Event(telemetry.EventDesignerStarted, nil)
	telemetry.Event(telemetry.EventReportOpened, map[string]any{
		"pages":    rcfg.PageCount,
		"elements": len(rcfg.Elements),
	})

	data := openLedger(appCfg, l)
	defer closeLedger(data)

	um := undo.NewManager(rcfg, 100)
	ctrl := interact.NewController(rcfg, um)
	view := viewport.NewController()

	prev := preview.NewService()
	prev.Translate = cat.Translate
	defer prev.Close()

	fyneApp := app.NewWithID("argobooks")
	w := fyneApp.NewWindow("ArgoBooks - " + rcfg.Title)
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1200)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	st := &appState{
		win:    w,
		handle: h,
		cfg:    rcfg,
		data:   data,
		undo:   um,
		ctrl:   ctrl,
		view:   view,
		prev:   prev,
		cat:    cat,
		log:    l,
		status: widget.NewLabel("Ready"),
	}
	st.dc = newDesignerCanvas(st)
	st.syncContentSize()

	ctrl.OnPan = func(dx, dy float64) {
		// The controller reports content-space deltas; the viewport pans in
		// device space.
		view.Pan(dx*view.Zoom(), dy*view.Zoom())
		st.dc.Refresh()
	}
	ctrl.OnContextMenu = func(at geom.Pt) { st.showContextMenu(at) }

	unsubscribe := rcfg.Subscribe(func(model.Change) {
		st.syncContentSize()
		st.requestRender()
	})
	defer unsubscribe()

	// Render worker results drive the canvas image. Results arrive on the
	// worker goroutine, so hop onto the UI thread.
	go func() {
		for res := range prev.Results() {
			img := res.Image
			fyne.Do(func() {
				st.dc.setImage(img)
				st.updateStatus()
			})
		}
	}()

	w.SetContent(container.NewBorder(st.buildTopBar(), st.status, st.buildToolbox(), nil, st.dc))
	st.bindKeys()

	w.SetOnClosed(func() {
		prefs.SetInt("window.width", int(w.Canvas().Size().Width))
		prefs.SetInt("window.height", int(w.Canvas().Size().Height))
		if err := storage.Save(h); err != nil {
			l.Error("save on close failed", slog.Any("err", err))
		}
	})

	st.requestRender()
	st.updateStatus()
	w.ShowAndRun()
	return nil
}

// openLedger connects the configured accounting data source. A failure is not
// fatal: the designer renders placeholder data without a provider.
func openLedger(appCfg config.AppConfig, l *slog.Logger) ledger.Provider {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(appCfg.Ledger.TimeoutMs)*time.Millisecond)
	defer cancel()
	switch appCfg.Ledger.Driver {
	case "postgres":
		s, err := ledger.OpenShared(ctx, appCfg.Ledger.DSN)
		if err != nil {
			l.Warn("shared ledger unavailable", slog.Any("err", err))
			return nil
		}
		return s
	default:
		if appCfg.Ledger.Path == "" {
			return nil
		}
		s, err := ledger.OpenStore(ctx, appCfg.Ledger.Path)
		if err != nil {
			l.Warn("company file unavailable", slog.String("path", appCfg.Ledger.Path), slog.Any("err", err))
			return nil
		}
		return s
	}
}

func closeLedger(p ledger.Provider) {
	if c, ok := p.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}

// appState bundles the designer's long-lived pieces so widget callbacks can
// reach them without globals.
type appState struct {
	win    fyne.Window
	handle *storage.Handle
	cfg    *model.ReportConfiguration
	data   ledger.Provider
	undo   *undo.Manager
	ctrl   *interact.Controller
	view   *viewport.Controller
	prev   *preview.Service
	cat    *i18n.Catalog
	log    *slog.Logger

	dc     *designerCanvas
	status *widget.Label
}

func (s *appState) tr(key string) string { return s.cat.Translate(key) }

func (s *appState) requestRender() {
	s.prev.Request(s.cfg, s.data, render.Overlay{
		SelectedIDs: s.ctrl.Selection.IDs(),
		HoverID:     s.ctrl.Hovered(),
	})
}

func (s *appState) syncContentSize() {
	pageW, pageH := s.cfg.PageDims()
	s.view.SetContentSize(pageW, geom.PageOriginY(s.cfg.PageCount, pageH)+pageH)
}

func (s *appState) updateStatus() {
	undoDepth, _ := s.undo.Stats()
	s.status.SetText(fmt.Sprintf("%s  |  zoom %d%%  |  %d selected  |  %d undo",
		s.cfg.Title, int(s.view.Zoom()*100), s.ctrl.Selection.Len(), undoDepth))
}

// centerPage returns the page under the viewport center, for placing new
// elements somewhere visible.
func (s *appState) centerPage() int {
	_, pageH := s.cfg.PageDims()
	center := s.view.ToContent(geom.Pt{X: 0, Y: float64(s.dc.Size().Height) / 2})
	if pg, _, ok := geom.PageAt(center.Y, pageH, s.cfg.PageCount); ok {
		return pg
	}
	return 1
}

func (s *appState) addElement(kind model.ElementKind) {
	s.ctrl.AddNew(kind, s.centerPage())
	telemetry.Event(telemetry.EventElementAdded, map[string]any{"kind": string(kind)})
	s.requestRender()
	s.updateStatus()
}

func (s *appState) undoAction() {
	if s.undo.Undo() {
		s.requestRender()
		s.updateStatus()
	}
}

func (s *appState) redoAction() {
	if s.undo.Redo() {
		s.requestRender()
		s.updateStatus()
	}
}

func (s *appState) saveAction() {
	if err := storage.Save(s.handle); err != nil {
		dialog.ShowError(err, s.win)
		return
	}
	telemetry.Event(telemetry.EventReportSaved, map[string]any{"elements": len(s.cfg.Elements)})
	s.status.SetText("Saved " + s.handle.ManifestPath)
}

func (s *appState) exportPNGAction() {
	opt := export.Options{Data: s.data, Translate: s.cat.Translate}
	if err := export.ExportPNGPages(context.Background(), s.handle, "", opt); err != nil {
		dialog.ShowError(err, s.win)
		return
	}
	telemetry.Event(telemetry.EventExportPNG, map[string]any{"pages": s.cfg.PageCount})
	dialog.ShowInformation("Export", "PNG pages written to "+filepath.Join(s.handle.Root, "exports"), s.win)
}

func (s *appState) exportPDFAction() {
	opt := export.Options{Data: s.data, Translate: s.cat.Translate}
	out := filepath.Join(s.handle.Root, "exports", "report.pdf")
	if err := export.ExportPDF(context.Background(), s.handle, out, opt); err != nil {
		dialog.ShowError(err, s.win)
		return
	}
	telemetry.Event(telemetry.EventExportPDF, map[string]any{"pages": s.cfg.PageCount})
	dialog.ShowInformation("Export", "PDF written to "+out, s.win)
}

func (s *appState) zoomIn()  { s.view.ZoomIn(); s.dc.Refresh(); s.updateStatus() }
func (s *appState) zoomOut() { s.view.ZoomOut(); s.dc.Refresh(); s.updateStatus() }

func (s *appState) nudge(dx, dy float64, large bool) {
	s.ctrl.KeyNudge(dx, dy, large)
	s.updateStatus()
}

func (s *appState) deleteSelection() {
	s.ctrl.DeleteSelection()
	s.requestRender()
	s.updateStatus()
}

// animateSnapBack eases any rubber-band overscroll back to zero after a pan
// release.
func (s *appState) animateSnapBack() {
	if x, y := s.view.Overscroll(); x == 0 && y == 0 {
		return
	}
	go func() {
		t := time.NewTicker(16 * time.Millisecond)
		defer t.Stop()
		for range t.C {
			done := s.view.SnapBackStep()
			fyne.Do(s.dc.Refresh)
			if done {
				return
			}
		}
	}()
}

func (s *appState) showContextMenu(at geom.Pt) {
	pos := s.view.ToDevice(at)
	menu := fyne.NewMenu("",
		fyne.NewMenuItem("Bring to front", func() { s.ctrl.BringToFront(); s.updateStatus() }),
		fyne.NewMenuItem("Send to back", func() { s.ctrl.SendToBack(); s.updateStatus() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy", func() { s.ctrl.Copy() }),
		fyne.NewMenuItem("Paste", func() { s.pasteAction() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete", func() { s.deleteSelection() }),
	)
	widget.ShowPopUpMenuAtPosition(menu, s.win.Canvas(), fyne.NewPos(float32(pos.X), float32(pos.Y)))
}

func (s *appState) pasteAction() {
	if els := s.ctrl.Paste(); len(els) > 0 {
		s.requestRender()
		s.updateStatus()
	}
}

func (s *appState) buildTopBar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewButton("Undo", s.undoAction),
		widget.NewButton("Redo", s.redoAction),
		widget.NewSeparator(),
		widget.NewButton("Save", s.saveAction),
		widget.NewButton("Export PNG", s.exportPNGAction),
		widget.NewButton("Export PDF", s.exportPDFAction),
		widget.NewSeparator(),
		widget.NewButton("-", s.zoomOut),
		widget.NewButton("+", s.zoomIn),
	)
}

func (s *appState) buildToolbox() fyne.CanvasObject {
	kinds := []model.ElementKind{
		model.KindChart, model.KindTable, model.KindLabel,
		model.KindImage, model.KindDateRange, model.KindSummary,
	}
	objs := []fyne.CanvasObject{widget.NewLabel("Insert")}
	for _, k := range kinds {
		kind := k
		objs = append(objs, widget.NewButton(s.tr(kind.DisplayName()), func() { s.addElement(kind) }))
	}
	objs = append(objs,
		widget.NewSeparator(),
		widget.NewLabel("Arrange"),
		widget.NewButton("Align left", func() { s.ctrl.Align(interact.AlignLeft) }),
		widget.NewButton("Align right", func() { s.ctrl.Align(interact.AlignRight) }),
		widget.NewButton("Align top", func() { s.ctrl.Align(interact.AlignTop) }),
		widget.NewButton("Align bottom", func() { s.ctrl.Align(interact.AlignBottom) }),
		widget.NewButton("Center horizontally", func() { s.ctrl.Align(interact.AlignCenterH) }),
		widget.NewButton("Center vertically", func() { s.ctrl.Align(interact.AlignCenterV) }),
		widget.NewButton("Distribute horizontally", func() { s.ctrl.DistributeHorizontal() }),
		widget.NewButton("Distribute vertically", func() { s.ctrl.DistributeVertical() }),
	)
	return container.NewVBox(objs...)
}

func (s *appState) bindKeys() {
	c := s.win.Canvas()
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyUp:
			s.nudge(0, -1, false)
		case fyne.KeyDown:
			s.nudge(0, 1, false)
		case fyne.KeyLeft:
			s.nudge(-1, 0, false)
		case fyne.KeyRight:
			s.nudge(1, 0, false)
		case fyne.KeyDelete, fyne.KeyBackspace:
			s.deleteSelection()
		case fyne.KeyEscape:
			s.ctrl.Selection.Clear()
			s.requestRender()
			s.updateStatus()
		}
	})

	type binding struct {
		key fyne.KeyName
		mod fyne.KeyModifier
		fn  func()
	}
	for _, b := range []binding{
		{fyne.KeyZ, fyne.KeyModifierControl, s.undoAction},
		{fyne.KeyY, fyne.KeyModifierControl, s.redoAction},
		{fyne.KeyZ, fyne.KeyModifierControl | fyne.KeyModifierShift, s.redoAction},
		{fyne.KeyS, fyne.KeyModifierControl, s.saveAction},
		{fyne.KeyC, fyne.KeyModifierControl, func() { s.ctrl.Copy() }},
		{fyne.KeyV, fyne.KeyModifierControl, s.pasteAction},
		{fyne.KeyEqual, fyne.KeyModifierControl, s.zoomIn},
		{fyne.KeyMinus, fyne.KeyModifierControl, s.zoomOut},
		{fyne.KeyUp, fyne.KeyModifierShift, func() { s.nudge(0, -1, true) }},
		{fyne.KeyDown, fyne.KeyModifierShift, func() { s.nudge(0, 1, true) }},
		{fyne.KeyLeft, fyne.KeyModifierShift, func() { s.nudge(-1, 0, true) }},
		{fyne.KeyRight, fyne.KeyModifierShift, func() { s.nudge(1, 0, true) }},
	} {
		fn := b.fn
		c.AddShortcut(&desktop.CustomShortcut{KeyName: b.key, Modifier: b.mod}, func(fyne.Shortcut) { fn() })
	}
}

// designerCanvas shows the rendered document and forwards pointer events,
// converted to content space, to the interaction controller.
type designerCanvas struct {
	widget.BaseWidget
	app *appState
	img *canvas.Image
}

func newDesignerCanvas(app *appState) *designerCanvas {
	d := &designerCanvas{
		app: app,
		img: canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
	}
	d.img.FillMode = canvas.ImageFillStretch
	d.ExtendBaseWidget(d)
	return d
}

func (d *designerCanvas) setImage(img image.Image) {
	d.img.Image = img
	d.Refresh()
}

func (d *designerCanvas) toContent(pos fyne.Position) geom.Pt {
	return d.app.view.ToContent(geom.Pt{X: float64(pos.X), Y: float64(pos.Y)})
}

func (d *designerCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &designerCanvasRenderer{dc: d}
}

func (d *designerCanvas) MouseDown(e *desktop.MouseEvent) {
	btn := interact.ButtonLeft
	if e.Button == desktop.MouseButtonSecondary {
		btn = interact.ButtonRight
	}
	mods := interact.Modifiers{
		Ctrl:  e.Modifier&fyne.KeyModifierControl != 0 || e.Modifier&fyne.KeyModifierSuper != 0,
		Shift: e.Modifier&fyne.KeyModifierShift != 0,
	}
	d.app.ctrl.PointerDown(d.toContent(e.Position), btn, mods)
	d.app.requestRender()
	d.app.updateStatus()
}

func (d *designerCanvas) MouseUp(e *desktop.MouseEvent) {
	d.app.ctrl.PointerUp(d.toContent(e.Position))
	d.app.animateSnapBack()
	d.app.requestRender()
	d.app.updateStatus()
}

func (d *designerCanvas) MouseIn(*desktop.MouseEvent) {}

func (d *designerCanvas) MouseMoved(e *desktop.MouseEvent) {
	before := d.app.ctrl.Hovered()
	d.app.ctrl.PointerMove(d.toContent(e.Position))
	if d.app.ctrl.State() != interact.Idle || d.app.ctrl.Hovered() != before {
		d.app.requestRender()
	}
}

func (d *designerCanvas) MouseOut() {}

func (d *designerCanvas) Scrolled(e *fyne.ScrollEvent) {
	cursor := geom.Pt{X: float64(e.Position.X), Y: float64(e.Position.Y)}
	if e.Scrolled.DX == 0 && e.Scrolled.DY != 0 {
		d.app.view.WheelZoom(cursor, float64(e.Scrolled.DY)*0.05)
		d.Refresh()
		d.app.updateStatus()
	}
}

type designerCanvasRenderer struct {
	dc *designerCanvas
}

func (r *designerCanvasRenderer) Layout(size fyne.Size) {
	v := r.dc.app.view
	v.SetViewSize(float64(size.Width), float64(size.Height))
	b := r.dc.img.Image.Bounds()
	z := v.Zoom()
	ox, oy := v.Offset()
	r.dc.img.Move(fyne.NewPos(float32(-ox), float32(-oy)))
	r.dc.img.Resize(fyne.NewSize(float32(float64(b.Dx())*z), float32(float64(b.Dy())*z)))
}

func (r *designerCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(800, 600)
}

func (r *designerCanvasRenderer) Refresh() {
	r.Layout(r.dc.Size())
	canvas.Refresh(r.dc.img)
}

func (r *designerCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.dc.img}
}

func (r *designerCanvasRenderer) Destroy() {}
