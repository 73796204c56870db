/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"argobooks/internal/render"
	"argobooks/internal/storage"
)

// ExportPDF writes all selected pages into one PDF at outPath. Pages are
// rendered to rasters at the designer's 96 DPI and embedded 1:1, so the PDF
// matches the on-screen preview exactly. A relative outPath is placed under
// the workspace's exports folder.
func ExportPDF(ctx context.Context, h *storage.Handle, outPath string, opt Options) error {
	if h == nil || h.Config == nil {
		return fmt.Errorf("report handle is nil")
	}
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(h.Root, "exports", outPath)
	}

	pxW, pxH := h.Config.PageDims()
	// raster pixels are 96 DPI; PDF points are 1/72"
	ptW := pxW * 72.0 / 96.0
	ptH := pxH * 72.0 / 96.0

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: ptW, Ht: ptH},
		OrientationStr: "",
	})
	pdf.SetTitle(h.Config.Title, true)
	pdf.SetAuthor("ArgoBooks", false)

	r := newRenderer(h, opt)
	for _, page := range pageNumbers(h.Config.PageCount, opt.Pages) {
		img := r.RenderPage(ctx, page, render.Overlay{})

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encode page %d: %w", page, err)
		}
		name := fmt.Sprintf("page-%d", page)
		imgOpt := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, imgOpt, &buf)

		pdf.AddPageFormat("", gofpdf.SizeType{Wd: ptW, Ht: ptH})
		pdf.ImageOptions(name, 0, 0, ptW, ptH, false, imgOpt, 0, "")
	}
	if pdf.Err() {
		return fmt.Errorf("build pdf: %v", pdf.Error())
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
