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

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// fontSet resolves text faces from the embedded Go fonts and caches them per
// size/weight. If parsing ever fails it falls back to the fixed basicfont
// face so rendering keeps working.
type fontSet struct {
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	size int
	bold bool
}

func newFontSet() *fontSet {
	fs := &fontSet{faces: make(map[faceKey]font.Face)}
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		fs.regular = f
	}
	if f, err := opentype.Parse(gobold.TTF); err == nil {
		fs.bold = f
	}
	return fs
}

func (fs *fontSet) face(sizePt float64, bold bool) font.Face {
	if sizePt <= 0 {
		sizePt = 12
	}
	key := faceKey{size: int(sizePt + 0.5), bold: bold}
	if f, ok := fs.faces[key]; ok {
		return f
	}
	src := fs.regular
	if bold && fs.bold != nil {
		src = fs.bold
	}
	if src == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size: float64(key.size), DPI: 96, Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	fs.faces[key] = face
	return face
}

// drawString renders text with its baseline at (x, y).
func drawString(dst *image.RGBA, face font.Face, text string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func textWidth(face font.Face, text string) int {
	d := &font.Drawer{Face: face}
	return d.MeasureString(text).Ceil()
}

func faceAscent(face font.Face) int {
	return face.Metrics().Ascent.Round()
}

func faceHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Round()
}

// drawStringCentered centers text horizontally in [x0,x1] with baseline y.
func drawStringCentered(dst *image.RGBA, face font.Face, text string, x0, x1, y int, col color.Color) {
	w := textWidth(face, text)
	drawString(dst, face, text, x0+(x1-x0-w)/2, y, col)
}
