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
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses "#RRGGBB" and "#AARRGGBB" strings, the only serialized
// color formats the renderer accepts.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color %q: missing '#'", s)
	}
	hex := s[1:]
	var a, r, g, b uint64
	var err error
	switch len(hex) {
	case 6:
		a = 0xFF
		r, g, b, err = parseRGB(hex)
	case 8:
		a, err = strconv.ParseUint(hex[0:2], 16, 8)
		if err == nil {
			r, g, b, err = parseRGB(hex[2:])
		}
	default:
		return color.RGBA{}, fmt.Errorf("color %q: want #RRGGBB or #AARRGGBB", s)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// ColorOr parses s, falling back to def on any malformed input. Rendering must
// never fail on bad per-element data.
func ColorOr(s string, def color.RGBA) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}

func parseRGB(hex string) (r, g, b uint64, err error) {
	if r, err = strconv.ParseUint(hex[0:2], 16, 8); err != nil {
		return
	}
	if g, err = strconv.ParseUint(hex[2:4], 16, 8); err != nil {
		return
	}
	b, err = strconv.ParseUint(hex[4:6], 16, 8)
	return
}
