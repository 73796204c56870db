/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

import (
	"sort"

	"argobooks/internal/geom"
	"argobooks/internal/model"
)

// HitTest returns the topmost visible element under the content-space point,
// restricted to the page the point falls on. Points in the inter-page gap hit
// nothing. Higher z-order is tested first; ties go to the later insertion.
func (c *Controller) HitTest(p geom.Pt) *model.Element {
	pg, localY, ok := geom.PageAt(p.Y, c.pageH(), c.cfg.PageCount)
	if !ok {
		return nil
	}
	local := geom.Pt{X: p.X, Y: localY}
	els := c.cfg.OnPage(pg)
	// descending z-order, later insertion winning ties
	sort.SliceStable(els, func(i, j int) bool { return els[i].ZOrder > els[j].ZOrder })
	for _, e := range els {
		if e.Visible && e.Bounds().Contains(local) {
			return e
		}
	}
	return nil
}

// hitHandle tests the resize handles of every selected element, using the
// enlarged hit-box. Locked elements expose no handles; resize is
// single-element only, so the first hit wins.
func (c *Controller) hitHandle(p geom.Pt) (*model.Element, geom.Handle, bool) {
	for _, e := range c.Selection.Elements() {
		if e.Locked || !e.Visible {
			continue
		}
		local := geom.Pt{X: p.X, Y: p.Y - geom.PageOriginY(e.PageNumber, c.pageH())}
		for h, hr := range geom.HandleRects(e.Bounds(), HandleHit) {
			if hr.Contains(local) {
				return e, geom.Handle(h), true
			}
		}
	}
	return nil, 0, false
}
