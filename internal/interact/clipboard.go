/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

import (
	"argobooks/internal/geom"
	"argobooks/internal/model"
	"argobooks/internal/undo"
)

// Copy snapshots the current selection into the designer clipboard. Copies
// are deep clones so later edits to the originals do not leak into pastes.
func (c *Controller) Copy() {
	els := c.Selection.Elements()
	if len(els) == 0 {
		return
	}
	c.clipboard = c.clipboard[:0]
	for _, e := range els {
		c.clipboard = append(c.clipboard, e.Clone(e.ID))
	}
	c.pasteCount = 0
}

// Paste clones the clipboard onto the configuration. Every paste produces
// fresh ids, offset by a constant +20,+20 from the previous paste, and the
// selection is replaced with the newest copies. One undo entry per paste.
func (c *Controller) Paste() []*model.Element {
	if len(c.clipboard) == 0 {
		return nil
	}
	c.pasteCount++
	offset := pasteOffset * float64(c.pasteCount)
	pageW, pageH := c.cfg.PageDims()

	var out []*model.Element
	var acts []undo.Action
	var ids []string
	for _, src := range c.clipboard {
		n := src.Clone(c.cfg.NewElementID())
		n.ZOrder = c.cfg.MaxZOrder() + 1
		n.SetBounds(geom.ClampToPage(
			geom.R(src.X+offset, src.Y+offset, src.Width, src.Height), pageW, pageH))
		c.cfg.AddElement(n)
		acts = append(acts, &undo.AddElement{Element: n})
		ids = append(ids, n.ID)
		out = append(out, n)
	}
	c.Selection.Set(ids...)
	if len(acts) == 1 {
		c.undo.Record(acts[0])
	} else {
		c.undo.Record(&undo.Composite{Label: "paste", Actions: acts})
	}
	return out
}
