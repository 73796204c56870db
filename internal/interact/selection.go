/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

import "argobooks/internal/model"

// Selection is the ordered list of currently selected element ids, always a
// subset of the owning configuration's elements. Selection order is insertion
// order.
type Selection struct {
	cfg *model.ReportConfiguration
	ids []string
}

func NewSelection(cfg *model.ReportConfiguration) *Selection {
	return &Selection{cfg: cfg}
}

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []string { return append([]string(nil), s.ids...) }

func (s *Selection) Len() int { return len(s.ids) }

func (s *Selection) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Set replaces the selection.
func (s *Selection) Set(ids ...string) {
	s.ids = append(s.ids[:0], ids...)
}

func (s *Selection) Clear() { s.ids = s.ids[:0] }

// Add appends if not already present.
func (s *Selection) Add(id string) {
	if !s.Contains(id) {
		s.ids = append(s.ids, id)
	}
}

// Toggle flips membership (ctrl/shift click).
func (s *Selection) Toggle(id string) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
	s.ids = append(s.ids, id)
}

// Elements resolves the selection against the configuration, dropping stale
// ids on the way.
func (s *Selection) Elements() []*model.Element {
	out := make([]*model.Element, 0, len(s.ids))
	kept := s.ids[:0]
	for _, id := range s.ids {
		if e := s.cfg.FindElement(id); e != nil {
			out = append(out, e)
			kept = append(kept, id)
		}
	}
	s.ids = kept
	return out
}

// Invalidate removes ids that no longer resolve, called whenever the element
// set changes out from under the selection.
func (s *Selection) Invalidate() {
	kept := s.ids[:0]
	for _, id := range s.ids {
		if s.cfg.FindElement(id) != nil {
			kept = append(kept, id)
		}
	}
	s.ids = kept
}
