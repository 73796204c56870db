/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package undo provides the batched move/resize/add/remove action log for the
// report designer. Each action captures enough state to apply and invert
// without re-deriving anything from the current configuration.
package undo

import (
	"argobooks/internal/geom"
	"argobooks/internal/model"
)

// Action is one reversible edit on a report configuration.
type Action interface {
	Apply(cfg *model.ReportConfiguration)
	Invert(cfg *model.ReportConfiguration)
	Name() string
}

// AddElement records the insertion of a single element.
type AddElement struct {
	Element *model.Element
}

func (a *AddElement) Name() string { return "add " + a.Element.Kind.DisplayName() }

func (a *AddElement) Apply(cfg *model.ReportConfiguration) {
	if cfg.FindElement(a.Element.ID) == nil {
		cfg.AddElement(a.Element)
	}
}

func (a *AddElement) Invert(cfg *model.ReportConfiguration) {
	cfg.RemoveElement(a.Element.ID)
}

// RemoveElement records the deletion of a single element.
type RemoveElement struct {
	Element *model.Element
}

func (a *RemoveElement) Name() string { return "remove " + a.Element.Kind.DisplayName() }

func (a *RemoveElement) Apply(cfg *model.ReportConfiguration) {
	cfg.RemoveElement(a.Element.ID)
}

func (a *RemoveElement) Invert(cfg *model.ReportConfiguration) {
	if cfg.FindElement(a.Element.ID) == nil {
		cfg.AddElement(a.Element)
	}
}

// RectChange is a before/after geometry pair.
type RectChange struct {
	Before, After geom.Rect
}

// MoveResize records a single element's geometry change.
type MoveResize struct {
	ElementID string
	Change    RectChange
}

func (a *MoveResize) Name() string { return "move/resize" }

func (a *MoveResize) Apply(cfg *model.ReportConfiguration) {
	if e := cfg.FindElement(a.ElementID); e != nil {
		e.SetBounds(a.Change.After)
	}
}

func (a *MoveResize) Invert(cfg *model.ReportConfiguration) {
	if e := cfg.FindElement(a.ElementID); e != nil {
		e.SetBounds(a.Change.Before)
	}
}

// BatchMoveResize records one undo entry for a multi-select gesture. Entries
// referencing elements deleted since recording are skipped, never fatal.
type BatchMoveResize struct {
	Entries map[string]RectChange
}

func (a *BatchMoveResize) Name() string { return "move selection" }

func (a *BatchMoveResize) Apply(cfg *model.ReportConfiguration) {
	for id, ch := range a.Entries {
		if e := cfg.FindElement(id); e != nil {
			e.SetBounds(ch.After)
		}
	}
}

func (a *BatchMoveResize) Invert(cfg *model.ReportConfiguration) {
	for id, ch := range a.Entries {
		if e := cfg.FindElement(id); e != nil {
			e.SetBounds(ch.Before)
		}
	}
}

// ZChange is a before/after z-order pair.
type ZChange struct {
	Before, After int
}

// BatchZOrder covers bring-to-front/send-to-back over a whole selection.
type BatchZOrder struct {
	Entries map[string]ZChange
}

func (a *BatchZOrder) Name() string { return "reorder" }

func (a *BatchZOrder) Apply(cfg *model.ReportConfiguration) {
	for id, ch := range a.Entries {
		if e := cfg.FindElement(id); e != nil {
			e.ZOrder = ch.After
		}
	}
}

func (a *BatchZOrder) Invert(cfg *model.ReportConfiguration) {
	for id, ch := range a.Entries {
		if e := cfg.FindElement(id); e != nil {
			e.ZOrder = ch.Before
		}
	}
}

// Composite groups several actions into one undo entry, e.g. a multi-element
// paste or delete.
type Composite struct {
	Label   string
	Actions []Action
}

func (a *Composite) Name() string {
	if a.Label != "" {
		return a.Label
	}
	return "edit"
}

func (a *Composite) Apply(cfg *model.ReportConfiguration) {
	for _, sub := range a.Actions {
		sub.Apply(cfg)
	}
}

func (a *Composite) Invert(cfg *model.ReportConfiguration) {
	for i := len(a.Actions) - 1; i >= 0; i-- {
		a.Actions[i].Invert(cfg)
	}
}
