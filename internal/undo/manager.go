/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package undo

import "argobooks/internal/model"

// Manager holds the undo and redo stacks. All interaction state lives on the
// UI goroutine, so the manager is not locked.
type Manager struct {
	cfg      *model.ReportConfiguration
	undo     []Action
	redo     []Action
	maxDepth int

	// SuppressRecording makes Record a no-op while true. The interaction
	// layer sets it for the duration of a gesture so per-pixel mutations do
	// not flood the stack; the gesture records one batch after clearing it.
	SuppressRecording bool
}

// NewManager creates a manager for the given configuration. maxDepth <= 0
// defaults to 100 entries; the oldest entries are pruned beyond that.
func NewManager(cfg *model.ReportConfiguration, maxDepth int) *Manager {
	if maxDepth <= 0 {
		maxDepth = 100
	}
	return &Manager{cfg: cfg, maxDepth: maxDepth}
}

// Record pushes an action onto the undo stack and clears the redo stack.
// The action is assumed to be already applied to the configuration.
func (m *Manager) Record(a Action) {
	if m.SuppressRecording || a == nil {
		return
	}
	m.undo = append(m.undo, a)
	m.redo = nil
	if len(m.undo) > m.maxDepth {
		m.undo = append([]Action(nil), m.undo[len(m.undo)-m.maxDepth:]...)
	}
}

// Undo pops and inverts the newest action, moving it to the redo stack.
func (m *Manager) Undo() bool {
	n := len(m.undo)
	if n == 0 {
		return false
	}
	a := m.undo[n-1]
	m.undo = m.undo[:n-1]
	a.Invert(m.cfg)
	m.redo = append(m.redo, a)
	m.cfg.Notify(model.Change{Field: model.FieldElements})
	return true
}

// Redo re-applies the newest undone action and pushes it back to undo.
func (m *Manager) Redo() bool {
	n := len(m.redo)
	if n == 0 {
		return false
	}
	a := m.redo[n-1]
	m.redo = m.redo[:n-1]
	a.Apply(m.cfg)
	m.undo = append(m.undo, a)
	m.cfg.Notify(model.Change{Field: model.FieldElements})
	return true
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Stats returns current stack depths for diagnostics.
func (m *Manager) Stats() (undoDepth, redoDepth int) {
	return len(m.undo), len(m.redo)
}
