/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import "testing"

func TestAddElementAssignsIDAndZOrder(t *testing.T) {
	cfg := NewReportConfiguration("Q1")
	a := cfg.AddElement(NewElement(KindLabel))
	b := cfg.AddElement(NewElement(KindChart))
	if a.ID != "e1" || b.ID != "e2" {
		t.Fatalf("sequential ids expected, got %q %q", a.ID, b.ID)
	}
	if b.ZOrder <= a.ZOrder {
		t.Fatalf("later element must stack above, got %d <= %d", b.ZOrder, a.ZOrder)
	}
}

func TestCloneGetsNewIDAndDeepCopies(t *testing.T) {
	cfg := NewReportConfiguration("Q1")
	src := cfg.AddElement(NewElement(KindLabel))
	src.Label.Text = "Revenue"
	dup := src.Clone(cfg.NewElementID())
	if dup.ID == src.ID {
		t.Fatalf("clone must not share identity")
	}
	dup.Label.Text = "Costs"
	if src.Label.Text != "Revenue" {
		t.Fatalf("clone style must be a deep copy")
	}
}

func TestRemoveElementNotifies(t *testing.T) {
	cfg := NewReportConfiguration("Q1")
	e := cfg.AddElement(NewElement(KindTable))
	var got []Change
	cfg.Subscribe(func(ch Change) { got = append(got, ch) })
	if !cfg.RemoveElement(e.ID) {
		t.Fatalf("remove should succeed")
	}
	if cfg.RemoveElement(e.ID) {
		t.Fatalf("second remove should be a no-op")
	}
	if len(got) != 1 || got[0].Field != FieldElements || got[0].ElementID != e.ID {
		t.Fatalf("unexpected notifications: %+v", got)
	}
}

func TestByZOrderStableTies(t *testing.T) {
	cfg := NewReportConfiguration("Q1")
	a := cfg.AddElement(NewElement(KindLabel))
	b := cfg.AddElement(NewElement(KindLabel))
	a.ZOrder = 5
	b.ZOrder = 5
	ordered := cfg.ByZOrder()
	if ordered[0] != a || ordered[1] != b {
		t.Fatalf("ties must keep insertion order")
	}
}

func TestMinSizePerKind(t *testing.T) {
	if s := KindTable.MinSize(); s.X != 100 || s.Y != 60 {
		t.Fatalf("unexpected table minimum: %+v", s)
	}
	if s := KindLabel.MinSize(); s.X != 50 || s.Y != 30 {
		t.Fatalf("unexpected label minimum: %+v", s)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FF8000")
	if err != nil || c.R != 0xFF || c.G != 0x80 || c.B != 0x00 || c.A != 0xFF {
		t.Fatalf("unexpected rgb parse: %+v err=%v", c, err)
	}
	c, err = ParseColor("#80FF8000")
	if err != nil || c.A != 0x80 {
		t.Fatalf("unexpected argb parse: %+v err=%v", c, err)
	}
	for _, bad := range []string{"", "FF8000", "#F80", "#GGGGGG", "#12345"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
	def := ColorOr("oops", c)
	if def != c {
		t.Fatalf("ColorOr must fall back to default")
	}
}
