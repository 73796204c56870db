/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ledger is the read-only accounting data surface consumed by table
// and summary element rendering. The designer treats it as an opaque
// provider; implementations back it with the local SQLite company file or a
// shared Postgres database.
package ledger

import (
	"context"
	"sort"
	"time"
)

type Kind string

const (
	KindSale     Kind = "sale"
	KindPurchase Kind = "purchase"
)

type Status string

const (
	StatusDraft   Status = "draft"
	StatusOpen    Status = "open"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Transaction is one sales or purchase record.
type Transaction struct {
	ID           int64
	Kind         Kind
	Date         time.Time
	Counterparty string
	Description  string
	Amount       float64
	Status       Status
}

// Totals are the aggregates the summary element renders.
type Totals struct {
	Sales     float64
	Purchases float64
	Balance   float64
	Count     int
}

// Query filters and orders a transaction listing.
type Query struct {
	From, To  time.Time
	Kind      Kind   // empty selects all kinds
	SortBy    string // date, amount, counterparty
	SortOrder string // asc, desc
	Limit     int    // 0 means no limit
}

// Provider is the read-only query surface.
type Provider interface {
	Transactions(ctx context.Context, q Query) ([]Transaction, error)
	Totals(ctx context.Context, from, to time.Time) (Totals, error)
}

// Static is an in-memory provider used for design-time previews and tests.
type Static struct {
	Rows []Transaction
}

func (s *Static) Transactions(_ context.Context, q Query) ([]Transaction, error) {
	var out []Transaction
	for _, t := range s.Rows {
		if !matches(t, q) {
			continue
		}
		out = append(out, t)
	}
	sortRows(out, q.SortBy, q.SortOrder)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *Static) Totals(_ context.Context, from, to time.Time) (Totals, error) {
	var tot Totals
	for _, t := range s.Rows {
		if !inRange(t.Date, from, to) {
			continue
		}
		tot.Count++
		switch t.Kind {
		case KindSale:
			tot.Sales += t.Amount
		case KindPurchase:
			tot.Purchases += t.Amount
		}
	}
	tot.Balance = tot.Sales - tot.Purchases
	return tot, nil
}

func matches(t Transaction, q Query) bool {
	if q.Kind != "" && t.Kind != q.Kind {
		return false
	}
	return inRange(t.Date, q.From, q.To)
}

func inRange(d, from, to time.Time) bool {
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}

func sortRows(rows []Transaction, by, order string) {
	desc := order == "desc"
	less := func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) }
	switch by {
	case "amount":
		less = func(i, j int) bool { return rows[i].Amount < rows[j].Amount }
	case "counterparty":
		less = func(i, j int) bool { return rows[i].Counterparty < rows[j].Counterparty }
	}
	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(rows, less)
}
