/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ledger

import (
	"context"
	"strings"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func sampleRows() []Transaction {
	return []Transaction{
		{ID: 1, Kind: KindSale, Date: day(1), Counterparty: "Acme GmbH", Amount: 100, Status: StatusPaid},
		{ID: 2, Kind: KindPurchase, Date: day(2), Counterparty: "Büro Nord", Amount: 40, Status: StatusOpen},
		{ID: 3, Kind: KindSale, Date: day(3), Counterparty: "Zeta AG", Amount: 250, Status: StatusOpen},
		{ID: 4, Kind: KindSale, Date: day(10), Counterparty: "Acme GmbH", Amount: 75, Status: StatusOverdue},
	}
}

func TestStaticFilterSortLimit(t *testing.T) {
	p := &Static{Rows: sampleRows()}
	rows, err := p.Transactions(context.Background(), Query{Kind: KindSale, SortBy: "amount", SortOrder: "desc", Limit: 2})
	if err != nil {
		t.Fatalf("transactions: %+v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Amount != 250 || rows[1].Amount != 100 {
		t.Fatalf("wrong order: %v, %v", rows[0].Amount, rows[1].Amount)
	}
}

func TestStaticDateRange(t *testing.T) {
	p := &Static{Rows: sampleRows()}
	rows, err := p.Transactions(context.Background(), Query{From: day(2), To: day(5)})
	if err != nil {
		t.Fatalf("transactions: %+v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows in range, got %d", len(rows))
	}
}

func TestStaticTotals(t *testing.T) {
	p := &Static{Rows: sampleRows()}
	tot, err := p.Totals(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("totals: %+v", err)
	}
	if tot.Sales != 425 || tot.Purchases != 40 || tot.Balance != 385 || tot.Count != 4 {
		t.Fatalf("unexpected totals: %+v", tot)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open store: %+v", err)
	}
	defer s.Close()

	for _, tr := range sampleRows() {
		if err := s.Insert(ctx, tr); err != nil {
			t.Fatalf("insert: %+v", err)
		}
	}

	rows, err := s.Transactions(ctx, Query{Kind: KindSale, SortBy: "amount", SortOrder: "desc"})
	if err != nil {
		t.Fatalf("transactions: %+v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 sales, got %d", len(rows))
	}
	if rows[0].Amount != 250 {
		t.Fatalf("expected biggest sale first, got %v", rows[0].Amount)
	}

	tot, err := s.Totals(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("totals: %+v", err)
	}
	if tot.Balance != 385 {
		t.Fatalf("expected balance 385, got %v", tot.Balance)
	}
}

func TestSQLiteSortColumnWhitelist(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open store: %+v", err)
	}
	defer s.Close()
	if err := s.Insert(ctx, sampleRows()[0]); err != nil {
		t.Fatalf("insert: %+v", err)
	}
	// an unknown (or hostile) sort column must fall back to date, not error
	if _, err := s.Transactions(ctx, Query{SortBy: "id; DROP TABLE transactions"}); err != nil {
		t.Fatalf("whitelist fallback should not error: %+v", err)
	}
}

func TestBuildListQueryPlaceholders(t *testing.T) {
	q := Query{Kind: KindSale, From: day(1), To: day(5), Limit: 7}
	sqlq, args := buildListQuery(q, '$')
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	for _, want := range []string{"kind = $1", "date >= $2", "date <= $3", "LIMIT 7"} {
		if !strings.Contains(sqlq, want) {
			t.Fatalf("query missing %q: %s", want, sqlq)
		}
	}
	sqlq, _ = buildListQuery(q, '?')
	if strings.Contains(sqlq, "$") {
		t.Fatalf("sqlite query must use ? placeholders: %s", sqlq)
	}
}
