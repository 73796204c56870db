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
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	applog "argobooks/internal/log"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    date TEXT NOT NULL,
    counterparty TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    amount REAL NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'open'
);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_kind ON transactions(kind);
`

// Store is the local company file, a SQLite database. It implements Provider.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// OpenStore opens (and bootstraps) the company file at path. Use ":memory:"
// for an ephemeral store.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	l := applog.WithComponent("ledger")
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	if path == ":memory:" {
		dsn = path
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure ledger schema: %w", err)
	}
	return &Store{db: db, log: l}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Insert adds a transaction; used by company-file import and by tests.
func (s *Store) Insert(ctx context.Context, t Transaction) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (kind, date, counterparty, description, amount, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(t.Kind), t.Date.Format(time.RFC3339), t.Counterparty, t.Description, t.Amount, string(t.Status))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (s *Store) Transactions(ctx context.Context, q Query) ([]Transaction, error) {
	sqlq, args := buildListQuery(q, '?')
	rows, err := s.db.QueryContext(ctx, sqlq, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

func (s *Store) Totals(ctx context.Context, from, to time.Time) (Totals, error) {
	return totalsFrom(ctx, s, from, to)
}

// buildListQuery assembles the filtered, sorted listing for both drivers.
// marker '?' produces SQLite placeholders, '$' produces $1.. for Postgres.
func buildListQuery(q Query, marker byte) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT id, kind, date, counterparty, description, amount, status FROM transactions")
	var conds []string
	var args []any
	ph := func() string {
		if marker == '$' {
			return fmt.Sprintf("$%d", len(args))
		}
		return "?"
	}
	if q.Kind != "" {
		args = append(args, string(q.Kind))
		conds = append(conds, "kind = "+ph())
	}
	if !q.From.IsZero() {
		args = append(args, q.From.Format(time.RFC3339))
		conds = append(conds, "date >= "+ph())
	}
	if !q.To.IsZero() {
		args = append(args, q.To.Format(time.RFC3339))
		conds = append(conds, "date <= "+ph())
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(sortColumn(q.SortBy))
	if strings.EqualFold(q.SortOrder, "desc") {
		sb.WriteString(" DESC")
	} else {
		sb.WriteString(" ASC")
	}
	if q.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", q.Limit))
	}
	return sb.String(), args
}

// sortColumn whitelists sortable columns; anything else falls back to date.
func sortColumn(by string) string {
	switch by {
	case "amount", "counterparty":
		return by
	default:
		return "date"
	}
}

func scanRows(rows *sql.Rows) ([]Transaction, error) {
	var out []Transaction
	for rows.Next() {
		var t Transaction
		var kind, status, date string
		if err := rows.Scan(&t.ID, &kind, &date, &t.Counterparty, &t.Description, &t.Amount, &status); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Kind = Kind(kind)
		t.Status = Status(status)
		if ts, err := time.Parse(time.RFC3339, date); err == nil {
			t.Date = ts
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// totalsFrom derives the aggregates from a provider's own listing so both
// SQL implementations share one definition of the summary numbers.
func totalsFrom(ctx context.Context, p Provider, from, to time.Time) (Totals, error) {
	rows, err := p.Transactions(ctx, Query{From: from, To: to})
	if err != nil {
		return Totals{}, err
	}
	var tot Totals
	for _, t := range rows {
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
