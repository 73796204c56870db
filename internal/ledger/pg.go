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
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    kind TEXT NOT NULL,
    date TEXT NOT NULL,
    counterparty TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    amount DOUBLE PRECISION NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'open'
)`

// SharedStore reads a company ledger hosted on a shared Postgres database,
// for multi-user setups. It implements Provider.
type SharedStore struct {
	db *sql.DB
}

// OpenShared connects via pgx and ensures the schema exists.
func OpenShared(ctx context.Context, dsn string) (*SharedStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, pgSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure ledger schema: %w", err)
	}
	return &SharedStore{db: db}, nil
}

func (s *SharedStore) Close() error { return s.db.Close() }

func (s *SharedStore) Transactions(ctx context.Context, q Query) ([]Transaction, error) {
	sqlq, args := buildListQuery(q, '$')
	rows, err := s.db.QueryContext(ctx, sqlq, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

func (s *SharedStore) Totals(ctx context.Context, from, to time.Time) (Totals, error) {
	return totalsFrom(ctx, s, from, to)
}
