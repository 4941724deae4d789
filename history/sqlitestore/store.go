// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlitestore provides a durable radix.Recorder backed by SQLite.
//
// Every record is appended to a records table holding the operator, the base,
// the notation of the operands and of the result, and the context the
// operation ran in. Rows are never updated nor deleted.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/db47h/radix"
	"github.com/db47h/radix/history/sqlitestore/migrations"
	_ "modernc.org/sqlite"
)

const dsnParams = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// Store is a radix.Recorder that persists records in SQLite. It is safe for
// concurrent use.
type Store struct {
	db     *sql.DB
	logger *log.Logger
	now    func() time.Time

	mu  sync.Mutex
	err error
}

// An Option configures a Store.
type Option func(*Store)

// WithLogger makes the store report write failures to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock sets the function giving the time stamp of records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens the SQLite database at path and applies the embedded migrations.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	db, err := sql.Open("sqlite", filepath.Clean(path)+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Err returns the first error met by Record.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.Printf("sqlitestore: %v", err)
	}
}

func notation(x *radix.Real) *string {
	if x == nil {
		return nil
	}
	s := x.String()
	return &s
}

// Record appends r to the records table. A failure is kept for Err and
// logged; records are not written after a failure.
func (s *Store) Record(r radix.Record) {
	if s.Err() != nil {
		return
	}
	ops := r.Operands()
	names := make([]*string, len(ops))
	for i, x := range ops {
		names[i] = notation(x)
	}
	operands, err := json.Marshal(names)
	if err != nil {
		s.fail(fmt.Errorf("encode operands: %w", err))
		return
	}
	prec, _ := r.Prec.MarshalText()
	mode, _ := r.Mode.MarshalText()
	_, err = s.db.ExecContext(context.Background(),
		`INSERT INTO records (op, base, operands, result, prec, mode, algorithm, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(r.Op),
		r.Result.Base().Name(),
		string(operands),
		r.Result.String(),
		string(prec),
		string(mode),
		r.Algorithm,
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		s.fail(fmt.Errorf("insert record: %w", err))
	}
}

// A Row is a stored record. A nil operand was reclaimed before the record was
// written.
type Row struct {
	ID        int64
	Op        radix.Op
	Base      string
	Operands  []*string
	Result    string
	Prec      radix.Precision
	Mode      radix.TruncationMode
	Algorithm string
	CreatedAt time.Time
}

// Real parses the result of row back in its base.
func (row Row) Real() (*radix.Real, error) {
	b, err := radix.Lookup(row.Base)
	if err != nil {
		return nil, err
	}
	return b.Parse(row.Result)
}

// Records returns the stored records, oldest first.
func (s *Store) Records(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, op, base, operands, result, prec, mode, algorithm, created_at
		 FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			row            Row
			op, operands   string
			prec, mode     string
			createdAtMilli int64
		)
		if err := rows.Scan(&row.ID, &op, &row.Base, &operands, &row.Result, &prec, &mode, &row.Algorithm, &createdAtMilli); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		row.Op = radix.Op(op)
		if err := json.Unmarshal([]byte(operands), &row.Operands); err != nil {
			return nil, fmt.Errorf("decode operands of record %d: %w", row.ID, err)
		}
		if err := row.Prec.UnmarshalText([]byte(prec)); err != nil {
			return nil, fmt.Errorf("record %d: %w", row.ID, err)
		}
		if err := row.Mode.UnmarshalText([]byte(mode)); err != nil {
			return nil, fmt.Errorf("record %d: %w", row.ID, err)
		}
		row.CreatedAt = time.UnixMilli(createdAtMilli).UTC()
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
