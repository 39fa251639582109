// Package catalog snapshots a published type table and stores it in SQLite,
// so tooling can inspect the types and method tables of a runtime build
// without linking it.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/funvibe/strata/internal/strategy"
	"github.com/funvibe/strata/internal/typesystem"
)

// TypeRecord describes one published strategy.
type TypeRecord struct {
	ID       typesystem.TypeID
	Name     string
	InitSize int
	Methods  []MethodRecord
}

// MethodRecord describes one method table entry, without its implementation.
type MethodRecord struct {
	Name   string
	Params typesystem.Signature
	Return typesystem.TypeID
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS types (
		id        INTEGER PRIMARY KEY,
		name      TEXT    NOT NULL UNIQUE,
		init_size INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS methods (
		type_id     INTEGER NOT NULL REFERENCES types(id),
		seq         INTEGER NOT NULL,
		name        TEXT    NOT NULL,
		params      TEXT    NOT NULL,
		return_type INTEGER NOT NULL,
		PRIMARY KEY (type_id, seq)
	)`,
}

// Snapshot records every strategy of reg, ordered by id, with its methods
// in registration order.
func Snapshot(reg *strategy.Registry) ([]TypeRecord, error) {
	var out []TypeRecord
	for _, s := range reg.Strategies() {
		size, err := s.InitSize()
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", s.Name(), err)
		}
		rec := TypeRecord{ID: s.ID(), Name: s.Name(), InitSize: size}
		for _, e := range s.Methods().Entries() {
			rec.Methods = append(rec.Methods, MethodRecord{Name: e.Name, Params: e.Params.Clone(), Return: e.Return})
		}
		out = append(out, rec)
	}
	return out, nil
}

// Open opens (creating if needed) a catalog database at path and ensures the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating catalog schema in %s: %w", path, err)
		}
	}
	return db, nil
}

// Export replaces the catalog contents with records in one transaction.
func Export(ctx context.Context, db *sql.DB, records []TypeRecord) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM methods`); err != nil {
		return fmt.Errorf("export: clearing methods: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM types`); err != nil {
		return fmt.Errorf("export: clearing types: %w", err)
	}

	for _, rec := range records {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO types (id, name, init_size) VALUES (?, ?, ?)`,
			int64(rec.ID), rec.Name, rec.InitSize); err != nil {
			return fmt.Errorf("export: type %s: %w", rec.Name, err)
		}
		for seq, m := range rec.Methods {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO methods (type_id, seq, name, params, return_type) VALUES (?, ?, ?, ?, ?)`,
				int64(rec.ID), seq, m.Name, m.Params.Key(), int64(m.Return)); err != nil {
				return fmt.Errorf("export: %s.%s: %w", rec.Name, m.Name, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("export: commit: %w", err)
	}
	return nil
}

// Load reads the catalog back, ordered by type id and method sequence.
func Load(ctx context.Context, db *sql.DB) ([]TypeRecord, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, init_size FROM types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load types: %w", err)
	}
	var out []TypeRecord
	byID := make(map[typesystem.TypeID]int)
	for rows.Next() {
		var (
			id  int64
			rec TypeRecord
		)
		if err := rows.Scan(&id, &rec.Name, &rec.InitSize); err != nil {
			rows.Close()
			return nil, fmt.Errorf("load types: %w", err)
		}
		rec.ID = typesystem.TypeID(id)
		byID[rec.ID] = len(out)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("load types: %w", err)
	}
	rows.Close()

	rows, err = db.QueryContext(ctx, `SELECT type_id, name, params, return_type FROM methods ORDER BY type_id, seq`)
	if err != nil {
		return nil, fmt.Errorf("load methods: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			typeID, ret  int64
			name, params string
		)
		if err := rows.Scan(&typeID, &name, &params, &ret); err != nil {
			return nil, fmt.Errorf("load methods: %w", err)
		}
		i, ok := byID[typesystem.TypeID(typeID)]
		if !ok {
			return nil, fmt.Errorf("load methods: %s references unknown type %d", name, typeID)
		}
		sig, err := typesystem.ParseSignatureKey(params)
		if err != nil {
			return nil, fmt.Errorf("load methods: %s: %w", name, err)
		}
		out[i].Methods = append(out[i].Methods, MethodRecord{Name: name, Params: sig, Return: typesystem.TypeID(ret)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load methods: %w", err)
	}
	return out, nil
}
