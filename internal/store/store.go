package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"runtime"
	"strings"

	_ "modernc.org/sqlite"
)

var pragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(ON)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
}

// Store persists accounts, transactions and invoices in SQLite. Balance
// updates must be serialized, so every write goes through a one-connection
// pool while list queries share a wider one.
type Store struct {
	writer *sql.DB
	reader *sql.DB
}

func dsn(path string) string {
	var b strings.Builder
	b.WriteString("file:")
	b.WriteString(path)
	for i, p := range pragmas {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString("_pragma=")
		b.WriteString(p)
	}
	return b.String()
}

func openPool(path string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxConns)
	return db, nil
}

// Open opens (creating if needed) the ledger database at path and brings
// its schema up to date.
func Open(path string) (*Store, error) {
	writer, err := openPool(path, 1)
	if err != nil {
		return nil, fmt.Errorf("open ledger writer: %w", err)
	}
	reader, err := openPool(path, runtime.NumCPU())
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open ledger reader: %w", err)
	}

	s := &Store{writer: writer, reader: reader}
	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate ledger schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return errors.Join(s.writer.Close(), s.reader.Close())
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
