// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package accesslog

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/sociogram/db"
)

// TimeLayout is the Fecha_Hora format of the CSV log.
const TimeLayout = "2006-01-02 15:04:05"

// sqlTimeLayout is fixed-width UTC so text order is time order.
const sqlTimeLayout = "2006-01-02T15:04:05.000000000Z"

// Header is the CSV header row.
var Header = []string{"Fecha_Hora", "Usuario"}

// Entry is one successful login.
type Entry struct {
	ID     string
	Time   time.Time
	User   string
	IPHash string
}

// Store appends and lists access entries. Entries are listed oldest first.
type Store interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context) ([]Entry, error)
}

// CSVStore is the append-only CSV file log.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Append writes one row, creating the file with its header if needed.
// Only Fecha_Hora and Usuario are written.
func (s *CSVStore) Append(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open access log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat access log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return fmt.Errorf("write access log header: %w", err)
		}
	}
	if err := w.Write([]string{e.Time.Format(TimeLayout), e.User}); err != nil {
		return fmt.Errorf("write access log: %w", err)
	}
	w.Flush()
	return w.Error()
}

// List reads every row. A missing file is an empty log; unparseable rows
// are skipped.
func (s *CSVStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open access log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	entries := []Entry{}
	for line := 1; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read access log: %w", err)
		}
		if line == 1 && len(row) > 0 && row[0] == Header[0] {
			continue
		}
		if len(row) < 2 {
			slog.Warn("skipping access log row", "line", line)
			continue
		}
		ts, err := time.ParseInLocation(TimeLayout, row[0], time.Local)
		if err != nil {
			slog.Warn("skipping access log row", "line", line, "error", err)
			continue
		}
		entries = append(entries, Entry{Time: ts, User: row[1]})
	}
	return entries, nil
}

// SQLStore keeps the log in the access_log table.
type SQLStore struct {
	db     *sql.DB
	dbType string
}

func NewSQLStore(conn *sql.DB, dbType string) *SQLStore {
	return &SQLStore{db: conn, dbType: dbType}
}

func (s *SQLStore) Append(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	var ipHash *string
	if e.IPHash != "" {
		ipHash = &e.IPHash
	}
	query := fmt.Sprintf(`
		INSERT INTO access_log (id, accessed_at, username, ip_hash)
		VALUES (%s, %s, %s, %s)
	`, db.Placeholder(s.dbType, 1), db.Placeholder(s.dbType, 2), db.Placeholder(s.dbType, 3), db.Placeholder(s.dbType, 4))

	_, err := s.db.ExecContext(ctx, query, e.ID, e.Time.UTC().Format(sqlTimeLayout), e.User, ipHash)
	if err != nil {
		return fmt.Errorf("insert access log: %w", err)
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, accessed_at, username, ip_hash
		FROM access_log
		ORDER BY accessed_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query access log: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var accessedAt string
		var ipHash sql.NullString
		if err := rows.Scan(&e.ID, &accessedAt, &e.User, &ipHash); err != nil {
			return nil, fmt.Errorf("scan access log: %w", err)
		}
		e.Time, err = time.Parse(sqlTimeLayout, accessedAt)
		if err != nil {
			slog.Warn("skipping access log row", "id", e.ID, "error", err)
			continue
		}
		e.Time = e.Time.Local()
		e.IPHash = ipHash.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// WriteCSV exports entries in the CSV log format.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Time.Format(TimeLayout), e.User}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
