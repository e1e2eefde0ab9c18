// Package csvfile implements the flat-file persistence used by every
// repository: one delimiter-separated file per entity type, header row first,
// read fully into memory and rewritten wholesale on mutation.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Table is a single CSV-backed entity table.
type Table struct {
	Path   string
	Header []string
	Logger zerolog.Logger
}

// LoadAll reads every data row. A missing file yields no rows. Rows whose
// field count does not match the header are logged and skipped rather than
// aborting the whole load.
func (t Table) LoadAll() ([][]string, error) {
	f, err := os.Open(t.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", t.Path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header %s: %w", t.Path, err)
	}

	var rows [][]string
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				t.Logger.Warn().Str("file", t.Path).Int("line", line).Err(err).Msg("skip malformed row")
				continue
			}
			return nil, fmt.Errorf("read %s: %w", t.Path, err)
		}
		if len(record) != len(t.Header) {
			t.Logger.Warn().Str("file", t.Path).Int("line", line).
				Int("fields", len(record)).Int("want", len(t.Header)).
				Msg("skip row with unexpected field count")
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// SaveAll rewrites the whole table. The write goes through a temp file and a
// rename so a crash mid-write cannot leave a truncated table behind.
func (t Table) SaveAll(rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(t.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(t.Path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(t.Path), filepath.Base(t.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", t.Path, err)
	}
	tmpName := tmp.Name()
	w := csv.NewWriter(tmp)
	writeErr := w.Write(t.Header)
	if writeErr == nil {
		writeErr = w.WriteAll(rows)
	}
	w.Flush()
	if writeErr == nil {
		writeErr = w.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", t.Path, writeErr)
	}
	if err := os.Rename(tmpName, t.Path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", t.Path, err)
	}
	return nil
}

// Append adds a single row, creating the file with its header on first use.
func (t Table) Append(row []string) error {
	if err := os.MkdirAll(filepath.Dir(t.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(t.Path), err)
	}
	_, statErr := os.Stat(t.Path)
	fresh := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(t.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", t.Path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(t.Header); err != nil {
			return fmt.Errorf("write header %s: %w", t.Path, err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("append %s: %w", t.Path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", t.Path, err)
	}
	return nil
}
