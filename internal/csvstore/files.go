// Package csvstore implements the file-backed registrar backend. It keeps
// the working state in the in-memory store and persists every table to a
// CSV file after each successful mutation, so a crash never leaves a
// half-written file behind.
package csvstore

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// readTable reads a CSV file and returns its records minus the header
// row. A missing file is an empty table. The header must match exactly;
// anything else means the file was not written by this store.
func readTable(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	for i, col := range records[0] {
		if col != header[i] {
			return nil, fmt.Errorf("reading %s: unexpected header column %q", path, records[0][i])
		}
	}
	return records[1:], nil
}

// writeTable atomically writes a header plus records to a CSV file using
// the temp-file, fsync, rename pattern.
func writeTable(path string, header []string, records [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".csv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	bw := bufio.NewWriter(tmp)
	w := csv.NewWriter(bw)
	if err := w.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing records: %w", err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
