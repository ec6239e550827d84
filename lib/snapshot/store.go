// Package snapshot persists the record collection captured by one run
// and computes change reports between two collections.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"faqwatch/lib/scrapers/faq"
)

// Load reads the snapshot persisted by a previous run. A missing file is
// a first run and a file that fails to parse is treated the same way
// after a warning, so history corruption never blocks a new sweep.
func Load(path string) []faq.Record {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		slog.Warn("failed to read previous snapshot, starting from an empty baseline", "path", path, "err", err)
		return nil
	}

	var records []faq.Record
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("failed to parse previous snapshot, starting from an empty baseline", "path", path, "err", err)
		return nil
	}

	slog.Info("loaded previous snapshot", "path", path, "records", len(records))
	return records
}

// Save writes the full collection as an indented JSON array sorted by
// question hash. The file is written to a temporary sibling and renamed
// into place so a failed run never leaves a truncated snapshot behind.
func Save(path string, records []faq.Record) error {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b faq.Record) int {
		return strings.Compare(a.QuestionHash, b.QuestionHash)
	})
	if sorted == nil {
		sorted = []faq.Record{}
	}

	data, err := marshalIndent(sorted, "    ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return writeAtomic(path, data)
}

func marshalIndent(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
