package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// TimestampLayout is the layout of the first column of every row.
const TimestampLayout = "2006-01-02 15:04:05"

// CSV appends one row per result to a file:
// timestamp, final period, then every consumption in play order.
type CSV struct {
	mu   sync.Mutex
	file *os.File
	w    *csv.Writer
}

// NewCSV opens (or creates) the file at path for appending.
func NewCSV(path string) (*CSV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sink: cannot create directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("sink: cannot open %s: %w", path, err)
	}

	return &CSV{file: f, w: csv.NewWriter(f)}, nil
}

// Append writes a row and flushes it.
func (c *CSV) Append(_ context.Context, r Result) error {
	row := make([]string, 0, 2+len(r.Consumptions))
	row = append(row, r.Timestamp.Format(TimestampLayout), strconv.Itoa(r.FinalPeriod))
	for _, v := range r.Consumptions {
		row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.w.Write(row); err != nil {
		return fmt.Errorf("sink: cannot write csv row: %w", err)
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("sink: cannot flush csv row: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (c *CSV) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file.Close()
}
