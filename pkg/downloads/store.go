package downloads

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rubisco-sfa/rubiplot/pkg/errors"
)

// Column names written by Store.
const (
	ColumnTime   = "time"
	ColumnCounts = "counts"
)

// timeLayouts are accepted when reading the time column.
var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01",
}

// DefaultStorePath returns the store file name used for pkg.
func DefaultStorePath(pkg string) string {
	return pkg + "_downloads.csv"
}

// Store is a series kept in a CSV file.
type Store struct {
	Path string
}

// Exists reports whether the store file is present.
func (s Store) Exists() bool {
	info, err := os.Stat(s.Path)
	return err == nil && !info.IsDir()
}

// Read loads the series from disk.
func (s Store) Read() (Series, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "stats file %s", s.Path)
		}
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	series, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSeries, err, "read %s", s.Path)
	}
	return series, nil
}

// Write replaces the store file with series.
func (s Store) Write(series Series) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	tmp := s.Path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := WriteCSV(f, series); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.Path)
}

// ReadCSV parses a "time,counts" table. The columns are located by header
// name so extra columns are ignored. Counts may be written as floats.
func ReadCSV(r io.Reader) (Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty file")
		}
		return nil, err
	}
	ti, ci := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case ColumnTime:
			ti = i
		case ColumnCounts:
			ci = i
		}
	}
	if ti < 0 || ci < 0 {
		return nil, fmt.Errorf("header %v must contain %q and %q", header, ColumnTime, ColumnCounts)
	}

	var out Series
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if ti >= len(rec) || ci >= len(rec) {
			return nil, fmt.Errorf("line %d: missing columns", line)
		}
		t, err := parseTime(rec[ti])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		n, err := parseCount(rec[ci])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, Point{Time: t, Count: n})
	}
	out.Sort()
	return out, nil
}

// WriteCSV writes series as a "time,counts" table.
func WriteCSV(w io.Writer, series Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnTime, ColumnCounts}); err != nil {
		return err
	}
	for _, p := range series {
		row := []string{p.Time.UTC().Format("2006-01-02"), strconv.Itoa(p.Count)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	return int(math.Round(f)), nil
}
