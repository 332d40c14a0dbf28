package bib

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// FieldAuthor is the field holding the " and "-separated author list.
const FieldAuthor = "author"

var (
	fieldRE  = regexp.MustCompile(`\s+(\w+)\s+=\s+\{(.*)\}`)
	headerRE = regexp.MustCompile(`^@\s*(\w+)\s*[{(]\s*([^,\s{}()]*)`)
)

// Field is a single key/value pair in the order it appeared in a record.
type Field struct {
	Name  string
	Value string
}

// Entry is one parsed record.
//
// Kind and Key come from the "@kind{key," header and are empty when the
// header does not match. Fields holds the extracted key/value pairs; when a
// key repeats inside one record, the last value wins.
type Entry struct {
	Kind   string
	Key    string
	Fields map[string]string
}

// Get returns the value of a field.
func (e Entry) Get(name string) (string, bool) {
	v, ok := e.Fields[name]
	return v, ok
}

// Author returns the raw author field.
func (e Entry) Author() (string, bool) {
	return e.Get(FieldAuthor)
}

// Parse splits text into records and extracts their fields.
// Entries are returned in file order; text before the first '@' is ignored.
func Parse(text string) []Entry {
	var starts []int
	for i := 0; i < len(text); i++ {
		if text[i] == '@' {
			starts = append(starts, i)
		}
	}

	entries := make([]Entry, 0, len(starts))
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		entries = append(entries, parseEntry(text[start:end]))
	}
	return entries
}

func parseEntry(record string) Entry {
	e := Entry{Fields: make(map[string]string)}
	if m := headerRE.FindStringSubmatch(record); m != nil {
		e.Kind = strings.ToLower(m[1])
		e.Key = m[2]
	}
	for _, f := range ParseFields(record) {
		e.Fields[f.Name] = f.Value
	}
	return e
}

// ParseFields returns every key/value pair in a single record, in order and
// including repeated keys.
func ParseFields(record string) []Field {
	matches := fieldRE.FindAllStringSubmatch(record, -1)
	fields := make([]Field, 0, len(matches))
	for _, m := range matches {
		fields = append(fields, Field{Name: m[1], Value: m[2]})
	}
	return fields
}

// ParseFile reads and parses a single file.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// ParseDir parses every file in dir matching the glob pattern, in sorted
// file-name order. A directory that does not exist yields no entries.
func ParseDir(dir, pattern string) ([]Entry, error) {
	files, err := Files(dir, pattern)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, f := range files {
		es, err := ParseFile(f)
		if err != nil {
			return nil, err
		}
		entries = append(entries, es...)
	}
	return entries, nil
}

// Files lists the files ParseDir would read.
func Files(dir, pattern string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	return files, nil
}
