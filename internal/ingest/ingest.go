// Package ingest turns uploaded bytes into a raw dataset. It is the only
// place where a malformed or unsupported file is detected; everything past
// it works on well-formed datasets.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KaramelBytes/tablesift/internal/dataset"
)

var (
	// ErrUnsupported indicates the file extension has no registered reader.
	ErrUnsupported = errors.New("unsupported file format")
	// ErrMalformed indicates the content cannot be read as a table.
	ErrMalformed = errors.New("malformed table")
	// ErrNoColumns indicates the file has no header row.
	ErrNoColumns = errors.New("no columns to parse from file")
)

// DefaultNAValues are the cell spellings read as absent values.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Options controls how a file is read.
type Options struct {
	// Delimiter for delimited text. If 0, '\t' for .tsv and ',' otherwise.
	Delimiter rune
	// NAValues overrides DefaultNAValues when non-nil.
	NAValues []string
	// Sheet selects a spreadsheet sheet by name; empty means the first sheet.
	Sheet string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) naSet() map[string]struct{} {
	vals := o.NAValues
	if vals == nil {
		vals = DefaultNAValues
	}
	set := make(map[string]struct{}, len(vals)+1)
	set[""] = struct{}{}
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}

// Reader reads one family of file formats.
type Reader interface {
	CanRead(filename string) bool
	Read(filename string, data []byte, opt Options) (*dataset.Dataset, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

// Supported reports whether a registered reader accepts the filename.
func Supported(filename string) bool {
	return readerFor(filename) != nil
}

func readerFor(filename string) Reader {
	for _, r := range registry {
		if r.CanRead(filename) {
			return r
		}
	}
	return nil
}

// Load parses data according to the filename's extension.
func Load(filename string, data []byte, opt Options) (*dataset.Dataset, error) {
	r := readerFor(filename)
	if r == nil {
		ext := filepath.Ext(filename)
		if ext == "" {
			ext = filepath.Base(filename)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	return r.Read(filename, data, opt)
}

// LoadFile reads a file from disk and parses it with Load.
func LoadFile(path string, opt Options) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Load(path, data, opt)
}

// headerNames names blank headers "Unnamed: <index>" and suffixes repeated
// names with ".1", ".2", ... so every column name is unique.
func headerNames(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]struct{}, len(raw))
	for i, h := range raw {
		if strings.TrimSpace(h) == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for n := 1; ; n++ {
			if _, taken := used[name]; !taken {
				break
			}
			name = h + "." + strconv.Itoa(n)
		}
		used[name] = struct{}{}
		out[i] = name
	}
	return out
}

func toCells(rec []string, na map[string]struct{}) []dataset.Cell {
	row := make([]dataset.Cell, len(rec))
	for i, v := range rec {
		if _, isNA := na[v]; isNA {
			continue
		}
		row[i] = dataset.String(v)
	}
	return row
}
