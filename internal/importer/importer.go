// Package importer turns newline-delimited text files into lists.
//
// Each non-blank line is one item. A line is split on its first ';' into
// the item value and an optional sub-value:
//
//	Kyiv;UA
//	Lviv
//
// Lines are trimmed and normalized to NFC before splitting.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/varigen/internal/ir"
	"github.com/roach88/varigen/internal/state"
)

// ListFileExt is the only accepted list file extension (case-insensitive).
const ListFileExt = ".txt"

var (
	// ErrEmptyList is matched by EmptyListError.
	ErrEmptyList = errors.New("list file has no items")

	// ErrNotListFile is returned for files without the .txt extension.
	ErrNotListFile = errors.New("list files must have a .txt extension")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EmptyListError reports a list file that produced zero items.
type EmptyListError struct {
	File string
}

func (e *EmptyListError) Error() string {
	return fmt.Sprintf("Файл %s порожній", e.File)
}

// Is makes errors.Is(err, ErrEmptyList) hold.
func (e *EmptyListError) Is(target error) bool {
	return target == ErrEmptyList
}

// IsListFile reports whether path names a list file.
func IsListFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ListFileExt)
}

// NameFromPath derives the list name from a file path: the base name with
// a trailing .txt removed in any letter case.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	if IsListFile(base) {
		return base[:len(base)-len(ListFileExt)]
	}
	return base
}

// ParseLine splits one trimmed line into an item.
func ParseLine(line string) ir.ListItem {
	value, sub, _ := strings.Cut(line, ";")
	return ir.NewListItem(strings.TrimSpace(value), strings.TrimSpace(sub))
}

// Parse reads items from r. Blank lines are dropped.
func Parse(r io.Reader) ([]ir.ListItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read list: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	text := norm.NFC.String(string(data))

	var items []ir.ListItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, ParseLine(line))
	}
	return items, nil
}

// Import builds a list named after filename from the content of r.
// A file without items yields an *EmptyListError.
func Import(filename string, r io.Reader, ids state.IDGenerator) (ir.List, error) {
	items, err := Parse(r)
	if err != nil {
		return ir.List{}, err
	}
	if len(items) == 0 {
		return ir.List{}, &EmptyListError{File: filepath.Base(filename)}
	}
	if ids == nil {
		ids = state.UUIDv7Generator{}
	}
	return ir.List{
		ID:    ids.Generate(),
		Name:  NameFromPath(filename),
		Items: items,
	}, nil
}

// ImportFile opens and imports a list file.
func ImportFile(path string, ids state.IDGenerator) (ir.List, error) {
	if !IsListFile(path) {
		return ir.List{}, fmt.Errorf("%w: %s", ErrNotListFile, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return ir.List{}, fmt.Errorf("open list file: %w", err)
	}
	defer f.Close()

	return Import(path, f, ids)
}
