// Package speech reads the keyword table that maps player speech to
// keyword ids sent along with unicode speech requests.
package speech

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrEmpty is returned when the table holds no entries.
var ErrEmpty = errors.New("speech: empty keyword table")

// Entry is one keyword rule. A rule matches when any of its keywords
// appears in the input. Without a trailing '*' the input must also end with
// the keyword. A leading '*' is recorded but never anchors the start.
type Entry struct {
	ID         uint16
	Keywords   []string
	CheckStart bool
	CheckEnd   bool
}

// NewEntry parses a raw rule such as "*bank*".
func NewEntry(id uint16, raw string) Entry {
	e := Entry{ID: id}
	for _, k := range strings.Split(raw, "*") {
		if k != "" {
			e.Keywords = append(e.Keywords, k)
		}
	}
	if raw != "" {
		e.CheckStart = raw[0] == '*'
		e.CheckEnd = raw[len(raw)-1] == '*'
	}
	return e
}

// IsMatch reports whether the lower-cased input triggers e.
func (e Entry) IsMatch(input string) bool {
	for _, k := range e.Keywords {
		if len(k) > len(input) {
			continue
		}
		if !e.CheckEnd && !strings.HasSuffix(input, k) {
			continue
		}
		if strings.Contains(input, k) {
			return true
		}
	}
	return false
}

// Table is the loaded keyword list.
type Table struct {
	entries []Entry
	lower   cases.Caser
}

// Load reads the table at path. A missing or empty table is an error.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open speech table: %w", err)
	}
	defer f.Close()
	t, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read decodes big-endian (id, length, utf-8 text) records until EOF.
// Records with zero length are skipped.
func Read(r io.Reader) (*Table, error) {
	var entries []Entry
	var hdr [4]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read speech header: %w", err)
		}
		id := binary.BigEndian.Uint16(hdr[0:2])
		n := binary.BigEndian.Uint16(hdr[2:4])
		if n == 0 {
			continue
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("read speech entry %d: %w", id, err)
		}
		if !utf8.Valid(buf) {
			return nil, fmt.Errorf("speech entry %d: invalid utf-8", id)
		}
		entries = append(entries, NewEntry(id, string(buf)))
	}
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	return New(entries), nil
}

// New builds a table from parsed entries.
func New(entries []Entry) *Table {
	return &Table{entries: entries, lower: cases.Lower(language.Und)}
}

// Len returns the number of rules.
func (t *Table) Len() int { return len(t.entries) }

// Keywords returns the rules triggered by text, sorted by id.
func (t *Table) Keywords(text string) []Entry {
	if t == nil {
		return nil
	}
	text = t.lower.String(text)
	var out []Entry
	for _, e := range t.entries {
		if e.IsMatch(text) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs is a convenience returning just the ids of Keywords(text).
func (t *Table) IDs(text string) []uint16 {
	kw := t.Keywords(text)
	if len(kw) == 0 {
		return nil
	}
	ids := make([]uint16, len(kw))
	for i, e := range kw {
		ids[i] = e.ID
	}
	return ids
}
