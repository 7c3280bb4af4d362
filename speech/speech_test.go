package speech

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

func record(id uint16, s string) []byte {
	b := make([]byte, 4, 4+len(s))
	binary.BigEndian.PutUint16(b[0:2], id)
	binary.BigEndian.PutUint16(b[2:4], uint16(len(s)))
	return append(b, s...)
}

func table(t *testing.T) *Table {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(record(0x30, "*vendor buy*"))
	buf.Write(record(0x02, "*bank*"))
	buf.Write(record(0x99, ""))
	buf.Write(record(0x10, "guards"))
	buf.Write(record(0x20, "hail*"))
	tbl, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return tbl
}

func TestRead(t *testing.T) {
	tbl := table(t)
	if tbl.Len() != 4 {
		t.Fatalf("Len = %d, want 4 (empty records skipped)", tbl.Len())
	}
	e := NewEntry(1, "*vendor buy*")
	if !e.CheckStart || !e.CheckEnd || !reflect.DeepEqual(e.Keywords, []string{"vendor buy"}) {
		t.Fatalf("entry = %+v", e)
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := Read(bytes.NewReader(nil)); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty table err = %v", err)
	}
	short := record(1, "bank")[:6]
	if _, err := Read(bytes.NewReader(short)); err == nil {
		t.Fatal("truncated record should fail")
	}
	if _, err := Load("/nonexistent/speech.mul"); err == nil {
		t.Fatal("missing table should fail")
	}
}

func TestKeywords(t *testing.T) {
	tbl := table(t)
	tests := []struct {
		in   string
		want []uint16
	}{
		{"I want to use the BANK please", []uint16{0x02}},
		{"vendor buy and bank", []uint16{0x02, 0x30}},
		{"Guards", []uint16{0x10}},
		{"call the guards", []uint16{0x10}},
		{"guards here", nil},
		{"guards!", nil},
		{"hail traveller", []uint16{0x20}},
		{"well hail there", []uint16{0x20}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := tbl.IDs(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("IDs(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUnstarredKeywordMatchesAtEnd(t *testing.T) {
	tbl := New([]Entry{NewEntry(0x10, "bank")})
	tests := []struct {
		in   string
		want []uint16
	}{
		{"i need the bank", []uint16{0x10}},
		{"bank", []uint16{0x10}},
		{"bank please", nil},
	}
	for _, tt := range tests {
		if got := tbl.IDs(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("IDs(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
