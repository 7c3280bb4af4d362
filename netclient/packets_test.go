package netclient

import (
	"bytes"
	"testing"
)

func TestSerialPackets(t *testing.T) {
	if got := DoubleClickPacket(0x40000102); !bytes.Equal(got, []byte{0x06, 0x40, 0x00, 0x01, 0x02}) {
		t.Fatalf("double click = % x", got)
	}
	if got := SingleClickPacket(5); !bytes.Equal(got, []byte{0x09, 0, 0, 0, 5}) {
		t.Fatalf("single click = % x", got)
	}
	if got := PickUpPacket(0x40000001, 300); !bytes.Equal(got, []byte{0x07, 0x40, 0, 0, 1, 0x01, 0x2c}) {
		t.Fatalf("pick up = % x", got)
	}
}

func TestSpeechPacketUnicode(t *testing.T) {
	p, err := SpeechPacket(SpeechRegular, 0x34, 3, "ENU", "hi", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xAD, 0, 18, 0x00, 0, 0x34, 0, 3, 'E', 'N', 'U', 0, 0, 'h', 0, 'i', 0, 0}
	if !bytes.Equal(p, want) {
		t.Fatalf("got  % x\nwant % x", p, want)
	}
}

func TestSpeechPacketKeywords(t *testing.T) {
	p, err := SpeechPacket(SpeechRegular, 0, 3, "ENU", "bank", []uint16{0x002})
	if err != nil {
		t.Fatal(err)
	}
	if p[3] != speechEncoded {
		t.Fatalf("mode = %#x", p[3])
	}
	kw := p[12:]
	// count high byte, count nibble with the id's high nibble, id low byte
	if !bytes.Equal(kw[:3], []byte{0x00, 0x10, 0x02}) {
		t.Fatalf("keywords = % x", kw[:3])
	}
	if !bytes.Equal(kw[3:], []byte("bank\x00")) {
		t.Fatalf("text = % x", kw[3:])
	}
	if int(p[1])<<8|int(p[2]) != len(p) {
		t.Fatalf("length field = %d, len = %d", int(p[1])<<8|int(p[2]), len(p))
	}

	two := appendKeywords(nil, []uint16{0x123, 0x456})
	if !bytes.Equal(two, []byte{0x00, 0x21, 0x23, 0x45, 0x60}) {
		t.Fatalf("two keywords = % x", two)
	}
}
