package netclient

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// Client packet ids.
const (
	PacketDoubleClick   = 0x06
	PacketPickUp        = 0x07
	PacketSingleClick   = 0x09
	PacketUnicodeSpeech = 0xAD
)

// Speech modes.
const (
	SpeechRegular = 0x00
	SpeechEmote   = 0x02
	SpeechWhisper = 0x08
	SpeechYell    = 0x09

	speechEncoded = 0xC0
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

func serialPacket(id byte, serial uint32) []byte {
	b := make([]byte, 5)
	b[0] = id
	binary.BigEndian.PutUint32(b[1:], serial)
	return b
}

// DoubleClickPacket uses the object with serial.
func DoubleClickPacket(serial uint32) []byte { return serialPacket(PacketDoubleClick, serial) }

// SingleClickPacket asks for the name of the object with serial.
func SingleClickPacket(serial uint32) []byte { return serialPacket(PacketSingleClick, serial) }

// PickUpPacket lifts amount of the item with serial.
func PickUpPacket(serial uint32, amount uint16) []byte {
	b := make([]byte, 7)
	b[0] = PacketPickUp
	binary.BigEndian.PutUint32(b[1:5], serial)
	binary.BigEndian.PutUint16(b[5:7], amount)
	return b
}

// SpeechPacket builds a unicode speech request. With keyword ids the text
// is sent as ASCII after the packed 12-bit keyword list; otherwise it is
// sent as UTF-16.
func SpeechPacket(mode byte, hue, font uint16, lang, text string, keywords []uint16) ([]byte, error) {
	b := []byte{PacketUnicodeSpeech, 0, 0}
	if len(keywords) > 0 {
		mode |= speechEncoded
	}
	b = append(b, mode)
	b = binary.BigEndian.AppendUint16(b, hue)
	b = binary.BigEndian.AppendUint16(b, font)
	var l [4]byte
	copy(l[:3], lang)
	b = append(b, l[:]...)

	if len(keywords) > 0 {
		b = appendKeywords(b, keywords)
		for _, r := range text {
			if r > 0x7f {
				r = '?'
			}
			b = append(b, byte(r))
		}
		b = append(b, 0)
	} else {
		enc, err := utf16be.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, err
		}
		b = append(b, enc...)
		b = append(b, 0, 0)
	}
	binary.BigEndian.PutUint16(b[1:3], uint16(len(b)))
	return b, nil
}

// appendKeywords packs a 12-bit count followed by 12-bit ids.
func appendKeywords(b []byte, ids []uint16) []byte {
	n := len(ids)
	b = append(b, byte(n>>4))
	carry := byte(n & 0x0f)
	odd := false
	for _, id := range ids {
		if odd {
			b = append(b, byte(id>>4))
			carry = byte(id & 0x0f)
		} else {
			b = append(b, carry<<4|byte(id>>8)&0x0f, byte(id))
		}
		odd = !odd
	}
	if !odd {
		b = append(b, carry<<4)
	}
	return b
}
