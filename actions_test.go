package main

import (
	"bytes"
	"testing"

	"classicgo/netclient"
	"classicgo/world"
)

type recordSender struct{ sent [][]byte }

func (r *recordSender) Send(p []byte) { r.sent = append(r.sent, p) }

func TestNetActionsPackets(t *testing.T) {
	rec := &recordSender{}
	a := &netActions{out: rec}
	a.SingleClick(0x40000001)
	a.DoubleClick(0x40000002)
	a.PickUp(0x40000003, 7)

	want := [][]byte{
		netclient.SingleClickPacket(0x40000001),
		netclient.DoubleClickPacket(0x40000002),
		netclient.PickUpPacket(0x40000003, 7),
	}
	if len(rec.sent) != len(want) {
		t.Fatalf("sent %d packets, want %d", len(rec.sent), len(want))
	}
	for i := range want {
		if !bytes.Equal(rec.sent[i], want[i]) {
			t.Fatalf("packet %d = % x, want % x", i, rec.sent[i], want[i])
		}
	}
}

func TestNetActionsSayUsesSettings(t *testing.T) {
	orig := gs
	defer func() { gs = orig }()
	gs = gsdef

	rec := &recordSender{}
	a := &netActions{out: rec}
	a.Say("hi", nil)
	want, err := netclient.SpeechPacket(netclient.SpeechRegular, gsdef.SpeechHue, gsdef.SpeechFont, "ENU", "hi", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.sent) != 1 || !bytes.Equal(rec.sent[0], want) {
		t.Fatalf("sent % x, want % x", rec.sent, want)
	}
}

func TestNetActionsOffline(t *testing.T) {
	a := &netActions{}
	a.DoubleClick(0x40000001)
	m := world.NewMobile(5, 0x0190, 0, 1, 1, 0)
	a.SelectedChanged(m)
	if a.selected != 5 {
		t.Fatalf("selected = %#x, want 5", a.selected)
	}
	a.SelectedChanged(nil)
	if a.selected != 0 {
		t.Fatalf("selection not cleared")
	}
}
