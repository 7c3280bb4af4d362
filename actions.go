package main

import (
	"classicgo/netclient"
	"classicgo/world"
)

// packetSender is satisfied by *netclient.Client.
type packetSender interface {
	Send(p []byte)
}

// netActions turns scene interactions into outgoing packets. With no
// connection the actions are only logged.
type netActions struct {
	out packetSender

	// selected is the serial last reported under the cursor.
	selected world.Serial
}

func (a *netActions) send(p []byte) {
	logDebugPacket("send", p)
	if a.out != nil {
		a.out.Send(p)
	}
}

func (a *netActions) SingleClick(s world.Serial) {
	a.send(netclient.SingleClickPacket(uint32(s)))
}

func (a *netActions) DoubleClick(s world.Serial) {
	a.send(netclient.DoubleClickPacket(uint32(s)))
}

func (a *netActions) PickUp(s world.Serial, amount uint16) {
	a.send(netclient.PickUpPacket(uint32(s), amount))
}

func (a *netActions) Say(text string, keywords []uint16) {
	p, err := netclient.SpeechPacket(netclient.SpeechRegular, gs.SpeechHue, gs.SpeechFont, gs.Language, text, keywords)
	if err != nil {
		logError("speech %q: %v", text, err)
		return
	}
	a.send(p)
}

// SelectedChanged records the object now under the cursor.
func (a *netActions) SelectedChanged(o world.Object) {
	if o == nil {
		a.selected = 0
		return
	}
	a.selected = o.Base().Serial
	logDebug("selected %#x graphic %#x", a.selected, o.Base().Graphic)
}
