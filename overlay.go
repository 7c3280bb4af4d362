package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hako/durafmt"
	"golang.org/x/image/font/basicfont"

	"classicgo/world"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

type overlayStats struct {
	objects    int
	listed     int
	drawn      int
	directions int
	textures   int
	selected   world.Object
	hover      int
	label      string
	scale      float64
}

// debugOverlay prints frame and cache counters in the top-left corner.
type debugOverlay struct {
	started time.Time
	face    text.Face
	op      text.DrawOptions
}

func newDebugOverlay(started time.Time) *debugOverlay {
	return &debugOverlay{started: started, face: text.NewGoXFace(basicfont.Face7x13)}
}

func (o *debugOverlay) lines(st overlayStats, uptime time.Duration) []string {
	sel := "none"
	if st.selected != nil {
		e := st.selected.Base()
		sel = fmt.Sprintf("%#x graphic %#x at %d,%d,%d", e.Serial, e.Graphic, e.X, e.Y, e.Z)
	}
	return []string{
		fmt.Sprintf("FPS %.0f  TPS %.0f  scale %.1f", ebiten.ActualFPS(), ebiten.ActualTPS(), st.scale),
		fmt.Sprintf("objects %s  listed %s  drawn %s",
			humanize.Comma(int64(st.objects)), humanize.Comma(int64(st.listed)), humanize.Comma(int64(st.drawn))),
		fmt.Sprintf("anim directions %s  textures %s",
			humanize.Comma(int64(st.directions)), humanize.Comma(int64(st.textures))),
		fmt.Sprintf("selected %s  hover %d", sel, st.hover),
		fmt.Sprintf("label %q", st.label),
		"uptime " + durafmt.Parse(uptime).LimitFirstN(2).Format(shortUnits),
	}
}

func (o *debugOverlay) Draw(screen *ebiten.Image, st overlayStats) {
	lines := o.lines(st, time.Since(o.started).Truncate(time.Second))
	m := o.face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap
	w := 0.0
	for _, l := range lines {
		if lw, _ := text.Measure(l, o.face, lh); lw > w {
			w = lw
		}
	}
	h := lh * float64(len(lines))
	vector.DrawFilledRect(screen, 4, 4, float32(w+8), float32(h+8), color.RGBA{0, 0, 0, 0xa0}, false)

	o.op.GeoM.Reset()
	o.op.GeoM.Translate(8, 8)
	o.op.LineSpacing = lh
	o.op.ColorScale.Reset()
	o.op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, strings.Join(lines, "\n"), o.face, &o.op)
}
