package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"classicgo/asset"
	"classicgo/netclient"
	"classicgo/render"
	"classicgo/scene"
	"classicgo/world"
)

var (
	host    string
	fake    bool
	doDebug bool
	mapW    int
	mapH    int
)

func main() {
	dataDir := flag.String("data", dataDirPath, "directory holding the client data files")
	flag.StringVar(&host, "host", "", "game server address (host:port); empty plays offline")
	flag.BoolVar(&fake, "fake", false, "populate a sample world without connecting")
	flag.BoolVar(&doDebug, "debug", false, "verbose/debug logging")
	flag.IntVar(&mapW, "mapw", 896, "map width in tiles")
	flag.IntVar(&mapH, "maph", 512, "map height in tiles")
	flag.Parse()
	dataDirPath = *dataDir

	setupLogging(doDebug)
	loadSettings()
	defer saveSettings()
	defer func() {
		if r := recover(); r != nil {
			logPanic(r)
		}
	}()
	if host == "" && !fake {
		host = gs.LastHost
	}

	tables, err := loadTables(dataDirPath)
	if err != nil {
		log.Fatalf("load client data: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	store := asset.NewStore(asset.FSLoader{FS: os.DirFS(dataDirPath)}, tables.bodies, asset.Options{
		NewImage: func(img image.Image) *ebiten.Image { return ebiten.NewImageFromImage(img) },
	})

	if fake {
		mapW, mapH = fakeMapSize, fakeMapSize
	}
	w := world.New(world.NewMap(mapW, mapH))

	actions := &netActions{}
	var egress scene.Egress
	if host != "" && !fake {
		client, err := netclient.Dial(ctx, host)
		if err != nil {
			logError("connect %v: %v", host, err)
		} else {
			gs.LastHost = host
			actions.out = client
			egress = client
			defer client.Close()
			go func() {
				err := client.Run(ctx)
				if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, netclient.ErrClosed) {
					logError("connection lost: %v", err)
				}
				logDebug("sent %d packets, dropped %d", client.Sent(), client.Dropped())
			}()
		}
	}
	if fake {
		populateFakeWorld(w)
	}

	sc := scene.New(scene.Config{
		World:     w,
		Anim:      store,
		Conv:      tables.conv,
		Art:       store,
		Speech:    tables.speech,
		Egress:    egress,
		UI:        actions,
		Actions:   actions,
		Scale:     gs.GameScale,
		Highlight: gs.HighlightObjects,
		Light:     render.Light{Level: gs.LightLevel},
	})
	defer sc.Close()
	if fake {
		runFakeMode(w, sc)
	}

	runGame(newGame(ctx, w, sc, store, tables.hues))
	cancel()
}
