package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"classicgo/asset"
	"classicgo/speech"
)

const (
	bodiesFile = "bodies.yaml"
	equipFile  = "equipconv.yaml"
	huesFile   = "hues.yaml"
	speechFile = "speech.mul"
)

// clientTables are the data files read once at startup.
type clientTables struct {
	bodies asset.Bodies
	conv   asset.EquipConversions
	hues   asset.HueTable
	speech *speech.Table
}

// loadTables reads every startup table from dir concurrently. A missing
// hue table only costs colour; anything else is fatal.
func loadTables(dir string) (*clientTables, error) {
	var t clientTables
	var g errgroup.Group
	g.Go(func() error {
		b, err := asset.LoadBodies(filepath.Join(dir, bodiesFile))
		if err != nil {
			return err
		}
		t.bodies = b
		return nil
	})
	g.Go(func() error {
		c, err := asset.LoadEquipConversions(filepath.Join(dir, equipFile))
		if err != nil {
			return err
		}
		t.conv = c
		return nil
	})
	g.Go(func() error {
		h, err := asset.LoadHues(filepath.Join(dir, huesFile))
		if errors.Is(err, fs.ErrNotExist) {
			logWarn("no hue table in %v, drawing untinted", dir)
			t.hues = asset.HueTable{}
			return nil
		}
		if err != nil {
			return err
		}
		t.hues = h
		return nil
	})
	g.Go(func() error {
		s, err := speech.Load(filepath.Join(dir, speechFile))
		if err != nil {
			return fmt.Errorf("speech table: %w", err)
		}
		t.speech = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logDebug("loaded %d bodies, %d equip conversions, %d hues, %d speech entries",
		len(t.bodies), len(t.conv), len(t.hues), t.speech.Len())
	return &t, nil
}
