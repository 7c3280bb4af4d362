package asset

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"classicgo/world"
)

// ErrNoData is returned when a required data file is empty.
var ErrNoData = errors.New("asset: no data")

// MaxAnimationID bounds the body table. Animation ids at or above it have no
// body metadata such as mount height.
const MaxAnimationID = 2048

// GroupType classifies a body by the animation groups it provides.
type GroupType uint8

const (
	GroupMonster GroupType = iota
	GroupAnimal
	GroupPeople
)

func (g *GroupType) UnmarshalYAML(n *yaml.Node) error {
	switch strings.ToLower(n.Value) {
	case "", "monster", "high":
		*g = GroupMonster
	case "animal", "low":
		*g = GroupAnimal
	case "people", "human":
		*g = GroupPeople
	default:
		return fmt.Errorf("line %d: unknown body type %q", n.Line, n.Value)
	}
	return nil
}

// BodyInfo is per-animation metadata.
type BodyInfo struct {
	ID                  world.Graphic `yaml:"id"`
	Type                GroupType     `yaml:"type"`
	MountedHeightOffset int           `yaml:"mount_offset"`
	// Color tints bodies served through Replace.
	Color world.Hue `yaml:"color"`
	// Replace names the animation whose frames stand in for this one.
	Replace world.Graphic `yaml:"replace"`
}

// Bodies indexes BodyInfo by animation id.
type Bodies map[world.Graphic]BodyInfo

type bodiesFile struct {
	Bodies []BodyInfo `yaml:"bodies"`
}

// LoadBodies reads the body table at path.
func LoadBodies(path string) (Bodies, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open body table: %w", err)
	}
	defer f.Close()
	return ReadBodies(f)
}

// ReadBodies decodes a body table.
func ReadBodies(r io.Reader) (Bodies, error) {
	var doc bodiesFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("body table: %w", ErrNoData)
		}
		return nil, fmt.Errorf("decode body table: %w", err)
	}
	b := make(Bodies, len(doc.Bodies))
	for _, info := range doc.Bodies {
		if int(info.ID) >= MaxAnimationID {
			return nil, fmt.Errorf("body %#x out of range", info.ID)
		}
		b[info.ID] = info
	}
	return b, nil
}

// EquipConv remaps a worn item's animation.
type EquipConv struct {
	Item    world.Graphic `yaml:"item"`
	Anim    world.Graphic `yaml:"anim"`
	Graphic world.Graphic `yaml:"graphic"`
	Gump    world.Graphic `yaml:"gump"`
	Color   world.Hue     `yaml:"color"`
}

// EquipConversions maps item graphic, then original animation id, to the
// replacement.
type EquipConversions map[world.Graphic]map[world.Graphic]EquipConv

// Lookup returns the conversion for an item graphic worn with animID.
func (c EquipConversions) Lookup(item, animID world.Graphic) (EquipConv, bool) {
	m, ok := c[item]
	if !ok {
		return EquipConv{}, false
	}
	conv, ok := m[animID]
	return conv, ok
}

// LoadEquipConversions reads the conversion table at path.
func LoadEquipConversions(path string) (EquipConversions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open equip conversions: %w", err)
	}
	defer f.Close()
	return ReadEquipConversions(f)
}

// ReadEquipConversions decodes a conversion table.
func ReadEquipConversions(r io.Reader) (EquipConversions, error) {
	var doc struct {
		Conversions []EquipConv `yaml:"conversions"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return EquipConversions{}, nil
		}
		return nil, fmt.Errorf("decode equip conversions: %w", err)
	}
	c := make(EquipConversions)
	for _, e := range doc.Conversions {
		m := c[e.Item]
		if m == nil {
			m = make(map[world.Graphic]EquipConv)
			c[e.Item] = m
		}
		m[e.Anim] = e
	}
	return c, nil
}

// HueTable maps hue indices to the tint colour used by the renderer.
type HueTable map[world.Hue]color.RGBA

// Color returns the tint for h and whether one is defined.
func (t HueTable) Color(h world.Hue) (color.RGBA, bool) {
	c, ok := t[h]
	return c, ok
}

// LoadHues reads a hue table of `hue: "#rrggbb"` pairs.
func LoadHues(path string) (HueTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hues: %w", err)
	}
	defer f.Close()
	return ReadHues(f)
}

// ReadHues decodes a hue table.
func ReadHues(r io.Reader) (HueTable, error) {
	var doc struct {
		Hues map[int]string `yaml:"hues"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return HueTable{}, nil
		}
		return nil, fmt.Errorf("decode hues: %w", err)
	}
	t := make(HueTable, len(doc.Hues))
	for h, s := range doc.Hues {
		c, err := parseHex(s)
		if err != nil {
			return nil, fmt.Errorf("hue %#x: %w", h, err)
		}
		t[world.Hue(h)] = c
	}
	return t, nil
}

func parseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("bad colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
