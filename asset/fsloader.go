package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"classicgo/world"
)

// FSLoader reads PNG frames laid out as
//
//	anim/<id>/<group>/<dir>/<n>.png   animation frames, in name order
//	anim/<id>/<group>/<dir>/frames.yaml  optional [{cx, cy}] per frame
//	art/<id>.png                      static art
//	art/land/<id>.png                 terrain art
//
// Ids are decimal. Frames without a centre entry are anchored at the
// bottom-centre.
type FSLoader struct {
	FS fs.FS
}

type frameCenter struct {
	CX int `yaml:"cx"`
	CY int `yaml:"cy"`
}

// LoadDirection implements Loader.
func (l FSLoader) LoadDirection(anim world.Graphic, group, dir uint8) ([]Frame, error) {
	dirPath := fmt.Sprintf("anim/%d/%d/%d", anim, group, dir)
	entries, err := fs.ReadDir(l.FS, dirPath)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".png") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var centers []frameCenter
	if data, err := fs.ReadFile(l.FS, path.Join(dirPath, "frames.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &centers); err != nil {
			return nil, fmt.Errorf("%s/frames.yaml: %w", dirPath, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	frames := make([]Frame, 0, len(names))
	for i, name := range names {
		img, err := l.decode(path.Join(dirPath, name))
		if err != nil {
			return nil, err
		}
		f := Frame{Image: img}
		if i < len(centers) {
			f.CenterX, f.CenterY = centers[i].CX, centers[i].CY
		} else {
			f.CenterX, f.CenterY = img.Bounds().Dx()/2, 0
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// LoadArt implements Loader.
func (l FSLoader) LoadArt(g world.Graphic, land bool) (Frame, error) {
	name := fmt.Sprintf("art/%d.png", g)
	if land {
		name = fmt.Sprintf("art/land/%d.png", g)
	}
	img, err := l.decode(name)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Image: img}, nil
}

func (l FSLoader) decode(name string) (image.Image, error) {
	f, err := l.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}
