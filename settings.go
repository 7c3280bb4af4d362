package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"classicgo/scene"
)

const SETTINGS_VERSION = 1

const settingsFile = "settings.json"

type settings struct {
	Version int

	WindowWidth  int
	WindowHeight int
	// GameScale is the world zoom.
	GameScale        float64
	HighlightObjects bool
	ShowFPS          bool
	// DebugSprites outlines every drawn sprite.
	DebugSprites bool
	// LightLevel is the overall darkness, 0 for daylight.
	LightLevel uint8

	SpeechHue  uint16
	SpeechFont uint16
	Language   string

	LastHost string
}

var gsdef settings = settings{
	Version: SETTINGS_VERSION,

	WindowWidth:      initialWindowW,
	WindowHeight:     initialWindowH,
	GameScale:        1,
	HighlightObjects: true,
	ShowFPS:          false,
	SpeechHue:        0x02B2,
	SpeechFont:       3,
	Language:         "ENU",
}

var gs settings = gsdef

// settingsLoaded reports whether settings were successfully loaded from disk.
var settingsLoaded bool

// dataDirPath holds the directory containing the client data files and the
// settings. It resolves next to the executable so the client works from any
// working directory.
var dataDirPath = func() string {
	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", "classicgo")
		}
	}
	if exe, err := os.Executable(); err == nil {
		if dir, err := filepath.Abs(filepath.Dir(exe)); err == nil {
			return filepath.Join(dir, "data")
		}
	}
	return "data"
}()

func loadSettings() bool {
	path := filepath.Join(dataDirPath, settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		gs = gsdef
		settingsLoaded = false
		return false
	}

	tmp := gsdef
	if err := json.Unmarshal(data, &tmp); err != nil {
		logWarn("settings %v: %v", path, err)
		gs = gsdef
		settingsLoaded = false
		return false
	}
	if tmp.Version != SETTINGS_VERSION {
		gs = gsdef
		settingsLoaded = false
		return false
	}
	gs = tmp
	clampSettings()
	settingsLoaded = true
	return true
}

func clampSettings() {
	if gs.WindowWidth < 512 {
		gs.WindowWidth = initialWindowW
	}
	if gs.WindowHeight < 384 {
		gs.WindowHeight = initialWindowH
	}
	if gs.GameScale < scene.MinScale || gs.GameScale > scene.MaxScale {
		gs.GameScale = gsdef.GameScale
	}
	if gs.Language == "" || len(gs.Language) > 3 {
		gs.Language = gsdef.Language
	}
}

func saveSettings() {
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		logError("save settings: %v", err)
		return
	}
	if err := os.MkdirAll(dataDirPath, 0755); err != nil {
		logError("save settings: %v", err)
		return
	}
	path := filepath.Join(dataDirPath, settingsFile)
	if err := os.WriteFile(path+".tmp", data, 0644); err != nil {
		logError("save settings: %v", err)
		return
	}
	if err := os.Rename(path+".tmp", path); err != nil {
		logError("save settings: %v", err)
	}
}
