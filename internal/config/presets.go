package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"retro": {
		Theme: "retro", FPS: 24, DataDir: DefaultDataDir,
		Log: LogConfig{Level: DefaultLogLevel, File: DefaultLogFile},
	},
	"calm": {
		Theme: "ocean", FPS: 30, DataDir: DefaultDataDir,
		Log: LogConfig{Level: DefaultLogLevel, File: DefaultLogFile},
	},
	"smooth": {
		Theme: "minimal", FPS: 60, DataDir: DefaultDataDir,
		Log: LogConfig{Level: DefaultLogLevel, File: DefaultLogFile},
	},
	"debug": {
		Theme: DefaultTheme, FPS: DefaultFPS, DataDir: DefaultDataDir,
		Log: LogConfig{Level: "debug", File: DefaultLogFile},
		Run: RunConfig{Save: true},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
