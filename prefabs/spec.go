package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type AudioSpec struct {
	SFXVolume   float64 `yaml:"sfx_volume"`
	MusicVolume float64 `yaml:"music_volume"`
	Track       string  `yaml:"track"`
	// TrackLoops is the number of extra plays of Track; -1 loops forever.
	TrackLoops int `yaml:"track_loops"`
}

type SoundSpec struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type SpawnSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ArenaSpec describes one arena: window, audio, spawn points and the
// prefabs and scripts a match in it uses.
type ArenaSpec struct {
	Name     string      `yaml:"name"`
	Window   WindowSpec  `yaml:"window"`
	Audio    AudioSpec   `yaml:"audio"`
	Sounds   []SoundSpec `yaml:"sounds"`
	Spawns   []SpawnSpec `yaml:"spawns"`
	Player   string      `yaml:"player"`
	Intro    string      `yaml:"intro"`
	Controls []string    `yaml:"controls"`
	Tutorial bool        `yaml:"tutorial"`
}

var (
	ErrNoSpawns    = errors.New("prefabs: arena needs two spawn points")
	ErrBadVolume   = errors.New("prefabs: volume outside [0, 1]")
	ErrSoundNoName = errors.New("prefabs: sound entry without name or path")
)

// Validate checks the fields a match cannot start without.
func (a *ArenaSpec) Validate() error {
	if len(a.Spawns) < 2 {
		return ErrNoSpawns
	}
	for _, v := range []float64{a.Audio.SFXVolume, a.Audio.MusicVolume} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %v", ErrBadVolume, v)
		}
	}
	seen := make(map[string]bool, len(a.Sounds))
	for _, s := range a.Sounds {
		if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Path) == "" {
			return ErrSoundNoName
		}
		if seen[s.Name] {
			return fmt.Errorf("prefabs: duplicate sound %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Control returns the control layout name of player i (0 or 1).
func (a *ArenaSpec) Control(i int) string {
	if i < 0 || i >= len(a.Controls) {
		return ""
	}
	return a.Controls[i]
}

func LoadArenaSpec(name string) (*ArenaSpec, error) {
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	spec, err := LoadSpec[ArenaSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

// PlayerSpec is the tuning of a player entity. Zero fields fall back to
// the entity defaults.
type PlayerSpec struct {
	Name         string  `yaml:"name"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Acceleration float64 `yaml:"acceleration"`
	Friction     float64 `yaml:"friction"`
	Health       int     `yaml:"health"`
	Lives        int     `yaml:"lives"`
}

func LoadPlayerSpec(name string) (*PlayerSpec, error) {
	if name == "" {
		name = "player.yaml"
	}
	spec, err := LoadSpec[PlayerSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
