package script

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/arena/executor"
	"github.com/milk9111/arena/prefabs"
)

type Action string

const (
	ActionPlaySound Action = "play_sound"
	ActionStopSound Action = "stop_sound"
)

// Cue is one timeline entry. A cue with Every set repeats; otherwise it
// fires once After its delay.
type Cue struct {
	After  time.Duration
	Every  time.Duration
	Action Action
	Sound  string
	Loops  int
	Guard  string
}

func (c Cue) Repeats() bool {
	return c.Every > 0
}

// Timeline is the evaluated result of a timeline script.
type Timeline struct {
	Name  string
	Label string
	Cues  []Cue
}

// Vars are the globals a timeline script can read.
type Vars struct {
	Tutorial bool
	Lives    int
}

// Scheduler registers deferred calls. *executor.Executor satisfies it.
type Scheduler interface {
	Wait(delay time.Duration, action func(), guard func() bool) executor.Handle
	Repeat(delay time.Duration, action func(), guard func() bool) executor.Handle
}

// Sounds is what cues drive. *sound.Engine satisfies it.
type Sounds interface {
	Play(name string, loops int)
	Stop(name string)
}

// Guards maps guard names used by scripts to predicates.
type Guards map[string]func() bool

var ErrNoTimeline = errors.New("script: timeline not defined")

// Load reads the named script from prefabs and compiles it.
func Load(name string, vars Vars) (*Timeline, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %q: %w", name, err)
	}
	return Compile(name, src, vars)
}

// Compile runs src once and reads its global `timeline` array, and the
// optional `label` string.
func Compile(name string, src []byte, vars Vars) (*Timeline, error) {
	s := tengo.NewScript(src)
	_ = s.Add("tutorial", vars.Tutorial)
	_ = s.Add("lives", vars.Lives)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Run()
	if err != nil {
		return nil, fmt.Errorf("script: run %q: %w", name, err)
	}
	if !compiled.IsDefined("timeline") {
		return nil, fmt.Errorf("%w in %q", ErrNoTimeline, name)
	}

	tl := &Timeline{Name: name}
	if compiled.IsDefined("label") {
		tl.Label = compiled.Get("label").String()
	}

	for i, raw := range compiled.Get("timeline").Array() {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("script: %q cue %d: not a map", name, i)
		}
		cue, err := parseCue(entry)
		if err != nil {
			return nil, fmt.Errorf("script: %q cue %d: %w", name, i, err)
		}
		tl.Cues = append(tl.Cues, cue)
	}
	return tl, nil
}

func parseCue(entry map[string]any) (Cue, error) {
	after, err := millis(entry, "after")
	if err != nil {
		return Cue{}, err
	}
	every, err := millis(entry, "every")
	if err != nil {
		return Cue{}, err
	}
	loops, err := integer(entry, "loops")
	if err != nil {
		return Cue{}, err
	}

	cue := Cue{
		After:  after,
		Every:  every,
		Action: Action(str(entry, "action")),
		Sound:  strings.TrimSpace(str(entry, "sound")),
		Loops:  int(loops),
		Guard:  strings.TrimSpace(str(entry, "guard")),
	}
	if cue.Action == "" {
		cue.Action = ActionPlaySound
	}

	switch {
	case cue.After < 0 || cue.Every < 0:
		return Cue{}, errors.New("negative delay")
	case cue.After > 0 && cue.Every > 0:
		return Cue{}, errors.New("after and every are exclusive")
	}
	switch cue.Action {
	case ActionPlaySound, ActionStopSound:
		if cue.Sound == "" {
			return Cue{}, fmt.Errorf("%s without sound", cue.Action)
		}
	default:
		return Cue{}, fmt.Errorf("unknown action %q", cue.Action)
	}
	return cue, nil
}

func integer(entry map[string]any, key string) (int64, error) {
	switch v := entry[key].(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%s: want a number, got %T", key, v)
	}
}

func millis(entry map[string]any, key string) (time.Duration, error) {
	n, err := integer(entry, key)
	return time.Duration(n) * time.Millisecond, err
}

func str(entry map[string]any, key string) string {
	s, _ := entry[key].(string)
	return s
}

// Schedule registers every cue on s. All guard names are resolved before
// anything is registered.
func (t *Timeline) Schedule(s Scheduler, sounds Sounds, guards Guards) ([]executor.Handle, error) {
	if t == nil {
		return nil, nil
	}
	resolved := make([]func() bool, len(t.Cues))
	for i, cue := range t.Cues {
		if cue.Guard == "" {
			continue
		}
		g, ok := guards[cue.Guard]
		if !ok || g == nil {
			return nil, fmt.Errorf("script: %q cue %d: unknown guard %q", t.Name, i, cue.Guard)
		}
		resolved[i] = g
	}

	handles := make([]executor.Handle, 0, len(t.Cues))
	for i, cue := range t.Cues {
		action := cueAction(cue, sounds)
		if cue.Repeats() {
			handles = append(handles, s.Repeat(cue.Every, action, resolved[i]))
		} else {
			handles = append(handles, s.Wait(cue.After, action, resolved[i]))
		}
	}
	return handles, nil
}

func cueAction(cue Cue, sounds Sounds) func() {
	switch cue.Action {
	case ActionStopSound:
		return func() { sounds.Stop(cue.Sound) }
	default:
		return func() { sounds.Play(cue.Sound, cue.Loops) }
	}
}
