package sound

import (
	"context"
	"errors"
	"fmt"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSFXVolume   = 0.5
	DefaultMusicVolume = 0.5

	loadConcurrency = 4
)

var (
	ErrUnknownSound  = errors.New("sound: unknown sound")
	ErrNoFreeChannel = errors.New("sound: no free channel")
	ErrNoMusic       = errors.New("sound: no background music loaded")
)

// Engine is the named clip registry, sfx channel pool and music bus of a
// match session.
type Engine struct {
	backend Backend
	log     *zap.Logger

	clips    map[string]*Clip
	channels []*channel

	// active holds every acquisition per clip; overlapping holds the ones
	// started while the clip was already sounding.
	active      map[string][]slot
	overlapping map[string][]slot

	sfxVolume float64
	music     musicBus
}

// NewEngine builds an initialized engine. A nil backend is silent.
func NewEngine(backend Backend, log *zap.Logger) *Engine {
	log = logging.OrNop(log)
	if backend == nil {
		backend = SilentBackend{}
	}
	e := &Engine{backend: backend, log: log}
	e.music.engine = e
	e.Init()
	return e
}

// Init drops every clip and voice and restores the default volumes.
func (e *Engine) Init() {
	if e == nil {
		return
	}
	e.stopChannels()
	e.music.unload()

	e.clips = make(map[string]*Clip)
	e.channels = newChannels(ChannelCount)
	e.active = make(map[string][]slot)
	e.overlapping = make(map[string][]slot)
	e.sfxVolume = DefaultSFXVolume
	e.music.volume = DefaultMusicVolume
}

// Reset stops every sfx channel and the music bus. Clips and volumes are
// kept.
func (e *Engine) Reset() {
	if e == nil {
		return
	}
	e.stopChannels()
	e.music.stop()
	e.active = make(map[string][]slot)
	e.overlapping = make(map[string][]slot)
}

func (e *Engine) stopChannels() {
	for _, ch := range e.channels {
		ch.release()
	}
}

// Close releases every voice.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.stopChannels()
	e.music.unload()
}

// Load decodes path and registers it as name. On failure the name stays
// unregistered.
func (e *Engine) Load(name, path string) error {
	if e == nil {
		return nil
	}
	clip, err := e.backend.Decode(path)
	if err != nil {
		e.log.Warn("sound: load failed", zap.String("sound", name), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("sound: load %q: %w", name, err)
	}
	e.clips[name] = clip
	return nil
}

// LoadAll stops every sfx channel and replaces the registry with the
// manifest. Clips decode concurrently and register in manifest order;
// entries that fail to decode are logged and skipped.
func (e *Engine) LoadAll(ctx context.Context, entries []Entry) error {
	if e == nil {
		return nil
	}
	e.stopChannels()
	clear(e.clips)
	clear(e.active)
	clear(e.overlapping)

	decoded := make([]*Clip, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			clip, err := e.backend.Decode(entry.Path)
			if err != nil {
				e.log.Warn("sound: load failed", zap.String("sound", entry.Name), zap.String("path", entry.Path), zap.Error(err))
				return nil
			}
			decoded[i] = clip
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("sound: load all: %w", err)
	}

	for i, entry := range entries {
		if decoded[i] != nil {
			e.clips[entry.Name] = decoded[i]
		}
	}
	e.log.Debug("sound: manifest loaded", zap.Int("entries", len(entries)), zap.Int("clips", len(e.clips)))
	return nil
}

// Has reports whether name is registered.
func (e *Engine) Has(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.clips[name]
	return ok
}

// Play starts name on a free channel. Failures are logged and dropped.
func (e *Engine) Play(name string, loops int) {
	if err := e.TryPlay(name, loops); err != nil && e != nil {
		e.log.Warn("sound: play failed", zap.String("sound", name), zap.Error(err))
	}
}

// TryPlay is Play that reports why a request was dropped. A request for a
// clip that is already sounding is tracked as an overlap.
func (e *Engine) TryPlay(name string, loops int) error {
	if e == nil {
		return ErrUnknownSound
	}
	clip, ok := e.clips[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownSound, name)
	}
	ch := e.freeChannel()
	if ch == nil {
		return ErrNoFreeChannel
	}

	e.active[name] = pruneSlots(e.active[name])
	alreadySounding := len(e.active[name]) > 0

	voice, err := e.backend.Voice(clip, loops)
	if err != nil {
		return fmt.Errorf("sound: voice %q: %w", name, err)
	}
	s := ch.acquire(name, voice)
	voice.SetVolume(e.sfxVolume)
	voice.Play()

	e.active[name] = append(e.active[name], s)
	if alreadySounding {
		e.overlapping[name] = append(e.overlapping[name], s)
	}
	return nil
}

func (e *Engine) freeChannel() *channel {
	for _, ch := range e.channels {
		if !ch.busy() {
			return ch
		}
	}
	return nil
}

// Stop halts every channel playing name and clears its overlap list.
func (e *Engine) Stop(name string) {
	if e == nil {
		return
	}
	for _, s := range e.active[name] {
		s.stop()
	}
	delete(e.active, name)
	delete(e.overlapping, name)
}

// ActiveChannels returns how many channels are sounding name.
func (e *Engine) ActiveChannels(name string) int {
	if e == nil {
		return 0
	}
	n := 0
	for _, s := range e.active[name] {
		if s.sounding() {
			n++
		}
	}
	return n
}

// Overlapping returns the length of name's overlap list.
func (e *Engine) Overlapping(name string) int {
	if e == nil {
		return 0
	}
	return len(e.overlapping[name])
}

// CleanupOverlapping prunes finished channels from the overlap lists.
func (e *Engine) CleanupOverlapping() {
	if e == nil {
		return
	}
	for name, slots := range e.overlapping {
		if kept := pruneSlots(slots); len(kept) > 0 {
			e.overlapping[name] = kept
		} else {
			delete(e.overlapping, name)
		}
	}
	for name, slots := range e.active {
		if kept := pruneSlots(slots); len(kept) > 0 {
			e.active[name] = kept
		} else {
			delete(e.active, name)
		}
	}
}

// Update steps the music fade and prunes finished channels. Call once per
// frame.
func (e *Engine) Update() {
	if e == nil {
		return
	}
	e.music.update()
	e.CleanupOverlapping()
}

func (e *Engine) SFXVolume() float64 {
	if e == nil {
		return 0
	}
	return e.sfxVolume
}

// SetSFXVolume clamps volume to [0, 1] and applies it to every sounding
// sfx channel and every later play.
func (e *Engine) SetSFXVolume(volume float64) {
	if e == nil {
		return
	}
	e.sfxVolume = common.Clamp01(volume)
	for _, slots := range e.active {
		for _, s := range slots {
			s.setVolume(e.sfxVolume)
		}
	}
}

func (e *Engine) MusicVolume() float64 {
	if e == nil {
		return 0
	}
	return e.music.volume
}

// SetMusicVolume clamps volume to [0, 1] and applies it to the music bus.
func (e *Engine) SetMusicVolume(volume float64) {
	if e == nil {
		return
	}
	e.music.setVolume(common.Clamp01(volume))
}
