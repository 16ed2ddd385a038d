package sound

import (
	"fmt"

	"go.uber.org/zap"
)

const DefaultMusicFadeFrames = 30

// musicBus plays a single background track outside the sfx channel pool.
type musicBus struct {
	engine *Engine

	path   string
	clip   *Clip
	voice  Voice
	volume float64
	paused bool

	// level scales volume while a fade is running.
	level    float64
	fadeStep float64
}

func (m *musicBus) effectiveVolume() float64 {
	return m.volume * m.level
}

func (m *musicBus) setVolume(volume float64) {
	m.volume = volume
	if m.voice != nil {
		m.voice.SetVolume(m.effectiveVolume())
	}
}

func (m *musicBus) stop() {
	if m.voice != nil {
		m.voice.Pause()
		_ = m.voice.Close()
		m.voice = nil
	}
	m.paused = false
	m.fadeStep = 0
	m.level = 1
}

func (m *musicBus) unload() {
	m.stop()
	m.path = ""
	m.clip = nil
}

func (m *musicBus) update() {
	if m.voice == nil || m.fadeStep <= 0 {
		return
	}
	m.level -= m.fadeStep
	if m.level > 0 {
		m.voice.SetVolume(m.effectiveVolume())
		return
	}
	m.stop()
}

// LoadMusic decodes path as the background track, stopping the current
// one. On failure the previous track stays loaded.
func (e *Engine) LoadMusic(path string) error {
	if e == nil {
		return nil
	}
	clip, err := e.backend.Decode(path)
	if err != nil {
		e.log.Warn("sound: load music failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("sound: load music %q: %w", path, err)
	}
	e.music.stop()
	e.music.path = path
	e.music.clip = clip
	return nil
}

// MusicTrack returns the path of the loaded background track.
func (e *Engine) MusicTrack() string {
	if e == nil {
		return ""
	}
	return e.music.path
}

// PlayMusic restarts the background track, looping forever when loops is
// negative.
func (e *Engine) PlayMusic(loops int) error {
	if e == nil {
		return ErrNoMusic
	}
	m := &e.music
	if m.clip == nil {
		e.log.Warn("sound: no background music loaded")
		return ErrNoMusic
	}
	m.stop()
	voice, err := e.backend.Voice(m.clip, loops)
	if err != nil {
		e.log.Warn("sound: play music failed", zap.String("path", m.path), zap.Error(err))
		return fmt.Errorf("sound: play music %q: %w", m.path, err)
	}
	m.voice = voice
	voice.SetVolume(m.effectiveVolume())
	voice.Play()
	return nil
}

func (e *Engine) StopMusic() {
	if e == nil {
		return
	}
	e.music.stop()
}

func (e *Engine) PauseMusic() {
	if e == nil || e.music.voice == nil {
		return
	}
	e.music.voice.Pause()
	e.music.paused = true
}

func (e *Engine) ResumeMusic() {
	if e == nil || e.music.voice == nil || !e.music.paused {
		return
	}
	e.music.paused = false
	e.music.voice.Play()
}

// MusicPlaying reports whether the background track is audible.
func (e *Engine) MusicPlaying() bool {
	return e != nil && e.music.voice != nil && e.music.voice.IsPlaying()
}

// FadeOutMusic ramps the track to silence over frames calls to Update and
// then stops it.
func (e *Engine) FadeOutMusic(frames int) {
	if e == nil || e.music.voice == nil {
		return
	}
	if frames <= 0 {
		frames = DefaultMusicFadeFrames
	}
	e.music.fadeStep = e.music.level / float64(frames)
	if e.music.fadeStep <= 0 {
		e.music.fadeStep = 1
	}
}
