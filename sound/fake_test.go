package sound

import (
	"errors"
	"sync"
)

type fakeVoice struct {
	clip    string
	loops   int
	playing bool
	volume  float64
	closed  bool
}

func (v *fakeVoice) Play()               { v.playing = true }
func (v *fakeVoice) Pause()              { v.playing = false }
func (v *fakeVoice) IsPlaying() bool     { return v.playing }
func (v *fakeVoice) SetVolume(f float64) { v.volume = f }
func (v *fakeVoice) Close() error {
	v.closed = true
	return nil
}

// finish simulates the clip running out.
func (v *fakeVoice) finish() { v.playing = false }

type fakeBackend struct {
	mu      sync.Mutex
	broken  map[string]bool
	decoded []string
	voices  []*fakeVoice
}

func newFakeBackend(broken ...string) *fakeBackend {
	b := &fakeBackend{broken: map[string]bool{}}
	for _, p := range broken {
		b.broken[p] = true
	}
	return b
}

func (b *fakeBackend) Decode(path string) (*Clip, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.broken[path] {
		return nil, errors.New("corrupt file")
	}
	b.decoded = append(b.decoded, path)
	return &Clip{Path: path}, nil
}

func (b *fakeBackend) Voice(clip *Clip, loops int) (Voice, error) {
	v := &fakeVoice{clip: clip.Path, loops: loops}
	b.voices = append(b.voices, v)
	return v, nil
}

func (b *fakeBackend) last() *fakeVoice {
	return b.voices[len(b.voices)-1]
}
