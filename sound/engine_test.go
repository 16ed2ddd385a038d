package sound

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine(t *testing.T, broken ...string) (*Engine, *fakeBackend, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	backend := newFakeBackend(broken...)
	return NewEngine(backend, zap.New(core)), backend, logs
}

func TestPlayTwiceTracksOverlap(t *testing.T) {
	e, backend, _ := newTestEngine(t)
	require.NoError(t, e.Load("laser", "laser.wav"))

	e.Play("laser", 0)
	assert.Equal(t, 1, e.ActiveChannels("laser"))
	assert.Equal(t, 0, e.Overlapping("laser"))

	e.Play("laser", 0)
	assert.Equal(t, 2, e.ActiveChannels("laser"))
	assert.Equal(t, 1, e.Overlapping("laser"))
	require.Len(t, backend.voices, 2)
	assert.True(t, backend.voices[0].playing)
	assert.True(t, backend.voices[1].playing)

	e.Stop("laser")
	assert.Equal(t, 0, e.ActiveChannels("laser"))
	assert.Equal(t, 0, e.Overlapping("laser"))
	for _, v := range backend.voices {
		assert.False(t, v.playing)
		assert.True(t, v.closed)
	}
}

func TestReplayAfterFinishIsNotOverlap(t *testing.T) {
	e, backend, _ := newTestEngine(t)
	require.NoError(t, e.Load("laser", "laser.wav"))

	e.Play("laser", 0)
	backend.last().finish()
	e.Play("laser", 0)

	assert.Equal(t, 1, e.ActiveChannels("laser"))
	assert.Equal(t, 0, e.Overlapping("laser"))
}

func TestPlayUnknownLogsAndDrops(t *testing.T) {
	e, backend, logs := newTestEngine(t)

	assert.NotPanics(t, func() { e.Play("missing", 0) })
	assert.Empty(t, backend.voices)
	assert.ErrorIs(t, e.TryPlay("missing", 0), ErrUnknownSound)

	entries := logs.FilterMessage("sound: play failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "missing", entries[0].ContextMap()["sound"])
}

func TestPlayWithoutFreeChannel(t *testing.T) {
	e, backend, logs := newTestEngine(t)
	require.NoError(t, e.Load("loop", "loop.ogg"))

	for i := 0; i < ChannelCount; i++ {
		require.NoError(t, e.TryPlay("loop", -1))
	}
	assert.Equal(t, ChannelCount, e.ActiveChannels("loop"))
	assert.Equal(t, ChannelCount-1, e.Overlapping("loop"))

	assert.ErrorIs(t, e.TryPlay("loop", -1), ErrNoFreeChannel)
	e.Play("loop", -1)
	assert.Len(t, backend.voices, ChannelCount)
	assert.Equal(t, 1, logs.FilterMessage("sound: play failed").Len())

	// a finished channel is reused
	backend.voices[7].finish()
	require.NoError(t, e.TryPlay("loop", -1))
	assert.True(t, backend.voices[7].closed)
}

func TestStaleSlotDoesNotFollowReusedChannel(t *testing.T) {
	e, backend, _ := newTestEngine(t)
	require.NoError(t, e.Load("a", "a.wav"))
	require.NoError(t, e.Load("b", "b.wav"))

	e.Play("a", 0)
	backend.last().finish()
	e.Play("b", 0) // reuses channel 0

	assert.Equal(t, 0, e.ActiveChannels("a"))
	assert.Equal(t, 1, e.ActiveChannels("b"))

	e.Stop("a")
	assert.True(t, backend.last().playing, "stopping a must not cut b")
}

func TestLoopsPassThrough(t *testing.T) {
	e, backend, _ := newTestEngine(t)
	require.NoError(t, e.Load("hum", "hum.wav"))
	e.Play("hum", 3)
	assert.Equal(t, 3, backend.last().loops)
}

func TestLoadFailureLeavesNameUnregistered(t *testing.T) {
	e, _, logs := newTestEngine(t, "broken.wav")

	err := e.Load("boom", "broken.wav")
	assert.Error(t, err)
	assert.False(t, e.Has("boom"))
	assert.Equal(t, 1, logs.FilterMessage("sound: load failed").Len())
}

func TestLoadAllReplacesRegistry(t *testing.T) {
	e, backend, _ := newTestEngine(t, "bad.wav")
	require.NoError(t, e.Load("old", "old.wav"))
	e.Play("old", 0)
	e.Play("old", 0)
	require.Equal(t, 1, e.Overlapping("old"))

	err := e.LoadAll(context.Background(), []Entry{
		{Name: "Button hover", Path: "hover.wav"},
		{Name: "Laser", Path: "laser.wav"},
		{Name: "Bad", Path: "bad.wav"},
	})
	require.NoError(t, err)

	assert.False(t, e.Has("old"))
	assert.Equal(t, 0, e.Overlapping("old"))
	assert.True(t, e.Has("Button hover"))
	assert.True(t, e.Has("Laser"))
	assert.False(t, e.Has("Bad"))
	assert.ElementsMatch(t, []string{"old.wav", "hover.wav", "laser.wav"}, backend.decoded)
}

func TestLoadAllStopsSoundingChannels(t *testing.T) {
	e, backend, _ := newTestEngine(t)
	require.NoError(t, e.Load("Crowd", "crowd.wav"))
	e.Play("Crowd", -1)
	looping := backend.last()
	require.True(t, looping.playing)

	require.NoError(t, e.LoadAll(context.Background(), []Entry{{Name: "Crowd", Path: "crowd.wav"}}))

	assert.False(t, looping.playing)
	assert.True(t, looping.closed)
	assert.Equal(t, 0, e.ActiveChannels("Crowd"))

	e.Play("Crowd", 0)
	assert.Equal(t, 0, e.Overlapping("Crowd"), "reloaded clip starts fresh")
}

func TestLoadAllHonorsCancelledContext(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.LoadAll(ctx, []Entry{{Name: "Laser", Path: "laser.wav"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, e.Has("Laser"))
}

func TestSFXVolumeClampsAndApplies(t *testing.T) {
	e, backend, _ := newTestEngine(t)
	require.NoError(t, e.Load("laser", "laser.wav"))
	assert.Equal(t, DefaultSFXVolume, e.SFXVolume())

	e.Play("laser", 0)
	e.Play("laser", 0)
	assert.Equal(t, DefaultSFXVolume, backend.last().volume)

	e.SetSFXVolume(2)
	assert.Equal(t, 1.0, e.SFXVolume())
	for _, v := range backend.voices {
		assert.Equal(t, 1.0, v.volume)
	}

	e.SetSFXVolume(-1)
	assert.Equal(t, 0.0, e.SFXVolume())

	e.SetSFXVolume(0.25)
	e.Play("laser", 0)
	assert.Equal(t, 0.25, backend.last().volume)
}

func TestCleanupOverlappingPrunesFinished(t *testing.T) {
	e, backend, _ := newTestEngine(t)
	require.NoError(t, e.Load("laser", "laser.wav"))

	e.Play("laser", 0)
	e.Play("laser", 0)
	e.Play("laser", 0)
	require.Equal(t, 2, e.Overlapping("laser"))

	backend.voices[1].finish()
	e.CleanupOverlapping()
	assert.Equal(t, 1, e.Overlapping("laser"))

	backend.voices[0].finish()
	backend.voices[2].finish()
	e.Update()
	assert.Equal(t, 0, e.Overlapping("laser"))
	assert.Equal(t, 0, e.ActiveChannels("laser"))
}

func TestResetStopsChannelsKeepsClips(t *testing.T) {
	e, backend, _ := newTestEngine(t)
	require.NoError(t, e.Load("laser", "laser.wav"))
	e.SetSFXVolume(0.8)
	e.Play("laser", 0)
	e.Play("laser", 0)

	e.Reset()

	assert.True(t, e.Has("laser"))
	assert.Equal(t, 0.8, e.SFXVolume())
	assert.Equal(t, 0, e.Overlapping("laser"))
	for _, v := range backend.voices {
		assert.False(t, v.playing)
	}
}

func TestInitClearsEverything(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.Load("laser", "laser.wav"))
	e.SetSFXVolume(0.9)
	e.SetMusicVolume(0.1)

	e.Init()

	assert.False(t, e.Has("laser"))
	assert.Equal(t, DefaultSFXVolume, e.SFXVolume())
	assert.Equal(t, DefaultMusicVolume, e.MusicVolume())
}

func TestNilEngineIsSafe(t *testing.T) {
	var e *Engine
	assert.NotPanics(t, func() {
		e.Play("laser", 0)
		e.Stop("laser")
		e.Update()
		e.SetSFXVolume(1)
		e.StopMusic()
	})
	assert.ErrorIs(t, e.TryPlay("laser", 0), ErrUnknownSound)
}
