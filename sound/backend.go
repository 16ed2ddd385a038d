package sound

// Clip is a decoded sound asset ready to be voiced.
type Clip struct {
	Path string
	// PCM holds the decoded samples in the backend's native format.
	PCM []byte
}

// Voice is one playing instance of a clip. *audio.Player satisfies it.
type Voice interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
	Close() error
}

// Backend decodes clips and creates voices for them.
type Backend interface {
	Decode(path string) (*Clip, error)
	// Voice creates a voice that plays clip loops+1 times, or forever when
	// loops is negative.
	Voice(clip *Clip, loops int) (Voice, error)
}

// Entry is one named clip of a sound manifest.
type Entry struct {
	Name string
	Path string
}
