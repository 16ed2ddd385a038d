package sound

// SilentBackend accepts every clip and voices nothing. Use it to run
// without an audio device.
type SilentBackend struct{}

func (SilentBackend) Decode(path string) (*Clip, error) {
	return &Clip{Path: path}, nil
}

func (SilentBackend) Voice(*Clip, int) (Voice, error) {
	return silentVoice{}, nil
}

type silentVoice struct{}

func (silentVoice) Play()             {}
func (silentVoice) Pause()            {}
func (silentVoice) IsPlaying() bool   { return false }
func (silentVoice) SetVolume(float64) {}
func (silentVoice) Close() error      { return nil }
