package sound

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const DefaultSampleRate = 44100

// EbitenBackend decodes wav, ogg and mp3 files and voices them through the
// shared ebiten audio context.
type EbitenBackend struct {
	ctx  *audio.Context
	fsys fs.FS
}

// NewEbitenBackend reads clips from fsys, or from disk when fsys is nil.
func NewEbitenBackend(sampleRate int, fsys fs.FS) *EbitenBackend {
	ctx := audio.CurrentContext()
	if ctx == nil {
		if sampleRate <= 0 {
			sampleRate = DefaultSampleRate
		}
		ctx = audio.NewContext(sampleRate)
	}
	return &EbitenBackend{ctx: ctx, fsys: fsys}
}

func (b *EbitenBackend) Decode(path string) (*Clip, error) {
	data, err := b.readFile(path)
	if err != nil {
		return nil, err
	}
	pcm, err := b.decodePCM(path, data)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return &Clip{Path: path, PCM: pcm}, nil
}

func (b *EbitenBackend) Voice(clip *Clip, loops int) (Voice, error) {
	if clip == nil {
		return nil, fmt.Errorf("nil clip")
	}

	var src io.Reader
	switch {
	case loops < 0:
		src = audio.NewInfiniteLoop(bytes.NewReader(clip.PCM), int64(len(clip.PCM)))
	case loops > 0:
		readers := make([]io.Reader, loops+1)
		for i := range readers {
			readers[i] = bytes.NewReader(clip.PCM)
		}
		src = io.MultiReader(readers...)
	default:
		return b.ctx.NewPlayerFromBytes(clip.PCM), nil
	}

	player, err := b.ctx.NewPlayer(src)
	if err != nil {
		return nil, err
	}
	return player, nil
}

func (b *EbitenBackend) readFile(path string) ([]byte, error) {
	if b.fsys != nil {
		return fs.ReadFile(b.fsys, filepath.ToSlash(path))
	}
	return os.ReadFile(path)
}

func (b *EbitenBackend) decodePCM(path string, data []byte) ([]byte, error) {
	reader := bytes.NewReader(data)
	sampleRate := b.ctx.SampleRate()

	var stream io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, err
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, err
		}
		stream = s
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, err
		}
		stream = s
	default:
		// Already-decoded PCM in ebiten's native format.
		return data, nil
	}
	return io.ReadAll(stream)
}
