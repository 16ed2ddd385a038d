package sound

// ChannelCount is the size of the sfx channel pool.
const ChannelCount = 32

type channel struct {
	id    int
	clip  string
	voice Voice
	// gen counts acquisitions so a stale slot never matches a reused channel.
	gen uint64
}

// slot refers to one acquisition of a channel.
type slot struct {
	ch  *channel
	gen uint64
}

func (c *channel) busy() bool {
	return c.voice != nil && c.voice.IsPlaying()
}

func (c *channel) acquire(clip string, voice Voice) slot {
	c.release()
	c.gen++
	c.clip = clip
	c.voice = voice
	return slot{ch: c, gen: c.gen}
}

func (c *channel) release() {
	if c.voice == nil {
		return
	}
	c.voice.Pause()
	_ = c.voice.Close()
	c.voice = nil
	c.clip = ""
}

// sounding reports whether the slot's acquisition is still playing.
func (s slot) sounding() bool {
	return s.ch != nil && s.ch.gen == s.gen && s.ch.busy()
}

func (s slot) stop() {
	if s.ch != nil && s.ch.gen == s.gen {
		s.ch.release()
	}
}

func (s slot) setVolume(volume float64) {
	if s.sounding() {
		s.ch.voice.SetVolume(volume)
	}
}

func newChannels(n int) []*channel {
	channels := make([]*channel, n)
	for i := range channels {
		channels[i] = &channel{id: i}
	}
	return channels
}

// pruneSlots keeps the slots that are still sounding, reusing the backing
// array.
func pruneSlots(slots []slot) []slot {
	kept := slots[:0]
	for _, s := range slots {
		if s.sounding() {
			kept = append(kept, s)
		}
	}
	clear(slots[len(kept):])
	return kept
}
