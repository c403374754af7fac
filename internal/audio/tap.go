package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records the last N samples, mixed to mono, into
// a ring buffer so the analyser can read recently played audio.
// Stream runs on the speaker goroutine; Snapshot on the frame goroutine.
type Tap struct {
	Source    beep.Streamer
	buffer    []float64
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([]float64, ringSize),
	}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = (samples[i][0] + samples[i][1]) * 0.5
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.filled = min(t.filled+n, len(t.buffer))
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot fills dst with the most recent len(dst) samples, most recent last.
// Slots older than anything recorded are zero.
func (t *Tap) Snapshot(dst []float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := min(len(dst), len(t.buffer))
	pad := len(dst) - min(n, t.filled)
	clear(dst[:pad])

	idx := t.nextIndex - 1
	for i := len(dst) - 1; i >= pad; i-- {
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
		dst[i] = t.buffer[idx]
		idx--
	}
}
