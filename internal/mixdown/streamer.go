package mixdown

import (
	"fmt"

	"github.com/Conceptual-Machines/soul-vamp/internal/synth"
	"github.com/gopxl/beep"
)

// bufferStreamer plays a mono buffer as a beep.Streamer, duplicating each
// sample to both channels
type bufferStreamer struct {
	buf synth.Buffer
	pos int
}

// NewStreamer wraps buf for beep consumers
func NewStreamer(buf synth.Buffer) beep.StreamSeeker {
	return &bufferStreamer{buf: buf}
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	n = copyMono(samples, s.buf[s.pos:])
	s.pos += n
	return n, true
}

func (s *bufferStreamer) Err() error { return nil }

func (s *bufferStreamer) Len() int { return len(s.buf) }

func (s *bufferStreamer) Position() int { return s.pos }

func (s *bufferStreamer) Seek(p int) error {
	if p < 0 || p > len(s.buf) {
		return fmt.Errorf("seek position %d out of range [0, %d]", p, len(s.buf))
	}
	s.pos = p
	return nil
}

func copyMono(dst [][2]float64, src synth.Buffer) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i][0] = src[i]
		dst[i][1] = src[i]
	}
	return n
}
