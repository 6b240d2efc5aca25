// Package seed derives the single 32-bit seed a piece is composed from and
// builds the random stream every later stage draws from.
package seed

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	mrand "math/rand/v2"
	"strconv"
	"time"

	"github.com/Conceptual-Machines/soul-vamp/internal/logger"
	"github.com/Conceptual-Machines/soul-vamp/internal/models"
)

const localEntropyBytes = 32

// pcgStream is the fixed second PCG word; only the seed varies between runs
const pcgStream = 0x5EED50C1A1

// EntropySource contributes optional external randomness.
// ok=false means "no contribution" and is never an error.
type EntropySource interface {
	Fetch(ctx context.Context) (data []byte, ok bool)
}

// Engine gathers entropy and folds it into a seed
type Engine struct {
	Local    io.Reader        // Defaults to crypto/rand
	External EntropySource    // Optional
	Now      func() time.Time // Defaults to time.Now
}

// NewEngine creates an engine using crypto/rand and an optional external source
func NewEngine(external EntropySource) *Engine {
	return &Engine{
		Local:    rand.Reader,
		External: external,
		Now:      time.Now,
	}
}

// Derive produces the run seed and the random stream seeded from it.
// Call it once per run; the returned stream is the only randomness the
// composition may use.
func (e *Engine) Derive(ctx context.Context) (models.Seed, *mrand.Rand, error) {
	local := make([]byte, localEntropyBytes)
	if _, err := io.ReadFull(e.local(), local); err != nil {
		return 0, nil, fmt.Errorf("failed to read local entropy: %w", err)
	}

	var external []byte
	if e.External != nil {
		if data, ok := e.External.Fetch(ctx); ok {
			external = data
		} else {
			logger.Debug("External entropy unavailable, continuing without it", nil)
		}
	}

	now := e.Now
	if now == nil {
		now = time.Now
	}
	stamp := []byte(strconv.FormatInt(now().UnixNano(), 10))

	s := Combine(local, external, stamp)
	logger.Info("Seed derived", logger.Fields{
		"seed":           uint32(s),
		"external_bytes": len(external),
	})
	return s, NewRand(s), nil
}

func (e *Engine) local() io.Reader {
	if e.Local != nil {
		return e.Local
	}
	return rand.Reader
}

// Combine hashes the concatenated entropy blocks and reduces the digest
// modulo 2^32.
func Combine(blocks ...[]byte) models.Seed {
	h := sha256.New()
	for _, b := range blocks {
		h.Write(b)
	}
	sum := h.Sum(nil)
	// digest mod 2^32 is its low 32 bits, the trailing four bytes big-endian
	return models.Seed(binary.BigEndian.Uint32(sum[len(sum)-4:]))
}

// NewRand builds the deterministic random stream for a seed
func NewRand(s models.Seed) *mrand.Rand {
	return mrand.New(mrand.NewPCG(uint64(s), pcgStream))
}
