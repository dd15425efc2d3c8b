// Package random provides seeded pseudo-random sources.
//
// Game code takes a *rand.Rand so tests and daily lists can be reproduced;
// production sources are seeded from crypto/rand.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// New returns a PCG-backed generator for seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Fresh returns a generator seeded from crypto/rand. It falls back to the
// runtime's random source if the system entropy read fails.
func Fresh() *rand.Rand {
	seed, err := NewSeed()
	if err != nil {
		seed = rand.Uint64()
	}
	return New(seed)
}
