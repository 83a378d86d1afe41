// Package random builds random outfits from a catalog.
//
// A Generator is seeded explicitly so that a given seed and catalog always
// produce the same outfit. NewFromEntropy draws the seed from crypto/rand
// and reports it so the result can be replayed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return binary.LittleEndian.Uint64(b[:]), nil
}
