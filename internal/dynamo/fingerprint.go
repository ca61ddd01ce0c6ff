package dynamo

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// Fingerprint hashes the exact bits of every position and velocity in order.
// Bit-identical trajectories give equal fingerprints; nil bodies are skipped.
func Fingerprint(bodies []*Body) uint64 {
	h := xxh3.New()
	var buf [8]byte
	for _, b := range bodies {
		if b == nil {
			continue
		}
		for _, v := range [2]Vec{b.position, b.velocity} {
			for i := 0; i < 3; i++ {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v[i]))
				h.Write(buf[:])
			}
		}
	}
	return h.Sum64()
}
