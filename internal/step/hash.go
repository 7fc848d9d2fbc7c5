package step

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainTrace separates trace digests from any other hash in the system.
// The version suffix allows the encoding to change without collisions.
const DomainTrace = "sortstep/trace/v1"

// hashWithDomain computes SHA256(domain || 0x00 || data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest returns the content address of a step sequence.
//
// Two runs of the same engine over equal inputs produce equal digests; any
// difference in kind, position, value or description changes it.
func Digest(steps []Step[int]) (string, error) {
	canonical, err := MarshalCanonical(steps)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hashWithDomain(DomainTrace, canonical), nil
}

// MustDigest is like Digest but panics on error.
// Integer step sequences always encode, so this only fails on a bug.
func MustDigest(steps []Step[int]) string {
	d, err := Digest(steps)
	if err != nil {
		panic(err)
	}
	return d
}
