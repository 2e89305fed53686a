package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const SeedSize = 32

var seedInfo = []byte("fittrack drawing seed v1")

// RandomBytes reads n bytes from the system CSPRNG.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DeriveSeed expands fresh entropy into a seed bound to the given salt using
// HKDF-SHA256.
func DeriveSeed(entropy []byte, salt string) ([SeedSize]byte, error) {
	var seed [SeedSize]byte
	if len(entropy) < SeedSize {
		return seed, fmt.Errorf("entropy must have at least %d bytes, got %d", SeedSize, len(entropy))
	}

	r := hkdf.New(sha256.New, entropy, []byte(salt), seedInfo)
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return seed, err
	}

	return seed, nil
}

// NewSeed derives a seed from fresh CSPRNG entropy. The result cannot be
// known before the call.
func NewSeed(salt string) ([SeedSize]byte, error) {
	entropy, err := RandomBytes(SeedSize)
	if err != nil {
		return [SeedSize]byte{}, err
	}

	return DeriveSeed(entropy, salt)
}

func EncodeSeed(seed [SeedSize]byte) string {
	return hex.EncodeToString(seed[:])
}

func DecodeSeed(s string) ([SeedSize]byte, error) {
	var seed [SeedSize]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return seed, err
	}

	if len(b) != SeedSize {
		return seed, fmt.Errorf("seed must have %d bytes, got %d", SeedSize, len(b))
	}

	copy(seed[:], b)
	return seed, nil
}

func SHA256(b []byte) string {
	hashed := sha256.Sum256(b)
	return hex.EncodeToString(hashed[:])
}
