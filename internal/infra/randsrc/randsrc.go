// Package randsrc supplies the randomness that gates monetary outcomes.
// Production code uses Crypto; tests substitute a fixed source.
package randsrc

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
)

// SaltBytes is the size of a proof salt before hex encoding.
const SaltBytes = 32

var ErrEmptyRange = errors.New("random range must be positive")

type Source interface {
	// Int63n returns a uniform value in [0, n).
	Int63n(n int64) (int64, error)
	// Salt returns a fresh hex-encoded salt.
	Salt() (string, error)
}

// Crypto draws from crypto/rand.
type Crypto struct{}

var _ Source = Crypto{}

func (Crypto) Int63n(n int64) (int64, error) {
	if n <= 0 {
		return 0, ErrEmptyRange
	}

	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}

	return v.Int64(), nil
}

func (Crypto) Salt() (string, error) {
	b := make([]byte, SaltBytes)

	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	return hex.EncodeToString(b), nil
}

// Fixed always returns Roll (clamped into range) and SaltValue.
type Fixed struct {
	Roll      int64
	SaltValue string
}

var _ Source = Fixed{}

func (f Fixed) Int63n(n int64) (int64, error) {
	if n <= 0 {
		return 0, ErrEmptyRange
	}

	return f.Roll % n, nil
}

func (f Fixed) Salt() (string, error) {
	return f.SaltValue, nil
}
