package randsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrypto_Int63nStaysInRange(t *testing.T) {
	t.Parallel()

	var src Crypto

	seen := make(map[int64]bool)

	for range 2000 {
		v, err := src.Int63n(10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, int64(0))
		require.Less(t, v, int64(10))

		seen[v] = true
	}

	// 2000 uniform draws over 10 values miss one with negligible probability.
	assert.Len(t, seen, 10)
}

func TestCrypto_RejectsEmptyRange(t *testing.T) {
	t.Parallel()

	_, err := Crypto{}.Int63n(0)
	require.ErrorIs(t, err, ErrEmptyRange)
}

func TestCrypto_SaltIsUnique(t *testing.T) {
	t.Parallel()

	a, err := Crypto{}.Salt()
	require.NoError(t, err)

	b, err := Crypto{}.Salt()
	require.NoError(t, err)

	assert.Len(t, a, 2*SaltBytes)
	assert.NotEqual(t, a, b)
}

func TestFixed(t *testing.T) {
	t.Parallel()

	v, err := Fixed{Roll: 12}.Int63n(10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}
