package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Default(t *testing.T) {
	t.Parallel()

	c, err := Load("")
	require.NoError(t, err)

	p, err := c.Lookup("popular")
	require.NoError(t, err)
	assert.Equal(t, int64(55), p.Tickets)

	byPrice, err := c.Lookup("price_1SQ8uZK2pvACY45ZZvwwEmU6")
	require.NoError(t, err)
	assert.Equal(t, p, byPrice)

	_, err = c.Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownPackage)
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tickets.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
currency = "eur"

[[package]]
id = "one"
label = "1 ticket"
tickets = 1
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	p, err := c.Lookup("one")
	require.NoError(t, err)
	assert.Equal(t, "Purchased 1 ticket for 0.99 EUR", c.Describe(p, 99))
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"bad_toml":      `[[package]`,
		"unknown_key":   "[[package]]\nid = \"a\"\ntickets = 1\ncolour = \"red\"\n",
		"zero_tickets":  "[[package]]\nid = \"a\"\ntickets = 0\n",
		"missing_id":    "[[package]]\ntickets = 3\n",
		"duplicate_key": "[[package]]\nid = \"a\"\ntickets = 1\n[[package]]\nid = \"b\"\nprice_id = \"a\"\ntickets = 2\n",
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(src)
			assert.Error(t, err)
		})
	}
}

func TestDescribe_USD(t *testing.T) {
	t.Parallel()

	c, err := Load("")
	require.NoError(t, err)

	p, err := c.Lookup("value")
	require.NoError(t, err)

	assert.Equal(t, "Purchased 100 tickets + 15 bonus for $49.90", c.Describe(p, 4990))
	assert.Equal(t, "Purchased 100 tickets + 15 bonus for $5.00", c.Describe(p, 500))
}
