// Package catalog maps purchasable ticket packages to ticket counts.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

//go:embed default.toml
var defaultCatalog string

var ErrUnknownPackage = errors.New("unknown ticket package")

type Package struct {
	ID      string `toml:"id"`
	PriceID string `toml:"price_id"`
	Label   string `toml:"label"`
	Tickets int64  `toml:"tickets"`
}

type file struct {
	Currency string    `toml:"currency"`
	Packages []Package `toml:"package"`
}

type Catalog struct {
	currency string
	byKey    map[string]Package
}

// Load reads a catalog from path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return Parse(string(raw))
}

func Parse(src string) (*Catalog, error) {
	var f file

	md, err := toml.Decode(src, &f)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown catalog keys: %v", undecoded)
	}

	c := &Catalog{
		currency: strings.ToUpper(f.Currency),
		byKey:    make(map[string]Package, 2*len(f.Packages)),
	}

	for _, p := range f.Packages {
		if p.ID == "" || p.Tickets <= 0 {
			return nil, fmt.Errorf("package %q: id and positive tickets required", p.ID)
		}

		for _, key := range []string{p.ID, p.PriceID} {
			if key == "" {
				continue
			}

			if _, dup := c.byKey[key]; dup {
				return nil, fmt.Errorf("duplicate package key %q", key)
			}

			c.byKey[key] = p
		}
	}

	return c, nil
}

// Lookup finds a package by id or Stripe price id.
func (c *Catalog) Lookup(key string) (Package, error) {
	p, ok := c.byKey[key]
	if !ok {
		return Package{}, fmt.Errorf("%q: %w", key, ErrUnknownPackage)
	}

	return p, nil
}

// Describe renders the ledger description of a purchase. amountMinor is in
// the currency's minor unit.
func (c *Catalog) Describe(p Package, amountMinor int64) string {
	amount := decimal.New(amountMinor, -2).StringFixed(2)

	if c.currency == "" || c.currency == "USD" {
		return fmt.Sprintf("Purchased %s for $%s", p.Label, amount)
	}

	return fmt.Sprintf("Purchased %s for %s %s", p.Label, amount, c.currency)
}
