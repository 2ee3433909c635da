package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreComplete(t *testing.T) {
	tables := Defaults()

	assert.NotEmpty(t, tables.Countries)
	assert.NotEmpty(t, tables.ShipmentTypes)
	assert.NotEmpty(t, tables.Categories)
	assert.NotEmpty(t, tables.Codes)
	assert.Equal(t, []string{"UAH", "USD", "EUR", "GBP"}, tables.Currencies)

	for _, c := range tables.Countries {
		assert.Len(t, c.Code, 2, "country %s has a malformed code", c.Name)
		assert.NotEmpty(t, c.Phone, "country %s has no calling code", c.Name)
	}
}

func TestResolveCountryCode(t *testing.T) {
	tables := Defaults()

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "iso code", input: "DE", want: "DE", ok: true},
		{name: "lowercase iso code", input: "de", want: "DE", ok: true},
		{name: "full name", input: "Germany", want: "DE", ok: true},
		{name: "name case-insensitive", input: "gerMANY", want: "DE", ok: true},
		{name: "trimmed", input: "  Germany  ", want: "DE", ok: true},
		{name: "uncurated code passes through", input: "ZZ", want: "ZZ", ok: true},
		{name: "unknown name rejected", input: "Atlantis", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tables.ResolveCountryCode(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCallingCode(t *testing.T) {
	tables := Defaults()

	assert.Equal(t, "+49", tables.CallingCode("DE"))
	assert.Equal(t, "", tables.CallingCode("ZZ"))
}

func TestShipmentTypePrime(t *testing.T) {
	tables := Defaults()

	prime, ok := tables.ShipmentTypeByCode("PRIME")
	require.True(t, ok)
	assert.True(t, prime.RequiresTracked)
	assert.True(t, prime.RequiresAvia)
	assert.Equal(t, "PRIME", prime.PackageType)
}

func TestCalcTypeFor(t *testing.T) {
	tables := Defaults()

	assert.Equal(t, "SMALL_PACKAGE", tables.CalcTypeFor("SMALL_BAG"))
	assert.Equal(t, "PARCEL", tables.CalcTypeFor("PARCEL"))
	assert.Equal(t, "SMALL_PACKAGE", tables.CalcTypeFor("NOPE"))
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refdata.yaml")
	overlay := `
countries:
  - code: XK
    name: Kosovo
    phone: "+383"
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	tables, err := Load(path)
	require.NoError(t, err)

	// The overlaid section replaces the defaults wholesale
	require.Len(t, tables.Countries, 1)
	assert.Equal(t, "XK", tables.Countries[0].Code)

	// Untouched sections keep their defaults
	assert.NotEmpty(t, tables.ShipmentTypes)
	assert.NotEmpty(t, tables.Codes)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	tables, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, tables.Countries)
}
