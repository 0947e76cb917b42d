package equipment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreequipment "github.com/routeopt/fleetsim/core/equipment"
	"github.com/routeopt/fleetsim/core/model"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "B738", Normalize(" b-738 "))
	assert.Equal(t, "A320NEO", Normalize("a320 neo"))
	assert.Equal(t, "", Normalize("--"))
}

/*
TestCatalog_Resolution runs the built-in catalog through the core resolver.

Cases:
  - exact designator resolves through the normalized stage
  - punctuation and case are ignored
  - a near miss resolves through the fuzzy stage
  - unknown designators fall back to the default guess
*/
func TestCatalog_Resolution(t *testing.T) {
	r := DefaultCatalog().Resolver(0)

	p := r.Resolve("738", nil)
	assert.Equal(t, 172, p.SeatCapacity)
	assert.Equal(t, model.SourceNormalized, p.Source)

	p = r.Resolve("crj-9", nil)
	assert.Equal(t, 76, p.SeatCapacity)
	assert.Equal(t, model.CategoryRegional, p.Category)

	p = r.Resolve("A320NEO", nil)
	assert.Equal(t, model.SourceFuzzy, p.Source)
	assert.Equal(t, 150, p.SeatCapacity)

	p = r.Resolve("XYZ", nil)
	assert.Equal(t, model.SourceDefault, p.Source)
	assert.Equal(t, coreequipment.DefaultSeats, p.SeatCapacity)
}

func TestCatalog_FuzzyDisabled(t *testing.T) {
	c := NewCatalog(File{}, 0)
	assert.Len(t, c.Stages(), 1)
	p := c.Resolver(0).Resolve("A320NEO", nil)
	assert.Equal(t, model.SourceDefault, p.Source)
}

func TestFuzzyMatcher_Threshold(t *testing.T) {
	m := NewFuzzyMatcher([]string{"A320", "B738"}, 0.99)
	_, score, ok := m.Match("A320NEO")
	assert.False(t, ok)
	assert.Greater(t, score, 0.8)

	_, _, ok = NewFuzzyMatcher([]string{"A320"}, 0.5).Match("")
	assert.False(t, ok)
}

func TestFuzzyMatcher_CachesByNormalizedToken(t *testing.T) {
	m := NewFuzzyMatcher([]string{"A320", "B738"}, 0.8)
	code, score, ok := m.Match("a320n")
	require.True(t, ok)
	assert.Equal(t, "A320", code)

	again, againScore, againOK := m.Match("A320-N")
	assert.Equal(t, code, again)
	assert.Equal(t, score, againScore)
	assert.Equal(t, ok, againOK)
	assert.Equal(t, 1, m.Cached())
}

func TestLoad_FileOverridesAndAirlines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data := `
equipment:
  "738": 160
  Q400: 78
airlines:
  dl:
    a320: 157
    "738": 0
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(Config{CatalogPath: path})
	require.NoError(t, err)
	assert.Equal(t, DefaultFuzzyThreshold, c.Threshold())

	seats, ok := c.Seats("738")
	assert.True(t, ok)
	assert.Equal(t, 160, seats)
	seats, ok = c.Seats("q-400")
	assert.True(t, ok)
	assert.Equal(t, 78, seats)

	sm := c.AirlineSeats(" DL ")
	assert.Equal(t, coreequipment.SeatMap{"A320": 157}, sm)
	assert.Nil(t, c.AirlineSeats("UA"))
	assert.Nil(t, c.AirlineSeats(""))

	p := c.Resolver(0).Resolve("A320", sm)
	assert.Equal(t, 157, p.SeatCapacity)
	assert.Equal(t, model.SourceAirline, p.Source)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(Config{CatalogPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = Load(Config{FuzzyThreshold: 1.5})
	assert.Error(t, err)

	c, err := Load(Config{DisableFuzzy: true})
	require.NoError(t, err)
	assert.Zero(t, c.Threshold())
}

func TestCatalog_CodesSorted(t *testing.T) {
	codes := DefaultCatalog().Codes()
	require.NotEmpty(t, codes)
	assert.IsIncreasing(t, codes)
}
