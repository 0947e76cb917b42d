// Package equipment provides the seat-count catalog behind the equipment
// resolver: a built-in table of common designators, optional overrides and
// airline seat maps loaded from YAML, and a fuzzy fallback.
package equipment

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	coreequipment "github.com/routeopt/fleetsim/core/equipment"
	"github.com/routeopt/fleetsim/core/model"
)

// DefaultFuzzyThreshold is the minimum Jaro-Winkler similarity for a fuzzy match.
const DefaultFuzzyThreshold = 0.88

// Config describes where the catalog comes from.
type Config struct {
	CatalogPath        string  `json:"catalog_path" yaml:"catalog_path"`
	FuzzyThreshold     float64 `json:"fuzzy_threshold" yaml:"fuzzy_threshold"`
	DisableFuzzy       bool    `json:"disable_fuzzy" yaml:"disable_fuzzy"`
	DefaultTurnMinutes int     `json:"default_turn_minutes" yaml:"default_turn_minutes"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.FuzzyThreshold == 0 {
		c.FuzzyThreshold = DefaultFuzzyThreshold
	}
}

// Validate checks the threshold range.
func (c Config) Validate() error {
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("equipment: fuzzy_threshold must be within [0,1]")
	}
	if c.DefaultTurnMinutes < 0 {
		return fmt.Errorf("equipment: default_turn_minutes must be >= 0")
	}
	return nil
}

// File is the YAML layout of a catalog file.
type File struct {
	Equipment map[string]int            `yaml:"equipment"`
	Airlines  map[string]map[string]int `yaml:"airlines"`
}

// Catalog maps normalized equipment designators to seat counts. It is
// read-only after construction and safe for concurrent use.
type Catalog struct {
	seats     map[string]int
	airlines  map[string]coreequipment.SeatMap
	fuzzy     *FuzzyMatcher
	threshold float64
}

// NewCatalog builds a catalog from the built-in table plus extra entries.
// threshold <= 0 disables the fuzzy stage.
func NewCatalog(extra File, threshold float64) *Catalog {
	c := &Catalog{
		seats:     make(map[string]int, len(builtinSeats)+len(extra.Equipment)),
		airlines:  make(map[string]coreequipment.SeatMap, len(extra.Airlines)),
		threshold: threshold,
	}
	for code, s := range builtinSeats {
		c.seats[Normalize(code)] = s
	}
	for code, s := range extra.Equipment {
		if key := Normalize(code); key != "" && s > 0 {
			c.seats[key] = s
		}
	}
	for airline, m := range extra.Airlines {
		sm := make(coreequipment.SeatMap, len(m))
		for code, s := range m {
			if code = strings.ToUpper(strings.TrimSpace(code)); code != "" && s > 0 {
				sm[code] = s
			}
		}
		c.airlines[normalizeAirline(airline)] = sm
	}
	if threshold > 0 {
		c.fuzzy = NewFuzzyMatcher(c.Codes(), threshold)
	}
	return c
}

// DefaultCatalog returns the built-in catalog with the default fuzzy threshold.
func DefaultCatalog() *Catalog {
	return NewCatalog(File{}, DefaultFuzzyThreshold)
}

// Load builds a catalog from cfg, reading cfg.CatalogPath when set.
func Load(cfg Config) (*Catalog, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var f File
	if cfg.CatalogPath != "" {
		data, err := os.ReadFile(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("read equipment catalog: %w", err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse equipment catalog: %w", err)
		}
	}
	threshold := cfg.FuzzyThreshold
	if cfg.DisableFuzzy {
		threshold = 0
	}
	return NewCatalog(f, threshold), nil
}

// Normalize upper-cases token and strips everything but letters and digits.
func Normalize(token string) string {
	var b strings.Builder
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

func normalizeAirline(a string) string {
	return strings.ToUpper(strings.TrimSpace(a))
}

// Seats returns the seat count of a normalized match.
func (c *Catalog) Seats(token string) (int, bool) {
	s, ok := c.seats[Normalize(token)]
	return s, ok && s > 0
}

// Codes returns the normalized designators in sorted order.
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.seats))
	for k := range c.seats {
		codes = append(codes, k)
	}
	sort.Strings(codes)
	return codes
}

// Threshold reports the fuzzy threshold, zero when fuzzy matching is off.
func (c *Catalog) Threshold() float64 { return c.threshold }

// AirlineSeats returns the seat map configured for airline, or nil.
func (c *Catalog) AirlineSeats(airline string) coreequipment.SeatMap {
	if airline == "" {
		return nil
	}
	return c.airlines[normalizeAirline(airline)]
}

// Stages returns the catalog lookup stages in resolution order.
func (c *Catalog) Stages() []coreequipment.Stage {
	stages := []coreequipment.Stage{{Source: model.SourceNormalized, Lookup: coreequipment.LookupFunc(c.Seats)}}
	if c.fuzzy != nil {
		stages = append(stages, coreequipment.Stage{
			Source: model.SourceFuzzy,
			Lookup: coreequipment.LookupFunc(func(token string) (int, bool) {
				code, _, ok := c.fuzzy.Match(token)
				if !ok {
					return 0, false
				}
				return c.seats[code], true
			}),
		})
	}
	return stages
}

// Resolver builds a resolver running this catalog's stages.
func (c *Catalog) Resolver(defaultTurnMinutes int) *coreequipment.Resolver {
	return coreequipment.NewResolver(defaultTurnMinutes, c.Stages()...)
}
