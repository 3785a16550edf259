package models

import (
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Administration is the top-level administrative region a Location belongs to.
type Administration string

// The fixed set of administrations.
const (
	AdmImbituba Administration = "Imbituba"
	AdmLaguna   Administration = "Laguna"
	AdmTubarao  Administration = "Tubarão"
	AdmCriciuma Administration = "Criciúma"
)

// Administrations lists every region in display order.
var Administrations = []Administration{AdmImbituba, AdmLaguna, AdmTubarao, AdmCriciuma}

// Valid reports whether a is one of the known administrations.
func (a Administration) Valid() bool {
	for _, known := range Administrations {
		if a == known {
			return true
		}
	}
	return false
}

// ParseAdministration returns the Administration named s.
func ParseAdministration(s string) (Administration, error) {
	a := Administration(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown administration %q", s)
	}
	return a, nil
}

// Location is a physical site owned by one administration. Locations are seed
// data: they are never created, edited or deleted at runtime.
type Location struct {
	ID   string         `json:"id"   yaml:"id"`
	Name string         `json:"name" yaml:"name"`
	Adm  Administration `json:"adm"  yaml:"adm"`
}

//go:embed seed_locations.yaml
var defaultLocationsYAML []byte

type locationSeed struct {
	Locations []Location `yaml:"locations"`
}

// DefaultLocations returns the embedded seed locations.
func DefaultLocations() []Location {
	locs, err := decodeLocations(defaultLocationsYAML)
	if err != nil {
		panic(fmt.Errorf("embedded seed locations: %w", err))
	}
	return locs
}

// LoadLocations reads a YAML seed document of the form
//
//	locations:
//	  - id: imb-centro
//	    name: Centro
//	    adm: Imbituba
func LoadLocations(r io.Reader) ([]Location, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed locations: %w", err)
	}
	return decodeLocations(data)
}

func decodeLocations(data []byte) ([]Location, error) {
	var seed locationSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed locations: %w", err)
	}
	seen := make(map[string]struct{}, len(seed.Locations))
	for _, l := range seed.Locations {
		if l.ID == "" || l.Name == "" {
			return nil, fmt.Errorf("seed location requires id and name: %+v", l)
		}
		if !l.Adm.Valid() {
			return nil, fmt.Errorf("seed location %s: unknown administration %q", l.ID, l.Adm)
		}
		if _, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("duplicate seed location id %s", l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return seed.Locations, nil
}
