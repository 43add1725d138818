package components

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSpecies is returned by ParseSpecies for names outside the species set.
var ErrUnknownSpecies = errors.New("unknown species")

// String returns the display name for a Species.
func (s Species) String() string {
	names := SpeciesNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// SpeciesNames returns the display names for all species.
// The order matches the Species constants.
func SpeciesNames() []string {
	return []string{"Plant", "Herbivore", "Carnivore"}
}

// SpeciesCount returns the number of species.
func SpeciesCount() int {
	return len(SpeciesNames())
}

// ParseSpecies maps a config name (case-insensitive) to a Species.
func ParseSpecies(name string) (Species, error) {
	for i, n := range SpeciesNames() {
		if strings.EqualFold(n, name) {
			return Species(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
}

// String returns the display name for a Direction.
func (d Direction) String() string {
	switch d {
	case DirectionNorth:
		return "North"
	case DirectionEast:
		return "East"
	case DirectionSouth:
		return "South"
	case DirectionWest:
		return "West"
	}
	return "None"
}
