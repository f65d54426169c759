package enums

import "strings"

type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesRabbit Species = "rabbit"
	SpeciesBird   Species = "bird"
	SpeciesOther  Species = "other"
)

func ParseSpecies(input string) (Species, bool) {
	switch value := Species(strings.ToLower(strings.TrimSpace(input))); value {
	case SpeciesDog, SpeciesCat, SpeciesRabbit, SpeciesBird, SpeciesOther:
		return value, true
	default:
		return "", false
	}
}
