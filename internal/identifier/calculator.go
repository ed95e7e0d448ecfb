package identifier

import (
	"fmt"

	"github.com/codecheckers/regclerk/internal/constants"
)

// NextResult is the outcome of a next-identifier calculation. It is derived
// state, recomputed on every request and never persisted.
type NextResult struct {
	Identifier  string      `json:"identifier"`
	Year        int         `json:"year"`
	Number      int         `json:"number"`
	FirstOfYear bool        `json:"isFirstOfYear"`
	Highest     *Identifier `json:"highestIdentifier,omitempty"`
}

// Compute derives the next certificate number for the given year. The policy
// is strictly append-only: the next number is max(floor, max existing + 1);
// gaps in the sequence are deliberately never filled. With no identifiers for
// the year, the next number is the floor and FirstOfYear is set.
//
// The floor models a registry seeded with manually-assigned numbers before
// this tool existed. A floor below 1 falls back to 1, as does a missing
// policy entry upstream.
func Compute(ids []Identifier, year, floor, padding int) NextResult {
	if floor < 1 {
		floor = 1
	}
	if padding < 1 {
		padding = constants.IdentifierPadding
	}

	var highest *Identifier
	for i := range ids {
		if ids[i].Year != year {
			continue
		}
		if highest == nil || ids[i].Number > highest.Number {
			highest = &ids[i]
		}
	}

	if highest == nil {
		return NextResult{
			Identifier:  Format(year, floor, padding),
			Year:        year,
			Number:      floor,
			FirstOfYear: true,
		}
	}

	next := highest.Number + 1
	if next < floor {
		next = floor
	}

	return NextResult{
		Identifier: Format(year, next, padding),
		Year:       year,
		Number:     next,
		Highest:    highest,
	}
}

// Format renders a certificate identifier with the given zero-padding width.
func Format(year, number, padding int) string {
	return fmt.Sprintf("%d-%0*d", year, padding, number)
}
