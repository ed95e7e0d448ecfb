// Package registry holds the register repository configuration: the known
// register instances, their per-year number floors, and the certificate
// issue templates.
package registry

import "fmt"

// ConfigurationError reports an invalid or unknown configuration key passed
// internally. It is a programming error, raised immediately and never caught
// by extraction or statistics code paths.
type ConfigurationError struct {
	What  string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.What, e.Value)
}

// Key selects one of the known register instances.
type Key string

const (
	// KeyTesting is the sandbox register used for trying things out.
	KeyTesting Key = "testing"

	// KeyProduction is the public register of record.
	KeyProduction Key = "production"
)

// Keys returns all known register keys.
func Keys() []Key {
	return []Key{KeyTesting, KeyProduction}
}

// Registry identifies one GitHub-hosted register repository.
type Registry struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Name  string `json:"name"`
}

// FullName returns the owner/repo form.
func (r Registry) FullName() string {
	return r.Owner + "/" + r.Repo
}

// registries is the closed lookup table behind Lookup.
var registries = map[Key]Registry{
	KeyTesting: {
		Owner: "codecheckers",
		Repo:  "testing-dev-register",
		Name:  "Development register (testing)",
	},
	KeyProduction: {
		Owner: "codecheckers",
		Repo:  "register",
		Name:  "CODECHECK register",
	},
}

// Lookup resolves a register key. The lookup is total over the closed key
// enumeration; any other value is a ConfigurationError.
func Lookup(key Key) (Registry, error) {
	reg, ok := registries[key]
	if !ok {
		return Registry{}, &ConfigurationError{What: "register key", Value: string(key)}
	}
	return reg, nil
}

// Policy is the repository-dependent calculation policy: which register to
// read and the minimum assignable number per year. The floors model a
// registry seeded with pre-existing manually-assigned numbers.
type Policy struct {
	Registry             Registry
	MinimumNumberForYear map[int]int
}

// defaultFloors lists the historically seeded floors. The floor applies only
// to the exact (register, year) pair; all other years default to 1.
var defaultFloors = map[Key]map[int]int{
	KeyProduction: {2025: 28},
}

// PolicyFor resolves the policy for a register key, attaching the seeded
// floors for that register.
func PolicyFor(key Key) (Policy, error) {
	reg, err := Lookup(key)
	if err != nil {
		return Policy{}, err
	}
	floors := make(map[int]int, len(defaultFloors[key]))
	for year, n := range defaultFloors[key] {
		floors[year] = n
	}
	return Policy{Registry: reg, MinimumNumberForYear: floors}, nil
}

// Floor returns the minimum assignable certificate number for the year,
// defaulting to 1 when no floor is configured.
func (p Policy) Floor(year int) int {
	if n, ok := p.MinimumNumberForYear[year]; ok && n > 0 {
		return n
	}
	return 1
}
