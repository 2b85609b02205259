// Package names generates unique player and coach identities with seeded
// randomness. Stable player IDs come from uuid; uniqueness is tracked for
// the lifetime of a league world so two actives never share a name.
package names

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/openice/rinkrat/internal/simrand"
)

// Generator hands out names that are unique within one league world.
type Generator struct {
	rng  *simrand.RNG
	used map[string]bool
}

// NewGenerator creates a generator drawing from the shared RNG.
func NewGenerator(rng *simrand.RNG) *Generator {
	return &Generator{rng: rng, used: make(map[string]bool)}
}

// Reserve marks names already present in a loaded world so regenerated
// identities never collide with them.
func (g *Generator) Reserve(names ...string) {
	for _, n := range names {
		g.used[n] = true
	}
}

// PlayerName returns a unique "First Last" combination. When the pools are
// exhausted for a pair, a middle initial disambiguates.
func (g *Generator) PlayerName() string {
	for attempt := 0; attempt < 64; attempt++ {
		first := firstNames[g.rng.Intn(len(firstNames))]
		last := lastNames[g.rng.Intn(len(lastNames))]
		name := first + " " + last
		if !g.used[name] {
			g.used[name] = true
			return name
		}
	}
	// Pools collided too often; salt with an initial.
	for {
		first := firstNames[g.rng.Intn(len(firstNames))]
		last := lastNames[g.rng.Intn(len(lastNames))]
		initial := rune('A' + g.rng.Intn(26))
		name := fmt.Sprintf("%s %c. %s", first, initial, last)
		if !g.used[name] {
			g.used[name] = true
			return name
		}
	}
}

// CoachName returns a unique coach name drawn from the same pools.
func (g *Generator) CoachName() string {
	return g.PlayerName()
}

// NewID mints a stable opaque player/coach ID.
func NewID() string {
	return uuid.NewString()
}
