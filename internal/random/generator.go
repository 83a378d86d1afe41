package random

import (
	"math/rand/v2"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
	"github.com/retromoe/stortrooper-editor/internal/character"
	"github.com/retromoe/stortrooper-editor/internal/model"
)

// seedStream is the second PCG word; fixed so a single uint64 seed identifies a sequence
const seedStream = 0x5374725472707273

// Generator samples outfits from a seeded PCG source. Not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New creates a reproducible generator
func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seedStream))}
}

// NewFromEntropy creates a generator with a fresh seed and returns that seed
func NewFromEntropy() (*Generator, uint64, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, 0, err
	}
	return New(seed), seed, nil
}

// Intn returns a value in [0,n). n must be positive.
func (g *Generator) Intn(n int) int {
	return g.rng.IntN(n)
}

// Randomize draws one independent sample per category, in depth order.
//
// Optional categories with a Chance are filled with that probability and
// otherwise choose uniformly among "none" and their candidates. Mandatory
// categories choose uniformly among their candidates, falling back to the
// default asset when none is eligible.
func (g *Generator) Randomize(c *catalog.Catalog) (*character.State, error) {
	sel := make(model.Selection)
	for _, cat := range c.Categories() {
		assets, err := c.AssetsIn(cat.ID)
		if err != nil {
			return nil, err
		}
		sel[cat.ID] = g.pick(cat, candidates(assets))
	}

	state := character.New(c)
	if err := state.Replace(sel); err != nil {
		return nil, err
	}
	return state, nil
}

func (g *Generator) pick(cat model.Category, pool []model.Asset) string {
	if cat.Policy.AllowsEmpty() {
		if len(pool) == 0 {
			return ""
		}
		if cat.Chance != nil {
			if g.rng.Float64() >= *cat.Chance {
				return ""
			}
			return pool[g.rng.IntN(len(pool))].ID
		}
		// index 0 stands for "none"
		i := g.rng.IntN(len(pool) + 1)
		if i == 0 {
			return ""
		}
		return pool[i-1].ID
	}

	if len(pool) == 0 {
		return cat.Default
	}
	return pool[g.rng.IntN(len(pool))].ID
}

// candidates filters the assets eligible for random outfits
func candidates(assets []model.Asset) []model.Asset {
	pool := make([]model.Asset, 0, len(assets))
	for _, a := range assets {
		if a.Random {
			pool = append(pool, a)
		}
	}
	return pool
}

// Randomize builds a random state. A nil seed draws one from crypto/rand.
func Randomize(c *catalog.Catalog, seed *uint64) (*character.State, error) {
	if seed != nil {
		return New(*seed).Randomize(c)
	}
	g, _, err := NewFromEntropy()
	if err != nil {
		return nil, err
	}
	return g.Randomize(c)
}
