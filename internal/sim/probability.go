package sim

import (
	"errors"
	"fmt"

	"github.com/youruser/decksim/internal/deck"
)

// ErrBadTrial is returned for trial parameters EstimateOpening cannot run.
var ErrBadTrial = errors.New("invalid trial")

// Trial describes an opening-hand experiment: deal HandSize cards, Trials
// times, and look for any of Targets.
type Trial struct {
	HandSize int      `json:"hand_size"`
	Targets  []string `json:"targets"`
	Trials   int      `json:"trials"`
}

// Estimate is the outcome of EstimateOpening.
type Estimate struct {
	Trials     int                `json:"trials"`
	Hits       int                `json:"hits"`
	AtLeastOne float64            `json:"at_least_one"`
	PerTarget  map[string]float64 `json:"per_target"`
	Exact      float64            `json:"exact"`
}

func (t Trial) check(c deck.Composition) error {
	if t.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrBadTrial, t.Trials)
	}
	if t.HandSize < 0 {
		return fmt.Errorf("%w: negative hand size %d", ErrBadTrial, t.HandSize)
	}
	if len(t.Targets) == 0 {
		return fmt.Errorf("%w: no target cards", ErrBadTrial)
	}
	known := make(map[string]struct{}, len(c))
	for _, e := range c {
		known[e.CardID] = struct{}{}
	}
	for _, id := range t.Targets {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: target %q is not in the deck", ErrBadTrial, id)
		}
	}
	return nil
}

// EstimateOpening deals t.Trials independent opening hands from c and
// reports how often at least one target card was drawn. All trials share
// one random source, so WithSeed makes the whole run repeatable.
func EstimateOpening(c deck.Composition, t Trial, opts ...Option) (Estimate, error) {
	if err := c.Validate(); err != nil {
		return Estimate{}, err
	}
	if err := t.check(c); err != nil {
		return Estimate{}, err
	}
	o := buildOptions(opts)

	targets := make(map[string]struct{}, len(t.Targets))
	for _, id := range t.Targets {
		targets[id] = struct{}{}
	}
	perTarget := make(map[string]int, len(targets))

	est := Estimate{Trials: t.Trials, PerTarget: make(map[string]float64, len(targets))}
	for i := 0; i < t.Trials; i++ {
		s, err := New(c, WithRand(o.rng))
		if err != nil {
			return Estimate{}, err
		}
		seen := map[string]bool{}
		for _, id := range s.Draw(t.HandSize) {
			if _, ok := targets[id]; ok {
				seen[id] = true
			}
		}
		if len(seen) > 0 {
			est.Hits++
		}
		for id := range seen {
			perTarget[id]++
		}
	}

	est.AtLeastOne = float64(est.Hits) / float64(t.Trials)
	for id := range targets {
		est.PerTarget[id] = float64(perTarget[id]) / float64(t.Trials)
	}
	est.Exact = ExactAtLeastOne(c, t.HandSize, t.Targets)
	return est, nil
}

// ExactAtLeastOne is the hypergeometric probability that a hand of handSize
// cards drawn from c holds at least one copy of any target.
func ExactAtLeastOne(c deck.Composition, handSize int, targets []string) float64 {
	n := c.Total()
	k := 0
	counted := map[string]bool{}
	for _, id := range targets {
		if counted[id] {
			continue
		}
		counted[id] = true
		k += c.Count(id)
	}
	if handSize > n {
		handSize = n
	}
	if k == 0 || handSize <= 0 {
		return 0
	}

	// P(miss) = C(n-k, h) / C(n, h) = prod (n-k-i)/(n-i)
	miss := 1.0
	for i := 0; i < handSize; i++ {
		if n-k-i <= 0 {
			return 1
		}
		miss *= float64(n-k-i) / float64(n-i)
	}
	return 1 - miss
}
