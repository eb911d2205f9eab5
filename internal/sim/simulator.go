// Package sim deals cards from a shuffled deck and keeps count of what is
// left to draw.
package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/youruser/decksim/internal/deck"
)

// Status is whether any cards remain to be drawn.
type Status string

const (
	StatusStocked   Status = "stocked"
	StatusExhausted Status = "exhausted"
)

// Simulator models one game: a deck shuffled once, then drawn from the top
// into a hand until it runs out. It is not safe for concurrent use.
type Simulator struct {
	original deck.Composition
	live     deck.Composition
	index    map[string]int // card id -> position in live
	deck     []string
	hand     []string
}

// Option configures a Simulator.
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithRand shuffles with r. Tests use it to get a repeatable deck.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithSeed shuffles with a PCG source seeded from seed.
func WithSeed(seed uint64) Option {
	return WithRand(NewRand(seed))
}

// NewRand returns the generator WithSeed uses.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return o
}

// New validates c, lays its cards out in order and shuffles them.
// The caller may modify c afterwards without affecting the simulator.
func New(c deck.Composition, opts ...Option) (*Simulator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	s := &Simulator{
		original: c.Clone(),
		live:     c.Clone(),
		index:    make(map[string]int, len(c)),
		hand:     []string{},
	}
	for i, e := range s.live {
		s.index[e.CardID] = i
	}
	s.deck = shuffle(c.Expand(), o.rng)
	return s, nil
}

// shuffle reads cards at the positions of a uniformly random permutation.
func shuffle(cards []string, r *rand.Rand) []string {
	out := make([]string, len(cards))
	for i, p := range r.Perm(len(cards)) {
		out[i] = cards[p]
	}
	return out
}

// Draw moves up to n cards from the top of the deck to the end of the hand
// and returns them. Drawing from a short or empty deck takes what is left.
func (s *Simulator) Draw(n int) []string {
	if n <= 0 {
		return []string{}
	}
	if n > len(s.deck) {
		n = len(s.deck)
	}
	drawn := make([]string, n)
	copy(drawn, s.deck[:n])
	s.deck = s.deck[n:]
	s.hand = append(s.hand, drawn...)
	for _, id := range drawn {
		s.live[s.index[id]].Count--
	}
	return drawn
}

// Deck returns the undrawn cards, top first.
func (s *Simulator) Deck() []string { return append([]string{}, s.deck...) }

// Hand returns the drawn cards in draw order.
func (s *Simulator) Hand() []string { return append([]string{}, s.hand...) }

// Live returns the undrawn count of every card type.
func (s *Simulator) Live() deck.Composition { return s.live.Clone() }

// Original returns the composition the simulator was built from.
func (s *Simulator) Original() deck.Composition { return s.original.Clone() }

// Remaining is the number of undrawn cards.
func (s *Simulator) Remaining() int { return len(s.deck) }

// Status reports StatusExhausted once the deck is empty.
func (s *Simulator) Status() Status {
	if len(s.deck) == 0 {
		return StatusExhausted
	}
	return StatusStocked
}

// Snapshot is a copy of the simulator's state.
type Snapshot struct {
	Status    Status           `json:"status"`
	Remaining int              `json:"remaining"`
	Deck      []string         `json:"deck"`
	Hand      []string         `json:"hand"`
	Live      deck.Composition `json:"live"`
	Original  deck.Composition `json:"original"`
}

// Snapshot copies the current state.
func (s *Simulator) Snapshot() Snapshot {
	return Snapshot{
		Status:    s.Status(),
		Remaining: s.Remaining(),
		Deck:      s.Deck(),
		Hand:      s.Hand(),
		Live:      s.Live(),
		Original:  s.Original(),
	}
}

func (s *Simulator) String() string {
	return fmt.Sprintf("sim{%s deck=%d hand=%d}", s.Status(), len(s.deck), len(s.hand))
}
