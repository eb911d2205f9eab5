package deck

import (
	"errors"
	"fmt"
)

// ErrInvalidComposition is returned for negative counts, empty card ids,
// repeated card ids and decks larger than MaxDeckSize.
var ErrInvalidComposition = errors.New("invalid deck composition")

// MaxDeckSize caps the number of cards in one deck.
const MaxDeckSize = 10000

// Entry is one card type and the number of copies of it.
type Entry struct {
	CardID string `json:"card_id"`
	Count  int    `json:"count"`
}

// Composition lists how many copies of each card make up a full deck.
// Slice order is the order cards are laid out before shuffling.
type Composition []Entry

// Validate checks every entry and reports the first problem found.
func (c Composition) Validate() error {
	seen := make(map[string]struct{}, len(c))
	total := 0
	for i, e := range c {
		if e.CardID == "" {
			return fmt.Errorf("%w: entry %d has an empty card id", ErrInvalidComposition, i)
		}
		if e.Count < 0 {
			return fmt.Errorf("%w: card %q has negative count %d", ErrInvalidComposition, e.CardID, e.Count)
		}
		if _, dup := seen[e.CardID]; dup {
			return fmt.Errorf("%w: card %q listed more than once", ErrInvalidComposition, e.CardID)
		}
		seen[e.CardID] = struct{}{}
		// each step adds at most MaxDeckSize, so total cannot overflow
		if e.Count > MaxDeckSize-total {
			return fmt.Errorf("%w: deck holds more than %d cards", ErrInvalidComposition, MaxDeckSize)
		}
		total += e.Count
	}
	return nil
}

// Total is the number of cards in the full deck.
func (c Composition) Total() int {
	n := 0
	for _, e := range c {
		n += e.Count
	}
	return n
}

// Clone returns an independent copy.
func (c Composition) Clone() Composition {
	if c == nil {
		return nil
	}
	out := make(Composition, len(c))
	copy(out, c)
	return out
}

// Count returns the copies of id, or 0 when id is absent.
func (c Composition) Count(id string) int {
	for _, e := range c {
		if e.CardID == id {
			return e.Count
		}
	}
	return 0
}

// Expand lays the cards out in composition order, each id repeated Count times.
func (c Composition) Expand() []string {
	out := make([]string, 0, c.Total())
	for _, e := range c {
		for i := 0; i < e.Count; i++ {
			out = append(out, e.CardID)
		}
	}
	return out
}
