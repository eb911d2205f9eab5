package deck

import "sort"

// Deck is a saved deck list. The leader is kept apart from the shuffled cards.
type Deck struct {
	Name   string         `json:"name"`
	Leader string         `json:"leader"`
	Cards  map[string]int `json:"cards"` // card_id -> count
}

// Composition returns the deck's cards ordered by card id.
func (d Deck) Composition() Composition {
	ids := make([]string, 0, len(d.Cards))
	for id := range d.Cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make(Composition, 0, len(ids))
	for _, id := range ids {
		out = append(out, Entry{CardID: id, Count: d.Cards[id]})
	}
	return out
}

// FromComposition builds a Deck record holding the given cards.
func FromComposition(name, leader string, c Composition) Deck {
	d := Deck{Name: name, Leader: leader, Cards: make(map[string]int, len(c))}
	for _, e := range c {
		d.Cards[e.CardID] += e.Count
	}
	return d
}
