// Package session keeps running simulators in memory between requests.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/youruser/decksim/internal/deck"
	"github.com/youruser/decksim/internal/sim"
)

var (
	ErrNotFound = errors.New("simulation not found")
	ErrFull     = errors.New("too many simulations")
)

type entry struct {
	mu     sync.Mutex
	sim    *sim.Simulator
	name   string
	leader string
}

// Store maps ids to simulators. Calls on the same simulator are serialised.
type Store struct {
	mu    sync.RWMutex
	sims  map[string]*entry
	limit int
}

// NewStore returns an empty store holding at most limit simulators
// (unlimited when limit <= 0).
func NewStore(limit int) *Store {
	return &Store{sims: map[string]*entry{}, limit: limit}
}

// Info identifies a stored simulation.
type Info struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Leader string `json:"leader,omitempty"`
	sim.Snapshot
}

// Create builds a simulator from c. A nil seed picks a random one.
func (s *Store) Create(d deck.Deck, c deck.Composition, seed *uint64) (Info, error) {
	var opts []sim.Option
	if seed != nil {
		opts = append(opts, sim.WithSeed(*seed))
	}
	sm, err := sim.New(c, opts...)
	if err != nil {
		return Info{}, err
	}

	id := uuid.NewString()
	e := &entry{sim: sm, name: d.Name, leader: d.Leader}

	s.mu.Lock()
	if s.limit > 0 && len(s.sims) >= s.limit {
		s.mu.Unlock()
		return Info{}, fmt.Errorf("%w: limit is %d", ErrFull, s.limit)
	}
	s.sims[id] = e
	s.mu.Unlock()

	return e.info(id), nil
}

func (e *entry) info(id string) Info {
	return Info{ID: id, Name: e.name, Leader: e.leader, Snapshot: e.sim.Snapshot()}
}

func (s *Store) lookup(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.sims[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// Get returns the current state of a simulation.
func (s *Store) Get(id string) (Info, error) {
	e, err := s.lookup(id)
	if err != nil {
		return Info{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.info(id), nil
}

// Draw draws n cards and returns them with the state after the draw.
func (s *Store) Draw(id string, n int) ([]string, Info, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, Info{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	drawn := e.sim.Draw(n)
	return drawn, e.info(id), nil
}

// Delete forgets a simulation.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sims[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.sims, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sims)
}
