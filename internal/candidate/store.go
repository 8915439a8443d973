package candidate

import "sync"

// FilterPatch is a partial FilterState. Nil fields are left untouched by
// FilterStore.Update.
type FilterPatch struct {
	AgeMin        *int
	AgeMax        *int
	Gender        *string
	HasChildren   *bool
	ChildrenCount *string
	Location      *string
	HasExperience *bool
	InterestArea  *string
}

// FilterStore holds one session's filter state. Every Update and Reset is
// followed, synchronously, by a call to each subscriber with the new state.
type FilterStore struct {
	mu          sync.Mutex
	state       FilterState
	subscribers []func(FilterState)
}

func NewFilterStore() *FilterStore {
	return &FilterStore{state: DefaultFilterState()}
}

// NewFilterStoreFrom starts a store from a previously saved state.
func NewFilterStoreFrom(state FilterState) *FilterStore {
	return &FilterStore{state: state}
}

func (s *FilterStore) State() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnChange registers fn to be called after every Update and Reset.
func (s *FilterStore) OnChange(fn func(FilterState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *FilterStore) Update(p FilterPatch) FilterState {
	s.mu.Lock()
	next := s.state
	if p.AgeMin != nil {
		next.AgeRange[0] = *p.AgeMin
	}
	if p.AgeMax != nil {
		next.AgeRange[1] = *p.AgeMax
	}
	if next.AgeRange[0] > next.AgeRange[1] {
		next.AgeRange[0], next.AgeRange[1] = next.AgeRange[1], next.AgeRange[0]
	}
	if p.Gender != nil {
		next.Gender = *p.Gender
	}
	if p.ChildrenCount != nil {
		next.ChildrenCount = *p.ChildrenCount
	}
	if p.HasChildren != nil {
		next.HasChildren = *p.HasChildren
		// the count is only meaningful while the flag is on
		if !next.HasChildren {
			next.ChildrenCount = ""
		}
	}
	if p.Location != nil {
		next.Location = *p.Location
	}
	if p.HasExperience != nil {
		next.HasExperience = *p.HasExperience
	}
	if p.InterestArea != nil {
		next.InterestArea = *p.InterestArea
	}
	s.state = next
	subs := s.subscribers
	s.mu.Unlock()

	notify(subs, next)
	return next
}

func (s *FilterStore) Reset() FilterState {
	s.mu.Lock()
	s.state = DefaultFilterState()
	next := s.state
	subs := s.subscribers
	s.mu.Unlock()

	notify(subs, next)
	return next
}

func notify(subs []func(FilterState), state FilterState) {
	for _, fn := range subs {
		fn(state)
	}
}
