package reports

import "fmt"

// Store holds reports newest first. It is not safe for concurrent use; the
// owning session serialises access.
type Store struct {
	reports []*Report
	byID    map[string]*Report
}

// NewStore creates a store holding seed in the given order, the first element
// being the front of the feed.
func NewStore(seed ...Report) (*Store, error) {
	s := &Store{byID: make(map[string]*Report, len(seed))}
	for i := range seed {
		r := seed[i]
		if _, exists := s.byID[r.ID]; exists {
			return nil, fmt.Errorf("seeding report %q: %w", r.ID, ErrDuplicateID)
		}
		s.reports = append(s.reports, &r)
		s.byID[r.ID] = &r
	}
	return s, nil
}

// Len returns the number of reports.
func (s *Store) Len() int {
	return len(s.reports)
}

// Insert puts r at the front of the feed.
func (s *Store) Insert(r Report) error {
	if _, exists := s.byID[r.ID]; exists {
		return fmt.Errorf("inserting report %q: %w", r.ID, ErrDuplicateID)
	}
	s.reports = append([]*Report{&r}, s.reports...)
	s.byID[r.ID] = &r
	return nil
}

// Get returns a copy of the report with the given id.
func (s *Store) Get(id string) (Report, error) {
	r, ok := s.byID[id]
	if !ok {
		return Report{}, ErrReportNotFound
	}
	return *r, nil
}

// Vote counts v against the report with the given id and returns the updated
// report. Unknown ids leave the store untouched.
func (s *Store) Vote(id string, v Vote) (Report, bool, error) {
	r, ok := s.byID[id]
	if !ok {
		return Report{}, false, ErrReportNotFound
	}
	updated, promoted := ApplyVote(*r, v)
	*r = updated
	return updated, promoted, nil
}

// All returns a copy of every report, newest first.
func (s *Store) All() []Report {
	out := make([]Report, len(s.reports))
	for i, r := range s.reports {
		out[i] = *r
	}
	return out
}
