package models

import "encoding/json"

// CelebratedSet records the categories that already triggered their one-time
// goal-reached celebration. It only ever grows.
type CelebratedSet map[Category]struct{}

// NewCelebratedSet builds a set holding the given categories.
func NewCelebratedSet(cats ...Category) CelebratedSet {
	s := make(CelebratedSet, len(cats))
	for _, c := range cats {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether c has been celebrated.
func (s CelebratedSet) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// Add inserts c and reports whether it was not present before.
func (s CelebratedSet) Add(c Category) bool {
	if s.Has(c) {
		return false
	}
	s[c] = struct{}{}
	return true
}

// Categories lists the members in display order, followed by any unknown
// labels that were persisted by older data.
func (s CelebratedSet) Categories() []Category {
	out := make([]Category, 0, len(s))
	for _, c := range categories {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	for c := range s {
		if !c.IsValid() {
			out = append(out, c)
		}
	}
	return out
}

// MarshalJSON encodes the set as a JSON array of labels.
func (s CelebratedSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Categories())
}

// UnmarshalJSON decodes a JSON array of labels.
func (s *CelebratedSet) UnmarshalJSON(data []byte) error {
	var labels []Category
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	*s = NewCelebratedSet(labels...)
	return nil
}
