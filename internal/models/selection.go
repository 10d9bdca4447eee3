package models

// Selection is the user's current district/year filter criteria. It is
// constructed per interaction by the presentation layer and passed into the
// filter explicitly; the engine holds no session state between calls.
//
// An empty set on either dimension means "no constraint on this dimension",
// not "match nothing". The natural starting state is an empty district set
// with the full year range.
type Selection struct {
	Districts map[string]struct{}
	Years     map[int]struct{}
}

// NewSelection builds a Selection from slices, treating nil/empty slices as
// unconstrained dimensions.
func NewSelection(districts []string, years []int) Selection {
	s := Selection{}
	if len(districts) > 0 {
		s.Districts = make(map[string]struct{}, len(districts))
		for _, d := range districts {
			s.Districts[d] = struct{}{}
		}
	}
	if len(years) > 0 {
		s.Years = make(map[int]struct{}, len(years))
		for _, y := range years {
			s.Years[y] = struct{}{}
		}
	}
	return s
}

// Matches reports whether an event passes both dimensions of the selection.
func (s Selection) Matches(e *FireEvent) bool {
	if len(s.Districts) > 0 {
		if _, ok := s.Districts[e.District]; !ok {
			return false
		}
	}
	if len(s.Years) > 0 {
		if _, ok := s.Years[e.Year]; !ok {
			return false
		}
	}
	return true
}
