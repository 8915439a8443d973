package candidate

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultMinAge = 18
	DefaultMaxAge = 65

	ChildrenCountFourOrMore = "4+"
)

// FilterState is the recruiter's current filter panel. An empty string or
// false on any field disables the clause for that field.
type FilterState struct {
	AgeRange      [2]int `json:"ageRange"`
	Gender        string `json:"gender"`
	HasChildren   bool   `json:"hasChildren"`
	ChildrenCount string `json:"childrenCount"`
	Location      string `json:"location"`
	HasExperience bool   `json:"hasExperience"`
	InterestArea  string `json:"interestArea"`
}

func DefaultFilterState() FilterState {
	return FilterState{AgeRange: [2]int{DefaultMinAge, DefaultMaxAge}}
}

// Matches reports whether c passes every active clause of f and the free
// text name search.
func Matches(c Candidate, f FilterState, searchTerm string) bool {
	if c.Age < f.AgeRange[0] || c.Age > f.AgeRange[1] {
		return false
	}
	if f.Gender != "" && string(c.Gender) != f.Gender {
		return false
	}
	if f.HasChildren && !c.HasChildren {
		return false
	}
	if f.ChildrenCount != "" && c.HasChildren && !matchesChildrenCount(c.ChildrenCount, f.ChildrenCount) {
		return false
	}
	if f.Location != "" && !containsFold(c.Location, f.Location) {
		return false
	}
	if f.HasExperience && !c.HasExperience {
		return false
	}
	if f.InterestArea != "" && c.InterestArea != f.InterestArea {
		return false
	}
	if term := strings.TrimSpace(searchTerm); term != "" && !containsFold(c.Name, term) {
		return false
	}
	return true
}

// Filter returns the candidates matching f in their original order. The input
// slice is never modified.
func Filter(candidates []Candidate, f FilterState, searchTerm string) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if Matches(c, f, searchTerm) {
			out = append(out, c)
		}
	}
	return out
}

func matchesChildrenCount(count int, token string) bool {
	if token == ChildrenCountFourOrMore {
		return count >= 4
	}
	// an unparsable token behaves like NaN upstream: nothing is equal to it
	expected, err := strconv.Atoi(token)
	if err != nil {
		return false
	}
	return count == expected
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Values encodes the non-default fields of f as query parameters, the format
// used in the session and in /api/candidates.
func (f FilterState) Values() url.Values {
	v := url.Values{}
	def := DefaultFilterState()
	if f.AgeRange[0] != def.AgeRange[0] {
		v.Set("ageMin", strconv.Itoa(f.AgeRange[0]))
	}
	if f.AgeRange[1] != def.AgeRange[1] {
		v.Set("ageMax", strconv.Itoa(f.AgeRange[1]))
	}
	if f.Gender != "" {
		v.Set("gender", f.Gender)
	}
	if f.HasChildren {
		v.Set("hasChildren", "true")
	}
	if f.ChildrenCount != "" {
		v.Set("childrenCount", f.ChildrenCount)
	}
	if f.Location != "" {
		v.Set("location", f.Location)
	}
	if f.HasExperience {
		v.Set("hasExperience", "true")
	}
	if f.InterestArea != "" {
		v.Set("interestArea", f.InterestArea)
	}
	return v
}

// ParseFilterPatch reads the filter fields present in query. Fields that are
// absent are left unset in the patch so that they do not overwrite the
// current state.
func ParseFilterPatch(query url.Values) FilterPatch {
	var p FilterPatch
	// a bound that is not a number is left as it is
	if s, ok := lookup(query, "ageMin"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			p.AgeMin = &n
		}
	}
	if s, ok := lookup(query, "ageMax"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			p.AgeMax = &n
		}
	}
	if s, ok := lookup(query, "gender"); ok {
		s = strings.TrimSpace(s)
		p.Gender = &s
	}
	if s, ok := lookup(query, "hasChildren"); ok {
		b := parseBool(s)
		p.HasChildren = &b
	}
	if s, ok := lookup(query, "childrenCount"); ok {
		s = strings.TrimSpace(s)
		if _, valid := validChildrenCounts[s]; !valid {
			s = ""
		}
		p.ChildrenCount = &s
	}
	if s, ok := lookup(query, "location"); ok {
		p.Location = &s
	}
	if s, ok := lookup(query, "hasExperience"); ok {
		b := parseBool(s)
		p.HasExperience = &b
	}
	if s, ok := lookup(query, "interestArea"); ok {
		s = strings.TrimSpace(s)
		p.InterestArea = &s
	}
	return p
}

// ParseFilterState decodes a query produced by FilterState.Values.
func ParseFilterState(query url.Values) FilterState {
	s := NewFilterStore()
	s.Update(ParseFilterPatch(query))
	return s.State()
}

// lookup returns the last value for key, so a form may send a hidden
// "false" ahead of a checkbox with the same name.
func lookup(query url.Values, key string) (string, bool) {
	vs, ok := query[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes", "sim":
		return true
	}
	return false
}
