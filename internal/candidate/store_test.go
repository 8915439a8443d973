package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int { return &n }

func TestFilterStore_Defaults(t *testing.T) {
	s := NewFilterStore()
	assert.Equal(t, FilterState{AgeRange: [2]int{18, 65}}, s.State())
}

func TestFilterStore_UpdateMergesGivenFields(t *testing.T) {
	s := NewFilterStore()
	s.Update(FilterPatch{Location: strPtr("Rio")})
	s.Update(FilterPatch{Gender: strPtr("male"), HasExperience: boolPtr(true)})

	got := s.State()
	assert.Equal(t, "Rio", got.Location)
	assert.Equal(t, "male", got.Gender)
	assert.True(t, got.HasExperience)
	assert.Equal(t, [2]int{18, 65}, got.AgeRange)
}

func TestFilterStore_ResetThenEmptyUpdateIsDefault(t *testing.T) {
	s := NewFilterStore()
	s.Update(FilterPatch{
		AgeMin:        intPtr(30),
		AgeMax:        intPtr(31),
		HasChildren:   boolPtr(true),
		ChildrenCount: strPtr("3"),
		InterestArea:  strPtr("design"),
	})
	s.Reset()
	assert.Equal(t, DefaultFilterState(), s.Update(FilterPatch{}))
}

func TestFilterStore_ClearingHasChildrenClearsCount(t *testing.T) {
	s := NewFilterStore()
	s.Update(FilterPatch{HasChildren: boolPtr(true)})
	s.Update(FilterPatch{ChildrenCount: strPtr("2")})
	assert.Equal(t, "2", s.State().ChildrenCount)

	got := s.Update(FilterPatch{HasChildren: boolPtr(false)})
	assert.False(t, got.HasChildren)
	assert.Equal(t, "", got.ChildrenCount)

	// turning the flag on keeps a count given in the same patch
	got = s.Update(FilterPatch{HasChildren: boolPtr(true), ChildrenCount: strPtr("4+")})
	assert.Equal(t, "4+", got.ChildrenCount)
}

func TestFilterStore_NotifiesSynchronously(t *testing.T) {
	s := NewFilterStore()
	var seen []FilterState
	s.OnChange(func(f FilterState) { seen = append(seen, f) })

	s.Update(FilterPatch{Location: strPtr("Recife")})
	assert.Len(t, seen, 1)
	assert.Equal(t, "Recife", seen[0].Location)

	s.Reset()
	assert.Len(t, seen, 2)
	assert.Equal(t, DefaultFilterState(), seen[1])
}
