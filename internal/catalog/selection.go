package catalog

import "slices"

const (
	// MaxSelection is the most phones a comparison can hold.
	MaxSelection = 3
	// MinComparable is the fewest phones needed before comparing.
	MinComparable = 2
)

// Selection is an immutable, insertion-ordered set of phone ids picked for
// comparison. Toggle returns a new Selection and leaves the receiver as is.
type Selection struct {
	ids []int
}

// NewSelection replays ids as toggles onto an empty selection.
func NewSelection(ids ...int) Selection {
	var s Selection
	for _, id := range ids {
		s = s.Toggle(id)
	}
	return s
}

// Toggle removes id when selected, otherwise adds it. Adding to a full
// selection is a no-op.
func (s Selection) Toggle(id int) Selection {
	if i := slices.Index(s.ids, id); i >= 0 {
		return Selection{ids: slices.Delete(slices.Clone(s.ids), i, i+1)}
	}
	if len(s.ids) >= MaxSelection {
		return s
	}
	ids := make([]int, len(s.ids), len(s.ids)+1)
	copy(ids, s.ids)
	return Selection{ids: append(ids, id)}
}

// Contains reports whether id is selected.
func (s Selection) Contains(id int) bool {
	return slices.Contains(s.ids, id)
}

// CanSelect reports whether toggling id would change the selection.
func (s Selection) CanSelect(id int) bool {
	return s.Contains(id) || len(s.ids) < MaxSelection
}

// CanCompare reports whether enough phones are selected to compare.
func (s Selection) CanCompare() bool {
	return len(s.ids) >= MinComparable
}

// Len returns the number of selected phones.
func (s Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in selection order.
func (s Selection) IDs() []int {
	return slices.Clone(s.ids)
}
