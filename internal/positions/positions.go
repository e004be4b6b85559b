// Package positions computes ordering positions for columns within a board
// and tasks within a column. Ordering is derived purely from comparison, so
// gaps left by moves are fine; only distinctness matters.
package positions

// Placement pairs a sibling ID with its assigned position.
type Placement struct {
	ID       uint64
	Position int
}

// Next returns the append position for a new sibling: max existing + 1, or 0
// when the set is empty. Callers race on this without a lock; the store's
// transaction isolation is the only guard (accepted gap, see DESIGN.md).
func Next(existing []int) int {
	next := 0
	for _, p := range existing {
		if p >= next {
			next = p + 1
		}
	}
	return next
}

// Dense assigns 0..n-1 to the given IDs in list order. The input list is
// authoritative; there is no secondary sort.
func Dense(orderedIDs []uint64) []Placement {
	placements := make([]Placement, len(orderedIDs))
	for i, id := range orderedIDs {
		placements[i] = Placement{ID: id, Position: i}
	}
	return placements
}
