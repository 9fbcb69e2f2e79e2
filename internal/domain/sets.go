package domain

// Id sets on the player document are stored as slices for stable JSON
// round-tripping. These helpers enforce the at-most-once invariant.

// ContainsID reports whether the id is present in the set.
func ContainsID(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// AddID appends the id if absent and returns the (possibly updated) set along
// with whether an insertion happened.
func AddID(set []string, id string) ([]string, bool) {
	if ContainsID(set, id) {
		return set, false
	}
	return append(set, id), true
}
