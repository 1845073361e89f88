package sql

import "sync/atomic"

// AttributeID identifies an attribute (a column produced by some plan node)
// independent of its name or any cast applied to it. IDs are assigned from a
// single process-wide monotonic counter, so two attributes compare equal by
// ID iff they refer to the same underlying column, even across renames,
// aliasing, or casting.
type AttributeID int64

var attributeIDCounter int64

// NewAttributeID returns a fresh, globally unique AttributeID. Safe to call
// from multiple goroutines.
func NewAttributeID() AttributeID {
	return AttributeID(atomic.AddInt64(&attributeIDCounter, 1))
}

// AttributeSet is a set of AttributeIDs, used for reference-set queries like
// "does this filter only reference the left side of this join".
type AttributeSet map[AttributeID]struct{}

// NewAttributeSet builds a set from the given ids.
func NewAttributeSet(ids ...AttributeID) AttributeSet {
	s := make(AttributeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set, returning the set for chaining.
func (s AttributeSet) Add(id AttributeID) AttributeSet {
	s[id] = struct{}{}
	return s
}

// Contains reports whether id is a member of the set.
func (s AttributeSet) Contains(id AttributeID) bool {
	_, ok := s[id]
	return ok
}

// Union returns a new set containing the members of s and other.
func (s AttributeSet) Union(other AttributeSet) AttributeSet {
	out := make(AttributeSet, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// SubsetOf reports whether every member of s is also a member of other. This
// is the "subsetOfByID" check the optimizer uses to decide whether a
// predicate can be pushed below one side of a binary operator: it compares
// attribute identity, not name, so renaming via alias is transparent to it.
func (s AttributeSet) SubsetOf(other AttributeSet) bool {
	for id := range s {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Empty reports whether the set has no members.
func (s AttributeSet) Empty() bool {
	return len(s) == 0
}
