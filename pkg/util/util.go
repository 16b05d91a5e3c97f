// Package util holds generic slice helpers.
package util

// Map returns a new slice holding mapper applied to each element of coll.
// The mapper also receives the element's index.
func Map[A any, B any](coll []A, mapper func(i A, index uint64) B) []B {
	out := make([]B, len(coll))
	for i, item := range coll {
		out[i] = mapper(item, uint64(i))
	}
	return out
}

