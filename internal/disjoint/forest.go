// Package disjoint implements the disjoint-set (union-find) data structure:
// a dynamic partition of elements into non-overlapping sets with near-constant
// amortized merging and membership queries. The Forest is the index-based
// core; Registry maps labels onto it, and the Named and Bulk clients compose
// the two for the label-driven and high-volume ingestion paths.
package disjoint

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when an operation references an element
// index that was never returned by AddElement.
var ErrIndexOutOfRange = errors.New("element index out of range")

// Forest is an array-backed union-find forest. Each element is a cell holding
// a parent index and, for roots, the size of its tree. Roots are their own
// parent. Find applies full path compression and Union merges by size, which
// together give inverse-Ackermann amortized cost per operation.
//
// A Forest is not safe for concurrent use: Find rewrites parent links even
// though it is semantically a query.
type Forest struct {
	parent []int
	size   []int
	count  int // live number of distinct sets
}

// NewForest creates an empty forest. capacityHint pre-sizes the backing
// storage and may be zero.
func NewForest(capacityHint int) *Forest {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Forest{
		parent: make([]int, 0, capacityHint),
		size:   make([]int, 0, capacityHint),
	}
}

// AddElement appends a new element as its own singleton set and returns its
// index. Indices are assigned densely starting at 0.
func (f *Forest) AddElement() int {
	i := len(f.parent)
	f.parent = append(f.parent, i)
	f.size = append(f.size, 1)
	f.count++
	return i
}

// Len returns the number of elements ever added.
func (f *Forest) Len() int {
	return len(f.parent)
}

// SetCount returns the current number of disjoint sets. It is maintained
// incrementally, so this is O(1).
func (f *Forest) SetCount() int {
	return f.count
}

// Find returns the root index of the set containing i. Every cell visited on
// the way up is repointed directly at the root, so repeated queries flatten
// the tree. Returns ErrIndexOutOfRange if i does not name a live element.
func (f *Forest) Find(i int) (int, error) {
	if i < 0 || i >= len(f.parent) {
		return 0, fmt.Errorf("%w: %d (have %d elements)", ErrIndexOutOfRange, i, len(f.parent))
	}
	root := i
	for f.parent[root] != root {
		root = f.parent[root]
	}
	// Second pass: point everything on the path at the root.
	for f.parent[i] != root {
		f.parent[i], i = root, f.parent[i]
	}
	return root, nil
}

// Union merges the sets containing a and b. The smaller tree is attached
// under the larger; on a size tie b's root goes under a's root. Returns true
// if two sets were merged, false if a and b were already in the same set.
func (f *Forest) Union(a, b int) (bool, error) {
	ra, err := f.Find(a)
	if err != nil {
		return false, err
	}
	rb, err := f.Find(b)
	if err != nil {
		return false, err
	}
	if ra == rb {
		return false, nil
	}
	if f.size[ra] < f.size[rb] {
		ra, rb = rb, ra
	}
	f.parent[rb] = ra
	f.size[ra] += f.size[rb]
	f.count--
	return true, nil
}

// Connected reports whether a and b belong to the same set.
func (f *Forest) Connected(a, b int) (bool, error) {
	ra, err := f.Find(a)
	if err != nil {
		return false, err
	}
	rb, err := f.Find(b)
	if err != nil {
		return false, err
	}
	return ra == rb, nil
}
