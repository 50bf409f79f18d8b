package disjoint

import (
	"errors"
	"fmt"
)

// ErrUnknownLabel is returned when an operation references a label that was
// never registered.
var ErrUnknownLabel = errors.New("unknown label")

// Registry maintains a bijection between user-supplied labels and the dense
// element indices of a Forest. The Forest stays purely index-based; the
// Registry owns all label bookkeeping.
type Registry struct {
	forest  *Forest
	byLabel map[string]int
	labels  []string // index → label, parallel to the forest's cells
}

// NewRegistry creates an empty registry backed by the given forest. The
// forest must not gain elements except through Register, or the positional
// label mapping drifts.
func NewRegistry(f *Forest) *Registry {
	return &Registry{
		forest:  f,
		byLabel: make(map[string]int),
	}
}

// Register returns the index for label, adding a new forest element if the
// label has not been seen before. Re-registering an existing label is a
// no-op returning the original index.
func (r *Registry) Register(label string) int {
	if i, ok := r.byLabel[label]; ok {
		return i
	}
	i := r.forest.AddElement()
	r.byLabel[label] = i
	r.labels = append(r.labels, label)
	return i
}

// Lookup returns the index previously assigned to label, or ErrUnknownLabel
// if it was never registered.
func (r *Registry) Lookup(label string) (int, error) {
	i, ok := r.byLabel[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return i, nil
}

// Label returns the label registered at index.
func (r *Registry) Label(index int) (string, error) {
	if index < 0 || index >= len(r.labels) {
		return "", fmt.Errorf("%w: %d (have %d labels)", ErrIndexOutOfRange, index, len(r.labels))
	}
	return r.labels[index], nil
}

// Len returns the number of registered labels.
func (r *Registry) Len() int {
	return len(r.labels)
}
