package results

import "sort"

// PershotSnapshot stores one value per shot under each label. Values are
// append-only; nothing is averaged.
type PershotSnapshot[T Value[T]] struct {
	data map[string][]T
}

// NewPershotSnapshot creates an empty pershot snapshot.
func NewPershotSnapshot[T Value[T]]() *PershotSnapshot[T] {
	return &PershotSnapshot[T]{data: make(map[string][]T)}
}

// Add appends a single shot's value under label.
func (s *PershotSnapshot[T]) Add(label string, v T) {
	s.data[label] = append(s.data[label], v)
}

// Merge unions other's labels into s, leaving other unchanged. On label
// collision other's sequence is appended after s's.
func (s *PershotSnapshot[T]) Merge(other *PershotSnapshot[T]) {
	for label, vals := range other.data {
		s.data[label] = append(s.data[label], vals...)
	}
}

// Absorb is the destructive form of Merge: other is left empty. Sequences
// for labels absent from s are taken over without copying.
func (s *PershotSnapshot[T]) Absorb(other *PershotSnapshot[T]) {
	for label, vals := range other.data {
		if cur, ok := s.data[label]; ok {
			s.data[label] = append(cur, vals...)
		} else {
			s.data[label] = vals
		}
	}
	other.data = make(map[string][]T)
}

// Clone returns a snapshot with its own copies of every sequence.
func (s *PershotSnapshot[T]) Clone() *PershotSnapshot[T] {
	out := NewPershotSnapshot[T]()
	for label, vals := range s.data {
		cp := make([]T, len(vals))
		copy(cp, vals)
		out.data[label] = cp
	}
	return out
}

// Labels returns the snapshot's labels in sorted order.
func (s *PershotSnapshot[T]) Labels() []string {
	labels := make([]string, 0, len(s.data))
	for label := range s.data {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Values returns the recorded sequence for label in insertion order.
func (s *PershotSnapshot[T]) Values(label string) []T {
	return s.data[label]
}

// Empty reports whether the snapshot holds no labels.
func (s *PershotSnapshot[T]) Empty() bool {
	return len(s.data) == 0
}

// Fragment projects the snapshot into a document fragment keyed by label.
func (s *PershotSnapshot[T]) Fragment() map[string]interface{} {
	out := make(map[string]interface{}, len(s.data))
	for label, vals := range s.data {
		out[label] = vals
	}
	return out
}
