package results

import "sort"

// AverageData is the running statistic for one (label, memory) slot. It keeps
// the sum of added values, the count, and optionally the sum of element-wise
// squares so a variance can be derived. Storing sums rather than a running
// mean makes merging two statistics a plain addition, which keeps merge
// results independent of merge order.
type AverageData[T Value[T]] struct {
	sum      T
	sqsum    T
	count    int64
	variance bool
}

// Add folds one value into the statistic. Variance tracking stays on only if
// every Add requested it; a single withVariance=false downgrade makes the
// square sum meaningless and drops it from serialization.
func (d *AverageData[T]) Add(v T, withVariance bool) {
	if d.count == 0 {
		d.variance = withVariance
	} else {
		d.variance = d.variance && withVariance
	}
	d.sum = d.sum.Add(v)
	if d.variance {
		d.sqsum = d.sqsum.Add(v.Mul(v))
	}
	d.count++
}

// Combine folds another statistic into d. Both orders produce the same
// result.
func (d *AverageData[T]) Combine(o *AverageData[T]) {
	if d.count == 0 {
		d.variance = o.variance
	} else {
		d.variance = d.variance && o.variance
	}
	d.sum = d.sum.Add(o.sum)
	if d.variance {
		d.sqsum = d.sqsum.Add(o.sqsum)
	}
	d.count += o.count
}

// Count returns the number of folded values.
func (d *AverageData[T]) Count() int64 { return d.count }

// HasVariance reports whether a variance can be derived.
func (d *AverageData[T]) HasVariance() bool { return d.variance }

// Mean returns the running mean. Undefined for an empty statistic.
func (d *AverageData[T]) Mean() T {
	return d.sum.Scale(1 / float64(d.count))
}

// Variance returns the population variance E[x^2] - E[x]^2.
func (d *AverageData[T]) Variance() T {
	mean := d.Mean()
	return d.sqsum.Scale(1 / float64(d.count)).Add(mean.Mul(mean).Scale(-1))
}

func (d *AverageData[T]) clone() *AverageData[T] {
	cp := *d
	return &cp
}

// AverageSnapshot stores a running statistic per (label, memory) pair for one
// record type.
type AverageSnapshot[T Value[T]] struct {
	data map[string]map[string]*AverageData[T]
}

// NewAverageSnapshot creates an empty average snapshot.
func NewAverageSnapshot[T Value[T]]() *AverageSnapshot[T] {
	return &AverageSnapshot[T]{data: make(map[string]map[string]*AverageData[T])}
}

// Add folds v into the statistic for (label, memory).
func (s *AverageSnapshot[T]) Add(label, memory string, v T, withVariance bool) {
	slots, ok := s.data[label]
	if !ok {
		slots = make(map[string]*AverageData[T])
		s.data[label] = slots
	}
	d, ok := slots[memory]
	if !ok {
		d = &AverageData[T]{}
		slots[memory] = d
	}
	d.Add(v, withVariance)
}

// Merge unions other's (label, memory) pairs into s, leaving other unchanged.
// Colliding statistics are combined.
func (s *AverageSnapshot[T]) Merge(other *AverageSnapshot[T]) {
	s.combine(other, false)
}

// Absorb is the destructive form of Merge: other is left empty.
func (s *AverageSnapshot[T]) Absorb(other *AverageSnapshot[T]) {
	s.combine(other, true)
	other.data = make(map[string]map[string]*AverageData[T])
}

func (s *AverageSnapshot[T]) combine(other *AverageSnapshot[T], take bool) {
	for label, slots := range other.data {
		cur, ok := s.data[label]
		if !ok {
			if take {
				s.data[label] = slots
			} else {
				s.data[label] = cloneSlots(slots)
			}
			continue
		}
		for memory, d := range slots {
			if existing, ok := cur[memory]; ok {
				existing.Combine(d)
			} else if take {
				cur[memory] = d
			} else {
				cur[memory] = d.clone()
			}
		}
	}
}

func cloneSlots[T Value[T]](slots map[string]*AverageData[T]) map[string]*AverageData[T] {
	out := make(map[string]*AverageData[T], len(slots))
	for memory, d := range slots {
		out[memory] = d.clone()
	}
	return out
}

// Clone returns a snapshot with its own copies of every statistic.
func (s *AverageSnapshot[T]) Clone() *AverageSnapshot[T] {
	out := NewAverageSnapshot[T]()
	for label, slots := range s.data {
		out.data[label] = cloneSlots(slots)
	}
	return out
}

// Labels returns the snapshot's labels in sorted order.
func (s *AverageSnapshot[T]) Labels() []string {
	labels := make([]string, 0, len(s.data))
	for label := range s.data {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Memories returns the memory keys recorded under label in sorted order.
func (s *AverageSnapshot[T]) Memories(label string) []string {
	slots := s.data[label]
	memories := make([]string, 0, len(slots))
	for memory := range slots {
		memories = append(memories, memory)
	}
	sort.Strings(memories)
	return memories
}

// Stats returns the running statistic for (label, memory).
func (s *AverageSnapshot[T]) Stats(label, memory string) (*AverageData[T], bool) {
	d, ok := s.data[label][memory]
	return d, ok
}

// Empty reports whether the snapshot holds no labels.
func (s *AverageSnapshot[T]) Empty() bool {
	return len(s.data) == 0
}

// Fragment projects the snapshot into a document fragment: per label, a list
// of {memory, value, variance?} entries ordered by memory key.
func (s *AverageSnapshot[T]) Fragment() map[string]interface{} {
	out := make(map[string]interface{}, len(s.data))
	for label := range s.data {
		entries := make([]map[string]interface{}, 0, len(s.data[label]))
		for _, memory := range s.Memories(label) {
			d := s.data[label][memory]
			entry := map[string]interface{}{
				"memory": memory,
				"value":  d.Mean(),
			}
			if d.HasVariance() {
				entry["variance"] = d.Variance()
			}
			entries = append(entries, entry)
		}
		out[label] = entries
	}
	return out
}
