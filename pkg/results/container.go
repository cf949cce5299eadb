package results

import "sort"

// Container accumulates the result fragments produced by one independent
// unit of work (a shot executor, a worker thread). It owns three namespaces:
// extras (single overwritable values), pershot snapshots (one value per shot),
// and average snapshots (running statistics per memory slot). Containers are
// merged pairwise after their producing phase and the survivor is serialized.
//
// A container is not safe for concurrent use; the intended pattern is one
// container per worker, merged by a single reducer once the workers are done.
type Container[T Value[T]] struct {
	extras   map[string]T
	pershot  map[string]*PershotSnapshot[T]
	averages map[string]*AverageSnapshot[T]
	enabled  bool
}

// New creates an enabled, empty container.
func New[T Value[T]]() *Container[T] {
	return &Container[T]{
		extras:   make(map[string]T),
		pershot:  make(map[string]*PershotSnapshot[T]),
		averages: make(map[string]*AverageSnapshot[T]),
		enabled:  true,
	}
}

// Enable sets the gate. While the gate is off, SetExtra, AddPershot, and
// AddAverage are silent no-ops. Already-stored data is unaffected.
func (c *Container[T]) Enable(v bool) {
	c.enabled = v
}

// Enabled reports the gate state.
func (c *Container[T]) Enabled() bool {
	return c.enabled
}

// SetExtra stores value under key, overwriting any existing entry.
func (c *Container[T]) SetExtra(key string, value T) {
	if !c.enabled {
		return
	}
	c.extras[key] = value
}

// AddPershot appends value under (recordType, label).
func (c *Container[T]) AddPershot(recordType, label string, value T) {
	if !c.enabled {
		return
	}
	snap, ok := c.pershot[recordType]
	if !ok {
		snap = NewPershotSnapshot[T]()
		c.pershot[recordType] = snap
	}
	snap.Add(label, value)
}

// AddAverage folds value into the running statistic for
// (recordType, label, memory).
func (c *Container[T]) AddAverage(recordType, label, memory string, value T, withVariance bool) {
	if !c.enabled {
		return
	}
	snap, ok := c.averages[recordType]
	if !ok {
		snap = NewAverageSnapshot[T]()
		c.averages[recordType] = snap
	}
	snap.Add(label, memory, value, withVariance)
}

// Clear empties all three namespaces. It works regardless of the gate and
// leaves the gate unchanged.
func (c *Container[T]) Clear() {
	c.extras = make(map[string]T)
	c.pershot = make(map[string]*PershotSnapshot[T])
	c.averages = make(map[string]*AverageSnapshot[T])
}

// Merge combines other into c, leaving other unchanged. Extras collide
// last-write-wins (other wins); colliding snapshots are merged by their own
// combine rules. Returns c for chaining.
func (c *Container[T]) Merge(other *Container[T]) *Container[T] {
	return c.combine(other, false)
}

// Absorb is the destructive form of Merge: snapshot instances absent from c
// are taken over without copying, and other is left with all three
// namespaces empty. Returns c for chaining.
func (c *Container[T]) Absorb(other *Container[T]) *Container[T] {
	return c.combine(other, true)
}

func (c *Container[T]) combine(other *Container[T], take bool) *Container[T] {
	for k, v := range other.extras {
		c.extras[k] = v
	}

	for recordType, snap := range other.pershot {
		if cur, ok := c.pershot[recordType]; ok {
			if take {
				cur.Absorb(snap)
			} else {
				cur.Merge(snap)
			}
		} else if take {
			c.pershot[recordType] = snap
		} else {
			c.pershot[recordType] = snap.Clone()
		}
	}

	for recordType, snap := range other.averages {
		if cur, ok := c.averages[recordType]; ok {
			if take {
				cur.Absorb(snap)
			} else {
				cur.Merge(snap)
			}
		} else if take {
			c.averages[recordType] = snap
		} else {
			c.averages[recordType] = snap.Clone()
		}
	}

	if take {
		other.Clear()
	}
	return c
}

// Empty reports whether all three namespaces are empty.
func (c *Container[T]) Empty() bool {
	return len(c.extras) == 0 && len(c.pershot) == 0 && len(c.averages) == 0
}

// Extra returns the extras entry stored under key.
func (c *Container[T]) Extra(key string) (T, bool) {
	v, ok := c.extras[key]
	return v, ok
}

// ExtraKeys returns the extras keys in sorted order.
func (c *Container[T]) ExtraKeys() []string {
	return sortedKeys(c.extras)
}

// Pershot returns the pershot snapshot stored under recordType.
func (c *Container[T]) Pershot(recordType string) (*PershotSnapshot[T], bool) {
	snap, ok := c.pershot[recordType]
	return snap, ok
}

// PershotTypes returns the pershot record types in sorted order.
func (c *Container[T]) PershotTypes() []string {
	return sortedKeys(c.pershot)
}

// Average returns the average snapshot stored under recordType.
func (c *Container[T]) Average(recordType string) (*AverageSnapshot[T], bool) {
	snap, ok := c.averages[recordType]
	return snap, ok
}

// AverageTypes returns the average record types in sorted order.
func (c *Container[T]) AverageTypes() []string {
	return sortedKeys(c.averages)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
