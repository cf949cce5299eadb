package results

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAverageDataMeanAndVariance(t *testing.T) {
	d := &AverageData[Scalar]{}
	for _, v := range []Scalar{2, 4, 6, 8} {
		d.Add(v, true)
	}

	if d.Count() != 4 {
		t.Errorf("Count() = %d; want 4", d.Count())
	}
	if got := float64(d.Mean()); !almostEqual(got, 5) {
		t.Errorf("Mean() = %v; want 5", got)
	}
	// Population variance of {2,4,6,8} is 5.
	if got := float64(d.Variance()); !almostEqual(got, 5) {
		t.Errorf("Variance() = %v; want 5", got)
	}
}

func TestAverageDataVarianceDowngrade(t *testing.T) {
	d := &AverageData[Scalar]{}
	d.Add(1, true)
	d.Add(2, false)

	if d.HasVariance() {
		t.Error("variance still tracked after an Add without variance")
	}
}

func TestAverageDataCombineMatchesSingleStream(t *testing.T) {
	vals := []Scalar{1, 2, 3, 4, 5, 6}

	whole := &AverageData[Scalar]{}
	for _, v := range vals {
		whole.Add(v, true)
	}

	left := &AverageData[Scalar]{}
	right := &AverageData[Scalar]{}
	for _, v := range vals[:2] {
		left.Add(v, true)
	}
	for _, v := range vals[2:] {
		right.Add(v, true)
	}
	left.Combine(right)

	if left.Count() != whole.Count() {
		t.Errorf("combined count = %d; want %d", left.Count(), whole.Count())
	}
	if !almostEqual(float64(left.Mean()), float64(whole.Mean())) {
		t.Errorf("combined mean = %v; want %v", left.Mean(), whole.Mean())
	}
	if !almostEqual(float64(left.Variance()), float64(whole.Variance())) {
		t.Errorf("combined variance = %v; want %v", left.Variance(), whole.Variance())
	}
}

func TestAverageDataCombineOrderIndependent(t *testing.T) {
	build := func(vals ...Scalar) *AverageData[Scalar] {
		d := &AverageData[Scalar]{}
		for _, v := range vals {
			d.Add(v, true)
		}
		return d
	}

	ab := build(1, 2)
	ab.Combine(build(3, 4, 5))
	ba := build(3, 4, 5)
	ba.Combine(build(1, 2))

	if !almostEqual(float64(ab.Mean()), float64(ba.Mean())) {
		t.Errorf("mean depends on combine order: %v vs %v", ab.Mean(), ba.Mean())
	}
	if !almostEqual(float64(ab.Variance()), float64(ba.Variance())) {
		t.Errorf("variance depends on combine order: %v vs %v", ab.Variance(), ba.Variance())
	}
}

func TestAverageSnapshotCollisionCombinesStats(t *testing.T) {
	a := NewAverageSnapshot[Scalar]()
	a.Add("position", "0", 2, false)
	a.Add("position", "0", 4, false)

	b := NewAverageSnapshot[Scalar]()
	b.Add("position", "0", 6, false)
	b.Add("position", "1", 10, false)

	a.Merge(b)

	d, ok := a.Stats("position", "0")
	if !ok {
		t.Fatal("stats for (position, 0) missing")
	}
	if d.Count() != 3 || !almostEqual(float64(d.Mean()), 4) {
		t.Errorf("(position, 0): count %d mean %v; want 3, 4", d.Count(), d.Mean())
	}
	if d, _ := a.Stats("position", "1"); d.Count() != 1 {
		t.Errorf("(position, 1): count %d; want 1", d.Count())
	}

	// Source unchanged by the copy form.
	if d, _ := b.Stats("position", "0"); d.Count() != 1 {
		t.Errorf("source stats mutated: count %d; want 1", d.Count())
	}
}

func TestAverageSnapshotAbsorbEmptiesSource(t *testing.T) {
	a := NewAverageSnapshot[Scalar]()
	b := NewAverageSnapshot[Scalar]()
	b.Add("position", "0", 1, false)

	a.Absorb(b)

	if !b.Empty() {
		t.Error("absorbed snapshot not empty")
	}
	if _, ok := a.Stats("position", "0"); !ok {
		t.Error("absorbed stats missing from target")
	}
}

func TestAverageSnapshotVectorValues(t *testing.T) {
	s := NewAverageSnapshot[Vector]()
	s.Add("walk", "0", Vector{1, 2}, false)
	s.Add("walk", "0", Vector{3, 6}, false)

	d, _ := s.Stats("walk", "0")
	mean := d.Mean()
	want := Vector{2, 4}
	if len(mean) != len(want) {
		t.Fatalf("Mean() = %v; want %v", mean, want)
	}
	for i := range want {
		if !almostEqual(mean[i], want[i]) {
			t.Errorf("Mean()[%d] = %v; want %v", i, mean[i], want[i])
		}
	}
}

func TestVectorZeroPadding(t *testing.T) {
	got := Vector{1, 2}.Add(Vector{10, 20, 30})
	want := Vector{11, 22, 30}
	if len(got) != len(want) {
		t.Fatalf("Add = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Add[%d] = %v; want %v", i, got[i], want[i])
		}
	}
}

func TestDistributionArithmetic(t *testing.T) {
	sum := Distribution{"00": 1, "11": 2}.Add(Distribution{"11": 3, "01": 4})
	if sum["00"] != 1 || sum["11"] != 5 || sum["01"] != 4 {
		t.Errorf("Add = %v; want map[00:1 01:4 11:5]", sum)
	}

	prod := Distribution{"00": 2, "11": 3}.Mul(Distribution{"11": 4})
	if len(prod) != 1 || prod["11"] != 12 {
		t.Errorf("Mul = %v; want map[11:12]", prod)
	}
}
