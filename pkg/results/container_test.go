package results

import "testing"

func fill(c *Container[Scalar]) {
	c.SetExtra("shots", 10)
	c.AddPershot("expval", "Z", 1)
	c.AddPershot("expval", "Z", 2)
	c.AddAverage("statistics", "position", "0", 3, true)
	c.AddAverage("statistics", "position", "0", 5, true)
}

func TestDisabledAddsAreNoOps(t *testing.T) {
	c := New[Scalar]()
	c.Enable(false)

	c.SetExtra("shots", 10)
	c.AddPershot("expval", "Z", 1)
	c.AddAverage("statistics", "position", "0", 3, false)

	if !c.Empty() {
		t.Errorf("disabled container accumulated data: extras=%v pershot=%v averages=%v",
			c.ExtraKeys(), c.PershotTypes(), c.AverageTypes())
	}
}

func TestReEnableResumesAccumulation(t *testing.T) {
	c := New[Scalar]()
	c.Enable(false)
	c.SetExtra("dropped", 1)
	c.Enable(true)
	c.SetExtra("kept", 2)

	if _, ok := c.Extra("dropped"); ok {
		t.Error("write while disabled was stored")
	}
	if v, ok := c.Extra("kept"); !ok || v != 2 {
		t.Errorf("Extra(kept) = %v, %v; want 2, true", v, ok)
	}
}

func TestClearWorksWhileDisabled(t *testing.T) {
	c := New[Scalar]()
	fill(c)
	c.Enable(false)
	c.Clear()

	if !c.Empty() {
		t.Error("Clear on a disabled container left data behind")
	}
	if c.Enabled() {
		t.Error("Clear changed the enable gate")
	}
}

func TestSetExtraOverwrites(t *testing.T) {
	c := New[Scalar]()
	c.SetExtra("seed", 7)
	c.SetExtra("seed", 9)

	if v, _ := c.Extra("seed"); v != 9 {
		t.Errorf("Extra(seed) = %v; want 9", v)
	}
}

func TestMergeExtrasOtherWins(t *testing.T) {
	a := New[Scalar]()
	a.SetExtra("shots", 10)

	b := New[Scalar]()
	b.SetExtra("shots", 20)
	b.SetExtra("seed", 7)

	a.Merge(b)

	if v, _ := a.Extra("shots"); v != 20 {
		t.Errorf("Extra(shots) = %v; want 20", v)
	}
	if v, _ := a.Extra("seed"); v != 7 {
		t.Errorf("Extra(seed) = %v; want 7", v)
	}
}

func TestMergePershotConcatenatesInOrder(t *testing.T) {
	a := New[Scalar]()
	a.AddPershot("expval", "Z", 1)
	a.AddPershot("expval", "Z", 2)

	b := New[Scalar]()
	b.AddPershot("expval", "Z", 3)

	a.Merge(b)

	snap, ok := a.Pershot("expval")
	if !ok {
		t.Fatal("expval snapshot missing after merge")
	}
	got := snap.Values("Z")
	want := []Scalar{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("Values(Z) = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Values(Z)[%d] = %v; want %v", i, got[i], want[i])
		}
	}
}

func TestMergeLeavesOtherUnchanged(t *testing.T) {
	a := New[Scalar]()
	b := New[Scalar]()
	fill(b)

	a.Merge(b)

	if b.Empty() {
		t.Error("non-destructive merge emptied the source")
	}
	if snap, _ := b.Pershot("expval"); len(snap.Values("Z")) != 2 {
		t.Errorf("source pershot values = %v; want 2 entries", snap.Values("Z"))
	}
}

func TestAbsorbEmptiesSource(t *testing.T) {
	a := New[Scalar]()
	b := New[Scalar]()
	fill(b)

	a.Absorb(b)

	if !b.Empty() {
		t.Errorf("absorbed container not empty: extras=%v pershot=%v averages=%v",
			b.ExtraKeys(), b.PershotTypes(), b.AverageTypes())
	}
}

func TestMergeAndAbsorbProduceIdenticalContent(t *testing.T) {
	build := func() (*Container[Scalar], *Container[Scalar]) {
		a := New[Scalar]()
		fill(a)
		a.SetExtra("seed", 7)

		b := New[Scalar]()
		fill(b)
		b.SetExtra("shots", 20)
		b.AddPershot("memory", "m0", 4)
		b.AddAverage("statistics", "position", "1", 8, false)
		return a, b
	}

	merged, src1 := build()
	merged.Merge(src1)
	absorbed, src2 := build()
	absorbed.Absorb(src2)

	assertSameContent(t, merged, absorbed)
}

func assertSameContent(t *testing.T, a, b *Container[Scalar]) {
	t.Helper()

	aKeys, bKeys := a.ExtraKeys(), b.ExtraKeys()
	if len(aKeys) != len(bKeys) {
		t.Fatalf("extras keys %v vs %v", aKeys, bKeys)
	}
	for _, k := range aKeys {
		av, _ := a.Extra(k)
		bv, _ := b.Extra(k)
		if av != bv {
			t.Errorf("extras[%s] = %v vs %v", k, av, bv)
		}
	}

	if got, want := a.PershotTypes(), b.PershotTypes(); len(got) != len(want) {
		t.Fatalf("pershot types %v vs %v", got, want)
	}
	for _, typ := range a.PershotTypes() {
		as, _ := a.Pershot(typ)
		bs, _ := b.Pershot(typ)
		for _, label := range as.Labels() {
			av, bv := as.Values(label), bs.Values(label)
			if len(av) != len(bv) {
				t.Fatalf("pershot %s/%s: %v vs %v", typ, label, av, bv)
			}
			for i := range av {
				if av[i] != bv[i] {
					t.Errorf("pershot %s/%s[%d] = %v vs %v", typ, label, i, av[i], bv[i])
				}
			}
		}
	}

	if got, want := a.AverageTypes(), b.AverageTypes(); len(got) != len(want) {
		t.Fatalf("average types %v vs %v", got, want)
	}
	for _, typ := range a.AverageTypes() {
		as, _ := a.Average(typ)
		bs, _ := b.Average(typ)
		for _, label := range as.Labels() {
			for _, memory := range as.Memories(label) {
				ad, _ := as.Stats(label, memory)
				bd, ok := bs.Stats(label, memory)
				if !ok {
					t.Fatalf("average %s/%s/%s missing in second container", typ, label, memory)
				}
				if ad.Count() != bd.Count() || ad.Mean() != bd.Mean() {
					t.Errorf("average %s/%s/%s: count %d mean %v vs count %d mean %v",
						typ, label, memory, ad.Count(), ad.Mean(), bd.Count(), bd.Mean())
				}
			}
		}
	}
}

func TestCombineChaining(t *testing.T) {
	a := New[Scalar]()
	b := New[Scalar]()
	b.SetExtra("x", 1)
	c := New[Scalar]()
	c.SetExtra("y", 2)

	a.Absorb(b).Merge(c)

	if _, ok := a.Extra("x"); !ok {
		t.Error("chained Absorb lost data")
	}
	if _, ok := a.Extra("y"); !ok {
		t.Error("chained Merge lost data")
	}
}

func TestAbsorbedContainerIsReusable(t *testing.T) {
	a := New[Scalar]()
	b := New[Scalar]()
	fill(b)
	a.Absorb(b)

	// The source comes back as an empty container and can accumulate again.
	b.SetExtra("fresh", 1)
	if v, ok := b.Extra("fresh"); !ok || v != 1 {
		t.Errorf("Extra(fresh) = %v, %v; want 1, true", v, ok)
	}
	if _, ok := a.Extra("fresh"); ok {
		t.Error("write to absorbed source leaked into the target")
	}
}

func TestMergeClonesSnapshotsFromSource(t *testing.T) {
	a := New[Scalar]()
	b := New[Scalar]()
	b.AddPershot("expval", "Z", 1)

	a.Merge(b)
	b.AddPershot("expval", "Z", 2)

	snap, _ := a.Pershot("expval")
	if got := len(snap.Values("Z")); got != 1 {
		t.Errorf("target snapshot has %d values after source mutation; want 1", got)
	}
}
