package results

import "testing"

func TestPershotAddAppends(t *testing.T) {
	s := NewPershotSnapshot[Scalar]()
	s.Add("Z", 1)
	s.Add("Z", 2)
	s.Add("X", 3)

	if got := s.Values("Z"); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Values(Z) = %v; want [1 2]", got)
	}
	labels := s.Labels()
	if len(labels) != 2 || labels[0] != "X" || labels[1] != "Z" {
		t.Errorf("Labels() = %v; want [X Z]", labels)
	}
}

func TestPershotMergeAppendsAfterSelf(t *testing.T) {
	a := NewPershotSnapshot[Scalar]()
	a.Add("Z", 1)
	a.Add("Z", 2)

	b := NewPershotSnapshot[Scalar]()
	b.Add("Z", 3)
	b.Add("Y", 9)

	a.Merge(b)

	if got := a.Values("Z"); len(got) != 3 || got[2] != 3 {
		t.Errorf("Values(Z) = %v; want [1 2 3]", got)
	}
	if got := a.Values("Y"); len(got) != 1 || got[0] != 9 {
		t.Errorf("Values(Y) = %v; want [9]", got)
	}
	if got := b.Values("Z"); len(got) != 1 {
		t.Errorf("source Values(Z) = %v; want [3]", got)
	}
}

func TestPershotAbsorb(t *testing.T) {
	a := NewPershotSnapshot[Scalar]()
	b := NewPershotSnapshot[Scalar]()
	b.Add("Z", 1)

	a.Absorb(b)

	if !b.Empty() {
		t.Error("absorbed snapshot not empty")
	}
	if got := a.Values("Z"); len(got) != 1 || got[0] != 1 {
		t.Errorf("Values(Z) = %v; want [1]", got)
	}
}

func TestPershotCloneIsIndependent(t *testing.T) {
	s := NewPershotSnapshot[Scalar]()
	s.Add("Z", 1)

	cp := s.Clone()
	s.Add("Z", 2)

	if got := len(cp.Values("Z")); got != 1 {
		t.Errorf("clone has %d values after source mutation; want 1", got)
	}
}
