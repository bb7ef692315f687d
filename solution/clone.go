package solution

// Clone deep-copies src's topology into s by index, so that s and src share
// no mutable node state afterwards. Calling s.Clone(s) is a documented
// no-op (clone idempotence, spec.md §8).
func (s *Solution) Clone(src *Solution) {
	if s == src {
		return
	}

	s.Inst = src.Inst
	s.Cost = src.Cost
	s.nextRouteID = src.nextRouteID

	if cap(s.nodes) < len(src.nodes) {
		s.nodes = make([]Node, len(src.nodes))
	} else {
		s.nodes = s.nodes[:len(src.nodes)]
	}
	copy(s.nodes, src.nodes)

	s.freeDepotSlots = append(s.freeDepotSlots[:0], src.freeDepotSlots...)

	if cap(s.Routes) < len(src.Routes) {
		s.Routes = make([]*Route, len(src.Routes))
	} else {
		s.Routes = s.Routes[:len(src.Routes)]
	}
	for i, r := range src.Routes {
		cp := *r
		s.Routes[i] = &cp
	}

	if cap(s.Absent) < len(src.Absent) {
		s.Absent = make([]int, len(src.Absent))
	} else {
		s.Absent = s.Absent[:len(src.Absent)]
	}
	copy(s.Absent, src.Absent)
}

// DeepCopy returns a fresh Solution holding an independent copy of s.
func (s *Solution) DeepCopy() *Solution {
	cp := New(s.Inst)
	cp.Clone(s)
	return cp
}
