package ecs

import "github.com/milk9111/kinematic/ecs/component"

// The callbacks may add and remove components of other kinds. Entities destroyed
// mid-iteration are skipped.

func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa := w.store(ka.ID(), false)
	for _, e := range snapshot(sa) {
		a, ok := sa.Get(e).(*A)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := w.store(ka.ID(), false), w.store(kb.ID(), false)
	if sa == nil || sb == nil {
		return
	}
	for _, e := range snapshot(smallest(sa, sb)) {
		a, okA := sa.Get(e).(*A)
		b, okB := sb.Get(e).(*B)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, e := range snapshot(smallest(sa, sb, sc)) {
		a, okA := sa.Get(e).(*A)
		b, okB := sb.Get(e).(*B)
		c, okC := sc.Get(e).(*C)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa, sb, sc, sd := w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false), w.store(kd.ID(), false)
	if sa == nil || sb == nil || sc == nil || sd == nil {
		return
	}
	for _, e := range snapshot(smallest(sa, sb, sc, sd)) {
		a, okA := sa.Get(e).(*A)
		b, okB := sb.Get(e).(*B)
		c, okC := sc.Get(e).(*C)
		d, okD := sd.Get(e).(*D)
		if okA && okB && okC && okD {
			fn(e, a, b, c, d)
		}
	}
}

func smallest(sets ...*SparseSet) *SparseSet {
	best := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < best.Len() {
			best = s
		}
	}
	return best
}

func snapshot(s *SparseSet) []Entity {
	return append([]Entity(nil), s.Entities()...)
}
