package scheduler

import (
	"github.com/jasonKoogler/tomasim/internal/isa"
	"github.com/jasonKoogler/tomasim/internal/machcfg"
)

// ResourcePool holds, per unit class, a fixed-size array of reservation
// stations and of functional units, plus that class's execute latency.
// Allocation always picks the lowest free index — the only tie-break
// allowed, so runs are bit-for-bit reproducible.
type ResourcePool struct {
	rs      [isa.NumUnitClasses][]ReservationStation
	fu      [isa.NumUnitClasses][]FunctionalUnit
	latency [isa.NumUnitClasses]int
}

// NewResourcePool builds a pool sized by configs. A class absent from
// configs gets zero RSs and zero FUs, which will deadlock any program
// that references it.
func NewResourcePool(configs []machcfg.UnitClassConfig) *ResourcePool {
	p := &ResourcePool{}
	for _, c := range configs {
		p.rs[c.Class] = make([]ReservationStation, c.NumRS)
		p.fu[c.Class] = make([]FunctionalUnit, c.NumFU)
		for i := range p.fu[c.Class] {
			p.fu[c.Class][i].RSIndex = -1
		}
		p.latency[c.Class] = c.Latency
	}
	return p
}

// AllocateRS returns the lowest free RS index for class, marking it busy,
// or ok=false if every RS of that class is busy (or none exist).
func (p *ResourcePool) AllocateRS(class isa.UnitClass) (index int, ok bool) {
	for i := range p.rs[class] {
		if !p.rs[class][i].Busy {
			p.rs[class][i].reset()
			p.rs[class][i].Busy = true
			return i, true
		}
	}
	return 0, false
}

// AllocateFU returns the lowest free FU index for class, marking it busy,
// or ok=false if every FU of that class is busy (or none exist).
func (p *ResourcePool) AllocateFU(class isa.UnitClass) (index int, ok bool) {
	for i := range p.fu[class] {
		if !p.fu[class][i].Busy {
			p.fu[class][i].Busy = true
			return i, true
		}
	}
	return 0, false
}

// ReleaseRS frees the RS named by tag, leaving its fields stale for
// re-initialization on next allocation.
func (p *ResourcePool) ReleaseRS(tag RSTag) {
	p.rs[tag.Class][tag.Index].Busy = false
}

// ReleaseFU frees the FU at (class, index).
func (p *ResourcePool) ReleaseFU(class isa.UnitClass, index int) {
	p.fu[class][index].reset()
}

// RS returns a pointer to the reservation station named by tag.
func (p *ResourcePool) RS(tag RSTag) *ReservationStation {
	return &p.rs[tag.Class][tag.Index]
}

// FU returns a pointer to the functional unit at (class, index).
func (p *ResourcePool) FU(class isa.UnitClass, index int) *FunctionalUnit {
	return &p.fu[class][index]
}

// Latency returns class's execute latency in cycles.
func (p *ResourcePool) Latency(class isa.UnitClass) int {
	return p.latency[class]
}

// FUs returns the functional unit slice for class, for report flattening.
func (p *ResourcePool) FUs(class isa.UnitClass) []FunctionalUnit {
	return p.fu[class]
}
