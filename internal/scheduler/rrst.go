package scheduler

// RRST is the Register Result Status Table: the rename map from an
// architectural register number to the RS tag currently producing its
// next value. Registers are numbered 0..7.
type RRST struct {
	producer [8]*RSTag
}

// NewRRST returns an empty rename table.
func NewRRST() *RRST {
	return &RRST{}
}

// Producer returns the tag producing reg's next value, if any.
func (r *RRST) Producer(reg uint8) (RSTag, bool) {
	p := r.producer[reg]
	if p == nil {
		return RSTag{}, false
	}
	return *p, true
}

// SetProducer renames reg to tag, overwriting any prior entry — the
// renaming discipline that makes a prior producer's result dead on
// arrival once a later instruction claims the same destination.
func (r *RRST) SetProducer(reg uint8, tag RSTag) {
	t := tag
	r.producer[reg] = &t
}

// ClearByTag removes every entry whose value equals tag. By invariant each
// instruction writes at most one register, so at most one entry is
// removed; the table is scanned by tag rather than indexed by register
// because the tag, not the register, is canonical here.
func (r *RRST) ClearByTag(tag RSTag) {
	for reg, p := range r.producer {
		if p != nil && *p == tag {
			r.producer[reg] = nil
		}
	}
}

// Empty reports whether every register is currently unrenamed, used by
// tests asserting the WAW-rename scenario leaves no dangling entries.
func (r *RRST) Empty() bool {
	for _, p := range r.producer {
		if p != nil {
			return false
		}
	}
	return true
}
