package scheduler

import "github.com/jasonKoogler/tomasim/internal/isa"

// ActiveInstruction is the in-flight record for one instruction currently
// somewhere in the pipeline: an immutable decoded payload plus mutable
// scheduling state, created on admission and destroyed immediately after
// write-back release.
type ActiveInstruction struct {
	Decoded isa.DecodedInstruction

	Stage     Stage
	WaitCause WaitCause

	RS *RSTag
	FU *int // index within RS.Class's FU array; nil until Execute allocates one

	ExecuteStartedCycle int
	CyclesExecuted      int
}

func newActiveInstruction(d isa.DecodedInstruction) *ActiveInstruction {
	return &ActiveInstruction{
		Decoded: d,
		Stage:   StageIssue,
	}
}
