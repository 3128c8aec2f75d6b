// Package scheduler implements the reservation-station / functional-unit
// resource pool, the register-result-status renaming table, the
// per-instruction pipeline state machine, and the five-phase cycle driver
// that together form a Tomasulo scheduler.
package scheduler

import (
	"fmt"

	"github.com/jasonKoogler/tomasim/internal/isa"
)

// RSTag names a reservation station uniquely across the machine: its unit
// class and its index within that class's RS array. It is the dataflow
// dependency handle broadcast at write-back.
type RSTag struct {
	Class isa.UnitClass
	Index int
}

func (t RSTag) String() string {
	return fmt.Sprintf("%s[%d]", t.Class, t.Index)
}

// Stage is the pipeline stage an in-flight instruction currently occupies.
type Stage int

const (
	StageIssue Stage = iota
	StageRead
	StageExecute
	StageWrite
	StageWait
)

func (s Stage) String() string {
	switch s {
	case StageIssue:
		return "Issue"
	case StageRead:
		return "Read"
	case StageExecute:
		return "Execute"
	case StageWrite:
		return "Write"
	case StageWait:
		return "Wait"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// WaitCause explains why an instruction in StageWait cannot currently
// proceed.
type WaitCause int

const (
	// WaitNone is the zero value, used when the instruction isn't waiting.
	WaitNone WaitCause = iota
	// StructuralHazard means no RS of the required class was free at Issue.
	StructuralHazard
	// WaitingForOperand means Read captured the instruction but at least
	// one source register's value has not yet been broadcast.
	WaitingForOperand
	// WaitingForFunctionalUnit means Execute has an RS but no FU of the
	// required class was free.
	WaitingForFunctionalUnit
)

func (c WaitCause) String() string {
	switch c {
	case WaitNone:
		return "none"
	case StructuralHazard:
		return "structural-hazard"
	case WaitingForOperand:
		return "waiting-for-operand"
	case WaitingForFunctionalUnit:
		return "waiting-for-functional-unit"
	default:
		return fmt.Sprintf("WaitCause(%d)", int(c))
	}
}

// ReservationStation holds one in-flight instruction's captured operands
// (or the producer tags it's waiting on) until it can execute.
//
// Invariant: if Busy is false, every other field is stale and must be
// re-initialized on the next Allocate. If SrcNReady is true, SrcNProducer
// is meaningless.
type ReservationStation struct {
	Busy bool

	Src1Ready    bool
	Src1Producer *RSTag
	Src2Ready    bool
	Src2Producer *RSTag

	// Destination is this RS's own tag, written at Read.
	Destination RSTag
}

func (rs *ReservationStation) reset() {
	*rs = ReservationStation{}
}

// FunctionalUnit is the computational resource of one class, busy with at
// most one in-flight instruction at a time.
type FunctionalUnit struct {
	Busy                 bool
	RSIndex              int
	InstructionsExecuted int
}

func (fu *FunctionalUnit) reset() {
	fu.Busy = false
	fu.RSIndex = -1
}
