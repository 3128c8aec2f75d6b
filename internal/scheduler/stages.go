package scheduler

import "github.com/jasonKoogler/tomasim/internal/isa"

// issue attempts to allocate an RS of the instruction's class. On success
// it records the tag and advances to Read, returning true (forward
// progress). On failure it parks the instruction in Wait/StructuralHazard
// and counts a stall — every call that fails to allocate counts one,
// including repeat retries from stallResume.
func (s *Scheduler) issue(i int) bool {
	inst := s.active[i]

	index, ok := s.pool.AllocateRS(inst.Decoded.Class)
	if !ok {
		inst.Stage = StageWait
		inst.WaitCause = StructuralHazard
		s.structuralHazardStalls++
		return false
	}

	tag := RSTag{Class: inst.Decoded.Class, Index: index}
	inst.RS = &tag
	inst.Stage = StageRead
	return true
}

// read captures operands, performs renaming, and transitions to Execute or
// Wait/WaitingForOperand. Always consumes the Read stage in the cycle it
// runs, so it always counts as forward progress.
func (s *Scheduler) read(i int) bool {
	inst := s.active[i]
	tag := *inst.RS
	rs := s.pool.RS(tag)
	rs.Destination = tag

	var destReg *uint8

	switch op := inst.Decoded.Operands.(type) {
	case isa.RRR:
		rs.Src1Ready, rs.Src1Producer = s.resolveSource(op.Rs)
		rs.Src2Ready, rs.Src2Producer = s.resolveSource(op.Rt)
		destReg = regPtr(op.Rd)
	case isa.LoadRR:
		rs.Src1Ready, rs.Src1Producer = s.resolveSource(op.Rs)
		rs.Src2Ready, rs.Src2Producer = true, nil
		destReg = regPtr(op.Rd)
	case isa.StoreRR:
		rs.Src1Ready, rs.Src1Producer = s.resolveSource(op.Rt)
		rs.Src2Ready, rs.Src2Producer = s.resolveSource(op.Rs)
	case isa.ImmDest:
		rs.Src1Ready, rs.Src1Producer = true, nil
		rs.Src2Ready, rs.Src2Producer = true, nil
		destReg = regPtr(op.Rd)
	case isa.DestSrc:
		rs.Src1Ready, rs.Src1Producer = s.resolveSource(op.Rs)
		rs.Src2Ready, rs.Src2Producer = true, nil
		destReg = regPtr(op.Rd)
	case isa.SrcOnly:
		rs.Src1Ready, rs.Src1Producer = s.resolveSource(op.Rs)
		rs.Src2Ready, rs.Src2Producer = true, nil
	case isa.NoOperands:
		rs.Src1Ready, rs.Src1Producer = true, nil
		rs.Src2Ready, rs.Src2Producer = true, nil
	}

	if destReg != nil {
		s.rrst.SetProducer(*destReg, tag)
	}

	if rs.Src1Ready && rs.Src2Ready {
		inst.Stage = StageExecute
	} else {
		inst.Stage = StageWait
		inst.WaitCause = WaitingForOperand
	}
	return true
}

// resolveSource consults the RRST for reg: if no producer is renaming it,
// the operand is available from the architectural register file (counted)
// and is ready immediately; otherwise it's not ready and carries the
// producer tag to wait on.
func (s *Scheduler) resolveSource(reg uint8) (ready bool, producer *RSTag) {
	if tag, ok := s.rrst.Producer(reg); ok {
		t := tag
		return false, &t
	}
	s.registerFileReads++
	return true, nil
}

func regPtr(r uint8) *uint8 { return &r }

// execute allocates a functional unit on first entry (parking in
// Wait/WaitingForFunctionalUnit, no cycle consumed, if none is free), then
// advances the instruction one cycle through Execute, moving to Write once
// CyclesExecuted reaches the class's latency.
func (s *Scheduler) execute(i int, cycle int) bool {
	inst := s.active[i]
	tag := *inst.RS

	if inst.FU == nil {
		index, ok := s.pool.AllocateFU(tag.Class)
		if !ok {
			inst.Stage = StageWait
			inst.WaitCause = WaitingForFunctionalUnit
			return false
		}
		fu := s.pool.FU(tag.Class, index)
		fu.RSIndex = tag.Index
		fu.InstructionsExecuted++
		inst.FU = &index
		inst.ExecuteStartedCycle = cycle
		inst.Stage = StageExecute
	}

	inst.CyclesExecuted++
	if inst.CyclesExecuted == s.pool.Latency(tag.Class) {
		inst.Stage = StageWrite
	}
	return true
}

// writeBackBroadcast is write-back phase 1: the completing instruction's
// own RS tag is broadcast to every other active instruction's unready
// sources that name it as producer.
func (s *Scheduler) writeBackBroadcast(i int) {
	producer := *s.active[i].RS

	for j, other := range s.active {
		if j == i || other.RS == nil {
			continue
		}
		rs := s.pool.RS(*other.RS)
		if !rs.Src1Ready && rs.Src1Producer != nil && *rs.Src1Producer == producer {
			rs.Src1Ready = true
		}
		if !rs.Src2Ready && rs.Src2Producer != nil && *rs.Src2Producer == producer {
			rs.Src2Ready = true
		}
	}
}

// writeBackRelease is write-back phase 2: the RRST entry for this tag is
// cleared, the FU and RS are released, and the instruction is dropped from
// the active list.
func (s *Scheduler) writeBackRelease(i int) {
	inst := s.active[i]
	tag := *inst.RS

	s.rrst.ClearByTag(tag)
	s.pool.ReleaseFU(tag.Class, *inst.FU)
	s.pool.ReleaseRS(tag)

	s.active = append(s.active[:i], s.active[i+1:]...)
}

// stallResume dispatches a Wait-stage instruction on its cause: retry
// Issue for a structural hazard, check for operand readiness, or retry
// Execute's FU allocation. Returns whether real forward progress happened
// this call.
func (s *Scheduler) stallResume(i int, cycle int) bool {
	inst := s.active[i]

	switch inst.WaitCause {
	case StructuralHazard:
		return s.issue(i)
	case WaitingForOperand:
		rs := s.pool.RS(*inst.RS)
		if rs.Src1Ready && rs.Src2Ready {
			inst.Stage = StageExecute
			return true
		}
		return false
	case WaitingForFunctionalUnit:
		return s.execute(i, cycle)
	default:
		return false
	}
}
