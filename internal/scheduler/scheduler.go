package scheduler

import (
	"fmt"

	"github.com/jasonKoogler/tomasim/internal/isa"
	"github.com/jasonKoogler/tomasim/internal/machcfg"
	"github.com/jasonKoogler/tomasim/internal/simerr"
	"github.com/jasonKoogler/tomasim/internal/simlog"
)

// noProgressLimit is how many consecutive cycles with zero forward
// progress (no admit, no stage advance, no resource release) the driver
// tolerates before concluding the trace has deadlocked the machine
// (a recommended diagnostic rather than a required one, but tomasim
// implements it).
const noProgressLimit = 2

// Scheduler owns every piece of shared scheduling state — the resource
// pool, the RRST, and the active-instruction list — and drives the
// simulation one cycle at a time via Tick. Global mutable state is
// deliberately avoided: everything lives on this value.
type Scheduler struct {
	pool *ResourcePool
	rrst *RRST

	active  []*ActiveInstruction
	pending []isa.DecodedInstruction

	cycle int

	registerFileReads      int
	structuralHazardStalls int

	noProgressStreak int

	log *simlog.Logger
}

// New builds a Scheduler sized by configs and fed by program, the already
// decoded instruction trace in program order.
func New(configs []machcfg.UnitClassConfig, program []isa.DecodedInstruction) *Scheduler {
	return &Scheduler{
		pool:    NewResourcePool(configs),
		rrst:    NewRRST(),
		pending: append([]isa.DecodedInstruction(nil), program...),
		log:     simlog.Default(),
	}
}

// SetLogger overrides the scheduler's logger (the CLI wires its own
// leveled instance here before running).
func (s *Scheduler) SetLogger(l *simlog.Logger) {
	s.log = l
}

// Run drives the scheduler to completion, returning the total cycle count.
// It stops when both the pending and active instruction lists are empty.
func (s *Scheduler) Run() (int, error) {
	for {
		done, err := s.Tick()
		if err != nil {
			return s.cycle, err
		}
		if done {
			return s.cycle, nil
		}
	}
}

// Tick advances the clock by one cycle, running the five phases in strict
// order: admit, broadcast scan, advance, release. It reports done=true once
// both queues are empty after this cycle's release phase.
func (s *Scheduler) Tick() (done bool, err error) {
	s.cycle++

	// Phase 1: admit. At most one new instruction enters per cycle,
	// regardless of back-pressure.
	admitted := false
	if len(s.pending) > 0 {
		d := s.pending[0]
		s.pending = s.pending[1:]
		s.active = append(s.active, newActiveInstruction(d))
		admitted = true
	}

	// Phase 2: broadcast scan. Collect every instruction currently in
	// Write, then broadcast its tag before this cycle's advance — so a
	// waiting consumer can witness readiness and transition in the same
	// cycle its producer completes.
	var writeIdx []int
	for i, inst := range s.active {
		if inst.Stage == StageWrite {
			writeIdx = append(writeIdx, i)
		}
	}
	for _, i := range writeIdx {
		s.writeBackBroadcast(i)
	}

	// Phase 3: advance. Each active instruction performs at most one
	// stage transition this cycle, dispatched on its current stage.
	progressed := admitted || len(writeIdx) > 0
	for i, inst := range s.active {
		switch inst.Stage {
		case StageIssue:
			if s.issue(i) {
				progressed = true
			}
		case StageRead:
			if s.read(i) {
				progressed = true
			}
		case StageExecute:
			if s.execute(i, s.cycle) {
				progressed = true
			}
		case StageWrite:
			// release happens in phase 5; no-op here.
		case StageWait:
			if s.stallResume(i, s.cycle) {
				progressed = true
			}
		}
	}

	// Phase 5 (there is no phase 4): release, in reverse index order so
	// earlier indices in writeIdx stay valid as later ones are removed.
	for k := len(writeIdx) - 1; k >= 0; k-- {
		s.writeBackRelease(writeIdx[k])
	}

	s.log.Tracef("cycle %d: active=%d pending=%d stalls=%d reg-reads=%d",
		s.cycle, len(s.active), len(s.pending), s.structuralHazardStalls, s.registerFileReads)

	if !progressed && len(s.active) > 0 {
		s.noProgressStreak++
		if s.noProgressStreak > noProgressLimit {
			return false, simerr.New(simerr.SchedulerInvariant, "scheduler.Tick",
				fmt.Sprintf("no instruction advanced and no resource was released for %d consecutive cycles; stuck at cycle %d with %d active instruction(s) (first stage=%s wait=%s); the trace has deadlocked the configured machine",
					s.noProgressStreak, s.cycle, len(s.active), s.active[0].Stage, s.active[0].WaitCause))
		}
	} else {
		s.noProgressStreak = 0
	}

	done = len(s.pending) == 0 && len(s.active) == 0
	return done, nil
}

// Cycles returns the number of cycles run so far.
func (s *Scheduler) Cycles() int { return s.cycle }

// RegisterFileReads returns the running count of operands read directly
// from the architectural register file (i.e. not renamed).
func (s *Scheduler) RegisterFileReads() int { return s.registerFileReads }

// StructuralHazardStalls returns the running count of failed Issue
// allocation attempts.
func (s *Scheduler) StructuralHazardStalls() int { return s.structuralHazardStalls }

// FunctionalUnits returns the functional units of class, for report
// flattening; array order is by index ascending.
func (s *Scheduler) FunctionalUnits(class isa.UnitClass) []FunctionalUnit {
	return s.pool.FUs(class)
}

// ActiveCount reports how many instructions are currently in flight.
func (s *Scheduler) ActiveCount() int { return len(s.active) }
