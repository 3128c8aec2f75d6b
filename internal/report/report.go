// Package report assembles the scheduler's final counters into the
// SimulationReport output grammar, and serializes it either as the
// required JSON object or as an optional verbose YAML debug dump.
package report

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jasonKoogler/tomasim/internal/isa"
	"github.com/jasonKoogler/tomasim/internal/scheduler"
	"github.com/jasonKoogler/tomasim/internal/simerr"
	"gopkg.in/yaml.v3"
)

// FUReport is one functional unit's entry in the output arrays: its index
// and how many instructions it executed.
type FUReport struct {
	ID           int `json:"id" yaml:"id"`
	Instructions int `json:"instructions" yaml:"instructions"`
}

// SimulationReport is the flattened end-of-run statistics object: total
// cycles, one FU array per class (ordered by FU index
// ascending), register-file read count, and structural-hazard stall count.
type SimulationReport struct {
	Cycles int `json:"cycles" yaml:"cycles"`

	Integer    []FUReport `json:"integer" yaml:"integer"`
	Multiplier []FUReport `json:"multiplier" yaml:"multiplier"`
	Divider    []FUReport `json:"divider" yaml:"divider"`
	Load       []FUReport `json:"load" yaml:"load"`
	Store      []FUReport `json:"store" yaml:"store"`

	RegisterFileReads      int `json:"reg reads" yaml:"reg reads"`
	StructuralHazardStalls int `json:"stalls" yaml:"stalls"`
}

// FromScheduler flattens a run Scheduler's counters into a SimulationReport.
func FromScheduler(s *scheduler.Scheduler) SimulationReport {
	return SimulationReport{
		Cycles:                 s.Cycles(),
		Integer:                fuReports(s, isa.Integer),
		Multiplier:             fuReports(s, isa.Multiplier),
		Divider:                fuReports(s, isa.Divider),
		Load:                   fuReports(s, isa.Load),
		Store:                  fuReports(s, isa.Store),
		RegisterFileReads:      s.RegisterFileReads(),
		StructuralHazardStalls: s.StructuralHazardStalls(),
	}
}

func fuReports(s *scheduler.Scheduler, class isa.UnitClass) []FUReport {
	fus := s.FunctionalUnits(class)
	out := make([]FUReport, len(fus))
	for i, fu := range fus {
		out[i] = FUReport{ID: i, Instructions: fu.InstructionsExecuted}
	}
	return out
}

// WriteJSON writes r to path as the required output object.
func WriteJSON(path string, r SimulationReport) error {
	f, err := os.Create(path)
	if err != nil {
		return simerr.Wrap(simerr.IoError, "report.WriteJSON", err)
	}
	defer f.Close()

	return EncodeJSON(f, r)
}

// EncodeJSON writes r to w as the required output object.
func EncodeJSON(w io.Writer, r SimulationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return simerr.Wrap(simerr.IoError, "report.EncodeJSON", err)
	}
	return nil
}

// WriteYAMLDump writes r to path as a human-readable YAML debug dump, the
// optional enrichment. It is never the
// required output file — only ever an additional file the CLI's
// -dump-state flag asks for.
func WriteYAMLDump(path string, r SimulationReport) error {
	f, err := os.Create(path)
	if err != nil {
		return simerr.Wrap(simerr.IoError, "report.WriteYAMLDump", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	if err := enc.Encode(r); err != nil {
		return simerr.Wrap(simerr.IoError, "report.WriteYAMLDump", err)
	}
	return nil
}
