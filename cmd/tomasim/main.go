// Command tomasim simulates a dynamically scheduled out-of-order pipeline
// implementing Tomasulo's algorithm against a machine configuration and an
// instruction trace, emitting aggregate statistics.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jasonKoogler/tomasim/internal/machcfg"
	"github.com/jasonKoogler/tomasim/internal/report"
	"github.com/jasonKoogler/tomasim/internal/scheduler"
	"github.com/jasonKoogler/tomasim/internal/simerr"
	"github.com/jasonKoogler/tomasim/internal/simlog"
	"github.com/jasonKoogler/tomasim/internal/trace"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose per-cycle trace logging")
	dumpState := flag.String("dump-state", "", "Optional path to write a verbose YAML debug dump alongside the required output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <traceFile> <configFile> <outputFile>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := simlog.New(simlog.Config{Level: simlog.LevelInfo, Output: os.Stderr})
	if *verbose {
		logger.SetVerbose()
	}
	simlog.SetDefault(logger)

	if flag.NArg() != 3 {
		err := simerr.New(simerr.ArgError, "main",
			fmt.Sprintf("expected 3 positional arguments (traceFile configFile outputFile), got %d", flag.NArg()))
		logger.Fatalf("%v", err)
	}
	traceFile, configFile, outputFile := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	if err := run(logger, traceFile, configFile, outputFile, *dumpState); err != nil {
		logger.Fatalf("%v", err)
	}
}

func run(logger *simlog.Logger, traceFile, configFile, outputFile, dumpState string) error {
	configs, err := machcfg.Load(configFile)
	if err != nil {
		return err
	}
	logger.Infof("loaded %d functional-unit class configs from %s", len(configs), configFile)

	program, err := trace.Load(traceFile)
	if err != nil {
		return err
	}
	logger.Infof("decoded %d instructions from %s", len(program), traceFile)

	sched := scheduler.New(configs, program)
	sched.SetLogger(logger)

	cycles, err := sched.Run()
	if err != nil {
		return err
	}
	logger.Infof("simulation complete in %d cycles", cycles)

	rep := report.FromScheduler(sched)
	if err := report.WriteJSON(outputFile, rep); err != nil {
		return err
	}

	if dumpState != "" {
		if err := report.WriteYAMLDump(dumpState, rep); err != nil {
			return err
		}
		logger.Infof("wrote debug state dump to %s", dumpState)
	}

	return nil
}
