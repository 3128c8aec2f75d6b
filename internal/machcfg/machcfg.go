// Package machcfg reads the machine configuration file: one functional-unit
// class description per non-blank, non-comment line, in the bespoke
// fragment format `"<class>": {"fu": <int>, "rs": <int>, "cc": <int>}`.
package machcfg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jasonKoogler/tomasim/internal/isa"
	"github.com/jasonKoogler/tomasim/internal/simerr"
)

// UnitClassConfig is the immutable-after-load description of one
// functional-unit class: how many FUs, how many RSs, and the execute
// latency in cycles every instruction of that class pays.
type UnitClassConfig struct {
	Class   isa.UnitClass
	NumFU   int
	NumRS   int
	Latency int
}

var classNames = map[string]isa.UnitClass{
	"integer":    isa.Integer,
	"divider":    isa.Divider,
	"multiplier": isa.Multiplier,
	"load":       isa.Load,
	"store":      isa.Store,
}

// fragmentPattern pulls the class name and the three field values out of
// a line regardless of internal whitespace; the values are checked for
// being integers after the match.
var fragmentPattern = regexp.MustCompile(
	`"([a-zA-Z]+)"\s*:\s*\{\s*"fu"\s*:\s*([^,}\s]+)\s*,\s*"rs"\s*:\s*([^,}\s]+)\s*,\s*"cc"\s*:\s*([^,}\s]+)\s*\}`)

// Load reads the machine configuration at path and returns one
// UnitClassConfig per class line encountered, in file order. A class absent
// from the file is simply absent from the result; the scheduler treats a
// missing class as zero FUs and zero RSs.
func Load(path string) ([]UnitClassConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, simerr.Wrap(simerr.IoError, "machcfg.Load", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses machine configuration text from r, as Load does.
func Decode(r io.Reader) ([]UnitClassConfig, error) {
	var out []UnitClassConfig

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		match := fragmentPattern.FindStringSubmatch(line)
		if match == nil {
			return nil, simerr.New(simerr.ParseError, "machcfg.Decode",
				fmt.Sprintf("line %d: unrecognized config fragment %q", lineNo, line))
		}

		key := strings.ToLower(match[1])
		class, known := classNames[key]
		if !known {
			return nil, simerr.New(simerr.ConfigError, "machcfg.Decode",
				fmt.Sprintf("line %d: unknown class %q", lineNo, match[1]))
		}

		fu, err1 := strconv.Atoi(match[2])
		rs, err2 := strconv.Atoi(match[3])
		cc, err3 := strconv.Atoi(match[4])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, simerr.New(simerr.ConfigError, "machcfg.Decode",
				fmt.Sprintf("line %d: non-integer field in %q", lineNo, line))
		}
		if cc <= 0 {
			return nil, simerr.New(simerr.ConfigError, "machcfg.Decode",
				fmt.Sprintf("line %d: class %q must have a positive cc latency, got %d", lineNo, key, cc))
		}
		if fu < 0 || rs < 0 {
			return nil, simerr.New(simerr.ConfigError, "machcfg.Decode",
				fmt.Sprintf("line %d: class %q has a negative fu/rs count", lineNo, key))
		}

		out = append(out, UnitClassConfig{Class: class, NumFU: fu, NumRS: rs, Latency: cc})
	}

	if err := scanner.Err(); err != nil {
		return nil, simerr.Wrap(simerr.IoError, "machcfg.Decode", err)
	}

	return out, nil
}
