// Package trace reads a program trace file of 16-bit encoded instructions
// and decodes it into the ordered instruction list the scheduler consumes.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jasonKoogler/tomasim/internal/isa"
	"github.com/jasonKoogler/tomasim/internal/simerr"
)

// Load reads path and decodes every non-blank, non-comment line into a
// DecodedInstruction, in file order. Lines whose opcode is unknown are
// silently skipped; malformed hex is a fatal parse error.
func Load(path string) ([]isa.DecodedInstruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, simerr.Wrap(simerr.IoError, "trace.Load", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads trace text from r and decodes it, as Load does. Exposed
// separately so tests can feed an in-memory reader without touching the
// filesystem.
func Decode(r io.Reader) ([]isa.DecodedInstruction, error) {
	var out []isa.DecodedInstruction

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		hexDigits := strings.TrimPrefix(strings.TrimPrefix(line, "0x"), "0X")
		word, err := strconv.ParseUint(hexDigits, 16, 16)
		if err != nil {
			return nil, simerr.Wrapf(simerr.ParseError, "trace.Decode",
				fmt.Errorf("line %d: malformed hex word %q: %w", lineNo, line, err))
		}

		inst, ok := decodeWord(uint16(word))
		if !ok {
			continue // unknown opcode: silently skipped
		}
		out = append(out, inst)
	}

	if err := scanner.Err(); err != nil {
		return nil, simerr.Wrap(simerr.IoError, "trace.Decode", err)
	}

	return out, nil
}

// decodeWord extracts the bit fields from a 16-bit trace word:
// opcode[15:11] | rd[10:8] | rs[7:5] | rt[4:2] | func[1:0], and hands them
// to isa.Decode.
func decodeWord(word uint16) (isa.DecodedInstruction, bool) {
	opcode := uint8(word>>11) & 0x1F
	rd := uint8(word>>8) & 0x7
	rs := uint8(word>>5) & 0x7
	rt := uint8(word>>2) & 0x7

	return isa.Decode(opcode, rd, rs, rt)
}
