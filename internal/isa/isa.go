// Package isa defines the instruction vocabulary the scheduler operates on:
// functional-unit classes, the tagged operand formats, and the opcode table
// that maps a decoded 16-bit word to both.
package isa

import "fmt"

// UnitClass is the functional-unit class an instruction is dispatched to.
type UnitClass int

const (
	Integer UnitClass = iota
	Divider
	Multiplier
	Load
	Store

	numUnitClasses
)

func (c UnitClass) String() string {
	switch c {
	case Integer:
		return "integer"
	case Divider:
		return "divider"
	case Multiplier:
		return "multiplier"
	case Load:
		return "load"
	case Store:
		return "store"
	default:
		return fmt.Sprintf("UnitClass(%d)", int(c))
	}
}

// NumUnitClasses is the number of distinct functional-unit classes.
const NumUnitClasses = int(numUnitClasses)

// UnitClasses lists every class in output-table order.
var UnitClasses = []UnitClass{Integer, Multiplier, Divider, Load, Store}

// Operands is a tagged variant over the seven shapes an instruction's
// format takes. Implementations are the concrete Rxxx/Immxxx types below;
// dispatch is by type switch, not by positional slice length.
type Operands interface {
	isOperands()
}

// RRR is two source registers and one destination (arithmetic/logical).
type RRR struct {
	Rd, Rs, Rt uint8
}

// LoadRR is one source register and one destination.
type LoadRR struct {
	Rd, Rs uint8
}

// StoreRR is two source registers (store data, store address) and no destination.
type StoreRR struct {
	Rt, Rs uint8
}

// ImmDest is destination-only (liz, lis).
type ImmDest struct {
	Rd uint8
}

// DestSrc is a destination that is also re-read as a source (lui).
type DestSrc struct {
	Rd, Rs uint8
}

// SrcOnly is one source register, no destination (put).
type SrcOnly struct {
	Rs uint8
}

// NoOperands carries no registers at all (halt).
type NoOperands struct{}

func (RRR) isOperands()        {}
func (LoadRR) isOperands()     {}
func (StoreRR) isOperands()    {}
func (ImmDest) isOperands()    {}
func (DestSrc) isOperands()    {}
func (SrcOnly) isOperands()    {}
func (NoOperands) isOperands() {}

// DecodedInstruction is one instruction pulled from the trace file, tagged
// by the functional-unit class it requires and carrying its operand set.
type DecodedInstruction struct {
	Class    UnitClass
	Operands Operands
}

// opcodeClass maps a 5-bit opcode to the functional-unit class it drives.
// Unknown opcodes are absent from the map; callers skip them silently
// rather than treating them as an error.
var opcodeClass = map[uint8]UnitClass{
	0:  Integer, // add
	1:  Integer, // sub
	2:  Integer, // and
	3:  Integer, // nor
	4:  Divider, // div
	5:  Multiplier,
	6:  Divider, // mod
	7:  Divider, // exp
	8:  Load,    // lw
	9:  Store,   // sw
	13: Integer, // halt
	14: Integer, // put
	16: Integer, // liz
	17: Integer, // lis
	18: Integer, // lui
}

// Decode builds a DecodedInstruction from a raw opcode and its three 3-bit
// register fields (rd, rs, rt), as extracted from the 16-bit trace word's
// bit layout (opcode[15:11] | rd[10:8] | rs[7:5] | rt[4:2] |
// func[1:0]). ok is false for an opcode not in the table; callers must skip
// the instruction rather than error.
func Decode(opcode, rd, rs, rt uint8) (DecodedInstruction, bool) {
	class, known := opcodeClass[opcode]
	if !known {
		return DecodedInstruction{}, false
	}

	var operands Operands
	switch opcode {
	case 0, 1, 2, 3, 4, 6, 7, 5:
		operands = RRR{Rd: rd, Rs: rs, Rt: rt}
	case 8:
		operands = LoadRR{Rd: rd, Rs: rs}
	case 9:
		operands = StoreRR{Rt: rt, Rs: rs}
	case 16, 17:
		operands = ImmDest{Rd: rd}
	case 18:
		operands = DestSrc{Rd: rd, Rs: rd}
	case 14:
		operands = SrcOnly{Rs: rs}
	case 13:
		operands = NoOperands{}
	default:
		return DecodedInstruction{}, false
	}

	return DecodedInstruction{Class: class, Operands: operands}, true
}
