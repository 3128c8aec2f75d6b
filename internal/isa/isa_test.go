package isa

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		opcode     uint8
		rd, rs, rt uint8
		wantOK     bool
		wantClass  UnitClass
		wantOps    Operands
	}{
		{
			name: "add is RRR integer", opcode: 0, rd: 2, rs: 1, rt: 1,
			wantOK: true, wantClass: Integer, wantOps: RRR{Rd: 2, Rs: 1, Rt: 1},
		},
		{
			name: "div is RRR divider", opcode: 4, rd: 1, rs: 2, rt: 3,
			wantOK: true, wantClass: Divider, wantOps: RRR{Rd: 1, Rs: 2, Rt: 3},
		},
		{
			name: "mul is RRR multiplier", opcode: 5, rd: 1, rs: 2, rt: 3,
			wantOK: true, wantClass: Multiplier, wantOps: RRR{Rd: 1, Rs: 2, Rt: 3},
		},
		{
			name: "lw is LoadRR load", opcode: 8, rd: 1, rs: 0,
			wantOK: true, wantClass: Load, wantOps: LoadRR{Rd: 1, Rs: 0},
		},
		{
			name: "sw is StoreRR store", opcode: 9, rs: 2, rt: 3,
			wantOK: true, wantClass: Store, wantOps: StoreRR{Rt: 3, Rs: 2},
		},
		{
			name: "halt is NoOperands integer", opcode: 13,
			wantOK: true, wantClass: Integer, wantOps: NoOperands{},
		},
		{
			name: "put is SrcOnly integer", opcode: 14, rs: 5,
			wantOK: true, wantClass: Integer, wantOps: SrcOnly{Rs: 5},
		},
		{
			name: "liz is ImmDest integer", opcode: 16, rd: 3,
			wantOK: true, wantClass: Integer, wantOps: ImmDest{Rd: 3},
		},
		{
			name: "lis is ImmDest integer", opcode: 17, rd: 4,
			wantOK: true, wantClass: Integer, wantOps: ImmDest{Rd: 4},
		},
		{
			name: "lui is DestSrc, re-reads its own destination", opcode: 18, rd: 6,
			wantOK: true, wantClass: Integer, wantOps: DestSrc{Rd: 6, Rs: 6},
		},
		{
			name: "unknown opcode 30 is skipped", opcode: 30,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode(tt.opcode, tt.rd, tt.rs, tt.rt)
			if ok != tt.wantOK {
				t.Fatalf("Decode() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Class != tt.wantClass {
				t.Errorf("Class = %v, want %v", got.Class, tt.wantClass)
			}
			if got.Operands != tt.wantOps {
				t.Errorf("Operands = %#v, want %#v", got.Operands, tt.wantOps)
			}
		})
	}
}

func TestUnitClassString(t *testing.T) {
	tests := []struct {
		class UnitClass
		want  string
	}{
		{Integer, "integer"},
		{Divider, "divider"},
		{Multiplier, "multiplier"},
		{Load, "load"},
		{Store, "store"},
	}
	for _, tt := range tests {
		if got := tt.class.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.class, got, tt.want)
		}
	}
}
