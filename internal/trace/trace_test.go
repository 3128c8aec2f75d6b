package trace

import (
	"strings"
	"testing"

	"github.com/jasonKoogler/tomasim/internal/isa"
	"github.com/jasonKoogler/tomasim/internal/simerr"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []isa.DecodedInstruction
		wantErr bool
	}{
		{
			name:  "halt, opcode 13 rd=rs=rt=0: 13<<11 = 0x6800",
			input: "0x6800",
			want:  []isa.DecodedInstruction{{Class: isa.Integer, Operands: isa.NoOperands{}}},
		},
		{
			name: "blank and comment lines are skipped",
			input: "\n# a comment\n0x6800\n   \n",
			want:  []isa.DecodedInstruction{{Class: isa.Integer, Operands: isa.NoOperands{}}},
		},
		{
			name:  "unknown opcode 30 is silently skipped, leaving only the halt",
			input: "0xF000\n0x6800\n",
			want:  []isa.DecodedInstruction{{Class: isa.Integer, Operands: isa.NoOperands{}}},
		},
		{
			name:    "malformed hex is a fatal parse error",
			input:   "not-hex\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Decode() error = nil, want error")
				}
				if kind, ok := simerr.KindOf(err); !ok || kind != simerr.ParseError {
					t.Errorf("KindOf(err) = %v, %v, want ParseError, true", kind, ok)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Decode() = %#v, want %#v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Decode()[%d] = %#v, want %#v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecodeWordBitLayout(t *testing.T) {
	// add $r2, $r1, $r3: opcode=0 rd=2 rs=1 rt=3
	// opcode[15:11]=0 rd[10:8]=010 rs[7:5]=001 rt[4:2]=011 func[1:0]=00
	word := uint16(2)<<8 | uint16(1)<<5 | uint16(3)<<2
	inst, ok := decodeWord(word)
	if !ok {
		t.Fatalf("decodeWord(%#04x) not ok", word)
	}
	want := isa.DecodedInstruction{Class: isa.Integer, Operands: isa.RRR{Rd: 2, Rs: 1, Rt: 3}}
	if inst != want {
		t.Errorf("decodeWord(%#04x) = %#v, want %#v", word, inst, want)
	}
}
