package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeFields(t *testing.T) {
	assert := assert.New(t)

	for word := range 0x10000 {
		code := Code(word)

		assert.Equal(Opcode(word>>12), code.Opcode())
		assert.Equal((word>>9)&7, code.Dr())
		assert.Equal((word>>6)&7, code.Sr1())
		assert.Equal(code.Sr1(), code.BaseR())
		assert.Equal(word&7, code.Sr2())
		assert.Equal((word>>5)&1 == 1, code.Immediate())
		assert.Equal((word>>11)&1 == 1, code.Bit11())
		assert.Equal(uint8(word), code.Trapvect())

		n, z, p := code.Nzp()
		assert.Equal(code.Bit11(), n)
		assert.Equal((word>>10)&1 == 1, z)
		assert.Equal((word>>9)&1 == 1, p)

		if t.Failed() {
			t.Fatalf("field extraction failed at x%04X", word)
		}
	}
}

func FuzzDecode(f *testing.F) {
	for _, seed := range []uint16{0x0000, 0x1025, 0x0BFF, 0x4800, 0xC1C0, 0xE1FF, 0xF025, 0xFFFF} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, word uint16) {
		assert := assert.New(t)

		code := Code(word)

		// Fields reassemble into the original word.
		rebuilt := uint16(code.Opcode())<<12 |
			uint16(code.Dr())<<9 |
			uint16(code.Sr1())<<6 |
			word&0x3f
		assert.Equal(word, rebuilt)

		// Sign extension preserves the field and replicates its top bit.
		for _, entry := range []struct {
			bits  uint
			value uint16
		}{
			{5, code.Sext5()},
			{6, code.Sext6()},
			{9, code.Sext9()},
			{11, code.Sext11()},
		} {
			mask := uint16(1)<<entry.bits - 1
			assert.Equal(word&mask, entry.value&mask)
			high := entry.value &^ mask
			if word&(1<<(entry.bits-1)) != 0 {
				assert.Equal(^mask, high)
			} else {
				assert.Zero(high)
			}
		}

		// Disassembly never fails.
		assert.NotEmpty(code.String())
	})
}

func TestOpcodeSupported(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op        Opcode
		supported bool
	}){
		{OP_BR, true},
		{OP_ADD, true},
		{OP_LD, true},
		{OP_ST, true},
		{OP_JSR, true},
		{OP_AND, true},
		{OP_LDR, true},
		{OP_STR, true},
		{OP_RTI, false},
		{OP_NOT, true},
		{OP_LDI, false},
		{OP_STI, false},
		{OP_JMP, true},
		{OP_RES, false},
		{OP_LEA, true},
		{OP_HALT, true},
		{Opcode(16), false},
		{Opcode(-1), false},
	}

	for _, entry := range table {
		assert.Equal(entry.supported, entry.op.Supported(), entry.op.String())
	}
}

func TestMakeCode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code Code
		word uint16
	}){
		{"add", MakeCodeAdd(1, 2, 3), 0x1283},
		{"add_imm", MakeCodeAddImm(0, 0, 5), 0x1025},
		{"add_imm_neg", MakeCodeAddImm(7, 6, -1), 0x1FBF},
		{"and", MakeCodeAnd(2, 3, 4), 0x54C4},
		{"and_imm", MakeCodeAndImm(0, 0, 0), 0x5020},
		{"not", MakeCodeNot(1, 2), 0x92BF},
		{"br_z", MakeCodeBr(false, true, false, -1), 0x05FF},
		{"br_nzp", MakeCodeBr(true, true, true, 0), 0x0E00},
		{"jmp", MakeCodeJmp(3), 0xC0C0},
		{"ret", MakeCodeJmp(7), 0xC1C0},
		{"jsr", MakeCodeJsr(-1), 0x4FFF},
		{"jsrr", MakeCodeJsrr(2), 0x4080},
		{"ld", MakeCodeLd(0, 5), 0x2005},
		{"ldr", MakeCodeLdr(0, 1, -2), 0x607E},
		{"lea", MakeCodeLea(3, -1), 0xE7FF},
		{"st", MakeCodeSt(2, 9), 0x3409},
		{"str", MakeCodeStr(2, 1, 4), 0x7444},
		{"halt", MakeCodeHalt(), 0xF025},
	}

	for _, entry := range table {
		assert.Equal(entry.word, uint16(entry.code), entry.name)
	}
}

func TestAddRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for dr := range REGISTER_COUNT {
		for sr1 := range REGISTER_COUNT {
			for imm := int16(-16); imm < 16; imm++ {
				code := MakeCodeAddImm(dr, sr1, imm)
				assert.Equal(OP_ADD, code.Opcode())
				assert.Equal(dr, code.Dr())
				assert.Equal(sr1, code.Sr1())
				assert.True(code.Immediate())
				assert.Equal(imm, int16(code.Sext5()))
			}
			for sr2 := range REGISTER_COUNT {
				code := MakeCodeAdd(dr, sr1, sr2)
				assert.Equal(OP_ADD, code.Opcode())
				assert.Equal(dr, code.Dr())
				assert.Equal(sr1, code.Sr1())
				assert.False(code.Immediate())
				assert.Equal(sr2, code.Sr2())
			}
		}
	}
}

func TestCodeString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		text string
	}){
		{MakeCodeAdd(1, 2, 3), "ADD R1, R2, R3"},
		{MakeCodeAddImm(0, 0, 5), "ADD R0, R0, #5"},
		{MakeCodeAndImm(4, 5, -16), "AND R4, R5, #-16"},
		{MakeCodeNot(1, 2), "NOT R1, R2"},
		{MakeCodeBr(false, true, false, -1), "BRz #-1"},
		{MakeCodeBr(true, false, true, 12), "BRnp #12"},
		{MakeCodeBr(false, false, false, 0), "BR #0"},
		{MakeCodeJmp(7), "RET"},
		{MakeCodeJmp(3), "JMP R3"},
		{MakeCodeJsr(100), "JSR #100"},
		{MakeCodeJsrr(3), "JSRR R3"},
		{MakeCodeLd(0, -3), "LD R0, #-3"},
		{MakeCodeLdr(0, 1, 31), "LDR R0, R1, #31"},
		{MakeCodeLea(2, 255), "LEA R2, #255"},
		{MakeCodeSt(6, -256), "ST R6, #-256"},
		{MakeCodeStr(5, 4, -32), "STR R5, R4, #-32"},
		{MakeCodeHalt(), "HALT"},
		{Code(0xF021), "TRAP x21"},
		{Code(0x8000), ".FILL x8000"},
		{Code(0xA123), ".FILL xA123"},
		{Code(0xB000), ".FILL xB000"},
		{Code(0xD00D), ".FILL xD00D"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.code.String())
	}
}
