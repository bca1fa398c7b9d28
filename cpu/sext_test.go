package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignExtend(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		value  uint16
		bits   uint
		expect uint16
	}){
		{"sext5_neg", 0x10, 5, 0xFFF0},
		{"sext5_pos", 0x0F, 5, 0x000F},
		{"sext6_neg", 0x20, 6, 0xFFE0},
		{"sext6_pos", 0x1F, 6, 0x001F},
		{"sext9_neg", 0x100, 9, 0xFF00},
		{"sext9_pos", 0x0FF, 9, 0x00FF},
		{"sext11_neg", 0x400, 11, 0xFC00},
		{"sext11_pos", 0x3FF, 11, 0x03FF},
		{"sext9_minus_one", 0x1FF, 9, 0xFFFF},
		{"sext6_high_ignored", 0xFFC1, 6, 0x0001},
		{"sext16", 0x8000, 16, 0x8000},
	}

	for _, entry := range table {
		assert.Equal(entry.expect, SignExtend(entry.value, entry.bits), entry.name)
	}
}

func TestCodeSext(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint16(0xFFE0), Code(0x0020).Sext6())
	assert.Equal(uint16(0x001F), Code(0x001F).Sext6())
	assert.Equal(uint16(0xFF00), Code(0x0100).Sext9())
	assert.Equal(uint16(0x00FF), Code(0x00FF).Sext9())
	assert.Equal(uint16(0xFC00), Code(0x0400).Sext11())
	assert.Equal(uint16(0x03FF), Code(0x03FF).Sext11())

	// Opcode and register bits never leak into the extension.
	assert.Equal(uint16(0x0001), Code(0xFFC1).Sext6())
	assert.Equal(uint16(0x0001), Code(0xFE01).Sext9())
	assert.Equal(uint16(0x0001), Code(0xF801).Sext11())
}
