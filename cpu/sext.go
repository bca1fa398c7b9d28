package cpu

// SignExtend widens the low 'bits' bits of value to 16 bits, replicating
// bit (bits-1) into every higher bit.
func SignExtend(value uint16, bits uint) uint16 {
	mask := uint16(1)<<bits - 1
	value &= mask
	if value&(1<<(bits-1)) != 0 {
		value |= ^mask
	}
	return value
}

// Sext5 returns the sign-extended imm5 field, bits [4:0].
func (code Code) Sext5() uint16 {
	return SignExtend(uint16(code), 5)
}

// Sext6 returns the sign-extended offset6 field, bits [5:0].
func (code Code) Sext6() uint16 {
	return SignExtend(uint16(code), 6)
}

// Sext9 returns the sign-extended PCoffset9 field, bits [8:0].
func (code Code) Sext9() uint16 {
	return SignExtend(uint16(code), 9)
}

// Sext11 returns the sign-extended PCoffset11 field, bits [10:0].
func (code Code) Sext11() uint16 {
	return SignExtend(uint16(code), 11)
}
