package cpu

// add adds value (plus the carry flag, if useCarry is set) to the A
// Register and stores the result back into A.
//
//	ADD A, n
//	ADC A, n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(value uint8, useCarry bool) {
	carry := uint8(0)
	if useCarry && c.isFlagSet(FlagCarry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(value) + uint16(carry)
	halfCarry := (c.A&0xF)+(value&0xF)+carry > 0xF
	c.setFlags(uint8(sum) == 0, false, halfCarry, sum > 0xFF)
	c.A = uint8(sum)
}

// sub subtracts value (plus the carry flag, if useCarry is set) from
// the A Register and stores the result back into A.
//
//	SUB n
//	SBC A, n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(value uint8, useCarry bool) {
	carry := uint8(0)
	if useCarry && c.isFlagSet(FlagCarry) {
		carry = 1
	}
	diff := int16(c.A) - int16(value) - int16(carry)
	halfCarry := int16(c.A&0xF)-int16(value&0xF)-int16(carry) < 0
	c.setFlags(uint8(diff) == 0, true, halfCarry, diff < 0)
	c.A = uint8(diff)
}

// incrementNN increments the given RegisterPair by 1.
//
//	INC nn
//	nn = 16-bit register
func (c *CPU) incrementNN(register *RegisterPair) {
	register.SetUint16(register.Uint16() + 1)
}

// decrementNN decrements the given RegisterPair by 1.
//
//	DEC nn
//	nn = 16-bit register
func (c *CPU) decrementNN(register *RegisterPair) {
	register.SetUint16(register.Uint16() - 1)
}

// addHLRR adds the given RegisterPair to the HL RegisterPair.
//
//	ADD HL, rr
//	rr = 16-bit register
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHLRR(register *RegisterPair) {
	c.HL.SetUint16(c.addUint16(c.HL.Uint16(), register.Uint16()))
	c.tickCycle()
}

// addUint16 adds two uint16 values together, sets the flags accordingly,
// and returns the sum. The zero flag is left untouched, matching ADD
// HL, rr's behaviour.
func (c *CPU) addUint16(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	c.setFlags(c.isFlagSet(FlagZero), false, (a&0xFFF)+(b&0xFFF) > 0xFFF, sum > 0xFFFF)
	return uint16(sum)
}

// addSPSigned reads a signed 8-bit operand and returns SP+e, setting
// the flags as if the addition were performed on the low byte of SP.
//
//	ADD SP, e
//	LD HL, SP+e
func (c *CPU) addSPSigned() uint16 {
	value := c.readOperand()
	result := uint16(int32(c.SP) + int32(int8(value)))

	tmp := c.SP ^ uint16(int8(value)) ^ result
	c.setFlags(false, false, tmp&0x10 == 0x10, tmp&0x100 == 0x100)

	c.tickCycle()
	return result
}

// increment is a helper function for incrementing a byte and
// setting the flags accordingly.
func (c *CPU) increment(value uint8) uint8 {
	incremented := value + 0x01
	c.clearFlag(FlagSubtract)
	c.shouldZeroFlag(incremented)
	if (incremented^value)&0x10 == 0x10 {
		c.setFlag(FlagHalfCarry)
	} else {
		c.clearFlag(FlagHalfCarry)
	}
	return incremented
}

// decrement is a helper function for decrementing a byte and
// setting the flags accordingly.
func (c *CPU) decrement(value uint8) uint8 {
	decremented := value - 0x01
	c.setFlag(FlagSubtract)
	c.shouldZeroFlag(decremented)
	if (decremented^value)&0x10 == 0x10 {
		c.setFlag(FlagHalfCarry)
	} else {
		c.clearFlag(FlagHalfCarry)
	}
	return decremented
}
