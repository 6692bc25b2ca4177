package cpu

// loadRegisterToRegister loads the value of the given Register into the given
// Register.
//
//	LD n, n
//	n = A, B, C, D, E, H, L
func (c *CPU) loadRegisterToRegister(register *Register, value *Register) {
	*register = *value
}

// loadRegister8 reads the next operand byte and stores it in the given
// Register.
//
//	LD n, d8
//	n = A, B, C, D, E, H, L
func (c *CPU) loadRegister8(reg *Register) {
	*reg = c.readOperand()
}

// loadMemoryToRegister loads the value at the given memory address into the
// given Register.
//
//	LD n, (HL)
//	n = A, B, C, D, E, H, L
func (c *CPU) loadMemoryToRegister(reg *Register, address uint16) {
	*reg = c.readByte(address)
}

// loadRegisterToMemory writes value to the given memory address.
//
//	LD (HL), n
//	n = A, B, C, D, E, H, L
func (c *CPU) loadRegisterToMemory(value uint8, address uint16) {
	c.writeByte(address, value)
}

// loadRegisterToHardware writes value to the high-page address
// 0xFF00+offset.
//
//	LDH (a8), A
//	LD (C), A
func (c *CPU) loadRegisterToHardware(value uint8, offset uint8) {
	c.writeByte(0xFF00+uint16(offset), value)
}

// loadRegister16 reads the next two operand bytes and stores them in the
// given RegisterPair, low byte first.
//
//	LD nn, d16
//	nn = BC, DE, HL, SP
func (c *CPU) loadRegister16(reg *RegisterPair) {
	low := c.readOperand()
	high := c.readOperand()
	reg.SetUint16(uint16(high)<<8 | uint16(low))
}

// loadHLToSP loads the value of HL into SP.
//
//	LD SP, HL
func (c *CPU) loadHLToSP() {
	c.SP = c.HL.Uint16()
	c.tickCycle()
}
