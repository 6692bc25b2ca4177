package cpu

import "testing"

func TestLoadRegisterToRegister(t *testing.T) {
	c := newTestCPU(t)
	c.B = 0x42
	c.loadRegisterToRegister(&c.C, &c.B)

	if c.C != 0x42 {
		t.Fatalf("expected C=0x42, got %#x", c.C)
	}
}

func TestLoadRegister8ReadsImmediateOperand(t *testing.T) {
	c := newTestCPU(t)
	c.mmu.Write(c.PC, 0x99)
	c.loadRegister8(&c.A)

	if c.A != 0x99 {
		t.Fatalf("expected A=0x99, got %#x", c.A)
	}
	if c.PC != 0xC001 {
		t.Fatalf("expected PC to advance past the operand, got %#x", c.PC)
	}
}

func TestLoadMemoryToRegisterAndBack(t *testing.T) {
	c := newTestCPU(t)
	c.mmu.Write(0xC100, 0x7E)
	c.loadMemoryToRegister(&c.A, 0xC100)
	if c.A != 0x7E {
		t.Fatalf("expected A=0x7E, got %#x", c.A)
	}

	c.loadRegisterToMemory(0x11, 0xC101)
	if c.mmu.Read(0xC101) != 0x11 {
		t.Fatal("expected 0x11 to be written to 0xC101")
	}
}

func TestLoadRegisterToHardwareWritesHighPage(t *testing.T) {
	c := newTestCPU(t)
	c.loadRegisterToHardware(0x01, 0x0F) // NR10 does not exist at FF0F; use IF

	if c.mmu.Read(0xFF0F)&0x01 == 0 {
		t.Fatal("expected bit 0 of IF to be set")
	}
}

func TestLoadRegister16ReadsLowByteFirst(t *testing.T) {
	c := newTestCPU(t)
	c.mmu.Write(c.PC, 0x34)
	c.mmu.Write(c.PC+1, 0x12)
	c.loadRegister16(c.BC)

	if c.BC.Uint16() != 0x1234 {
		t.Fatalf("expected BC=0x1234, got %#x", c.BC.Uint16())
	}
}

func TestLoadHLToSP(t *testing.T) {
	c := newTestCPU(t)
	c.HL.SetUint16(0xD000)
	c.loadHLToSP()

	if c.SP != 0xD000 {
		t.Fatalf("expected SP=0xD000, got %#x", c.SP)
	}
}
