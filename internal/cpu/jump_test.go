package cpu

import "testing"

func TestJumpAbsoluteTakenAndNotTaken(t *testing.T) {
	c := newTestCPU(t)
	c.mmu.Write(c.PC, 0x00)
	c.mmu.Write(c.PC+1, 0xD0)
	c.jumpAbsolute(true)

	if c.PC != 0xD000 {
		t.Fatalf("expected PC=0xD000, got %#x", c.PC)
	}

	c.PC = 0xC000
	c.mmu.Write(c.PC, 0x00)
	c.mmu.Write(c.PC+1, 0xD0)
	c.jumpAbsolute(false)

	if c.PC != 0xC002 {
		t.Fatalf("expected PC to only advance past the operand, got %#x", c.PC)
	}
}

func TestJumpRelativeForwardAndBackward(t *testing.T) {
	c := newTestCPU(t)
	c.mmu.Write(c.PC, 0x05)
	c.jumpRelative(true)
	if c.PC != 0xC006 {
		t.Fatalf("expected PC=0xC006, got %#x", c.PC)
	}

	c.PC = 0xC000
	c.mmu.Write(c.PC, 0xFB) // -5
	c.jumpRelative(true)
	if c.PC != 0xBFFC {
		t.Fatalf("expected PC=0xBFFC, got %#x", c.PC)
	}
}

func TestCallAndRetRoundTrip(t *testing.T) {
	c := newTestCPU(t)
	c.mmu.Write(c.PC, 0x00)
	c.mmu.Write(c.PC+1, 0xD0)
	returnPC := c.PC + 2

	c.call(true)
	if c.PC != 0xD000 {
		t.Fatalf("expected PC=0xD000 after call, got %#x", c.PC)
	}

	c.ret(true)
	if c.PC != returnPC {
		t.Fatalf("expected RET to restore PC=%#x, got %#x", returnPC, c.PC)
	}
}

func TestRstPushesReturnAddressAndJumps(t *testing.T) {
	c := newTestCPU(t)
	c.PC = 0xC050
	c.rst(0x38)

	if c.PC != 0x0038 {
		t.Fatalf("expected PC=0x0038, got %#x", c.PC)
	}
	if c.ret(true); c.PC != 0xC050 {
		t.Fatalf("expected RET to restore PC=0xC050, got %#x", c.PC)
	}
}

func TestPushAndPopNNRoundTrip(t *testing.T) {
	c := newTestCPU(t)
	var hi, lo Register = 0xBE, 0xEF
	c.pushNN(hi, lo)

	var rhi, rlo Register
	c.popNN(&rhi, &rlo)

	if rhi != 0xBE || rlo != 0xEF {
		t.Fatalf("expected (0xBE, 0xEF), got (%#x, %#x)", rhi, rlo)
	}
}
