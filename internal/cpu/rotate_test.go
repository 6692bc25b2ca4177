package cpu

import "testing"

func TestRotateLeftCopiesBit7ToCarryAndBit0(t *testing.T) {
	c := newTestCPU(t)
	got := c.rotateLeft(0x80)

	if got != 0x01 {
		t.Fatalf("expected 0x01, got %#x", got)
	}
	if !c.isFlagSet(FlagCarry) {
		t.Fatal("expected carry to hold old bit 7")
	}
}

func TestRotateRightCopiesBit0ToCarryAndBit7(t *testing.T) {
	c := newTestCPU(t)
	got := c.rotateRight(0x01)

	if got != 0x80 {
		t.Fatalf("expected 0x80, got %#x", got)
	}
	if !c.isFlagSet(FlagCarry) {
		t.Fatal("expected carry to hold old bit 0")
	}
}

func TestRotateLeftThroughCarryBringsInOldCarry(t *testing.T) {
	c := newTestCPU(t)
	c.setFlag(FlagCarry)
	got := c.rotateLeftThroughCarry(0x40)

	if got != 0x81 {
		t.Fatalf("expected 0x81, got %#x", got)
	}
	if c.isFlagSet(FlagCarry) {
		t.Fatal("expected new carry to be clear, bit 7 of input was 0")
	}
}

func TestRotateRightThroughCarryBringsInOldCarry(t *testing.T) {
	c := newTestCPU(t)
	c.setFlag(FlagCarry)
	got := c.rotateRightThroughCarry(0x02)

	if got != 0x81 {
		t.Fatalf("expected 0x81, got %#x", got)
	}
	if c.isFlagSet(FlagCarry) {
		t.Fatal("expected new carry to be clear, bit 0 of input was 0")
	}
}

func TestRotateLeftAccumulatorAlwaysClearsZeroFlag(t *testing.T) {
	c := newTestCPU(t)
	c.A = 0x00
	c.rotateLeftAccumulator()

	if c.isFlagSet(FlagZero) {
		t.Fatal("RLCA must clear the zero flag unconditionally, even on a zero result")
	}
}

func TestRotateRightAccumulatorThroughCarry(t *testing.T) {
	c := newTestCPU(t)
	c.A = 0x01
	c.clearFlag(FlagCarry)
	c.rotateRightAccumulatorThroughCarry()

	if c.A != 0x00 {
		t.Fatalf("expected A=0x00, got %#x", c.A)
	}
	if !c.isFlagSet(FlagCarry) {
		t.Fatal("expected carry to pick up old bit 0")
	}
}
