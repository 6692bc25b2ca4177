package cpu

import "testing"

func TestAddSetsHalfCarryAndCarry(t *testing.T) {
	c := newTestCPU(t)
	c.A = 0xFF
	c.add(0x01, false)

	if c.A != 0x00 {
		t.Fatalf("expected A=0x00, got %#x", c.A)
	}
	if !c.isFlagSet(FlagZero) || !c.isFlagSet(FlagHalfCarry) || !c.isFlagSet(FlagCarry) {
		t.Fatalf("expected Z, H and C all set, got F=%#x", c.F)
	}
}

func TestAddWithCarryIncludesIncomingCarry(t *testing.T) {
	c := newTestCPU(t)
	c.A = 0x0E
	c.setFlag(FlagCarry)
	c.add(0x01, true)

	if c.A != 0x10 {
		t.Fatalf("expected A=0x10, got %#x", c.A)
	}
	if !c.isFlagSet(FlagHalfCarry) {
		t.Fatal("expected half-carry to be set")
	}
}

func TestSubSetsSubtractFlagAndBorrow(t *testing.T) {
	c := newTestCPU(t)
	c.A = 0x00
	c.sub(0x01, false)

	if c.A != 0xFF {
		t.Fatalf("expected A=0xFF (wraparound), got %#x", c.A)
	}
	if !c.isFlagSet(FlagSubtract) || !c.isFlagSet(FlagCarry) || !c.isFlagSet(FlagHalfCarry) {
		t.Fatalf("expected N, H and C all set, got F=%#x", c.F)
	}
}

func TestIncrementPreservesCarryFlag(t *testing.T) {
	c := newTestCPU(t)
	c.setFlag(FlagCarry)

	got := c.increment(0x0F)
	if got != 0x10 {
		t.Fatalf("expected 0x10, got %#x", got)
	}
	if !c.isFlagSet(FlagHalfCarry) {
		t.Fatal("expected half-carry on 0x0F+1")
	}
	if !c.isFlagSet(FlagCarry) {
		t.Fatal("increment must not touch the carry flag")
	}
}

func TestDecrementWrapsAndSetsSubtract(t *testing.T) {
	c := newTestCPU(t)
	got := c.decrement(0x00)

	if got != 0xFF {
		t.Fatalf("expected 0xFF, got %#x", got)
	}
	if !c.isFlagSet(FlagSubtract) {
		t.Fatal("expected subtract flag to be set")
	}
}

func TestAddHLRRSetsCarryFromBit15(t *testing.T) {
	c := newTestCPU(t)
	c.HL.SetUint16(0xFFFF)
	c.BC.SetUint16(0x0001)

	c.addHLRR(c.BC)

	if c.HL.Uint16() != 0x0000 {
		t.Fatalf("expected HL=0x0000, got %#x", c.HL.Uint16())
	}
	if !c.isFlagSet(FlagCarry) || !c.isFlagSet(FlagHalfCarry) {
		t.Fatalf("expected H and C set, got F=%#x", c.F)
	}
}

func TestIncrementNNAndDecrementNNWrap(t *testing.T) {
	c := newTestCPU(t)
	c.BC.SetUint16(0xFFFF)
	c.incrementNN(c.BC)
	if c.BC.Uint16() != 0x0000 {
		t.Fatalf("expected BC to wrap to 0x0000, got %#x", c.BC.Uint16())
	}

	c.decrementNN(c.BC)
	if c.BC.Uint16() != 0xFFFF {
		t.Fatalf("expected BC to wrap back to 0xFFFF, got %#x", c.BC.Uint16())
	}
}
