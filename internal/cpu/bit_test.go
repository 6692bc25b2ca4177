package cpu

import "testing"

func TestSetBitAndClearBit(t *testing.T) {
	c := newTestCPU(t)

	if got := c.setBit(0x00, 3); got != 0x08 {
		t.Fatalf("expected 0x08, got %#x", got)
	}
	if got := c.clearBit(0xFF, 3); got != 0xF7 {
		t.Fatalf("expected 0xF7, got %#x", got)
	}
}

func TestTestBitSetsZeroWhenBitIsClear(t *testing.T) {
	c := newTestCPU(t)
	c.testBit(0x00, 5)

	if !c.isFlagSet(FlagZero) {
		t.Fatal("expected zero flag when the tested bit is clear")
	}
	if !c.isFlagSet(FlagHalfCarry) {
		t.Fatal("BIT must always set half-carry")
	}
	if c.isFlagSet(FlagSubtract) {
		t.Fatal("BIT must clear subtract")
	}
}

func TestTestBitClearsZeroWhenBitIsSet(t *testing.T) {
	c := newTestCPU(t)
	c.testBit(0x20, 5)

	if c.isFlagSet(FlagZero) {
		t.Fatal("expected zero flag to be clear when the tested bit is set")
	}
}
