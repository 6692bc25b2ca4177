package cpu

import "testing"

func TestSwapByteExchangesNibbles(t *testing.T) {
	c := newTestCPU(t)
	got := c.swapByte(0xA5)

	if got != 0x5A {
		t.Fatalf("expected 0x5A, got %#x", got)
	}
	if c.isFlagSet(FlagSubtract) || c.isFlagSet(FlagHalfCarry) || c.isFlagSet(FlagCarry) {
		t.Fatal("SWAP must clear N, H and C")
	}
}

func TestSwapByteSetsZeroFlagForZeroInput(t *testing.T) {
	c := newTestCPU(t)
	c.swapByte(0x00)

	if !c.isFlagSet(FlagZero) {
		t.Fatal("expected zero flag to be set")
	}
}
