package timer

import (
	"testing"

	"github.com/silverwren/gbcore/internal/interrupts"
	"github.com/silverwren/gbcore/internal/types"
)

func newTestTimer() (*Controller, *types.HardwareRegisters, *interrupts.Service) {
	hw := types.NewHardwareRegisters()
	irq := interrupts.NewService()
	c := NewController(irq, hw)
	return c, hw, irq
}

func TestWritingDIVResetsDivider(t *testing.T) {
	c, hw, _ := newTestTimer()
	for i := 0; i < 300; i++ {
		c.Tick()
	}
	hw.Write(types.DIV, 0x42) // any value resets the divider
	if hw.Read(types.DIV) != 0 {
		t.Fatalf("expected DIV to reset to 0, got %#x", hw.Read(types.DIV))
	}
}

func TestTimerIncrementsTIMAAtSelectedFrequency(t *testing.T) {
	c, hw, _ := newTestTimer()
	// the divider is cleared while the timer is still disabled, so the
	// reset itself cannot produce a falling edge on the selected bit
	hw.Write(types.DIV, 0)    // clears the divider so we tick from a known edge
	hw.Write(types.TAC, 0x05) // enabled, bit 3 (262144 Hz, every 16 cycles)

	for i := 0; i < 16; i++ {
		c.Tick()
	}
	if got := hw.Read(types.TIMA); got != 1 {
		t.Fatalf("expected TIMA=1 after one selected-bit period, got %d", got)
	}
}

func TestTimerDisabledNeverIncrementsTIMA(t *testing.T) {
	c, hw, _ := newTestTimer()
	hw.Write(types.TAC, 0x00) // disabled
	hw.Write(types.DIV, 0)

	for i := 0; i < 4096; i++ {
		c.Tick()
	}
	if got := hw.Read(types.TIMA); got != 0 {
		t.Fatalf("expected TIMA to stay 0 while disabled, got %d", got)
	}
}

func TestTIMAOverflowReloadsFromTMAAndRequestsInterrupt(t *testing.T) {
	c, hw, irq := newTestTimer()
	hw.Write(types.TMA, 0x7F)
	hw.Write(types.TAC, 0x05) // enabled, period 16
	hw.Write(types.DIV, 0)
	hw.Write(types.TIMA, 0xFF)

	// one period to overflow TIMA to 0, then the 4-cycle reload delay.
	for i := 0; i < 16+4; i++ {
		c.Tick()
	}

	if got := hw.Read(types.TIMA); got != 0x7F {
		t.Fatalf("expected TIMA reloaded from TMA=0x7F, got %#x", got)
	}
	if irq.Flag&(1<<interrupts.TimerFlag) == 0 {
		t.Fatal("expected the timer interrupt flag to be pending")
	}
}

func TestTACReadBackHasUpperBitsSet(t *testing.T) {
	_, hw, _ := newTestTimer()
	hw.Write(types.TAC, 0x05)
	if got := hw.Read(types.TAC); got != 0xFD {
		t.Fatalf("expected 0xFD (0xF8|0x05), got %#x", got)
	}
}
