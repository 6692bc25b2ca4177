package serial

import (
	"testing"

	"github.com/silverwren/gbcore/internal/interrupts"
	"github.com/silverwren/gbcore/internal/types"
)

func newTestController() (*Controller, *types.HardwareRegisters, *interrupts.Service) {
	hw := types.NewHardwareRegisters()
	irq := interrupts.NewService()
	c := NewController(irq, hw)
	return c, hw, irq
}

func TestUnattachedTransferShiftsInOnesAndRequestsInterrupt(t *testing.T) {
	c, hw, irq := newTestController()
	hw.Write(types.SB, 0x00)
	hw.Write(types.SC, 0x81) // start transfer, internal clock

	for i := 0; i < 8; i++ {
		c.Tick(0)
		c.Tick(1 << 8)
	}

	if got := hw.Read(types.SB); got != 0xFF {
		t.Fatalf("expected SB=0xFF after shifting in 8 unplugged-cable 1 bits, got %#x", got)
	}
	if hw.Read(types.SC)&types.Bit7 != 0 {
		t.Fatal("expected the transfer-start bit to clear once the 8 bits are shifted")
	}
	if irq.Flag&(1<<interrupts.SerialFlag) == 0 {
		t.Fatal("expected the serial interrupt to be requested on transfer completion")
	}
}

func TestTickWithoutTransferStartedDoesNothing(t *testing.T) {
	c, hw, irq := newTestController()
	hw.Write(types.SB, 0x5A)
	hw.Write(types.SC, 0x01) // internal clock selected but no start bit

	for i := 0; i < 8; i++ {
		c.Tick(0)
		c.Tick(1 << 8)
	}

	if got := hw.Read(types.SB); got != 0x5A {
		t.Fatalf("expected SB to stay 0x5A, got %#x", got)
	}
	if irq.Pending() {
		t.Fatal("expected no interrupt without an active transfer")
	}
}

func TestControllerToControllerLinkExchangesBits(t *testing.T) {
	a, hwA, _ := newTestController()
	b, hwB, _ := newTestController()
	a.Attach(b)
	b.Attach(a)

	hwA.Write(types.SB, 0xF0)
	hwB.Write(types.SB, 0x0F)
	hwA.Write(types.SC, 0x81) // a drives the internal clock

	for i := 0; i < 8; i++ {
		a.Tick(0)
		a.Tick(1 << 8)
	}

	if got := hwA.Read(types.SB); got != 0x0F {
		t.Fatalf("expected a to receive b's original byte 0x0F, got %#x", got)
	}
	if got := hwB.Read(types.SB); got != 0xF0 {
		t.Fatalf("expected b to receive a's original byte 0xF0, got %#x", got)
	}
}
