package mmu

import (
	"testing"

	"github.com/silverwren/gbcore/internal/cartridge"
	"github.com/silverwren/gbcore/internal/interrupts"
	"github.com/silverwren/gbcore/internal/logging"
	"github.com/silverwren/gbcore/internal/types"
)

func newTestMMU(t *testing.T, model types.Model) *MMU {
	t.Helper()
	cart, err := cartridge.New(make([]byte, 0x8000), logging.NewNull())
	if err != nil {
		t.Fatalf("cartridge.New: %v", err)
	}
	return New(cart, interrupts.NewService(), model, logging.NewNull())
}

func TestWRAMRoundTrip(t *testing.T) {
	m := newTestMMU(t, types.DMGABC)
	m.Write(0xC010, 0x77)

	if got := m.Read(0xC010); got != 0x77 {
		t.Fatalf("expected 0x77, got %#x", got)
	}
}

func TestEchoRegionMirrorsWRAM(t *testing.T) {
	m := newTestMMU(t, types.DMGABC)
	m.Write(0xC020, 0x55)

	if got := m.Read(0xE020); got != 0x55 {
		t.Fatalf("expected echo region to mirror WRAM, got %#x", got)
	}
}

func TestHRAMRoundTrip(t *testing.T) {
	m := newTestMMU(t, types.DMGABC)
	m.Write(0xFF90, 0x99)

	if got := m.Read(0xFF90); got != 0x99 {
		t.Fatalf("expected 0x99, got %#x", got)
	}
}

func TestUnusableRegionReadsOpenBus(t *testing.T) {
	m := newTestMMU(t, types.DMGABC)
	if got := m.Read(0xFEA0); got != 0xFF {
		t.Fatalf("expected 0xFF for the unusable region, got %#x", got)
	}
}

func TestInterruptRegistersRouteThroughIRQService(t *testing.T) {
	m := newTestMMU(t, types.DMGABC)
	m.Write(0xFFFF, 0x1F)

	if got := m.Read(0xFFFF); got != 0x1F {
		t.Fatalf("expected IE readback of 0x1F, got %#x", got)
	}
}

func TestSVBKBanksWRAMOnCGB(t *testing.T) {
	m := newTestMMU(t, types.CGBABC)
	m.Write(0xD000, 0xAA) // bank 1 (default)

	m.Write(0xFF70, 0x02) // switch to WRAM bank 2
	m.Write(0xD000, 0xBB)

	m.Write(0xFF70, 0x01) // back to bank 1
	if got := m.Read(0xD000); got != 0xAA {
		t.Fatalf("expected bank 1's byte to be unaffected by bank 2's write, got %#x", got)
	}

	m.Write(0xFF70, 0x02)
	if got := m.Read(0xD000); got != 0xBB {
		t.Fatalf("expected bank 2's byte 0xBB, got %#x", got)
	}
}

func TestSVBKZeroRemapsToBankOne(t *testing.T) {
	m := newTestMMU(t, types.CGBABC)
	m.Write(0xFF70, 0x00)

	if got := m.Read(0xFF70); got&0x07 != 0x01 {
		t.Fatalf("expected SVBK readback of bank 1, got %#x", got)
	}
}

func TestCartridgeWindowRoutesToMapper(t *testing.T) {
	cart := cartridge.NewEmpty()
	m := New(cart, interrupts.NewService(), types.DMGABC, logging.NewNull())

	if got := m.Read(0x0000); got != 0xFF {
		t.Fatalf("expected empty-cartridge ROM window to read 0xFF, got %#x", got)
	}
}
