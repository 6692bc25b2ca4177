package cartridge

import "testing"

func newMBC2(banks int) *MemoryBankedCartridge2 {
	rom := fillBankedROM(banks)
	return NewMemoryBankedCartridge2(rom, &Header{})
}

func TestMBC2BankSelectRequiresAddressBit8(t *testing.T) {
	m := newMBC2(4)
	m.Write(0x0000, 0x02) // bit 8 clear: this is a RAM-enable write, not bank select

	if got := m.Read(0x4000); got != 1 {
		t.Fatalf("expected bank to stay at 1, got %d", got)
	}

	m.Write(0x0100, 0x02) // bit 8 set: bank select
	if got := m.Read(0x4000); got != 2 {
		t.Fatalf("expected bank 2, got %d", got)
	}
}

func TestMBC2BankZeroRemapsToOne(t *testing.T) {
	m := newMBC2(4)
	m.Write(0x0100, 0x00)

	if got := m.Read(0x4000); got != 1 {
		t.Fatalf("expected bank 0 to remap to 1, got %d", got)
	}
}

func TestMBC2RAMOnlyExposesLowNibble(t *testing.T) {
	m := newMBC2(2)
	m.Write(0x0000, 0x0A) // enable RAM (bit 8 clear)
	m.Write(0xA000, 0xFF)

	if got := m.Read(0xA000); got != 0xFF {
		t.Fatalf("expected 0xFF (low nibble set, high nibble forced to 1s), got %#x", got)
	}

	m.Write(0xA000, 0x03)
	if got := m.Read(0xA000); got != 0xF3 {
		t.Fatalf("expected 0xF3, got %#x", got)
	}
}

func TestMBC2RAMDisabledReadsOpenBus(t *testing.T) {
	m := newMBC2(2)
	if got := m.Read(0xA000); got != 0xFF {
		t.Fatalf("expected 0xFF with RAM disabled, got %#x", got)
	}
}
