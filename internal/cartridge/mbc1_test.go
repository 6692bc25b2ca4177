package cartridge

import "testing"

// fillBankedROM tags byte 0 of each 16KiB bank with the bank index, so reads
// can be asserted against which bank is actually mapped in.
func fillBankedROM(banks int) []byte {
	rom := make([]byte, banks*0x4000)
	for b := 0; b < banks; b++ {
		rom[b*0x4000] = byte(b)
	}
	return rom
}

func newMBC1(banks, ramSize int) *MemoryBankedCartridge1 {
	rom := fillBankedROM(banks)
	return NewMemoryBankedCartridge1(rom, &Header{RAMSize: uint(ramSize)})
}

func TestMBC1Bank0MapsToBank1ByDefault(t *testing.T) {
	m := newMBC1(8, 0)
	if got := m.Read(0x4000); got != 1 {
		t.Fatalf("expected bank 1 mapped at 0x4000 on reset, got %d", got)
	}
}

func TestMBC1SelectingBank0RemapsToBank1(t *testing.T) {
	m := newMBC1(8, 0)
	m.Write(0x2000, 0x00) // selecting bank 0 through the low register remaps to 1

	if got := m.Read(0x4000); got != 1 {
		t.Fatalf("expected bank 0 to remap to bank 1, got %d", got)
	}
}

func TestMBC1SelectsHighROMBank(t *testing.T) {
	m := newMBC1(8, 0)
	m.Write(0x2000, 0x05)

	if got := m.Read(0x4000); got != 5 {
		t.Fatalf("expected bank 5 mapped at 0x4000, got %d", got)
	}
	if got := m.Read(0x0000); got != 0 {
		t.Fatalf("expected bank 0 still fixed at 0x0000, got %d", got)
	}
}

func TestMBC1AdvancedModeBanksLowerWindow(t *testing.T) {
	m := newMBC1(128, 0)
	m.Write(0x6000, 0x01) // advanced banking mode
	m.Write(0x4000, 0x01) // bank2 = 1 -> bit 5 of the effective bank number

	if got := m.Read(0x0000); got != 0x20 {
		t.Fatalf("expected bank 0x20 mapped at 0x0000 in advanced mode, got %d", got)
	}
}

func TestMBC1RAMDisabledByDefaultReadsOpenBus(t *testing.T) {
	m := newMBC1(2, 8*1024)
	if got := m.Read(0xA000); got != 0xFF {
		t.Fatalf("expected 0xFF with RAM disabled, got %#x", got)
	}
}

func TestMBC1RAMEnableAndWriteRoundTrips(t *testing.T) {
	m := newMBC1(2, 8*1024)
	m.Write(0x0000, 0x0A) // enable RAM
	m.Write(0xA000, 0x42)

	if got := m.Read(0xA000); got != 0x42 {
		t.Fatalf("expected 0x42, got %#x", got)
	}
}

func TestMBC1AdvancedModeBanksRAM(t *testing.T) {
	m := newMBC1(2, 32*1024) // 4 RAM banks
	m.Write(0x0000, 0x0A)    // enable RAM
	m.Write(0x6000, 0x01)    // advanced mode
	m.Write(0x4000, 0x02)    // RAM bank 2
	m.Write(0xA000, 0x55)

	m.Write(0x4000, 0x00) // switch back to RAM bank 0
	if got := m.Read(0xA000); got == 0x55 {
		t.Fatal("expected RAM bank 0 to be distinct from bank 2's data")
	}

	m.Write(0x4000, 0x02)
	if got := m.Read(0xA000); got != 0x55 {
		t.Fatalf("expected bank 2's byte to persist, got %#x", got)
	}
}

func TestMBC1SaveAndLoadRAM(t *testing.T) {
	m := newMBC1(2, 8*1024)
	m.Write(0x0000, 0x0A)
	m.Write(0xA000, 0x7E)

	saved := m.SaveRAM()
	restored := newMBC1(2, 8*1024)
	restored.LoadRAM(saved)
	restored.Write(0x0000, 0x0A)

	if got := restored.Read(0xA000); got != 0x7E {
		t.Fatalf("expected 0x7E restored, got %#x", got)
	}
}
