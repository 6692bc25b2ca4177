package cartridge

import "testing"

func newMBC5(banks, ramSize int, rumble bool) *MemoryBankedCartridge5 {
	rom := fillBankedROM(banks)
	return NewMemoryBankedCartridge5(rom, &Header{RAMSize: uint(ramSize)}, rumble)
}

func TestMBC5BankZeroIsLegalUnlikeMBC1(t *testing.T) {
	m := newMBC5(4, 0, false)
	m.Write(0x2000, 0x00)

	if got := m.Read(0x4000); got != 0 {
		t.Fatalf("expected bank 0 to stay selected (no remap), got %d", got)
	}
}

func TestMBC5NinthBitSelectsBankAbove255(t *testing.T) {
	m := newMBC5(300, 0, false)
	m.Write(0x2000, 0x05) // low 8 bits
	m.Write(0x3000, 0x01) // bit 8

	// the tag byte is the bank index truncated to 8 bits, which bank 0x05
	// shares, so a second marker tells bank 0x105 apart from bank 0x05.
	m.rom[0x105*0x4000+1] = 0x9A
	want := byte(0x105 & 0xFF)
	if got := m.Read(0x4000); got != want {
		t.Fatalf("expected bank %d tag byte, got %d", want, got)
	}
	if got := m.Read(0x4001); got != 0x9A {
		t.Fatalf("expected bank 0x105's marker byte, got %#x", got)
	}
}

func TestMBC5RumbleMasksOutMotorBitFromRAMBank(t *testing.T) {
	m := newMBC5(2, 4*8*1024, true)
	m.Write(0x0000, 0x0A)
	m.Write(0x4000, 0x01)
	m.Write(0xA000, 0x11)

	m.Write(0x4000, 0x09) // motor bit (3) set, same low 3 bits as bank 1
	if got := m.Read(0xA000); got != 0x11 {
		t.Fatalf("expected rumble-motor bit to not change the addressed RAM bank, got %#x", got)
	}
}

func TestMBC5RAMBankSwitch(t *testing.T) {
	m := newMBC5(2, 4*8*1024, false)
	m.Write(0x0000, 0x0A)
	m.Write(0x4000, 0x00)
	m.Write(0xA000, 0x10)
	m.Write(0x4000, 0x01)
	m.Write(0xA000, 0x20)

	m.Write(0x4000, 0x00)
	if got := m.Read(0xA000); got != 0x10 {
		t.Fatalf("expected bank 0's byte 0x10 to persist, got %#x", got)
	}
}
