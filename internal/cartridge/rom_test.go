package cartridge

import "testing"

func TestROMCartridgeIgnoresWritesToROMWindow(t *testing.T) {
	rom := []byte{0xAB, 0xCD}
	m := NewROMCartridge(rom, &Header{})
	m.Write(0x0000, 0xFF)

	if got := m.Read(0x0000); got != 0xAB {
		t.Fatalf("expected ROM write to be ignored, got %#x", got)
	}
}

func TestROMCartridgeRAMWindow(t *testing.T) {
	m := NewROMCartridge(make([]byte, 0x8000), &Header{RAMSize: 8 * 1024})
	m.Write(0xA000, 0x42)

	if got := m.Read(0xA000); got != 0x42 {
		t.Fatalf("expected 0x42, got %#x", got)
	}
}
