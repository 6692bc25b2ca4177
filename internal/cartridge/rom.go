package cartridge

import "github.com/silverwren/gbcore/internal/types"

// ROMCartridge is the simplest cartridge type: a fixed 32KiB ROM image
// with no bank switching, and optionally a small fixed RAM window.
type ROMCartridge struct {
	rom []byte
	ram []byte
}

// NewROMCartridge returns a new ROM-only cartridge.
func NewROMCartridge(rom []byte, header *Header) *ROMCartridge {
	return &ROMCartridge{
		rom: rom,
		ram: make([]byte, header.RAMSize),
	}
}

func (m *ROMCartridge) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		if int(address) < len(m.rom) {
			return m.rom[address]
		}
		return 0xFF
	case address >= 0xA000 && address < 0xC000:
		offset := address - 0xA000
		if int(offset) < len(m.ram) {
			return m.ram[offset]
		}
		return 0xFF
	}
	return 0xFF
}

func (m *ROMCartridge) Write(address uint16, value uint8) {
	if address >= 0xA000 && address < 0xC000 {
		offset := address - 0xA000
		if int(offset) < len(m.ram) {
			m.ram[offset] = value
		}
	}
	// writes to the ROM window are ignored; there is no MBC to address
}

func (m *ROMCartridge) SaveRAM() []byte { return m.ram }
func (m *ROMCartridge) LoadRAM(data []byte) {
	copy(m.ram, data)
}

var _ types.Stater = (*ROMCartridge)(nil)

func (m *ROMCartridge) Load(s *types.State) { s.ReadData(m.ram) }
func (m *ROMCartridge) Save(s *types.State) { s.WriteData(m.ram) }
