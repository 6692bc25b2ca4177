package cartridge

import "github.com/silverwren/gbcore/internal/types"

// MemoryBankedCartridge2 implements the MBC2 mapper: up to 16 16KiB ROM
// banks and a built-in 512x4-bit RAM array. Only the low nibble of each
// RAM byte is meaningful; the upper nibble reads back as 1s.
type MemoryBankedCartridge2 struct {
	rom      []byte
	ram      [512]byte
	romBank  uint8
	ramg     bool
	romBanks uint8
}

// NewMemoryBankedCartridge2 returns a new MBC2 cartridge.
func NewMemoryBankedCartridge2(rom []byte, header *Header) *MemoryBankedCartridge2 {
	return &MemoryBankedCartridge2{
		rom:      rom,
		romBank:  1,
		romBanks: uint8(len(rom) / 0x4000),
	}
}

func (m *MemoryBankedCartridge2) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.romAt(address)
	case address < 0x8000:
		offset := uint32(m.romBank)*0x4000 + uint32(address-0x4000)
		if int(offset) < len(m.rom) {
			return m.rom[offset]
		}
		return 0xFF
	case address >= 0xA000 && address < 0xC000:
		if !m.ramg {
			return 0xFF
		}
		return m.ram[address&0x01FF] | 0xF0
	}
	return 0xFF
}

func (m *MemoryBankedCartridge2) romAt(address uint16) uint8 {
	if int(address) < len(m.rom) {
		return m.rom[address]
	}
	return 0xFF
}

func (m *MemoryBankedCartridge2) Write(address uint16, value uint8) {
	switch {
	case address < 0x4000:
		// bit 8 of the address distinguishes a RAM-enable write from a
		// ROM-bank-select write in the 0x0000-0x3FFF range.
		if address&0x0100 != 0 {
			bank := value & 0x0F
			if bank == 0 {
				bank = 1
			}
			if m.romBanks != 0 {
				bank %= m.romBanks
			}
			m.romBank = bank
		} else {
			m.ramg = value&0x0F == 0x0A
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramg {
			m.ram[address&0x01FF] = value & 0x0F
		}
	}
}

func (m *MemoryBankedCartridge2) SaveRAM() []byte {
	return append([]byte(nil), m.ram[:]...)
}

func (m *MemoryBankedCartridge2) LoadRAM(data []byte) {
	copy(m.ram[:], data)
}

var _ types.Stater = (*MemoryBankedCartridge2)(nil)

func (m *MemoryBankedCartridge2) Load(s *types.State) {
	s.ReadData(m.ram[:])
	m.romBank = s.Read8()
	m.ramg = s.ReadBool()
}

func (m *MemoryBankedCartridge2) Save(s *types.State) {
	s.WriteData(m.ram[:])
	s.Write8(m.romBank)
	s.WriteBool(m.ramg)
}
