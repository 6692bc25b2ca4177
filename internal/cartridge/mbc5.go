package cartridge

import "github.com/silverwren/gbcore/internal/types"

// MemoryBankedCartridge5 implements the MBC5 mapper: up to 512 16KiB ROM
// banks addressed by a full 9-bit bank number, and up to 16 8KiB RAM
// banks. Unlike MBC1, bank 0 is a legal selection for the 0x4000-0x7FFF
// window and is not remapped to 1.
type MemoryBankedCartridge5 struct {
	rom []byte
	ram []byte

	ramg bool

	romBankLow  uint8 // 0x2000-0x2FFF, low 8 bits of the ROM bank number
	romBankHigh uint8 // 0x3000-0x3FFF, bit 8 of the ROM bank number
	ramBank     uint8 // 0x4000-0x5FFF, low 4 bits used (low 3 if rumble)

	romBanks uint16
	rumble   bool
}

// NewMemoryBankedCartridge5 returns a new MBC5 cartridge. rumble reports
// whether the cartridge type wires bit 3 of the RAM-bank register to a
// rumble motor instead of addressing RAM bank 8.
func NewMemoryBankedCartridge5(rom []byte, header *Header, rumble bool) *MemoryBankedCartridge5 {
	return &MemoryBankedCartridge5{
		rom:        rom,
		ram:        make([]byte, header.RAMSize),
		romBankLow: 1,
		romBanks:   uint16(len(rom) / 0x4000),
		rumble:     rumble,
	}
}

func (m *MemoryBankedCartridge5) romBank() uint16 {
	bank := uint16(m.romBankHigh&0x01)<<8 | uint16(m.romBankLow)
	if m.romBanks != 0 {
		bank %= m.romBanks
	}
	return bank
}

// ramBankSelect masks out the rumble-motor bit when present; the motor
// is driven by bit 3 of the register but does not participate in bank
// addressing.
func (m *MemoryBankedCartridge5) ramBankSelect() uint8 {
	bank := m.ramBank & 0x0F
	if m.rumble {
		bank &= 0x07
	}
	return bank
}

func (m *MemoryBankedCartridge5) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		if int(address) < len(m.rom) {
			return m.rom[address]
		}
		return 0xFF
	case address < 0x8000:
		offset := uint32(m.romBank())*0x4000 + uint32(address-0x4000)
		if int(offset) < len(m.rom) {
			return m.rom[offset]
		}
		return 0xFF
	case address >= 0xA000 && address < 0xC000:
		if !m.ramg || len(m.ram) == 0 {
			return 0xFF
		}
		offset := uint32(m.ramBankSelect())*0x2000 + uint32(address-0xA000)
		if int(offset) < len(m.ram) {
			return m.ram[offset]
		}
		return 0xFF
	}
	return 0xFF
}

func (m *MemoryBankedCartridge5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramg = value&0x0F == 0x0A
	case address < 0x3000:
		m.romBankLow = value
	case address < 0x4000:
		m.romBankHigh = value & 0x01
	case address < 0x6000:
		m.ramBank = value & 0x0F
	case address >= 0xA000 && address < 0xC000:
		if !m.ramg || len(m.ram) == 0 {
			return
		}
		offset := uint32(m.ramBankSelect())*0x2000 + uint32(address-0xA000)
		if int(offset) < len(m.ram) {
			m.ram[offset] = value
		}
	}
}

func (m *MemoryBankedCartridge5) SaveRAM() []byte { return m.ram }
func (m *MemoryBankedCartridge5) LoadRAM(data []byte) {
	copy(m.ram, data)
}

var _ types.Stater = (*MemoryBankedCartridge5)(nil)

func (m *MemoryBankedCartridge5) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramg = s.ReadBool()
	m.romBankLow = s.Read8()
	m.romBankHigh = s.Read8()
	m.ramBank = s.Read8()
}

func (m *MemoryBankedCartridge5) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramg)
	s.Write8(m.romBankLow)
	s.Write8(m.romBankHigh)
	s.Write8(m.ramBank)
}
