package cartridge

import "github.com/silverwren/gbcore/internal/types"

// MemoryBankedCartridge1 implements the MBC1 mapper: up to 125 usable
// 16KiB ROM banks and up to 4 8KiB RAM banks, with a banking mode that
// trades ROM bank bits for the ability to bank the 0x0000-0x3FFF window
// and external RAM simultaneously.
type MemoryBankedCartridge1 struct {
	rom []byte
	ram []byte

	// ramg gates access to external RAM; enabled by writing 0x0A to the
	// lower 4 bits, disabled by anything else.
	ramg bool // 0x0000-0x1FFF

	// bank1 supplies the low 5 bits of the ROM bank number. Zero is
	// remapped to 1 so banks 0x00/0x20/0x40/0x60 are unreachable through
	// this register alone.
	bank1 uint8 // 0x2000-0x3FFF

	// bank2 supplies either the high 2 bits of the ROM bank number, or
	// the RAM bank number, depending on mode.
	bank2 uint8 // 0x4000-0x5FFF

	// mode selects whether bank2 only affects the 0x4000-0x7FFF window
	// (false) or additionally remaps 0x0000-0x3FFF and the RAM window
	// (true, "advanced banking mode").
	mode bool // 0x6000-0x7FFF

	isMultiCart bool
	romBanks    uint8
}

// mbc1Logo is the Nintendo boot logo; MBC1M multicarts repeat it at the
// start of each of their four 256KiB ROM blocks.
var mbc1Logo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B,
	0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC,
	0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// NewMemoryBankedCartridge1 returns a new MBC1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header *Header) *MemoryBankedCartridge1 {
	m := &MemoryBankedCartridge1{
		rom:      rom,
		ram:      make([]byte, header.RAMSize),
		bank1:    0x01,
		romBanks: uint8(len(rom) / 0x4000),
	}
	m.checkMultiCart()
	return m
}

func (m *MemoryBankedCartridge1) checkMultiCart() {
	if len(m.rom) != 1024*1024 {
		return
	}
	matches := 0
	for block := 0; block < 4; block++ {
		base := block * 0x40000
		match := true
		for i, b := range mbc1Logo {
			if m.rom[base+0x0104+i] != b {
				match = false
				break
			}
		}
		if match {
			matches++
		}
	}
	m.isMultiCart = matches > 1
}

func (m *MemoryBankedCartridge1) bankShift() uint8 {
	if m.isMultiCart {
		return 4
	}
	return 5
}

func (m *MemoryBankedCartridge1) bank1Mask() uint8 {
	if m.isMultiCart {
		return 0x0F
	}
	return 0x1F
}

// romBankLow is the bank mapped into 0x0000-0x3FFF.
func (m *MemoryBankedCartridge1) romBankLow() uint8 {
	if !m.mode {
		return 0
	}
	return m.wrapBank(m.bank2 << m.bankShift())
}

// romBankHigh is the bank mapped into 0x4000-0x7FFF.
func (m *MemoryBankedCartridge1) romBankHigh() uint8 {
	return m.wrapBank(m.bank1&m.bank1Mask() | m.bank2<<m.bankShift())
}

func (m *MemoryBankedCartridge1) wrapBank(bank uint8) uint8 {
	if m.romBanks == 0 {
		return 0
	}
	return bank % m.romBanks
}

// ramBank is the bank mapped into 0xA000-0xBFFF. bank2 selects it only in
// advanced mode; in simple mode RAM bank 0 is always mapped.
func (m *MemoryBankedCartridge1) ramBank() uint8 {
	if !m.mode {
		return 0
	}
	return m.bank2 & 0x03
}

func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		offset := uint32(m.romBankLow())*0x4000 + uint32(address)
		return m.romAt(offset)
	case address < 0x8000:
		offset := uint32(m.romBankHigh())*0x4000 + uint32(address-0x4000)
		return m.romAt(offset)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramg || len(m.ram) == 0 {
			return 0xFF
		}
		offset := uint32(m.ramBank())*0x2000 + uint32(address-0xA000)
		if int(offset) < len(m.ram) {
			return m.ram[offset]
		}
		return 0xFF
	}
	return 0xFF
}

func (m *MemoryBankedCartridge1) romAt(offset uint32) uint8 {
	if int(offset) < len(m.rom) {
		return m.rom[offset]
	}
	return 0xFF
}

func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramg = value&0x0F == 0x0A
	case address < 0x4000:
		value &= 0x1F
		if value == 0 {
			value = 1
		}
		m.bank1 = value
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.mode = value&0x01 == 0x01
	case address >= 0xA000 && address < 0xC000:
		if !m.ramg || len(m.ram) == 0 {
			return
		}
		offset := uint32(m.ramBank())*0x2000 + uint32(address-0xA000)
		if int(offset) < len(m.ram) {
			m.ram[offset] = value
		}
	}
}

func (m *MemoryBankedCartridge1) SaveRAM() []byte { return m.ram }
func (m *MemoryBankedCartridge1) LoadRAM(data []byte) {
	copy(m.ram, data)
}

var _ types.Stater = (*MemoryBankedCartridge1)(nil)

func (m *MemoryBankedCartridge1) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramg = s.ReadBool()
	m.bank1 = s.Read8()
	m.bank2 = s.Read8()
	m.mode = s.ReadBool()
}

func (m *MemoryBankedCartridge1) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramg)
	s.Write8(m.bank1)
	s.Write8(m.bank2)
	s.WriteBool(m.mode)
}
