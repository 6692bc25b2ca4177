package cartridge

import "github.com/silverwren/gbcore/internal/types"

// RTC register indices, selected via the RAM-bank-select register once
// its value reaches 0x08.
const (
	rtcSeconds = iota
	rtcMinutes
	rtcHours
	rtcDayLow
	rtcDayHigh
	rtcRegisterCount
)

// MemoryBankedCartridge3 implements the MBC3 mapper: up to 128 16KiB
// ROM banks, up to 4 8KiB RAM banks, and an optional real-time clock
// selected by RAM-bank values 0x08-0x0C.
type MemoryBankedCartridge3 struct {
	rom      []byte
	romBank  uint8
	romBanks uint8

	ram        []byte
	ramBank    uint8
	ramEnabled bool

	rtc        [rtcRegisterCount]uint8
	latchedRTC [rtcRegisterCount]uint8
	latchState uint8 // tracks the 0-then-1 write sequence that triggers a latch
}

// NewMemoryBankedCartridge3 returns a new MBC3 cartridge.
func NewMemoryBankedCartridge3(rom []byte, header *Header) *MemoryBankedCartridge3 {
	return &MemoryBankedCartridge3{
		rom:      rom,
		romBank:  1,
		romBanks: uint8(len(rom) / 0x4000),
		ram:      make([]byte, header.RAMSize),
	}
}

func (m *MemoryBankedCartridge3) Read(address uint16) uint8 {
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
		if !m.ramEnabled {
			return 0xFF
		}
		if m.ramBank >= 0x08 {
			idx := m.ramBank - 0x08
			if int(idx) >= rtcRegisterCount {
				return 0xFF
			}
			return m.latchedRTC[idx]
		}
		offset := uint32(m.ramBank)*0x2000 + uint32(address-0xA000)
		if int(offset) < len(m.ram) {
			return m.ram[offset]
		}
		return 0xFF
	}
	return 0xFF
}

func (m *MemoryBankedCartridge3) romAt(address uint16) uint8 {
	if int(address) < len(m.rom) {
		return m.rom[address]
	}
	return 0xFF
}

func (m *MemoryBankedCartridge3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		bank := value & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case address < 0x6000:
		m.ramBank = value
	case address < 0x8000:
		// Real hardware latches the live RTC registers into the
		// read-only shadow copy on the 0x00 -> 0x01 write transition.
		if value == 0x00 {
			m.latchState = 0x00
		} else if value == 0x01 && m.latchState == 0x00 {
			m.latchedRTC = m.rtc
			m.latchState = 0x01
		}
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return
		}
		if m.ramBank >= 0x08 {
			idx := m.ramBank - 0x08
			if int(idx) < rtcRegisterCount {
				m.rtc[idx] = value
			}
			return
		}
		offset := uint32(m.ramBank)*0x2000 + uint32(address-0xA000)
		if int(offset) < len(m.ram) {
			m.ram[offset] = value
		}
	}
}

func (m *MemoryBankedCartridge3) SaveRAM() []byte { return m.ram }
func (m *MemoryBankedCartridge3) LoadRAM(data []byte) {
	copy(m.ram, data)
}

func (m *MemoryBankedCartridge3) SaveRTC() []byte {
	return append([]byte(nil), m.rtc[:]...)
}

func (m *MemoryBankedCartridge3) LoadRTC(data []byte) {
	n := copy(m.rtc[:], data)
	copy(m.latchedRTC[:n], m.rtc[:n])
}

var _ types.Stater = (*MemoryBankedCartridge3)(nil)

func (m *MemoryBankedCartridge3) Load(s *types.State) {
	s.ReadData(m.ram)
	m.romBank = s.Read8()
	m.ramBank = s.Read8()
	m.ramEnabled = s.ReadBool()
	for i := range m.rtc {
		m.rtc[i] = s.Read8()
	}
	for i := range m.latchedRTC {
		m.latchedRTC[i] = s.Read8()
	}
	m.latchState = s.Read8()
}

func (m *MemoryBankedCartridge3) Save(s *types.State) {
	s.WriteData(m.ram)
	s.Write8(m.romBank)
	s.Write8(m.ramBank)
	s.WriteBool(m.ramEnabled)
	for _, v := range m.rtc {
		s.Write8(v)
	}
	for _, v := range m.latchedRTC {
		s.Write8(v)
	}
	s.Write8(m.latchState)
}
