package mmu

import (
	"github.com/silverwren/gbcore/internal/cartridge"
	"github.com/silverwren/gbcore/internal/interrupts"
	"github.com/silverwren/gbcore/internal/joypad"
	"github.com/silverwren/gbcore/internal/logging"
	"github.com/silverwren/gbcore/internal/serial"
	"github.com/silverwren/gbcore/internal/timer"
	"github.com/silverwren/gbcore/internal/types"
)

// IOBus is implemented by any component the MMU forwards a raw memory
// window to. The MMU itself implements it, so components that need to
// read/write arbitrary addresses (HDMA) can take the MMU as their bus.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Video is the interface the PPU implements to own the VRAM
// (0x8000-0x9FFF) and OAM (0xFE00-0xFE9F) memory windows, plus the CGB
// VRAM bank select driven by VBK. Its own LCDC/STAT/SCX/... registers
// self-register into the shared HardwareRegisters table instead of
// going through this interface.
type Video interface {
	IOBus
	SetVRAMBank(bank uint8)
	VRAMBank() uint8
}

// MMU is the Game Boy's memory management unit: it owns the cartridge,
// working RAM, HRAM, and the shared hardware-register table, and
// decodes every address in the 64KiB map to the component that answers
// for it.
type MMU struct {
	cart   *cartridge.Cartridge
	wram   *WRAM
	hram   [0x80]uint8
	joypad *joypad.State

	video Video
	sound IOBus

	timer  *timer.Controller
	serial *serial.Controller
	irq    *interrupts.Service
	hdma   *HDMA
	hw     *types.HardwareRegisters

	log logging.Logger

	model      types.Model
	isGBC      bool
	key0       uint8
	speedArmed bool
	doubleSpeed bool
}

// New constructs an MMU around cart for the given hardware model. It
// creates the joypad, timer, serial port and HDMA controller itself and
// wires their registers into the hardware-register table straight away;
// the video and sound components are attached afterwards with
// AttachVideo and AttachSound.
func New(cart *cartridge.Cartridge, irq *interrupts.Service, model types.Model, log logging.Logger) *MMU {
	if log == nil {
		log = logging.NewNull()
	}
	isGBC := model == types.CGB0 || model == types.CGBABC || model == types.AGB

	hw := types.NewHardwareRegisters()
	m := &MMU{
		cart:   cart,
		wram:   NewWRAM(),
		joypad: joypad.New(),
		irq:    irq,
		hw:     hw,
		log:    log,
		model:  model,
		isGBC:  isGBC,
	}
	m.hdma = NewHDMA(m)

	hw.Register(types.P1, m.joypad.Write, m.joypad.Read)

	m.timer = timer.NewController(irq, hw)
	m.serial = serial.NewController(irq, hw)
	m.hdma.Register(hw)

	if isGBC {
		hw.Register(types.KEY0, func(v uint8) { m.key0 = v & 0x0F }, func() uint8 { return m.key0 })
		hw.Register(types.KEY1, m.writeKey1, m.readKey1)
		hw.Register(types.SVBK, m.writeSVBK, m.readSVBK)
		hw.Register(types.VBK, m.writeVBK, m.readVBK)
	}

	return m
}

// AttachVideo attaches the PPU. Must be called before the first memory
// access to VRAM/OAM or any LCDC-family register.
func (m *MMU) AttachVideo(video Video) { m.video = video }

// AttachSound attaches the APU for the 0xFF10-0xFF3F window (NRxx
// registers and wave RAM).
func (m *MMU) AttachSound(sound IOBus) { m.sound = sound }

// AttachSerialDevice wires an external peer (a link cable partner, a
// printer) onto the serial port.
func (m *MMU) AttachSerialDevice(d serial.Device) { m.serial.Attach(d) }

func (m *MMU) IsGBC() bool { return m.isGBC }

// Cartridge returns the inserted cartridge.
func (m *MMU) Cartridge() *cartridge.Cartridge { return m.cart }

// Joypad returns the joypad state for host input delivery.
func (m *MMU) Joypad() *joypad.State { return m.joypad }

// Timer returns the timer controller so the CPU orchestration loop can
// tick it once per T-cycle.
func (m *MMU) Timer() *timer.Controller { return m.timer }

// Serial returns the serial controller so the CPU orchestration loop
// can tick it once per T-cycle.
func (m *MMU) Serial() *serial.Controller { return m.serial }

// HDMA returns the VRAM-DMA controller so the CPU orchestration loop
// can tick it, and the PPU can arm it on HBlank entry.
func (m *MMU) HDMA() *HDMA { return m.hdma }

// HardwareRegisters returns the shared register table so components
// constructed after the MMU (the PPU, the APU) can self-register their
// own addresses into it.
func (m *MMU) HardwareRegisters() *types.HardwareRegisters { return m.hw }

// DoubleSpeed reports whether the CGB double-speed mode is active.
func (m *MMU) DoubleSpeed() bool { return m.doubleSpeed }

// SpeedSwitchArmed reports whether a KEY1 write has armed a pending
// speed switch, to be committed the next time the CPU executes STOP.
func (m *MMU) SpeedSwitchArmed() bool { return m.speedArmed }

// CommitSpeedSwitch toggles DoubleSpeed and clears the armed flag; the
// CPU calls this once STOP has been processed.
func (m *MMU) CommitSpeedSwitch() {
	m.doubleSpeed = !m.doubleSpeed
	m.speedArmed = false
}

func (m *MMU) writeKey1(v uint8) { m.speedArmed = v&types.Bit0 != 0 }
func (m *MMU) readKey1() uint8 {
	var v uint8
	if m.doubleSpeed {
		v |= 0x80
	}
	if m.speedArmed {
		v |= 0x01
	}
	return v | 0x7E
}

func (m *MMU) writeSVBK(v uint8) {
	v &= 0x07
	if v == 0 {
		v = 1
	}
	m.wram.SetBank(v)
}

func (m *MMU) readSVBK() uint8 { return m.wram.bank | 0xF8 }

// WRAMBank returns the currently selected WRAM bank for the 0xD000
// window (always 1 on DMG/non-CGB models).
func (m *MMU) WRAMBank() uint8 { return m.wram.bank }

func (m *MMU) writeVBK(v uint8) {
	if m.video != nil {
		m.video.SetVRAMBank(v & 0x01)
	}
}

func (m *MMU) readVBK() uint8 {
	if m.video == nil {
		return 0xFE
	}
	return m.video.VRAMBank() | 0xFE
}

// Read returns the value at address, dispatching to the cartridge,
// working RAM, HRAM, attached Video/Sound windows, the interrupt
// controller, or the shared hardware-register table.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.cart.Read(address)
	case address < 0xA000:
		if m.video != nil {
			return m.video.Read(address)
		}
		return 0xFF
	case address < 0xC000:
		return m.cart.Read(address)
	case address < 0xFE00:
		return m.wram.Read(address)
	case address < 0xFEA0:
		if m.video != nil {
			return m.video.Read(address)
		}
		return 0xFF
	case address < 0xFF00:
		return 0xFF // unusable
	case address == 0xFF0F:
		return m.irq.Read(address)
	case address < 0xFF10:
		return m.hw.Read(address)
	case address < 0xFF40:
		if m.sound != nil {
			return m.sound.Read(address)
		}
		return 0xFF
	case address < 0xFF80:
		return m.hw.Read(address)
	case address < 0xFFFF:
		return m.hram[address&0x7F]
	default: // 0xFFFF
		return m.irq.Read(address)
	}
}

// Write writes value to address, dispatching the same way Read does.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		m.cart.Write(address, value)
	case address < 0xA000:
		if m.video != nil {
			m.video.Write(address, value)
		}
	case address < 0xC000:
		m.cart.Write(address, value)
	case address < 0xE000:
		m.wram.Write(address, value)
	case address < 0xFE00:
		m.log.Warnf("echo-region write at 0x%04X", address)
		m.wram.Write(address, value)
	case address < 0xFEA0:
		if m.video != nil {
			m.video.Write(address, value)
		}
	case address < 0xFF00:
		// unusable; ignored
	case address == 0xFF0F:
		m.irq.Write(address, value)
	case address < 0xFF10:
		m.hw.Write(address, value)
	case address < 0xFF40:
		if m.sound != nil {
			m.sound.Write(address, value)
		}
	case address < 0xFF80:
		m.hw.Write(address, value)
	case address < 0xFFFF:
		m.hram[address&0x7F] = value
	default: // 0xFFFF
		m.irq.Write(address, value)
	}
}

var _ types.Stater = (*MMU)(nil)

func (m *MMU) Load(s *types.State) {
	m.wram.Load(s)
	s.ReadData(m.hram[:])
	m.key0 = s.Read8()
	m.speedArmed = s.ReadBool()
	m.doubleSpeed = s.ReadBool()
	m.hdma.Load(s)
}

func (m *MMU) Save(s *types.State) {
	m.wram.Save(s)
	s.WriteData(m.hram[:])
	s.Write8(m.key0)
	s.WriteBool(m.speedArmed)
	s.WriteBool(m.doubleSpeed)
	m.hdma.Save(s)
}
