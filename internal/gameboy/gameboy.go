// Package gameboy wires the CPU, MMU, PPU, APU, timer, serial port and
// joypad into a single runnable system and drives them one T-cycle at
// a time. It has no knowledge of how its frames are displayed or its
// samples played back; that belongs to whatever embeds it.
package gameboy

import (
	"fmt"
	"io"

	"github.com/silverwren/gbcore/internal/apu"
	"github.com/silverwren/gbcore/internal/cartridge"
	"github.com/silverwren/gbcore/internal/cpu"
	"github.com/silverwren/gbcore/internal/interrupts"
	"github.com/silverwren/gbcore/internal/joypad"
	"github.com/silverwren/gbcore/internal/logging"
	"github.com/silverwren/gbcore/internal/mmu"
	"github.com/silverwren/gbcore/internal/ppu"
	"github.com/silverwren/gbcore/internal/serial"
	"github.com/silverwren/gbcore/internal/timer"
	"github.com/silverwren/gbcore/internal/types"
)

// ClockSpeed is the Game Boy's clock speed in Hz at normal (single)
// CPU speed.
const ClockSpeed = cpu.ClockSpeed

// TicksPerFrame is one sixtieth of a second of T-cycles at native
// speed (ClockSpeed/60 = 69905). The PPU's own frame, 154 lines of 456
// T-cycles (70224), is slightly longer; RunFrame uses TicksPerFrame
// only to bound its loop.
const TicksPerFrame = ClockSpeed / 60

// startingAudioRegisters are the NRxx power-on values a real Game Boy
// leaves behind once its boot ROM hands off control at 0x100. Nothing
// in this core executes a boot ROM, so they are poked in directly.
var startingAudioRegisters = map[types.HardwareAddress]uint8{
	types.NR10: 0x80,
	types.NR11: 0xBF,
	types.NR12: 0xF3,
	types.NR14: 0xBF,
	types.NR21: 0x3F,
	types.NR22: 0x00,
	types.NR24: 0xBF,
	types.NR30: 0x7F,
	types.NR31: 0xFF,
	types.NR32: 0x9F,
	types.NR33: 0xBF,
	types.NR41: 0xFF,
	types.NR42: 0x00,
	types.NR43: 0x00,
	types.NR50: 0x77,
	types.NR51: 0xF3,
	types.NR52: 0xF1,
	types.LCDC: 0x91,
	types.STAT: 0x80,
	types.BGP:  0xFC,
}

// GameBoy is a fully wired Game Boy/GBC system: insert a cartridge,
// step it, and read back frames and audio samples.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	APU        *apu.APU
	Joypad     *joypad.State
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *serial.Controller

	model types.Model
	log   logging.Logger
	rom   []byte
}

// Option configures a fully wired GameBoy before New returns it.
type Option func(*GameBoy)

// Debug enables the CPU's debug instrumentation.
func Debug() Option {
	return func(g *GameBoy) { g.CPU.Debug = true }
}

// New constructs a GameBoy around rom. model selects the hardware
// variant to emulate; pass types.Unset to auto-detect DMG vs. CGB from
// the cartridge header's CGB-support flag. log receives the
// emulator's diagnostic logging (malformed cartridge headers,
// echo-region writes, unsupported mappers); pass nil to discard it.
func New(rom []byte, model types.Model, log logging.Logger, opts ...Option) (*GameBoy, error) {
	if log == nil {
		log = logging.NewNull()
	}
	g := &GameBoy{model: model, log: log, rom: rom}

	if err := g.wire(rom); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// wire builds the CPU/MMU/PPU/APU/timer/serial/joypad graph around rom
// and brings it to the state a real boot ROM leaves behind at 0x100.
// Called once from New, and again from Reset to rebuild the system
// around the same ROM image without discarding battery-backed RAM.
func (g *GameBoy) wire(rom []byte) error {
	cart, err := cartridge.New(rom, g.log)
	if err != nil {
		return fmt.Errorf("gameboy: %w", err)
	}

	if g.model == types.Unset {
		if cart.Header().GameboyColor() {
			g.model = types.CGBABC
		} else {
			g.model = types.DMGABC
		}
	}
	isGBC := g.model == types.CGB0 || g.model == types.CGBABC || g.model == types.AGB

	g.Interrupts = interrupts.NewService()
	g.MMU = mmu.New(cart, g.Interrupts, g.model, g.log)

	g.PPU = ppu.New(g.Interrupts, isGBC)
	g.PPU.Attach(g.MMU.HardwareRegisters(), g.MMU, g.MMU.HDMA())
	g.MMU.AttachVideo(g.PPU)

	g.APU = apu.New(g.model)
	g.MMU.AttachSound(g.APU)

	g.Timer = g.MMU.Timer()
	g.Serial = g.MMU.Serial()
	g.Joypad = g.MMU.Joypad()

	g.CPU = cpu.NewCPU(g.MMU, g.Interrupts, g.Timer, g.PPU, g.APU, g.Serial, g.log)

	for addr, v := range startingAudioRegisters {
		g.MMU.Write(addr, v)
	}
	g.resetCPU()

	return nil
}

// Reset rebuilds the whole system as if the console's reset button had
// been pressed: every component goes back to its post-boot-ROM power-on
// state, exactly as New leaves it, except the cartridge's
// battery-backed RAM (if any) is preserved across the rebuild rather
// than reinitialised from the ROM's save data.
func (g *GameBoy) Reset() {
	saved := g.SaveRAM()
	// wire only fails if the ROM itself is malformed, which New already
	// validated once; a second failure here would mean rom was mutated
	// out from under the GameBoy, which callers must not do.
	if err := g.wire(g.rom); err != nil {
		panic(fmt.Sprintf("gameboy: reset: %v", err))
	}
	if saved != nil {
		g.LoadRAM(saved)
	}
}

// Shutdown flushes the cartridge's battery-backed external RAM (if
// any) to w as a checksummed save envelope and returns. It is a no-op
// that returns nil if the inserted mapper has no battery RAM. Shutdown
// does not touch the filesystem itself; the caller owns the save
// file's path and is responsible for placing the write atomically
// (see cmd/gbcore-bench's writeSave for the conventional
// temp-file-plus-rename pattern).
func (g *GameBoy) Shutdown(w io.Writer) error {
	ram := g.SaveRAM()
	if ram == nil {
		return nil
	}
	if err := cartridge.WriteSave(w, ram); err != nil {
		return fmt.Errorf("gameboy: shutdown: %w", err)
	}
	return nil
}

// resetCPU sets the CPU to the state it would be in immediately after
// a real boot ROM jumps to 0x100, for the configured model.
func (g *GameBoy) resetCPU() {
	regs := g.model.Registers()
	g.CPU.PC = 0x100
	g.CPU.SP = 0xFFFE
	g.CPU.A, g.CPU.F = regs[0], regs[1]
	g.CPU.B, g.CPU.C = regs[2], regs[3]
	g.CPU.D, g.CPU.E = regs[4], regs[5]
	g.CPU.H, g.CPU.L = regs[6], regs[7]
}

// Model returns the hardware model this GameBoy is emulating.
func (g *GameBoy) Model() types.Model { return g.model }

// Title returns the inserted cartridge's title.
func (g *GameBoy) Title() string { return g.MMU.Cartridge().Title() }

// Step runs a single CPU instruction (or halted/stopped tick) and
// every component it drives, returning the number of T-cycles it
// took.
func (g *GameBoy) Step() uint8 {
	return g.CPU.Step()
}

// RunFrame steps the system until the PPU has a complete frame ready
// and returns it. It always produces a frame even if the LCD is
// disabled or TicksPerFrame is exceeded by a single long-running
// instruction, so callers can drive it in a fixed 60Hz loop without
// special-casing either.
func (g *GameBoy) RunFrame() ppu.Frame {
	ticks := 0
	for !g.PPU.HasFrame() && ticks < TicksPerFrame*2 {
		ticks += int(g.CPU.Step())
	}
	g.PPU.ClearFrame()
	return g.PPU.CurrentFrame()
}

// AudioSamples returns the stereo float32 samples the APU has mixed
// since the last call.
func (g *GameBoy) AudioSamples() []float32 {
	return g.APU.AudioSamples()
}

// PressButton presses button on the joypad, requesting a joypad
// interrupt if the game is listening for it.
func (g *GameBoy) PressButton(button joypad.Button) {
	if g.Joypad.Press(button) {
		g.Interrupts.Request(interrupts.JoypadFlag)
	}
}

// ReleaseButton releases button on the joypad.
func (g *GameBoy) ReleaseButton(button joypad.Button) {
	g.Joypad.Release(button)
}

// SaveRAM returns the cartridge's battery-backed external RAM, or nil
// if the inserted mapper has none.
func (g *GameBoy) SaveRAM() []byte {
	if ramCtl, ok := g.MMU.Cartridge().Mapper.(cartridge.RAMController); ok {
		return ramCtl.SaveRAM()
	}
	return nil
}

// LoadRAM restores previously saved external RAM into the cartridge,
// if the inserted mapper supports it.
func (g *GameBoy) LoadRAM(data []byte) {
	if ramCtl, ok := g.MMU.Cartridge().Mapper.(cartridge.RAMController); ok {
		ramCtl.LoadRAM(data)
	}
}

// SaveState serialises the full machine state, suitable for exact
// resumption later via LoadState. It does not include cartridge RAM
// contents loaded at boot from an existing save file; use SaveRAM for
// that.
func (g *GameBoy) SaveState() []byte {
	s := types.NewState()
	g.CPU.Save(s)
	g.MMU.Save(s)
	g.PPU.Save(s)
	g.APU.Save(s)
	g.Interrupts.Save(s)
	g.Timer.Save(s)
	g.Serial.Save(s)
	s.Write8(g.Joypad.Register)
	s.Write8(g.Joypad.State)
	return s.Bytes()
}

// LoadState restores a machine state previously produced by SaveState.
// The components must have been constructed with the same model the
// state was saved from.
func (g *GameBoy) LoadState(raw []byte) {
	s := types.StateFromBytes(raw)
	g.CPU.Load(s)
	g.MMU.Load(s)
	g.PPU.Load(s)
	g.APU.Load(s)
	g.Interrupts.Load(s)
	g.Timer.Load(s)
	g.Serial.Load(s)
	g.Joypad.Register = s.Read8()
	g.Joypad.State = s.Read8()
}

// RegisterSnapshot is a read-only copy of the CPU's register file and
// ALU flags, as shown by a debugger.
type RegisterSnapshot struct {
	A, F             uint8
	BC, DE, HL       uint16
	SP, PC           uint16
	IE, IF           uint8
	Zero, Subtract   bool
	HalfCarry, Carry bool
}

// DebugSnapshot is a read-only copy of machine state suitable for a
// debugger to inspect; it never aliases live core memory, so a caller
// may hold onto it after the core has stepped further.
type DebugSnapshot struct {
	Registers RegisterSnapshot

	LCDC, STAT uint8
	LY, LYC    uint8
	SCX, SCY   uint8
	WX, WY     uint8
	VRAMBank   uint8
	WRAMBank   uint8
	PPUMode    int
}

// Snapshot takes a read-only copy of the CPU register file, ALU flags
// and the miscellaneous LCD/bank registers a debugger view needs. It
// does not include the disassembly or memory-inspector tables; those
// are derived from MMU.Read over whatever address range the caller is
// displaying, rather than duplicated here.
func (g *GameBoy) Snapshot() DebugSnapshot {
	f := g.CPU.F
	return DebugSnapshot{
		Registers: RegisterSnapshot{
			A: g.CPU.A, F: f,
			BC: uint16(g.CPU.B)<<8 | uint16(g.CPU.C),
			DE: uint16(g.CPU.D)<<8 | uint16(g.CPU.E),
			HL: uint16(g.CPU.H)<<8 | uint16(g.CPU.L),
			SP: g.CPU.SP, PC: g.CPU.PC,
			IE: g.Interrupts.Enable, IF: g.Interrupts.Flag,
			Zero:      f&0x80 != 0,
			Subtract:  f&0x40 != 0,
			HalfCarry: f&0x20 != 0,
			Carry:     f&0x10 != 0,
		},
		LCDC:     g.MMU.Read(types.LCDC),
		STAT:     g.MMU.Read(types.STAT),
		LY:       g.MMU.Read(types.LY),
		LYC:      g.MMU.Read(types.LYC),
		SCX:      g.MMU.Read(types.SCX),
		SCY:      g.MMU.Read(types.SCY),
		WX:       g.MMU.Read(types.WX),
		WY:       g.MMU.Read(types.WY),
		VRAMBank: g.PPU.VRAMBank(),
		WRAMBank: g.MMU.WRAMBank(),
		PPUMode:  g.PPU.Mode,
	}
}
