// Package ppu implements the Game Boy's picture processing unit: the
// scanline state machine, VRAM/OAM, background/window/sprite
// rendering, and the DMG and CGB palette systems.
package ppu

import (
	"github.com/silverwren/gbcore/internal/interrupts"
	"github.com/silverwren/gbcore/internal/ppu/lcd"
	"github.com/silverwren/gbcore/internal/ppu/palette"
	"github.com/silverwren/gbcore/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

// Frame is a fully rendered, ready-to-display frame of RGBA8 pixels
// (alpha always 0xFF; the core has no notion of transparency, but a
// host compositing the frame into a window surface expects a 4-channel
// buffer).
type Frame [ScreenHeight][ScreenWidth][4]uint8

// HBlankNotifier is implemented by the VRAM-DMA controller: the PPU
// calls SetHBlank once per HBlank entry so an armed HDMA-mode transfer
// can copy its next block.
type HBlankNotifier interface {
	SetHBlank()
}

// Bus is the wider memory bus the PPU reads cartridge/WRAM bytes from
// during an OAM-DMA transfer.
type Bus interface {
	Read(address uint16) uint8
}

// PPU renders the Game Boy/GBC display. It owns VRAM, OAM, the
// LCDC/STAT/palette registers, and the scanline timing state machine.
type PPU struct {
	*lcd.Controller
	*lcd.Status

	ly        uint8
	lyc       uint8
	scy, scx  uint8
	wy, wx    uint8
	windowLine uint8

	bgp, obp0, obp1 palette.DMGPalette

	cgbBG, cgbOBJ     *palette.CGBPalette
	compatBG, compatOBJ *palette.CGBPalette

	vram     [2][0x2000]uint8
	vramBank uint8

	oam *OAM
	dma *DMA

	isGBC bool
	irq   *interrupts.Service
	hdma  HBlankNotifier
	bus   Bus

	currentCycle      uint16
	statInterruptLine bool

	scanlineRows Frame
	frame        Frame
	frameReady   bool
	Debug        struct {
		DisableBackground, DisableWindow, DisableSprites bool
	}
}

// New constructs a PPU. HardwareRegisters wiring happens in Attach,
// once the owning MMU/HDMA are available.
func New(irq *interrupts.Service, isGBC bool) *PPU {
	p := &PPU{
		Controller: lcd.NewController(),
		Status:     lcd.NewStatus(),
		oam:        NewOAM(),
		dma:        NewDMA(),
		irq:        irq,
		isGBC:      isGBC,
		cgbBG:      palette.NewCGBPallette(),
		cgbOBJ:     palette.NewCGBPallette(),
		compatBG:   palette.NewCGBPallette(),
		compatOBJ:  palette.NewCGBPallette(),
	}
	return p
}

// Attach wires the PPU's registers into hw and records the bus/HDMA
// collaborators it needs at runtime. Must be called once, before the
// first Tick.
func (p *PPU) Attach(hw *types.HardwareRegisters, bus Bus, hdma HBlankNotifier) {
	p.bus = bus
	p.hdma = hdma

	hw.Register(types.LCDC, p.writeLCDC, p.Controller.Read2)
	hw.Register(types.STAT, p.writeSTAT, p.Status.Read2)
	hw.Register(types.SCY, func(v uint8) { p.scy = v }, func() uint8 { return p.scy })
	hw.Register(types.SCX, func(v uint8) { p.scx = v }, func() uint8 { return p.scx })
	hw.Register(types.LY, types.NoWrite, func() uint8 { return p.ly })
	hw.Register(types.LYC, p.writeLYC, func() uint8 { return p.lyc })
	hw.Register(types.BGP, func(v uint8) { p.bgp = palette.ByteToPalette(v) }, func() uint8 { return p.bgp.ToByte() })
	hw.Register(types.OBP0, func(v uint8) { p.obp0 = palette.ByteToPalette(v) }, func() uint8 { return p.obp0.ToByte() })
	hw.Register(types.OBP1, func(v uint8) { p.obp1 = palette.ByteToPalette(v) }, func() uint8 { return p.obp1.ToByte() })
	hw.Register(types.WY, func(v uint8) { p.wy = v }, func() uint8 { return p.wy })
	hw.Register(types.WX, func(v uint8) { p.wx = v }, func() uint8 { return p.wx })
	p.dma.Register(hw)

	if p.isGBC {
		hw.Register(types.BCPS, p.cgbBG.SetIndex, p.cgbBG.GetIndex)
		hw.Register(types.BCPD, p.writeBCPD, p.readBCPD)
		hw.Register(types.OCPS, p.cgbOBJ.SetIndex, p.cgbOBJ.GetIndex)
		hw.Register(types.OCPD, p.writeOCPD, p.readOCPD)
	}
}

// writeLCDC updates LCDC and handles the screen being turned on or
// off: turning it off resets LY and mode to the power-on state (real
// hardware only allows this during VBlank); turning it back on resets
// the dot counter and re-evaluates LYC/STAT immediately.
func (p *PPU) writeLCDC(v uint8) {
	wasEnabled := p.Enabled
	p.Controller.Write2(v)

	if wasEnabled && !p.Enabled {
		p.ly = 0
		p.currentCycle = 0
		p.Mode = lcd.HBlank
		p.scanlineRows = Frame{}
	} else if !wasEnabled && p.Enabled {
		p.currentCycle = 0
		p.Mode = lcd.OAM
		p.checkLYC()
		p.checkStatInterrupts(false)
	}
}

func (p *PPU) writeLYC(v uint8) {
	p.lyc = v
	p.checkLYC()
	p.checkStatInterrupts(false)
}

func (p *PPU) writeSTAT(v uint8) {
	p.Status.Write(lcd.StatusRegister, v)
	p.checkStatInterrupts(false)
}

func (p *PPU) paletteRAMUnlocked() bool { return p.Mode != lcd.VRAM }

func (p *PPU) writeBCPD(v uint8) {
	if p.paletteRAMUnlocked() {
		p.cgbBG.Write(v)
	}
}
func (p *PPU) readBCPD() uint8 {
	if p.paletteRAMUnlocked() {
		return p.cgbBG.Read()
	}
	return 0xFF
}
func (p *PPU) writeOCPD(v uint8) {
	if p.paletteRAMUnlocked() {
		p.cgbOBJ.Write(v)
	}
}
func (p *PPU) readOCPD() uint8 {
	if p.paletteRAMUnlocked() {
		return p.cgbOBJ.Read()
	}
	return 0xFF
}

// SetVRAMBank selects the active VRAM bank (0 or 1). CGB-only; ignored
// by the DMG MMU path since VBK is never registered there.
func (p *PPU) SetVRAMBank(bank uint8) { p.vramBank = bank & 0x1 }

// VRAMBank returns the currently selected VRAM bank.
func (p *PPU) VRAMBank() uint8 { return p.vramBank }

func (p *PPU) vramUnlocked() bool { return p.Mode != lcd.VRAM }
func (p *PPU) oamUnlocked() bool  { return p.Mode != lcd.OAM && p.Mode != lcd.VRAM && !p.dma.IsTransferring() }

// Read implements mmu.Video for the VRAM (0x8000-0x9FFF) and OAM
// (0xFE00-0xFE9F) windows.
func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= 0x8000 && address < 0xA000:
		if !p.vramUnlocked() {
			return 0xFF
		}
		return p.vram[p.vramBank][address-0x8000]
	case address >= 0xFE00 && address < 0xFEA0:
		if !p.oamUnlocked() {
			return 0xFF
		}
		return p.oam.Read(address - 0xFE00)
	}
	return 0xFF
}

// Write implements mmu.Video for the VRAM and OAM windows.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= 0x8000 && address < 0xA000:
		if p.vramUnlocked() {
			p.vram[p.vramBank][address-0x8000] = value
		}
	case address >= 0xFE00 && address < 0xFEA0:
		if p.oamUnlocked() {
			p.oam.Write(address-0xFE00, value)
		}
	}
}

// tileByte reads a raw VRAM byte from an explicit bank, bypassing the
// mode-based lock (used internally by rendering and OAM-DMA, which are
// not subject to the CPU's VRAM lockout).
func (p *PPU) tileByte(bank uint8, offset uint16) uint8 { return p.vram[bank&0x1][offset&0x1FFF] }

// checkLYC updates the coincidence flag from LY and LYC. It requests no
// interrupt itself; checkStatInterrupts does that.
func (p *PPU) checkLYC() {
	p.Status.Coincidence = p.ly == p.lyc
}

// checkStatInterrupts requests the LCD STAT interrupt on the rising
// edge of any of its four interrupt sources.
func (p *PPU) checkStatInterrupts(vblankEntry bool) {
	line := (p.Status.Coincidence && p.Status.CoincidenceInterrupt) ||
		(p.Mode == lcd.HBlank && p.Status.HBlankInterrupt) ||
		(p.Mode == lcd.VBlank && p.Status.VBlankInterrupt) ||
		(p.Mode == lcd.OAM && p.Status.OAMInterrupt) ||
		(vblankEntry && p.Status.OAMInterrupt)

	if line && !p.statInterruptLine {
		p.irq.Request(interrupts.LCDFlag)
	}
	p.statInterruptLine = line
}

// HasFrame reports whether a new frame has been completed since the
// last ClearFrame.
func (p *PPU) HasFrame() bool { return p.frameReady }

// CurrentFrame returns the most recently completed frame.
func (p *PPU) CurrentFrame() Frame { return p.frame }

// ClearFrame acknowledges delivery of the current frame.
func (p *PPU) ClearFrame() { p.frameReady = false }

var hblankCycles = [8]uint16{204, 200, 200, 200, 200, 196, 196, 196}

// Tick advances the PPU by one T-cycle.
func (p *PPU) Tick() {
	p.dma.Tick(p.bus.Read, func(offset uint16, v uint8) { p.oam.Write(offset, v) })

	if !p.Enabled {
		return
	}

	p.currentCycle++
	switch p.Mode {
	case lcd.OAM:
		if p.currentCycle == 80 {
			p.currentCycle = 0
			p.Mode = lcd.VRAM
		}
	case lcd.VRAM:
		if p.currentCycle == 172 {
			p.currentCycle = 0
			p.Mode = lcd.HBlank
			if p.isGBC && p.hdma != nil {
				p.hdma.SetHBlank()
			}
			p.checkStatInterrupts(false)
			p.renderScanline()
		}
	case lcd.HBlank:
		if p.currentCycle == hblankCycles[p.scx&0x7] {
			p.currentCycle = 0
			p.ly++
			p.checkLYC()

			if p.ly == 144 {
				p.Mode = lcd.VBlank
				p.checkStatInterrupts(true)
				p.irq.Request(interrupts.VBlankFlag)
				p.frame = p.preparedFrame()
				p.frameReady = true
			} else {
				p.Mode = lcd.OAM
				p.checkStatInterrupts(false)
			}
		}
	case lcd.VBlank:
		if p.currentCycle == 456 {
			p.currentCycle = 0
			p.ly++
			p.checkLYC()
			p.checkStatInterrupts(false)

			if p.ly >= 154 {
				p.ly = 0
				p.windowLine = 0
				p.Mode = lcd.OAM
				p.checkLYC()
				p.checkStatInterrupts(false)
			}
		}
	}
}

// preparedFrame returns the scanline buffer accumulated by
// renderScanline over the last 144 HBlank entries.
func (p *PPU) preparedFrame() Frame { return p.scanlineRows }

// LoadCompatibilityPalette looks up a built-in colourisation entry for
// a DMG cartridge running in CGB compatibility mode, the same table
// the CGB boot ROM consults by title hash. The real boot ROM derives
// its hash from the title bytes and a per-entry disambiguation value;
// this uses a simplified sum-of-title-bytes hash, since the table here
// only carries a handful of entries and an exact reproduction of the
// boot ROM's hash isn't load-bearing for emulation correctness.
func (p *PPU) LoadCompatibilityPalette(title string) {
	var hash uint8
	for i := 0; i < len(title) && i < 16; i++ {
		hash += title[i]
	}
	entry, ok := palette.GetCompatibilityPaletteEntry(uint16(hash) << 8)
	if !ok {
		entry = palette.CompatibilityPalettes[0x00][0x03]
	}
	for i, c := range entry.BG {
		p.compatBG.SetColour(0, uint8(i), [3]uint8(c))
	}
	objPal := entry.OBJ0
	for i, c := range objPal {
		p.compatOBJ.SetColour(0, uint8(i), [3]uint8(c))
	}
	objPal = entry.OBJ1
	for i, c := range objPal {
		p.compatOBJ.SetColour(1, uint8(i), [3]uint8(c))
	}
	p.cgbBG = p.compatBG
	p.cgbOBJ = p.compatOBJ
}

var _ types.Stater = (*PPU)(nil)

func (p *PPU) Load(s *types.State) {
	p.Controller.Write2(s.Read8())
	p.Status.CoincidenceInterrupt = s.ReadBool()
	p.Status.OAMInterrupt = s.ReadBool()
	p.Status.VBlankInterrupt = s.ReadBool()
	p.Status.HBlankInterrupt = s.ReadBool()
	p.Status.Coincidence = s.ReadBool()
	p.Status.Mode = lcd.Mode(s.Read8())
	p.ly = s.Read8()
	p.lyc = s.Read8()
	p.scy = s.Read8()
	p.scx = s.Read8()
	p.wy = s.Read8()
	p.wx = s.Read8()
	p.windowLine = s.Read8()
	p.bgp = palette.ByteToPalette(s.Read8())
	p.obp0 = palette.ByteToPalette(s.Read8())
	p.obp1 = palette.ByteToPalette(s.Read8())
	p.vramBank = s.Read8()
	for i := range p.vram {
		s.ReadData(p.vram[i][:])
	}
	for i := range p.oam.Sprites {
		sp := &p.oam.Sprites[i]
		sp.Y, sp.X, sp.Tile, sp.Attr = s.Read8(), s.Read8(), s.Read8(), s.Read8()
	}
	p.currentCycle = s.Read16()
	p.statInterruptLine = s.ReadBool()
	p.cgbBG.Load(s)
	p.cgbOBJ.Load(s)
	p.dma.Load(s)
}

func (p *PPU) Save(s *types.State) {
	s.Write8(p.Controller.Read2())
	s.WriteBool(p.Status.CoincidenceInterrupt)
	s.WriteBool(p.Status.OAMInterrupt)
	s.WriteBool(p.Status.VBlankInterrupt)
	s.WriteBool(p.Status.HBlankInterrupt)
	s.WriteBool(p.Status.Coincidence)
	s.Write8(uint8(p.Status.Mode))
	s.Write8(p.ly)
	s.Write8(p.lyc)
	s.Write8(p.scy)
	s.Write8(p.scx)
	s.Write8(p.wy)
	s.Write8(p.wx)
	s.Write8(p.windowLine)
	s.Write8(p.bgp.ToByte())
	s.Write8(p.obp0.ToByte())
	s.Write8(p.obp1.ToByte())
	s.Write8(p.vramBank)
	for i := range p.vram {
		s.WriteData(p.vram[i][:])
	}
	for _, sp := range p.oam.Sprites {
		s.Write8(sp.Y)
		s.Write8(sp.X)
		s.Write8(sp.Tile)
		s.Write8(sp.Attr)
	}
	s.Write16(p.currentCycle)
	s.WriteBool(p.statInterruptLine)
	p.cgbBG.Save(s)
	p.cgbOBJ.Save(s)
	p.dma.Save(s)
}
