package mmu

import "github.com/silverwren/gbcore/internal/types"

// TransferMode selects between a one-shot general-purpose DMA transfer
// (all blocks copied immediately) and an HBlank-gated transfer (one
// block copied per HBlank period), both CGB-only VRAM-DMA features.
type TransferMode uint8

const (
	GDMAMode TransferMode = iota
	HDMAMode
)

// HDMA implements the CGB VRAM-DMA controller addressed through
// HDMA1-HDMA5 (0xFF51-0xFF55): 16-byte-block transfers from anywhere
// in the address space into VRAM.
type HDMA struct {
	mode         TransferMode
	transferring bool
	copying      bool

	source      uint16
	destination uint16
	blocks      uint8

	bus IOBus
}

// NewHDMA returns a new HDMA controller that reads its source blocks
// and writes its VRAM destination through bus (ordinarily the owning
// MMU itself).
func NewHDMA(bus IOBus) *HDMA {
	return &HDMA{blocks: 1, bus: bus}
}

// Register wires HDMA1-HDMA5 into hw. HDMA1-4 only ever accept writes
// (reads return 0xFF, matching real hardware); HDMA5 additionally
// reports remaining-blocks/active status on read.
func (h *HDMA) Register(hw *types.HardwareRegisters) {
	hw.Register(types.HDMA1, func(v uint8) { h.source = h.source&0x00FF | uint16(v)<<8 }, types.NoRead)
	hw.Register(types.HDMA2, func(v uint8) { h.source = h.source&0xFF00 | uint16(v&0xF0) }, types.NoRead)
	hw.Register(types.HDMA3, func(v uint8) { h.destination = h.destination&0x00FF | uint16(v&0x1F)<<8 }, types.NoRead)
	hw.Register(types.HDMA4, func(v uint8) { h.destination = h.destination&0xFF00 | uint16(v&0xF0) }, types.NoRead)
	hw.Register(types.HDMA5, h.writeHDMA5, h.readHDMA5)
}

func (h *HDMA) readHDMA5() uint8 {
	if !h.transferring {
		return 0xFF
	}
	return (h.blocks - 1) & 0x7F
}

func (h *HDMA) writeHDMA5(value uint8) {
	if h.mode == HDMAMode && h.copying {
		if value>>7 == uint8(GDMAMode) {
			h.transferring = false
			h.copying = false
			return
		}
		h.mode = TransferMode(value >> 7)
		h.blocks = value&0x7F + 1
		return
	}

	h.mode = TransferMode(value >> 7)
	h.blocks = value&0x7F + 1
	h.transferring = true

	if h.mode == GDMAMode {
		h.copying = true
	}
}

// Tick copies a single byte from source to destination when a transfer
// is in progress. General-purpose transfers run every tick until their
// block count is exhausted; HBlank transfers only run while copying is
// true (armed by SetHBlank once per HBlank period).
func (h *HDMA) Tick() {
	if !h.copying {
		return
	}
	h.bus.Write(0x8000+h.destination&0x1FFF, h.bus.Read(h.source))
	h.destination++
	h.source++

	if h.destination&0xF == 0 {
		h.blocks--
		if h.blocks == 0 {
			h.transferring = false
			h.copying = false
			h.blocks = 0x80
		}
		if h.mode == HDMAMode {
			h.copying = false
		}
	}
}

// IsCopying reports whether a transfer is actively copying this tick.
func (h *HDMA) IsCopying() bool { return h.copying }

// IsTransferring reports whether a transfer, in either mode, has been
// started and still has blocks left to copy.
func (h *HDMA) IsTransferring() bool { return h.transferring }

// SetHBlank arms one block of an HDMA-mode transfer; the PPU calls this
// once per HBlank entry.
func (h *HDMA) SetHBlank() {
	if h.mode == HDMAMode && h.transferring {
		h.copying = true
	}
}

var _ types.Stater = (*HDMA)(nil)

func (h *HDMA) Load(s *types.State) {
	h.mode = TransferMode(s.Read8())
	h.transferring = s.ReadBool()
	h.copying = s.ReadBool()
	h.source = s.Read16()
	h.destination = s.Read16()
	h.blocks = s.Read8()
}

func (h *HDMA) Save(s *types.State) {
	s.Write8(uint8(h.mode))
	s.WriteBool(h.transferring)
	s.WriteBool(h.copying)
	s.Write16(h.source)
	s.Write16(h.destination)
	s.Write8(h.blocks)
}
