package ppu

import "github.com/silverwren/gbcore/internal/types"

// DMA implements the OAM-DMA controller at 0xFF46: writing a value N
// starts a transfer of 160 bytes from N*0x100 into OAM, spread over 160
// M-cycles (640 T-cycles). The PPU drives Tick and supplies the read
// (from the wider bus) and write (into its own OAM) callbacks, since
// the OAM window itself is locked to the CPU for the duration.
type DMA struct {
	enabled    bool
	restarting bool

	timer  uint16
	source uint16
	value  uint8
}

// NewDMA returns a new, idle OAM-DMA controller.
func NewDMA() *DMA {
	return &DMA{}
}

// Register wires the DMA register (0xFF46) into hw.
func (d *DMA) Register(hw *types.HardwareRegisters) {
	hw.Register(types.DMA, d.write, d.read)
}

func (d *DMA) read() uint8 { return d.value }

func (d *DMA) write(value uint8) {
	d.value = value
	d.source = uint16(value) << 8
	d.timer = 0

	d.restarting = d.enabled
	d.enabled = true
}

// Tick advances the transfer by one T-cycle, copying one source byte
// into OAM every 4 T-cycles once the initial 4-cycle start delay has
// elapsed. read fetches a byte from the full bus; write stores a byte
// into OAM at a 0xFE00-relative offset.
func (d *DMA) Tick(read func(address uint16) uint8, write func(offset uint16, value uint8)) {
	if !d.enabled {
		return
	}

	d.timer++
	if d.timer <= 4 {
		return
	}
	d.restarting = false

	offset := (d.timer - 4) >> 2
	if offset >= 160 {
		d.enabled = false
		d.timer = 0
		return
	}
	src := d.source + offset
	if src >= 0xFE00 {
		src -= 0x2000
	}
	write(offset, read(src))
}

// IsTransferring reports whether OAM is currently locked out from CPU
// access by an in-progress (or just-restarted) transfer.
func (d *DMA) IsTransferring() bool {
	return d.timer > 4 || d.restarting
}

var _ types.Stater = (*DMA)(nil)

func (d *DMA) Load(s *types.State) {
	d.enabled = s.ReadBool()
	d.restarting = s.ReadBool()
	d.timer = s.Read16()
	d.source = s.Read16()
	d.value = s.Read8()
}

func (d *DMA) Save(s *types.State) {
	s.WriteBool(d.enabled)
	s.WriteBool(d.restarting)
	s.Write16(d.timer)
	s.Write16(d.source)
	s.Write8(d.value)
}
