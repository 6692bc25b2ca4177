// Package cartridge provides the Mapper interface and cartridge loader
// shared by the DMG and CGB memory map. A Cartridge wraps whichever
// Mapper its header selects and owns the ROM image plus any external
// RAM or real-time clock the mapper exposes.
package cartridge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/silverwren/gbcore/internal/logging"
)

// ErrShortROM is returned when a ROM image is too small to contain a
// valid header.
var ErrShortROM = errors.New("cartridge: rom image shorter than header region")

// ErrUnsupportedMapper is returned when a ROM declares a cartridge type
// this core has no Mapper implementation for.
type ErrUnsupportedMapper struct {
	Type Type
}

func (e *ErrUnsupportedMapper) Error() string {
	return fmt.Sprintf("cartridge: unsupported mapper type %s (0x%02X)", e.Type, uint8(e.Type))
}

// Cartridge wraps a Mapper with the parsed header it was built from.
type Cartridge struct {
	Mapper
	header *Header
}

// Header returns the cartridge's parsed header.
func (c *Cartridge) Header() *Header { return c.header }

// Title returns the cartridge's title as stored in its header, with the
// trailing NUL padding removed.
func (c *Cartridge) Title() string { return strings.TrimRight(c.header.Title, "\x00") }

// New parses header and RAM/RTC-controller metadata out of rom and
// constructs the Mapper its cartridge type selects. It never panics;
// a malformed header or unrecognised mapper byte is reported as an
// error so a host application can reject the file gracefully.
func New(rom []byte, log logging.Logger) (*Cartridge, error) {
	if log == nil {
		log = logging.NewNull()
	}
	if len(rom) < 0x150 {
		return nil, ErrShortROM
	}

	header := parseHeader(rom[0x100:0x150])
	if !header.GlobalChecksumValid(rom) {
		log.Warnf("cartridge %q: global checksum mismatch, continuing anyway", header.Title)
	}

	cart := &Cartridge{header: &header}
	switch header.CartridgeType {
	case ROM:
		cart.Mapper = NewROMCartridge(rom, &header)
	case MBC1, MBC1RAM, MBC1RAMBATT:
		cart.Mapper = NewMemoryBankedCartridge1(rom, &header)
	case MBC2, MBC2BATT:
		cart.Mapper = NewMemoryBankedCartridge2(rom, &header)
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		cart.Mapper = NewMemoryBankedCartridge3(rom, &header)
	case MBC5, MBC5RAM, MBC5RAMBATT:
		cart.Mapper = NewMemoryBankedCartridge5(rom, &header, false)
	case MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		cart.Mapper = NewMemoryBankedCartridge5(rom, &header, true)
	default:
		return nil, &ErrUnsupportedMapper{Type: header.CartridgeType}
	}

	log.Infof("loaded cartridge %q (%s, %s)", header.Title, header.CartridgeType, header.Hardware())
	return cart, nil
}

// NewEmpty returns a cartridge with no inserted ROM: a blank 32KiB
// image that reads back as 0xFF everywhere, matching the bus state
// when no cartridge is present.
func NewEmpty() *Cartridge {
	rom := make([]byte, 0x8000)
	for i := range rom {
		rom[i] = 0xFF
	}
	header := Header{CartridgeType: ROM}
	return &Cartridge{
		Mapper: NewROMCartridge(rom, &header),
		header: &header,
	}
}
