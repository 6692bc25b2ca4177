package types

import "fmt"

// HardwareRegisters is a lookup table of hardware registers, indexed by
// address ANDed with 0x007F. Unlike earlier revisions of this package,
// the table is owned by whichever component constructs it (the MMU)
// rather than living behind a package-level variable, so two emulator
// instances never share or clobber each other's register wiring.
type HardwareRegisters [0x80]*Hardware

// NewHardwareRegisters returns an empty, ready to use table.
func NewHardwareRegisters() *HardwareRegisters {
	return &HardwareRegisters{}
}

// Read returns the value of the hardware register for the given address.
// If no register is wired at the address, it returns 0xFF, matching
// open-bus behaviour for unmapped IO.
func (h *HardwareRegisters) Read(address uint16) uint8 {
	reg := h[address&0x007F]
	if reg == nil {
		return 0xFF
	}
	return reg.Read()
}

// Write writes value to the hardware register for the given address. If
// the hardware register is not registered, the write is silently dropped.
func (h *HardwareRegisters) Write(address uint16, value uint8) {
	reg := h[address&0x007F]
	if reg == nil {
		return
	}
	reg.Write(value)
}

// Register wires up get/set callbacks for a single hardware address.
func (h *HardwareRegisters) Register(address HardwareAddress, set func(v uint8), get func() uint8, opts ...HardwareOpt) {
	reg := &Hardware{address: address, set: set, get: get}
	for _, opt := range opts {
		opt(reg)
	}
	h[address&0x007F] = reg
}

// Hardware represents a single hardware register of the Game Boy. The
// hardware registers are used to control and read the state of the
// hardware.
type Hardware struct {
	address HardwareAddress
	set     func(v uint8)
	get     func() uint8

	writeHandler WriteHandler
}

// HardwareOpt configures a Hardware register at registration time.
type HardwareOpt func(*Hardware)

// WriteHandler wraps the underlying set call, letting a component
// observe or gate writes (e.g. to run side effects before the new
// value is committed).
type WriteHandler func(writeFn func())

// WithWriteHandler installs a WriteHandler for the register.
func WithWriteHandler(writeHandler func(writeFn func())) HardwareOpt {
	return func(h *Hardware) {
		h.writeHandler = writeHandler
	}
}

func (h *Hardware) Read() uint8 {
	if h.get != nil {
		return h.get()
	}
	panic(fmt.Sprintf("hardware: no read function for address 0x%04X", h.address))
}

func (h *Hardware) Write(value uint8) {
	if h.set == nil {
		panic(fmt.Sprintf("hardware: no write function for address 0x%04X", h.address))
	}
	if h.writeHandler != nil {
		h.writeHandler(func() { h.set(value) })
	} else {
		h.set(value)
	}
}

// NoRead is a convenience read function for write-only registers.
func NoRead() uint8 { return 0xFF }

// NoWrite is a convenience write function for read-only registers.
func NoWrite(uint8) {}
