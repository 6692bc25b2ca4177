// Package serial emulates the Game Boy's serial port (the link cable).
// With nothing attached, transfers using the internal clock still run
// to completion, shifting in 1 bits, matching real hardware with an
// unplugged cable.
package serial

import (
	"github.com/silverwren/gbcore/internal/interrupts"
	"github.com/silverwren/gbcore/internal/types"
)

// Device is a peripheral that can be attached to the serial port, such
// as a second Controller (link cable) or a printer.
type Device interface {
	// Receive delivers a single bit shifted out by the other end.
	Receive(bit bool)
	// Send returns the next bit this device is shifting out.
	Send() bool
}

// Controller is the Game Boy's serial port.
type Controller struct {
	data    uint8 // SB, 0xFF01
	control uint8 // SC, 0xFF02

	transferring bool
	bitsShifted  uint8
	lastEdge     bool

	device Device
	irq    *interrupts.Service
}

// NewController returns a new serial controller and wires SB/SC into hw.
func NewController(irq *interrupts.Service, hw *types.HardwareRegisters) *Controller {
	c := &Controller{irq: irq, control: 0x7E}

	hw.Register(types.SB, func(v uint8) {
		c.data = v
	}, func() uint8 {
		return c.data
	})
	hw.Register(types.SC, func(v uint8) {
		c.control = v | 0x7E
		if c.control&types.Bit7 != 0 {
			c.transferring = true
			c.bitsShifted = 0
		}
	}, func() uint8 {
		return c.control | 0x7E
	})

	return c
}

// Attach connects d as the far end of the link cable.
func (c *Controller) Attach(d Device) {
	c.device = d
}

func (c *Controller) internalClock() bool {
	return c.control&types.Bit0 != 0
}

// Tick advances the serial clock. div is the timer's internal divider;
// the internal serial clock is derived from one of its bits, the same
// way the real shift register is gated off the main timer circuit.
func (c *Controller) Tick(div uint16) {
	if !c.transferring || !c.internalClock() {
		c.lastEdge = false
		return
	}

	edge := div&(1<<8) != 0
	if edge && !c.lastEdge {
		outBit := c.data&types.Bit7 != 0
		var inBit bool
		if c.device != nil {
			inBit = c.device.Send()
			c.device.Receive(outBit)
		} else {
			inBit = true
		}

		c.data = c.data<<1 | boolToBit(inBit)
		c.bitsShifted++

		if c.bitsShifted == 8 {
			c.transferring = false
			c.control &^= types.Bit7
			c.irq.Request(interrupts.SerialFlag)
		}
	}
	c.lastEdge = edge
}

// Receive implements Device for the far end of a Controller-to-Controller link.
func (c *Controller) Receive(bit bool) {
	c.data = c.data<<1 | boolToBit(bit)
}

// Send implements Device for the far end of a Controller-to-Controller link.
func (c *Controller) Send() bool {
	return c.data&types.Bit7 != 0
}

func boolToBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

var _ types.Stater = (*Controller)(nil)

func (c *Controller) Load(s *types.State) {
	c.data = s.Read8()
	c.control = s.Read8()
	c.transferring = s.ReadBool()
	c.bitsShifted = s.Read8()
}

func (c *Controller) Save(s *types.State) {
	s.Write8(c.data)
	s.Write8(c.control)
	s.WriteBool(c.transferring)
	s.Write8(c.bitsShifted)
}
