// Package timer provides an implementation of the Game Boy timer. It
// generates interrupts at a frequency configured through the TAC
// register and the free-running DIV divider.
package timer

import (
	"github.com/silverwren/gbcore/internal/interrupts"
	"github.com/silverwren/gbcore/internal/types"
)

// timerBits maps the low two bits of TAC to the DIV bit whose falling
// edge drives a TIMA increment.
var timerBits = [4]uint8{9, 3, 5, 7}

// Controller is a timer controller. It generates interrupts at the
// frequency selected by TAC.
type Controller struct {
	div uint16 // free-running 16-bit divider; DIV is div>>8

	tima uint8
	tma  uint8
	tac  uint8

	enabled     bool
	selectedBit uint8

	// reloadCountdown counts the Tick calls (T-cycles) remaining before
	// an overflowed TIMA is reloaded from TMA and the timer interrupt is
	// requested; it starts at 4, one machine cycle. -1 means no reload
	// is pending.
	reloadCountdown int8
	reloadCancelled bool

	irq *interrupts.Service
}

// NewController returns a new timer controller and wires its registers
// into hw.
func NewController(irq *interrupts.Service, hw *types.HardwareRegisters) *Controller {
	c := &Controller{
		irq:             irq,
		div:             0xABCC,
		reloadCountdown: -1,
	}

	hw.Register(types.DIV, func(uint8) {
		c.setDiv(0)
	}, func() uint8 {
		return uint8(c.div >> 8)
	})
	hw.Register(types.TIMA, func(v uint8) {
		if c.reloadCountdown >= 0 {
			c.reloadCancelled = true
		}
		c.tima = v
	}, func() uint8 {
		return c.tima
	})
	hw.Register(types.TMA, func(v uint8) {
		c.tma = v
	}, func() uint8 {
		return c.tma
	})
	hw.Register(types.TAC, func(v uint8) {
		c.setTAC(v)
	}, func() uint8 {
		return c.tac | 0xF8
	})

	return c
}

// bitHigh reports whether the DIV bit selected by TAC is currently 1
// and the timer is enabled.
func (c *Controller) bitHigh() bool {
	return c.enabled && c.div&(1<<timerBits[c.selectedBit]) != 0
}

// setDiv resets the internal divider, triggering a falling-edge TIMA
// increment if the selected bit was high at the time of the reset.
func (c *Controller) setDiv(_ uint16) {
	wasHigh := c.bitHigh()
	c.div = 0
	if wasHigh {
		c.incrementTIMA()
	}
}

// setTAC updates TAC, applying the documented glitch where disabling
// the timer (or switching to a faster bit that is already high) while
// the previously selected bit is high causes a spurious TIMA increment.
func (c *Controller) setTAC(v uint8) {
	wasHigh := c.bitHigh()

	c.tac = v & 0x07
	c.enabled = v&types.Bit2 != 0
	c.selectedBit = v & 0x03

	if wasHigh && !c.bitHigh() {
		c.incrementTIMA()
	}
}

// Tick advances the timer by one system clock edge (one T-cycle at
// normal speed; the CPU calls this twice as often while in double
// speed mode, which is exactly how the real divider free-runs faster).
func (c *Controller) Tick() {
	wasHigh := c.bitHigh()
	c.div++
	if wasHigh && !c.bitHigh() {
		c.incrementTIMA()
	}

	if c.reloadCountdown >= 0 {
		c.reloadCountdown--
		if c.reloadCountdown < 0 {
			if !c.reloadCancelled {
				c.tima = c.tma
				c.irq.Request(interrupts.TimerFlag)
			}
			c.reloadCancelled = false
		}
	}
}

func (c *Controller) incrementTIMA() {
	c.tima++
	if c.tima == 0 {
		c.reloadCountdown = 4
		c.reloadCancelled = false
	}
}

// Div returns the full 16-bit internal divider, used by the serial
// controller to derive its own clock edges.
func (c *Controller) Div() uint16 {
	return c.div
}

var _ types.Stater = (*Controller)(nil)

func (c *Controller) Load(s *types.State) {
	c.div = s.Read16()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.tac = s.Read8()
	c.enabled = s.ReadBool()
	c.selectedBit = s.Read8()
	c.reloadCountdown = int8(s.Read8())
}

func (c *Controller) Save(s *types.State) {
	s.Write16(c.div)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)
	s.WriteBool(c.enabled)
	s.Write8(c.selectedBit)
	s.Write8(uint8(c.reloadCountdown))
}
