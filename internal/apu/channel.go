package apu

import (
	"github.com/silverwren/gbcore/internal/types"
)

// channel is the state shared by all four sound channels: a frequency
// timer that reloads and fires a wave-generation step on expiry, and a
// length counter that silences the channel when it reaches zero while
// length counting is enabled. Each concrete channel type wires
// reloadFrequencyTimer/stepWaveGeneration to its own frequency-derived
// reload value and waveform-advance logic.
type channel struct {
	enabled    bool
	dacEnabled bool

	lengthCounter        uint
	frequencyTimer       uint16
	lengthCounterEnabled bool

	reloadFrequencyTimer func()
	stepWaveGeneration    func()
}

func newChannel() *channel {
	return &channel{}
}

func (c *channel) step() {
	c.frequencyTimer--
	if c.frequencyTimer == 0 {
		c.reloadFrequencyTimer()
		c.stepWaveGeneration()
	}
}

func (c *channel) isEnabled() bool {
	return c.enabled && c.dacEnabled
}

func (c *channel) lengthStep() {
	if c.lengthCounterEnabled && c.lengthCounter > 0 {
		c.lengthCounter--
		c.enabled = c.lengthCounter > 0
	}
}

// volumeChannel adds the volume envelope (NRx2-style) shared by
// channels 1, 2 and 4.
type volumeChannel struct {
	*channel

	startingVolume  uint8
	envelopeAddMode bool
	period          uint8

	volumeEnvelopeTimer      uint8
	currentVolume            uint8
	volumeEnvelopeIsUpdating bool
}

func newVolumeChannel(c *channel) *volumeChannel {
	return &volumeChannel{channel: c}
}

func (v *volumeChannel) volumeStep() {
	if v.period == 0 {
		return
	}
	if v.volumeEnvelopeTimer > 0 {
		v.volumeEnvelopeTimer--
		if v.volumeEnvelopeTimer == 0 {
			v.volumeEnvelopeTimer = v.period
			if v.currentVolume < 0xF && v.envelopeAddMode || v.currentVolume > 0 && !v.envelopeAddMode {
				if v.envelopeAddMode {
					v.currentVolume++
				} else {
					v.currentVolume--
				}
			} else {
				v.volumeEnvelopeIsUpdating = false
			}
		}
	}
}

// setNRx2 implements the shared volume-envelope register (NR12/NR22/NR42),
// including the "zombie mode" glitch triggered by writing it while the
// channel is already enabled.
func (v *volumeChannel) setNRx2(v2 uint8) {
	envelopeAddMode := v2&types.Bit3 != 0

	if v.enabled {
		if v.period == 0 && v.volumeEnvelopeIsUpdating || !v.envelopeAddMode {
			v.currentVolume++
		}
		if envelopeAddMode != v.envelopeAddMode {
			v.currentVolume = 0x10 - v.currentVolume
		}
		v.currentVolume &= 0x0F
	}

	v.startingVolume = v2 >> 4
	v.envelopeAddMode = envelopeAddMode
	v.period = v2 & 0x7
	v.dacEnabled = v2&0xF8 > 0
	if !v.dacEnabled {
		v.enabled = false
	}
}

func (v *volumeChannel) getNRx2() uint8 {
	b := (v.startingVolume << 4) | v.period
	if v.envelopeAddMode {
		b |= types.Bit3
	}
	return b
}

func (v *volumeChannel) initVolumeEnvelope() {
	v.volumeEnvelopeTimer = v.period
	v.currentVolume = v.startingVolume
	v.volumeEnvelopeIsUpdating = true
}
