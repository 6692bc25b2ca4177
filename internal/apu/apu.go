// Package apu implements the Game Boy's audio processing unit: four
// sound channels (two pulse, one wave, one noise) mixed down to
// stereo float samples through NR50/NR51, and a DIV-derived frame
// sequencer that drives each channel's length, envelope and sweep
// clocks.
package apu

import (
	"github.com/silverwren/gbcore/internal/types"
)

const (
	// sampleRate is the rate, in Hz, at which mixed stereo samples are
	// appended to the output ring. It divides the 4.19MHz T-cycle clock
	// evenly, unlike the host's actual audio device rate, which a
	// resampling collaborator downstream is expected to handle.
	sampleRate           = 32768
	samplePeriod         = 4194304 / sampleRate
	frameSequencerRate   = 512
	frameSequencerPeriod = 4194304 / frameSequencerRate

	// ringCapacity bounds the sample ring so a host that stops draining
	// AudioSamples can't make the APU grow without limit; oldest samples
	// are dropped to make room for new ones once it fills.
	ringCapacity = 8192
)

// APU mixes four channels into a stereo sample stream. It implements
// mmu.IOBus for the 0xFF10-0xFF3F register and wave RAM window.
type APU struct {
	enabled bool
	model   types.Model

	chan1 *channel1
	chan2 *channel2
	chan3 *channel3
	chan4 *channel4

	frameSequencerCounter   uint32
	frameSequencerStep      uint8
	sampleCounter           uint32
	firstHalfOfLengthPeriod bool

	vinLeft, vinRight       bool
	volumeLeft, volumeRight uint8
	leftEnable, rightEnable [4]bool

	samples []float32

	Debug struct {
		ChannelEnabled [4]bool
	}
}

// New returns a new APU for the given hardware model.
func New(model types.Model) *APU {
	a := &APU{
		model:                 model,
		frameSequencerCounter: frameSequencerPeriod,
		sampleCounter:         samplePeriod,
		samples:               make([]float32, 0, ringCapacity),
	}
	a.chan1 = newChannel1(a)
	a.chan2 = newChannel2(a)
	a.chan3 = newChannel3(a)
	a.chan4 = newChannel4(a)
	return a
}

// Tick advances the APU by one T-cycle: it clocks the frame sequencer
// on its 512Hz schedule, steps every channel's waveform generator, and
// appends a mixed stereo sample to the output ring at sampleRate.
func (a *APU) Tick() {
	if a.frameSequencerCounter--; a.frameSequencerCounter == 0 {
		a.frameSequencerCounter = frameSequencerPeriod
		a.firstHalfOfLengthPeriod = a.frameSequencerStep&types.Bit0 == 0

		switch a.frameSequencerStep {
		case 0, 4:
			a.chan1.lengthStep()
			a.chan2.lengthStep()
			a.chan3.lengthStep()
			a.chan4.lengthStep()
		case 2, 6:
			a.chan1.lengthStep()
			a.chan2.lengthStep()
			a.chan3.lengthStep()
			a.chan4.lengthStep()
			a.chan1.sweepClock()
		case 7:
			a.chan1.volumeStep()
			a.chan2.volumeStep()
			a.chan4.volumeStep()
		}

		a.frameSequencerStep = (a.frameSequencerStep + 1) & 7
	}

	a.chan1.step()
	a.chan2.step()
	a.chan3.step()
	a.chan4.step()

	if a.sampleCounter--; a.sampleCounter == 0 {
		a.sampleCounter = samplePeriod
		a.mixSample()
	}
}

func (a *APU) mixSample() {
	amplitudes := [4]float32{
		a.chan1.getAmplitude(),
		a.chan2.getAmplitude(),
		a.chan3.getAmplitude(),
		a.chan4.getAmplitude(),
	}

	var left, right float32
	for i, amp := range amplitudes {
		if a.Debug.ChannelEnabled[i] {
			continue
		}
		if a.leftEnable[i] {
			left += amp
		}
		if a.rightEnable[i] {
			right += amp
		}
	}

	left = (float32(a.volumeLeft) / 7) * left / 4
	right = (float32(a.volumeRight) / 7) * right / 4

	if len(a.samples)+2 > ringCapacity {
		// drop the oldest stereo pair to make room; a host that isn't
		// draining AudioSamples loses the tail of the buffer, not the
		// whole stream.
		a.samples = append(a.samples[:0], a.samples[2:]...)
	}
	a.samples = append(a.samples, left, right)
}

// AudioSamples returns the accumulated interleaved stereo samples and
// clears the ring.
func (a *APU) AudioSamples() []float32 {
	out := a.samples
	a.samples = make([]float32, 0, ringCapacity)
	return out
}

// Read returns the value at address, which must be in 0xFF10-0xFF3F.
func (a *APU) Read(address uint16) uint8 {
	switch types.HardwareAddress(address) {
	case types.NR10:
		return a.chan1.readNR10()
	case types.NR11:
		return a.chan1.readNR11(a)
	case types.NR12:
		return a.chan1.getNRx2()
	case types.NR13:
		return 0xFF
	case types.NR14:
		return a.chan1.readNR14()
	case types.NR21:
		return a.chan2.readNR21()
	case types.NR22:
		return a.chan2.getNRx2()
	case types.NR23:
		return 0xFF
	case types.NR24:
		return a.chan2.readNR24()
	case types.NR30:
		return a.chan3.readNR30()
	case types.NR31:
		return 0xFF
	case types.NR32:
		return a.chan3.readNR32()
	case types.NR33:
		return 0xFF
	case types.NR34:
		return a.chan3.readNR34()
	case types.NR41:
		return 0xFF
	case types.NR42:
		return a.chan4.getNRx2()
	case types.NR43:
		return a.chan4.readNR43()
	case types.NR44:
		return a.chan4.readNR44()
	case types.NR50:
		return a.readNR50()
	case types.NR51:
		return a.readNR51()
	case types.NR52:
		return a.readNR52()
	}
	if address >= 0xFF30 && address <= 0xFF3F {
		return a.chan3.readWaveRAM(address)
	}
	return 0xFF
}

// Write writes value to address, which must be in 0xFF10-0xFF3F.
// Writes to every register except NR52 itself and the wave RAM are
// ignored while the APU is powered off, matching real hardware.
func (a *APU) Write(address uint16, value uint8) {
	if address >= 0xFF30 && address <= 0xFF3F {
		a.chan3.writeWaveRAM(address, value)
		return
	}
	if types.HardwareAddress(address) == types.NR52 {
		a.writeNR52(value)
		return
	}
	if !a.enabled {
		return
	}
	switch types.HardwareAddress(address) {
	case types.NR10:
		a.chan1.writeNR10(value)
	case types.NR11:
		a.chan1.writeNR11(a, value)
	case types.NR12:
		a.chan1.setNRx2(value)
	case types.NR13:
		a.chan1.frequency = (a.chan1.frequency & 0x700) | uint16(value)
	case types.NR14:
		a.chan1.writeNR14(a, value)
	case types.NR21:
		a.chan2.writeNR21(value)
	case types.NR22:
		a.chan2.setNRx2(value)
	case types.NR23:
		a.chan2.frequency = (a.chan2.frequency & 0x700) | uint16(value)
	case types.NR24:
		a.chan2.writeNR24(a, value)
	case types.NR30:
		a.chan3.writeNR30(value)
	case types.NR31:
		a.chan3.writeNR31(value)
	case types.NR32:
		a.chan3.writeNR32(value)
	case types.NR33:
		a.chan3.frequency = (a.chan3.frequency & 0x700) | uint16(value)
	case types.NR34:
		a.chan3.writeNR34(a, value)
	case types.NR41:
		a.chan4.writeNR41(value)
	case types.NR42:
		a.chan4.setNRx2(value)
	case types.NR43:
		a.chan4.writeNR43(value)
	case types.NR44:
		a.chan4.writeNR44(a, value)
	case types.NR50:
		a.writeNR50(value)
	case types.NR51:
		a.writeNR51(value)
	}
}

func (a *APU) readNR50() uint8 {
	b := a.volumeRight | a.volumeLeft<<4
	if a.vinRight {
		b |= types.Bit3
	}
	if a.vinLeft {
		b |= types.Bit7
	}
	return b
}

func (a *APU) writeNR50(v uint8) {
	a.volumeRight = v & 0x7
	a.volumeLeft = (v >> 4) & 0x7
	a.vinRight = v&types.Bit3 != 0
	a.vinLeft = v&types.Bit7 != 0
}

func (a *APU) readNR51() uint8 {
	b := uint8(0)
	for i := 0; i < 4; i++ {
		if a.rightEnable[i] {
			b |= 1 << i
		}
		if a.leftEnable[i] {
			b |= 1 << (i + 4)
		}
	}
	return b
}

func (a *APU) writeNR51(v uint8) {
	a.rightEnable[0] = v&types.Bit0 != 0
	a.rightEnable[1] = v&types.Bit1 != 0
	a.rightEnable[2] = v&types.Bit2 != 0
	a.rightEnable[3] = v&types.Bit3 != 0
	a.leftEnable[0] = v&types.Bit4 != 0
	a.leftEnable[1] = v&types.Bit5 != 0
	a.leftEnable[2] = v&types.Bit6 != 0
	a.leftEnable[3] = v&types.Bit7 != 0
}

func (a *APU) readNR52() uint8 {
	b := uint8(0)
	if a.enabled {
		b |= types.Bit7
	}
	if a.chan1.enabled {
		b |= types.Bit0
	}
	if a.chan2.enabled {
		b |= types.Bit1
	}
	if a.chan3.enabled {
		b |= types.Bit2
	}
	if a.chan4.enabled {
		b |= types.Bit3
	}
	return b | 0x70
}

// writeNR52 powers the APU on or off. Powering off clears every
// register in the NR10-NR51 range (their next read returns the
// post-clear value until powered back on); powering on resets the
// frame sequencer to step 0.
func (a *APU) writeNR52(v uint8) {
	wasEnabled := a.enabled
	a.enabled = v&types.Bit7 != 0

	if wasEnabled && !a.enabled {
		a.chan1 = newChannel1(a)
		a.chan2 = newChannel2(a)
		a.chan4 = newChannel4(a)
		// channel3's wave RAM survives a power cycle on real hardware.
		waveRAM := a.chan3.waveRAM
		a.chan3 = newChannel3(a)
		a.chan3.waveRAM = waveRAM
		a.volumeLeft, a.volumeRight = 0, 0
		a.vinLeft, a.vinRight = false, false
		a.leftEnable, a.rightEnable = [4]bool{}, [4]bool{}
	} else if !wasEnabled && a.enabled {
		a.frameSequencerStep = 0
	}
}

var _ types.Stater = (*APU)(nil)

func (a *APU) Load(s *types.State) {
	a.enabled = s.ReadBool()
	a.frameSequencerCounter = uint32(s.Read16())
	a.frameSequencerStep = s.Read8()
	a.sampleCounter = uint32(s.Read16())
	a.firstHalfOfLengthPeriod = s.ReadBool()
	a.vinLeft = s.ReadBool()
	a.vinRight = s.ReadBool()
	a.volumeLeft = s.Read8()
	a.volumeRight = s.Read8()
	for i := range a.leftEnable {
		a.leftEnable[i] = s.ReadBool()
		a.rightEnable[i] = s.ReadBool()
	}

	nr10 := s.Read8()
	a.chan1.sweepPeriod = (nr10 & 0x70) >> 4
	a.chan1.negate = nr10&types.Bit3 != 0
	a.chan1.shift = nr10 & 0x7
	a.chan1.duty = s.Read8()
	a.chan1.lengthCounter = uint(s.Read16())
	loadNRx2(a.chan1.volumeChannel, s)
	a.chan1.frequency = s.Read16()
	a.chan1.lengthCounterEnabled = s.ReadBool()
	a.chan1.enabled = s.ReadBool()
	a.chan1.waveDutyPosition = s.Read8()
	a.chan1.frequencyShadow = s.Read16()
	a.chan1.sweepTimer = s.Read8()
	a.chan1.sweepEnabled = s.ReadBool()
	a.chan1.negateHasHappened = s.ReadBool()
	a.chan1.currentVolume = s.Read8()

	a.chan2.duty = s.Read8()
	a.chan2.lengthCounter = uint(s.Read16())
	loadNRx2(a.chan2.volumeChannel, s)
	a.chan2.frequency = s.Read16()
	a.chan2.lengthCounterEnabled = s.ReadBool()
	a.chan2.enabled = s.ReadBool()
	a.chan2.waveDutyPosition = s.Read8()
	a.chan2.currentVolume = s.Read8()

	s.ReadData(a.chan3.waveRAM[:])
	a.chan3.waveRAMPosition = s.Read8()
	a.chan3.waveRAMSampleBuffer = s.Read8()
	a.chan3.lengthCounter = uint(s.Read16())
	a.chan3.dacEnabled = s.ReadBool()
	a.chan3.enabled = s.ReadBool()
	a.chan3.volumeCode = s.Read8()
	a.chan3.volumeCodeShift = s.Read8()
	a.chan3.frequency = s.Read16()
	a.chan3.lengthCounterEnabled = s.ReadBool()

	a.chan4.lfsr = s.Read16()
	a.chan4.lengthCounter = uint(s.Read16())
	loadNRx2(a.chan4.volumeChannel, s)
	a.chan4.clockShift = s.Read8()
	a.chan4.widthMode = s.Read8()
	a.chan4.divisorCode = s.Read8()
	a.chan4.lengthCounterEnabled = s.ReadBool()
	a.chan4.enabled = s.ReadBool()
	a.chan4.currentVolume = s.Read8()
}

// loadNRx2 restores a volume-envelope register's raw fields directly,
// bypassing setNRx2's zombie-mode glitch (that side effect only
// belongs to a live register write, never to a snapshot restore).
func loadNRx2(v *volumeChannel, s *types.State) {
	v.startingVolume = s.Read8()
	v.envelopeAddMode = s.ReadBool()
	v.period = s.Read8()
	v.dacEnabled = s.ReadBool()
}

func saveNRx2(v *volumeChannel, s *types.State) {
	s.Write8(v.startingVolume)
	s.WriteBool(v.envelopeAddMode)
	s.Write8(v.period)
	s.WriteBool(v.dacEnabled)
}

func (a *APU) Save(s *types.State) {
	s.WriteBool(a.enabled)
	s.Write16(uint16(a.frameSequencerCounter))
	s.Write8(a.frameSequencerStep)
	s.Write16(uint16(a.sampleCounter))
	s.WriteBool(a.firstHalfOfLengthPeriod)
	s.WriteBool(a.vinLeft)
	s.WriteBool(a.vinRight)
	s.Write8(a.volumeLeft)
	s.Write8(a.volumeRight)
	for i := range a.leftEnable {
		s.WriteBool(a.leftEnable[i])
		s.WriteBool(a.rightEnable[i])
	}

	nr10 := (a.chan1.sweepPeriod << 4) | a.chan1.shift
	if a.chan1.negate {
		nr10 |= types.Bit3
	}
	s.Write8(nr10)
	s.Write8(a.chan1.duty)
	s.Write16(uint16(a.chan1.lengthCounter))
	saveNRx2(a.chan1.volumeChannel, s)
	s.Write16(a.chan1.frequency)
	s.WriteBool(a.chan1.lengthCounterEnabled)
	s.WriteBool(a.chan1.enabled)
	s.Write8(a.chan1.waveDutyPosition)
	s.Write16(a.chan1.frequencyShadow)
	s.Write8(a.chan1.sweepTimer)
	s.WriteBool(a.chan1.sweepEnabled)
	s.WriteBool(a.chan1.negateHasHappened)
	s.Write8(a.chan1.currentVolume)

	s.Write8(a.chan2.duty)
	s.Write16(uint16(a.chan2.lengthCounter))
	saveNRx2(a.chan2.volumeChannel, s)
	s.Write16(a.chan2.frequency)
	s.WriteBool(a.chan2.lengthCounterEnabled)
	s.WriteBool(a.chan2.enabled)
	s.Write8(a.chan2.waveDutyPosition)
	s.Write8(a.chan2.currentVolume)

	s.WriteData(a.chan3.waveRAM[:])
	s.Write8(a.chan3.waveRAMPosition)
	s.Write8(a.chan3.waveRAMSampleBuffer)
	s.Write16(uint16(a.chan3.lengthCounter))
	s.WriteBool(a.chan3.dacEnabled)
	s.WriteBool(a.chan3.enabled)
	s.Write8(a.chan3.volumeCode)
	s.Write8(a.chan3.volumeCodeShift)
	s.Write16(a.chan3.frequency)
	s.WriteBool(a.chan3.lengthCounterEnabled)

	s.Write16(a.chan4.lfsr)
	s.Write16(uint16(a.chan4.lengthCounter))
	saveNRx2(a.chan4.volumeChannel, s)
	s.Write8(a.chan4.clockShift)
	s.Write8(a.chan4.widthMode)
	s.Write8(a.chan4.divisorCode)
	s.WriteBool(a.chan4.lengthCounterEnabled)
	s.WriteBool(a.chan4.enabled)
	s.Write8(a.chan4.currentVolume)
}
