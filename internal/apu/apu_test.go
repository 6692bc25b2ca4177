package apu

import (
	"testing"

	"github.com/silverwren/gbcore/internal/types"
)

func TestWritesToRegistersIgnoredWhilePoweredOff(t *testing.T) {
	a := New(types.DMGABC)
	a.Write(uint16(types.NR11), 0xC0) // duty bits, channel 1 off by default

	if got := a.Read(uint16(types.NR11)); got != 0x3F {
		t.Fatalf("expected NR11 writes to be ignored while powered off, got %#x", got)
	}
}

func TestPoweringOnAllowsRegisterWrites(t *testing.T) {
	a := New(types.DMGABC)
	a.Write(uint16(types.NR52), 0x80) // power on
	a.Write(uint16(types.NR11), 0xC0)

	if got := a.Read(uint16(types.NR11)); got&0xC0 != 0xC0 {
		t.Fatalf("expected the duty bits to stick once powered on, got %#x", got)
	}
}

func TestPoweringOffClearsNR50AndNR51(t *testing.T) {
	a := New(types.DMGABC)
	a.Write(uint16(types.NR52), 0x80)
	a.Write(uint16(types.NR50), 0x77)
	a.Write(uint16(types.NR51), 0xFF)

	a.Write(uint16(types.NR52), 0x00) // power off

	if got := a.Read(uint16(types.NR50)); got != 0x00 {
		t.Fatalf("expected NR50 cleared on power-off, got %#x", got)
	}
	if got := a.Read(uint16(types.NR51)); got != 0x00 {
		t.Fatalf("expected NR51 cleared on power-off, got %#x", got)
	}
}

func TestWaveRAMSurvivesPowerCycle(t *testing.T) {
	a := New(types.DMGABC)
	a.Write(0xFF30, 0xAB) // wave RAM is writable even while powered off

	a.Write(uint16(types.NR52), 0x80)
	a.Write(uint16(types.NR52), 0x00)

	if got := a.Read(0xFF30); got != 0xAB {
		t.Fatalf("expected wave RAM to survive a power cycle, got %#x", got)
	}
}

func TestNR52ReflectsPowerBit(t *testing.T) {
	a := New(types.DMGABC)
	if got := a.Read(uint16(types.NR52)); got&types.Bit7 != 0 {
		t.Fatal("expected the power bit to start clear")
	}

	a.Write(uint16(types.NR52), 0x80)
	if got := a.Read(uint16(types.NR52)); got&types.Bit7 == 0 {
		t.Fatal("expected the power bit to be set after powering on")
	}
}

func TestAudioSamplesDrainsAndClearsTheRing(t *testing.T) {
	a := New(types.DMGABC)
	a.Write(uint16(types.NR52), 0x80)
	a.Write(uint16(types.NR51), 0xFF) // route every channel to both ears
	a.Write(uint16(types.NR50), 0x77)

	for i := 0; i < samplePeriod*4; i++ {
		a.Tick()
	}

	samples := a.AudioSamples()
	if len(samples) == 0 {
		t.Fatal("expected at least one stereo sample pair after ticking past samplePeriod")
	}
	if len(samples)%2 != 0 {
		t.Fatal("expected an even number of samples (interleaved stereo)")
	}

	if got := a.AudioSamples(); len(got) != 0 {
		t.Fatal("expected the ring to be empty immediately after draining")
	}
}
