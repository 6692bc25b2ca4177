package gameboy

import (
	"bytes"
	"testing"

	"github.com/silverwren/gbcore/internal/cartridge"
	"github.com/silverwren/gbcore/internal/interrupts"
	"github.com/silverwren/gbcore/internal/joypad"
	"github.com/silverwren/gbcore/internal/ppu"
	"github.com/silverwren/gbcore/internal/types"
	"github.com/stretchr/testify/require"
)

// blankROM returns a minimal, header-valid 32KiB ROM-only cartridge
// image. Every instruction byte is 0x00 (NOP), so the CPU free-runs
// from 0x100 without ever halting.
func blankROM(gbc bool) []byte {
	rom := make([]byte, 0x8000)
	if gbc {
		rom[0x143] = 0x80
	}
	copy(rom[0x134:0x144], "TESTROM")
	return rom
}

// batteryROM returns a blank MBC1+RAM+BATTERY ROM with one 8KiB RAM
// bank, so tests can exercise SaveRAM/LoadRAM/Shutdown against a
// mapper that actually has battery-backed storage.
func batteryROM() []byte {
	rom := blankROM(false)
	rom[0x147] = 0x03 // MBC1+RAM+BATTERY
	rom[0x149] = 0x02 // 8KiB RAM
	return rom
}

func newTestGameBoy(t *testing.T, gbc bool) *GameBoy {
	t.Helper()
	g, err := New(blankROM(gbc), types.Unset, nil)
	require.NoError(t, err)
	return g
}

func TestNewDetectsModelFromHeader(t *testing.T) {
	dmg := newTestGameBoy(t, false)
	require.Equal(t, types.DMGABC, dmg.Model())

	cgb := newTestGameBoy(t, true)
	require.Equal(t, types.CGBABC, cgb.Model())
}

func TestNewResetsCPUToPostBootState(t *testing.T) {
	g := newTestGameBoy(t, false)
	require.EqualValues(t, 0x100, g.CPU.PC)
	require.EqualValues(t, 0xFFFE, g.CPU.SP)
	require.EqualValues(t, 0x01, g.CPU.A)
}

func TestStepAdvancesProgramCounter(t *testing.T) {
	g := newTestGameBoy(t, false)
	pc := g.CPU.PC
	g.Step()
	require.Greater(t, g.CPU.PC, pc)
}

func TestRunFrameProducesAFullFrame(t *testing.T) {
	g := newTestGameBoy(t, false)
	frame := g.RunFrame()
	require.IsType(t, ppu.Frame{}, frame)
}

func TestPressButtonRequestsJoypadInterrupt(t *testing.T) {
	g := newTestGameBoy(t, false)
	// the game must be listening on the relevant select line for the
	// interrupt to fire
	g.Joypad.Write(0)
	g.Interrupts.Write(0xFFFF, 0xFF)

	g.PressButton(joypad.ButtonA)
	require.NotZero(t, g.Interrupts.Flag&(1<<interrupts.JoypadFlag))
}

func TestSaveAndLoadStateRoundTrips(t *testing.T) {
	g := newTestGameBoy(t, false)
	for i := 0; i < 1000; i++ {
		g.Step()
	}
	want := g.CPU.PC
	saved := g.SaveState()

	g.Step()
	require.NotEqual(t, want, g.CPU.PC)

	g.LoadState(saved)
	require.Equal(t, want, g.CPU.PC)
}

func TestSaveRAMIsNilForAMapperWithNone(t *testing.T) {
	g := newTestGameBoy(t, false)
	require.Nil(t, g.SaveRAM())
}

func TestResetReturnsCPUToPostBootStateAfterRunning(t *testing.T) {
	g := newTestGameBoy(t, false)
	for i := 0; i < 1000; i++ {
		g.Step()
	}
	require.NotEqual(t, uint16(0x100), g.CPU.PC)

	g.Reset()

	require.EqualValues(t, 0x100, g.CPU.PC)
	require.EqualValues(t, 0xFFFE, g.CPU.SP)
}

func TestResetPreservesBatteryRAM(t *testing.T) {
	g, err := New(batteryROM(), types.Unset, nil)
	require.NoError(t, err)

	ram := g.SaveRAM()
	require.NotNil(t, ram)
	ram[0] = 0x42
	g.LoadRAM(ram)

	g.Reset()

	require.EqualValues(t, 0x42, g.SaveRAM()[0])
}

func TestShutdownWritesChecksummedSaveEnvelope(t *testing.T) {
	g, err := New(batteryROM(), types.Unset, nil)
	require.NoError(t, err)

	ram := g.SaveRAM()
	ram[0] = 0x7F
	g.LoadRAM(ram)

	var buf bytes.Buffer
	require.NoError(t, g.Shutdown(&buf))

	got, err := cartridge.ReadSave(&buf)
	require.NoError(t, err)
	require.EqualValues(t, 0x7F, got[0])
}

func TestShutdownIsNoOpWithoutBatteryRAM(t *testing.T) {
	g := newTestGameBoy(t, false)

	var buf bytes.Buffer
	require.NoError(t, g.Shutdown(&buf))
	require.Zero(t, buf.Len())
}

func TestSnapshotReflectsCPUAndPPUState(t *testing.T) {
	g := newTestGameBoy(t, false)
	g.Step()

	snap := g.Snapshot()

	require.Equal(t, g.CPU.PC, snap.Registers.PC)
	require.Equal(t, g.CPU.SP, snap.Registers.SP)
	require.EqualValues(t, 0x91, snap.LCDC)
}
