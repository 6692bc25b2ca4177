package interrupts

import "testing"

func TestRequestSetsFlagBit(t *testing.T) {
	s := NewService()
	s.Request(TimerFlag)

	if s.Flag != 1<<TimerFlag {
		t.Fatalf("expected Flag=%#x, got %#x", 1<<TimerFlag, s.Flag)
	}
}

func TestClearResetsFlagBit(t *testing.T) {
	s := NewService()
	s.Request(TimerFlag)
	s.Request(SerialFlag)
	s.Clear(TimerFlag)

	if s.Flag != 1<<SerialFlag {
		t.Fatalf("expected only SerialFlag set, got %#x", s.Flag)
	}
}

func TestPendingRequiresBothFlagAndEnable(t *testing.T) {
	s := NewService()
	s.Request(VBlankFlag)

	if s.Pending() {
		t.Fatal("interrupt requested but not enabled should not be pending")
	}

	s.Enable = 1 << VBlankFlag
	if !s.Pending() {
		t.Fatal("expected pending once the enable bit is also set")
	}
}

func TestVectorReturnsHighestPriorityAndClearsIt(t *testing.T) {
	s := NewService()
	s.Enable = 0xFF
	s.Request(TimerFlag)
	s.Request(VBlankFlag)

	addr := s.Vector()
	if addr != VBlank {
		t.Fatalf("expected VBlank to win priority, got %#x", addr)
	}
	if s.Flag != 1<<TimerFlag {
		t.Fatalf("expected VBlank flag cleared, Timer still pending, got %#x", s.Flag)
	}

	addr = s.Vector()
	if addr != Timer {
		t.Fatalf("expected Timer next, got %#x", addr)
	}
}

func TestVectorPanicsWithNothingPending(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Vector to panic when nothing is pending")
		}
	}()
	NewService().Vector()
}

func TestReadFlagRegisterSetsUpperBits(t *testing.T) {
	s := NewService()
	s.Flag = 0x01

	if got := s.Read(FlagRegister); got != 0xE1 {
		t.Fatalf("expected 0xE1, got %#x", got)
	}
}

func TestWriteAndReadEnableRegister(t *testing.T) {
	s := NewService()
	s.Write(EnableRegister, 0x1F)

	if got := s.Read(EnableRegister); got != 0x1F {
		t.Fatalf("expected 0x1F, got %#x", got)
	}
}

func TestReadIllegalAddressPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on illegal address")
		}
	}()
	NewService().Read(0x1234)
}
