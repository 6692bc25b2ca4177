package joypad

import "testing"

func TestNewDefaultsToNoKeysSelected(t *testing.T) {
	s := New()
	if got := s.Read(); got != 0x3F {
		t.Fatalf("expected 0x3F with nothing selected, got %#x", got)
	}
}

func TestReadReflectsActionButtonsWhenSelected(t *testing.T) {
	s := New()
	s.Write(0x10) // bit 5 low selects action buttons
	s.Press(ButtonA)
	s.Press(ButtonStart)

	got := s.Read()
	if got&0x01 != 0 {
		t.Fatal("expected A bit low (pressed) in the low nibble")
	}
	if got&0x08 != 0 {
		t.Fatal("expected Start bit low (pressed) in the low nibble")
	}
	if got&0x02 == 0 {
		t.Fatal("expected B to read high (not pressed)")
	}
}

func TestReadReflectsDirectionButtonsWhenSelected(t *testing.T) {
	s := New()
	s.Write(0x20) // bit 4 low selects direction buttons
	s.Press(ButtonRight)

	got := s.Read()
	if got&0x01 != 0 {
		t.Fatal("expected Right bit low (pressed) in the low nibble")
	}
}

func TestReadWithNeitherLineSelectedReturnsAllHigh(t *testing.T) {
	s := New()
	s.Write(0x30)
	s.Press(ButtonA)

	if got := s.Read(); got&0x0F != 0x0F {
		t.Fatalf("expected low nibble all high, got %#x", got)
	}
}

func TestPressOnNewlyPressedActionButtonRequestsInterrupt(t *testing.T) {
	s := New()
	s.Write(0x10) // action buttons selected

	if !s.Press(ButtonA) {
		t.Fatal("expected a first press of a selected button to request an interrupt")
	}
}

func TestPressIgnoredWhenLineNotSelected(t *testing.T) {
	s := New()
	s.Write(0x20) // only direction line selected; action buttons masked off

	if s.Press(ButtonA) {
		t.Fatal("expected no interrupt request for a button whose select line is high")
	}
}

func TestReleaseClearsState(t *testing.T) {
	s := New()
	s.Press(ButtonB)
	s.Release(ButtonB)

	if s.State&ButtonB != 0 {
		t.Fatal("expected ButtonB to be cleared from State")
	}
}

func TestProcessInputsAppliesPressesAndReleases(t *testing.T) {
	s := New()
	s.Write(0x10)
	s.Press(ButtonSelect)

	interrupted := s.ProcessInputs(Inputs{
		Pressed:  []Button{ButtonA},
		Released: []Button{ButtonSelect},
	})

	if !interrupted {
		t.Fatal("expected pressing ButtonA to request an interrupt")
	}
	if s.State&ButtonSelect != 0 {
		t.Fatal("expected ButtonSelect to be released")
	}
	if s.State&ButtonA == 0 {
		t.Fatal("expected ButtonA to be pressed")
	}
}
