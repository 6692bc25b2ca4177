package types

import "testing"

func TestRegisterPairReadsHighLowAsBigEndian(t *testing.T) {
	var hi, lo Register = 0x12, 0x34
	pair := RegisterPair{High: &hi, Low: &lo}

	if got := pair.Uint16(); got != 0x1234 {
		t.Fatalf("expected 0x1234, got %#x", got)
	}
}

func TestRegisterPairSetUint16SplitsIntoHighLow(t *testing.T) {
	var hi, lo Register
	pair := RegisterPair{High: &hi, Low: &lo}

	pair.SetUint16(0xBEEF)
	if hi != 0xBE || lo != 0xEF {
		t.Fatalf("expected high=0xBE low=0xEF, got high=%#x low=%#x", hi, lo)
	}
}

func TestSetResetTestBit(t *testing.T) {
	var b uint8
	b = SetBit(b, Bit3)
	if !TestBit(b, Bit3) {
		t.Fatal("expected Bit3 to be set")
	}
	b = ResetBit(b, Bit3)
	if TestBit(b, Bit3) {
		t.Fatal("expected Bit3 to be cleared")
	}
}

func TestCombineMasksClearsAllGivenBits(t *testing.T) {
	got := CombineMasks(Mask0, Mask2, Mask4)
	want := Mask(0xFF) &^ Bit0 &^ Bit2 &^ Bit4
	if got != want {
		t.Fatalf("expected %#x, got %#x", want, got)
	}
}

func TestModelStringKnownAndUnknown(t *testing.T) {
	if got := CGBABC.String(); got != "CGBABC" {
		t.Fatalf("expected CGBABC, got %q", got)
	}
	if got := Model(999).String(); got != "Unknown" {
		t.Fatalf("expected Unknown for an unrecognised model, got %q", got)
	}
}

func TestModelRegistersDiffersByModel(t *testing.T) {
	dmg := DMGABC.Registers()
	cgb := CGBABC.Registers()
	if dmg[0] != 0x01 {
		t.Fatalf("expected DMGABC A register 0x01, got %#x", dmg[0])
	}
	if cgb[0] != 0x11 {
		t.Fatalf("expected CGBABC A register 0x11, got %#x", cgb[0])
	}
}

func TestHardwareRegistersReadUnmappedIsOpenBus(t *testing.T) {
	h := NewHardwareRegisters()
	if got := h.Read(0xFF10); got != 0xFF {
		t.Fatalf("expected 0xFF for an unregistered address, got %#x", got)
	}
	h.Write(0xFF10, 0x42) // dropped silently, no registered register
}

func TestHardwareRegistersRegisterRoundTrips(t *testing.T) {
	h := NewHardwareRegisters()
	var stored uint8
	h.Register(0xFF11, func(v uint8) { stored = v }, func() uint8 { return stored })

	h.Write(0xFF11, 0x55)
	if stored != 0x55 {
		t.Fatalf("expected the set callback to receive 0x55, got %#x", stored)
	}
	if got := h.Read(0xFF11); got != 0x55 {
		t.Fatalf("expected readback of 0x55, got %#x", got)
	}
}

func TestHardwareWriteHandlerWrapsTheUnderlyingSet(t *testing.T) {
	h := NewHardwareRegisters()
	var stored uint8
	var handlerRan bool
	h.Register(0xFF12, func(v uint8) { stored = v }, func() uint8 { return stored },
		WithWriteHandler(func(writeFn func()) {
			handlerRan = true
			writeFn()
		}))

	h.Write(0xFF12, 0x7A)
	if !handlerRan {
		t.Fatal("expected the write handler to run")
	}
	if stored != 0x7A {
		t.Fatalf("expected the wrapped set to still apply the value, got %#x", stored)
	}
}

func TestHardwareNoReadNoWrite(t *testing.T) {
	if got := NoRead(); got != 0xFF {
		t.Fatalf("expected NoRead to return 0xFF, got %#x", got)
	}
	NoWrite(0x00) // must not panic
}

func TestStateWriteReadRoundTrip(t *testing.T) {
	s := NewState()
	s.Write8(0xAB)
	s.Write16(0xBEEF)
	s.Write32(0xDEADBEEF)
	s.WriteBool(true)
	s.WriteData([]byte{1, 2, 3})

	s.ResetPosition()
	if got := s.Read8(); got != 0xAB {
		t.Fatalf("expected 0xAB, got %#x", got)
	}
	if got := s.Read16(); got != 0xBEEF {
		t.Fatalf("expected 0xBEEF, got %#x", got)
	}
	if got := s.Read32(); got != 0xDEADBEEF {
		t.Fatalf("expected 0xDEADBEEF, got %#x", got)
	}
	if got := s.ReadBool(); !got {
		t.Fatal("expected true")
	}
	data := make([]byte, 3)
	s.ReadData(data)
	if data[0] != 1 || data[1] != 2 || data[2] != 3 {
		t.Fatalf("expected [1 2 3], got %v", data)
	}
}

func TestStateFromBytesResetPosition(t *testing.T) {
	s := StateFromBytes([]byte{0x01, 0x02, 0x03})
	s.Read8()
	s.Read8()
	s.ResetPosition()

	if got := s.Read8(); got != 0x01 {
		t.Fatalf("expected position reset to read 0x01 again, got %#x", got)
	}
	if got := s.Bytes(); len(got) != 3 {
		t.Fatalf("expected Bytes() to return all 3 raw bytes, got %d", len(got))
	}
}
