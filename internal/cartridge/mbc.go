package cartridge

// Mapper is the interface every cartridge memory bank controller
// implements. The MMU routes the whole 0x0000-0x7FFF (ROM) and
// 0xA000-0xBFFF (external RAM) windows through it unconditionally;
// mappers with no RAM simply ignore writes/reads to the RAM window.
type Mapper interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// RAMController is implemented by mappers that expose battery-backed
// external RAM that should be persisted across sessions.
type RAMController interface {
	// SaveRAM returns the current contents of external RAM.
	SaveRAM() []byte
	// LoadRAM restores external RAM from a previously saved image. Len
	// mismatches are handled by copying the overlapping prefix.
	LoadRAM([]byte)
}

// RTCController is implemented by mappers with a real-time clock
// (MBC3 with a timer).
type RTCController interface {
	RAMController
	SaveRTC() []byte
	LoadRTC([]byte)
}
