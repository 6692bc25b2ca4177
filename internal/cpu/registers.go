package cpu

import "github.com/silverwren/gbcore/internal/types"

// Register, RegisterPair and Registers are aliased from the shared types
// package so the rest of this package can refer to them unqualified, the
// way the instruction tables were written.
type (
	Register      = types.Register
	RegisterPair  = types.RegisterPair
	Registers     = types.Registers
)
