package palette

const (
	// Greyscale is the default greyscale palette.
	Greyscale = iota
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green
	// Red is a red palette.
	Red
	// Yellow is a yellow palette.
	Yellow
)

// Theme is a set of 4 RGBA8 shades (alpha always 0xFF) that a DMG
// colour number (0-3) is mapped to before it reaches the screen.
type Theme struct {
	Colors [4][4]uint8
}

// Current is the currently selected theme.
var Current = Greyscale

// Themes is the list of available themes, indexed by the constants above.
var Themes = []Theme{
	// Greyscale
	{
		Colors: [4][4]uint8{
			{0xFF, 0xFF, 0xFF, 0xFF},
			{0xCC, 0xCC, 0xCC, 0xFF},
			{0x77, 0x77, 0x77, 0xFF},
			{0x00, 0x00, 0x00, 0xFF},
		},
	},
	// Green
	{
		Colors: [4][4]uint8{
			{0x9B, 0xBC, 0x0F, 0xFF},
			{0x8B, 0xAC, 0x0F, 0xFF},
			{0x30, 0x62, 0x30, 0xFF},
			{0x0F, 0x38, 0x0F, 0xFF},
		},
	},
	// Red
	{
		Colors: [4][4]uint8{
			{0xFF, 0x00, 0x00, 0xFF},
			{0xCC, 0x00, 0x00, 0xFF},
			{0x77, 0x00, 0x00, 0xFF},
			{0x00, 0x00, 0x00, 0xFF},
		},
	},
	// Yellow
	{
		Colors: [4][4]uint8{
			{0xFF, 0xFF, 0x00, 0xFF},
			{0xCC, 0xCC, 0x00, 0xFF},
			{0x77, 0x77, 0x00, 0xFF},
			{0x00, 0x00, 0x00, 0xFF},
		},
	},
}

// GetColour returns the RGBA8 quadruple for a shade index (0-3) under
// the current theme.
func GetColour(shade uint8) [4]uint8 {
	return Themes[Current].Colors[shade&0x3]
}

// DMGPalette is a decoded BGP/OBP0/OBP1 register: for each of the 4
// possible 2-bit colour numbers a tile can produce, it holds which of
// the 4 theme shades that colour number is displayed as.
type DMGPalette [4]uint8

// ByteToPalette decodes a BGP/OBP0/OBP1 register value into a DMGPalette.
func ByteToPalette(v uint8) DMGPalette {
	return DMGPalette{v & 0x3, (v >> 2) & 0x3, (v >> 4) & 0x3, (v >> 6) & 0x3}
}

// ToByte re-encodes the palette back into register form.
func (p DMGPalette) ToByte() uint8 {
	return p[0] | p[1]<<2 | p[2]<<4 | p[3]<<6
}

// GetColour returns the RGBA8 quadruple a given colour number (0-3) is
// displayed as under this palette.
func (p DMGPalette) GetColour(colourNumber uint8) [4]uint8 {
	return GetColour(p[colourNumber&0x3])
}
