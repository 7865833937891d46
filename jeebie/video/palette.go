package video

// Shade is one of the four DMG grey levels, 0 being the lightest.
type Shade uint8

const (
	ShadeWhite Shade = iota
	ShadeLightGrey
	ShadeDarkGrey
	ShadeBlack
)

// IdentityPalette is the BGP value mapping each colour index to the same shade.
const IdentityPalette = 0xE4

// Palette maps the four shades to RGB colours.
type Palette [4]uint32

// GreyPalette is a plain grey scale.
var GreyPalette = Palette{0xFFFFFF, 0x989898, 0x4C4C4C, 0x000000}

// Color returns the RGB colour of shade s.
func (p Palette) Color(s Shade) uint32 {
	return p[s&0x03]
}

// MapShade applies a BGP/OBP style palette register to a 2-bit colour index.
func MapShade(register byte, colorIndex int) Shade {
	return Shade((register >> (colorIndex * 2)) & 0x03)
}

// RGB splits a 0xRRGGBB pixel into its components.
func RGB(pixel uint32) (r, g, b uint8) {
	return uint8(pixel >> 16), uint8(pixel >> 8), uint8(pixel)
}

// Luma approximates the perceived brightness of a pixel, 0-255.
func Luma(pixel uint32) uint8 {
	r, g, b := RGB(pixel)
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b)) / 1000)
}
