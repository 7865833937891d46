package menu

// NamedPalette is a built-in DMG palette
type NamedPalette struct {
	Name   string
	Colors Palette
}

func uniform(c [4]uint32) Palette {
	return Palette{c, c, c}
}

// BuiltinPalettes are offered by the palette menus, in menu order.
var BuiltinPalettes = []NamedPalette{
	{"Grey", uniform([4]uint32{0xF8F8F8, 0xA8A8A8, 0x505050, 0x000000})},
	{"DMG", uniform([4]uint32{0xE0F8D0, 0x88C070, 0x346856, 0x081820})},
	{"Pocket", uniform([4]uint32{0xC4CFA1, 0x8B956D, 0x4D533C, 0x1F1F1F})},
	{"Light", uniform([4]uint32{0x00B581, 0x009A71, 0x00694A, 0x004F3B})},
	{"Inverted", uniform([4]uint32{0x000000, 0x505050, 0xA8A8A8, 0xF8F8F8})},
}

// DefaultPalette is used until the user picks another one.
var DefaultPalette = BuiltinPalettes[0].Colors

// PaletteByName finds a built-in palette.
func PaletteByName(name string) (Palette, bool) {
	for _, p := range BuiltinPalettes {
		if p.Name == name {
			return p.Colors, true
		}
	}
	return Palette{}, false
}

// PaletteName returns the built-in name of p, or "" for custom colours.
func PaletteName(p Palette) string {
	for _, np := range BuiltinPalettes {
		if np.Colors == p {
			return np.Name
		}
	}
	return ""
}

// NewPaletteMenu returns a choice menu over the built-in palettes. A custom
// palette leaves the menu with nothing checked.
func NewPaletteMenu(title string) *Choice[Palette] {
	c := NewChoice[Palette](title)
	options := make([]Option[Palette], 0, len(BuiltinPalettes))
	for i, p := range BuiltinPalettes {
		options = append(options, Option[Palette]{ID: i, Label: p.Name, Value: p.Colors})
	}
	c.Populate(options)
	return c
}
