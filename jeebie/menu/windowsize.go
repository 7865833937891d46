package menu

// aspectSize is the Game Boy screen size, used as the stepping unit when the
// video output is not restricted to integer scaling.
var aspectSize = Size{Width: 160, Height: 144}

// WindowSizeMenu offers fixed window sizes derived from the video source
// size plus a variable size entry.
type WindowSizeMenu struct {
	*Choice[Size]
	maxSize Size
}

// NewWindowSizeMenu builds the menu for the given video settings. Sizes that
// do not fit in maxSize (usually the desktop area) are left out.
func NewWindowSizeMenu(maxSize Size, vc VideoConfig) *WindowSizeMenu {
	m := &WindowSizeMenu{
		Choice:  NewChoice[Size]("Window size"),
		maxSize: maxSize,
	}
	m.fill(vc)
	return m
}

// MaxSize returns the bound used to exclude oversized options.
func (m *WindowSizeMenu) MaxSize() Size { return m.maxSize }

// VideoChange rebuilds the options after the video settings changed and
// re-checks the previously checked size. When that size is gone the variable
// entry is checked instead. The returned size is what the window should use.
func (m *WindowSizeMenu) VideoChange(vc VideoConfig) Size {
	old := VariableSize
	if o, ok := m.Checked(); ok {
		old = o.Value
	}

	m.fill(vc)
	m.Synchronize(old)
	if _, ok := m.Checked(); !ok {
		m.Synchronize(VariableSize)
		return VariableSize
	}
	return old
}

func (m *WindowSizeMenu) fill(vc VideoConfig) {
	base := aspectSize
	if vc.Scaling == ScalingInteger {
		base = vc.SourceSize
	}

	var options []Option[Size]
	if base.Width > 0 && base.Height > 0 {
		for sz := base; sz.Fits(m.maxSize); sz = (Size{sz.Width + base.Width, sz.Height + base.Height}) {
			if !sz.Covers(vc.SourceSize) {
				continue
			}
			options = append(options, Option[Size]{ID: len(options), Label: sz.String(), Value: sz})
		}
	}
	options = append(options, Option[Size]{ID: len(options), Label: VariableSize.String(), Value: VariableSize})

	m.Populate(options)
}
