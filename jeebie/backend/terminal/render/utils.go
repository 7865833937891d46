package render

// Cells of the terminal hold two vertically stacked pixels drawn with
// half-block characters.
const (
	UpperHalf = '▀'
	LowerHalf = '▄'
	FullBlock = '█'
)

// HalfBlock returns the character and the foreground and background colours
// that show the top pixel above the bottom one.
func HalfBlock(top, bottom uint32) (ch rune, fg, bg uint32) {
	if top == bottom {
		return FullBlock, top, bottom
	}
	return UpperHalf, top, bottom
}

// Truncate shortens s to at most width runes, marking the cut with "...".
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		if width < 0 {
			width = 0
		}
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// CheckMark renders the state of a check menu item.
func CheckMark(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
