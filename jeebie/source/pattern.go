package source

import "github.com/valerio/go-jeebie-shell/jeebie/video"

// Test pattern constants
const (
	patternCount = 4
	// tileSize is the size of tiles for checkerboard and diagonal patterns
	tileSize = 8
	// stripeWidth is the width of stripes in the stripe pattern
	stripeWidth = 4
	// animationFrames is the number of frames between animation steps
	animationFrames = 30
	stripeSpeed     = 2
	diagonalSpeed   = 4

	spriteSize = 16
)

// colorPalette tints colour ROMs, which ignore the DMG palettes.
var colorPalette = video.Palette{0xFFFFFF, 0x7BFF31, 0x0063C5, 0x000000}

// render redraws the frame for the current state. Without a ROM the screen
// is blank in the lightest background colour.
func (s *PatternSource) render() {
	bg := video.Palette(s.palette[0])
	obj := video.Palette(s.palette[1])
	if s.rom != nil && !s.rom.dmg {
		bg, obj = colorPalette, colorPalette
	}

	if s.rom == nil {
		s.frame.Fill(bg.Color(video.ShadeWhite))
		return
	}

	step := int(s.frameCount / animationFrames)
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			s.frame.SetPixel(uint(x), uint(y), bg.Color(patternShade(s.rom.pattern, x, y, step)))
		}
	}
	s.drawSprite(obj)
}

func patternShade(pattern, x, y, step int) video.Shade {
	switch pattern {
	case 0: // Checkerboard
		if ((x/tileSize)+(y/tileSize))%2 == 0 {
			return video.ShadeWhite
		}
		return video.ShadeBlack
	case 1: // Gradient, dark on the left
		return video.ShadeBlack - video.Shade(x*4/video.FramebufferWidth)
	case 2: // Vertical stripes
		if ((x+step*stripeSpeed)/stripeWidth)%2 == 0 {
			return video.ShadeWhite
		}
		return video.ShadeDarkGrey
	default: // Diagonal lines
		if ((x+y+step*diagonalSpeed)/tileSize)%2 == 0 {
			return video.ShadeLightGrey
		}
		return video.ShadeDarkGrey
	}
}

// drawSprite bounces a framed square across the middle of the screen so
// frame stepping is visible on every pattern.
func (s *PatternSource) drawSprite(p video.Palette) {
	pos := s.spriteX()
	top := (video.FramebufferHeight - spriteSize) / 2

	for dy := 0; dy < spriteSize; dy++ {
		for dx := 0; dx < spriteSize; dx++ {
			shade := video.ShadeDarkGrey
			if dx == 0 || dy == 0 || dx == spriteSize-1 || dy == spriteSize-1 {
				shade = video.ShadeBlack
			}
			s.frame.SetPixel(uint(pos+dx), uint(top+dy), p.Color(shade))
		}
	}
}

// spriteX returns the left edge of the sprite for the current frame.
func (s *PatternSource) spriteX() int {
	span := video.FramebufferWidth - spriteSize
	pos := int(s.frameCount % uint64(2*span))
	if pos > span {
		pos = 2*span - pos
	}
	return pos
}
