package video

const (
	FramebufferWidth  = 160
	FramebufferHeight = 144
)

// FrameBuffer holds one frame of 0xRRGGBB pixels.
type FrameBuffer struct {
	width  uint
	height uint
	buffer []uint32
}

// NewFrameBuffer creates a frame buffer sized for the Game Boy screen.
func NewFrameBuffer() *FrameBuffer {
	return NewFrameBufferSize(FramebufferWidth, FramebufferHeight)
}

// NewFrameBufferSize creates a frame buffer with the specified size.
func NewFrameBufferSize(width, height uint) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		buffer: make([]uint32, width*height),
	}
}

func (fb *FrameBuffer) Width() uint  { return fb.width }
func (fb *FrameBuffer) Height() uint { return fb.height }

func (fb *FrameBuffer) GetPixel(x, y uint) uint32 {
	return fb.buffer[y*fb.width+x]
}

func (fb *FrameBuffer) SetPixel(x, y uint, color uint32) {
	fb.buffer[y*fb.width+x] = color
}

// Fill sets every pixel to color.
func (fb *FrameBuffer) Fill(color uint32) {
	for i := range fb.buffer {
		fb.buffer[i] = color
	}
}

func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}
