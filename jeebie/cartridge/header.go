// Package cartridge decodes the header found at 0x100-0x14F of every Game Boy
// ROM image.
package cartridge

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	logoAddress           = 0x104
	titleAddress          = 0x134
	cgbFlagAddress        = 0x143
	sgbFlagAddress        = 0x146
	cartridgeTypeAddress  = 0x147
	romSizeAddress        = 0x148
	ramSizeAddress        = 0x149
	versionNumberAddress  = 0x14C
	headerChecksumAddress = 0x14D
	globalChecksumAddress = 0x14E

	// HeaderEnd is the first byte past the header.
	HeaderEnd = 0x150

	titleLength    = 16
	cgbTitleLength = 15
)

const (
	cgbSupported = 0x80
	cgbOnly      = 0xC0
	sgbSupported = 0x03
)

var (
	ErrTooSmall       = errors.New("image too small to hold a cartridge header")
	ErrHeaderChecksum = errors.New("header checksum mismatch")
)

// nintendoLogo is the bitmap the boot ROM compares against.
var nintendoLogo = []byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Header holds the decoded cartridge header
type Header struct {
	Title          string
	CGBFlag        uint8
	SGB            bool
	CartType       uint8
	ROMSize        int // bytes
	RAMSizeCode    uint8
	Version        uint8
	HeaderChecksum uint8
	GlobalChecksum uint16
	LogoValid      bool
}

// Parse decodes and validates the header of a ROM image. Images without a
// valid header checksum are rejected; a bad logo is only reported.
func Parse(data []byte) (Header, error) {
	if len(data) < HeaderEnd {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrTooSmall, len(data))
	}

	if sum := HeaderChecksum(data); sum != data[headerChecksumAddress] {
		return Header{}, fmt.Errorf("%w: computed %#02x, stored %#02x", ErrHeaderChecksum, sum, data[headerChecksumAddress])
	}

	h := Header{
		CGBFlag:        data[cgbFlagAddress],
		SGB:            data[sgbFlagAddress] == sgbSupported,
		CartType:       data[cartridgeTypeAddress],
		ROMSize:        romSize(data[romSizeAddress]),
		RAMSizeCode:    data[ramSizeAddress],
		Version:        data[versionNumberAddress],
		HeaderChecksum: data[headerChecksumAddress],
		GlobalChecksum: uint16(data[globalChecksumAddress])<<8 | uint16(data[globalChecksumAddress+1]),
		LogoValid:      bytes.Equal(data[logoAddress:logoAddress+len(nintendoLogo)], nintendoLogo),
	}

	n := titleLength
	if h.CGBFlag&cgbSupported != 0 {
		n = cgbTitleLength
	}
	h.Title = cleanTitle(data[titleAddress : titleAddress+n])
	return h, nil
}

// DMG reports whether the ROM runs in monochrome mode.
func (h Header) DMG() bool {
	return h.CGBFlag&cgbSupported == 0
}

// CGBOnly reports whether the ROM refuses to run on a monochrome Game Boy.
func (h Header) CGBOnly() bool {
	return h.CGBFlag == cgbOnly
}

// HeaderChecksum computes the checksum over 0x134-0x14C the way the boot ROM does.
func HeaderChecksum(data []byte) uint8 {
	var sum uint8
	for _, b := range data[titleAddress:headerChecksumAddress] {
		sum = sum - b - 1
	}
	return sum
}

// WriteLogo stores the boot logo in data, which must hold a full header.
func WriteLogo(data []byte) {
	copy(data[logoAddress:], nintendoLogo)
}

func romSize(code uint8) int {
	if code > 8 {
		return 0
	}
	return 32 * 1024 << code
}

// cleanTitle turns the raw title bytes into a printable string. NUL padding
// is dropped and non printable bytes become '?'.
func cleanTitle(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		r := rune(b)
		switch {
		case r == 0:
			r = ' '
		case r > unicode.MaxASCII || !unicode.IsPrint(r):
			r = '?'
		}
		runes = append(runes, r)
	}
	return strings.TrimSpace(string(runes))
}
