// Package romloader reads Game Boy ROM images from disk, unpacking them from
// zip, 7z, rar, gzip or tar.gz archives when needed.
package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxROMSize is the largest image accepted (MBC5 tops out at 8MB).
const MaxROMSize = 8 * 1024 * 1024

var (
	ErrNoROMFile         = errors.New("no ROM file found in archive")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file exceeds maximum ROM size")
)

// Extensions are the file extensions recognized as ROM images.
var Extensions = []string{".gb", ".gbc", ".sgb"}

var (
	magicZIP      = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEmpty = []byte{0x50, 0x4B, 0x05, 0x06}
	magic7z       = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip     = []byte{0x1F, 0x8B}
	magicRAR      = []byte("Rar!")
)

// Format is the container a ROM was read from
type Format int

const (
	FormatUnknown Format = iota
	FormatRaw
	FormatZIP
	Format7z
	FormatGzip
	FormatRAR
)

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatZIP:
		return "zip"
	case Format7z:
		return "7z"
	case FormatGzip:
		return "gzip"
	case FormatRAR:
		return "rar"
	}
	return "unknown"
}

// ROM is a ROM image read from disk.
type ROM struct {
	Data []byte
	// Name is the base name of the image, inside the archive if there was one.
	Name   string
	Format Format
}

// Load reads the ROM at path. Archives are detected by magic bytes first and
// by extension second; the first entry with a ROM extension is extracted.
func Load(path string) (ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return ROM{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return ROM{}, fmt.Errorf("failed to read file header: %w", err)
	}
	format := Detect(header[:n], path)

	var rom ROM
	switch format {
	case FormatRaw:
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return ROM{}, fmt.Errorf("failed to seek file: %w", err)
		}
		data, err := readLimited(f)
		if err != nil {
			return ROM{}, fmt.Errorf("failed to read ROM: %w", err)
		}
		rom = ROM{Data: data, Name: filepath.Base(path)}
	case FormatZIP:
		rom, err = fromZIP(path)
	case Format7z:
		rom, err = from7z(path)
	case FormatGzip:
		rom, err = fromGzip(path)
	case FormatRAR:
		rom, err = fromRAR(path)
	default:
		return ROM{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return ROM{}, err
	}
	rom.Format = format
	return rom, nil
}

// Detect works out the container format from the first bytes of a file and
// its name.
func Detect(header []byte, path string) Format {
	switch {
	case bytes.HasPrefix(header, magicZIP), bytes.HasPrefix(header, magicZIPEmpty):
		return FormatZIP
	case bytes.HasPrefix(header, magicRAR):
		return FormatRAR
	case bytes.HasPrefix(header, magic7z):
		return Format7z
	case bytes.HasPrefix(header, magicGzip):
		return FormatGzip
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZIP
	case strings.HasSuffix(lower, ".7z"):
		return Format7z
	case strings.HasSuffix(lower, ".gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatGzip
	case strings.HasSuffix(lower, ".rar"):
		return FormatRAR
	}

	if IsROMName(path) {
		return FormatRaw
	}
	return FormatUnknown
}

// IsROMName reports whether name carries one of the ROM extensions.
func IsROMName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxROMSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxROMSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
