package romloader

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testROM = bytes.Repeat([]byte{0x00, 0xC3, 0x50, 0x01}, 64)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func zipBytes(t *testing.T, files map[string][]byte, order ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write(data)
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func TestLoad_Raw(t *testing.T) {
	for _, name := range []string{"game.gb", "game.GBC", "game.sgb"} {
		t.Run(name, func(t *testing.T) {
			rom, err := Load(writeFile(t, name, testROM))
			require.NoError(t, err)
			assert.Equal(t, testROM, rom.Data)
			assert.Equal(t, name, rom.Name)
			assert.Equal(t, FormatRaw, rom.Format)
		})
	}
}

func TestLoad_ZIP(t *testing.T) {
	data := zipBytes(t, map[string][]byte{
		"docs/":           nil,
		"docs/readme.txt": []byte("hello"),
		"roms/tetris.gb":  testROM,
	}, "docs/", "docs/readme.txt", "roms/tetris.gb")

	rom, err := Load(writeFile(t, "tetris.zip", data))
	require.NoError(t, err)
	assert.Equal(t, testROM, rom.Data)
	assert.Equal(t, "tetris.gb", rom.Name)
	assert.Equal(t, FormatZIP, rom.Format)
}

func TestLoad_ZIPWithoutROM(t *testing.T) {
	data := zipBytes(t, map[string][]byte{"readme.txt": []byte("hello")}, "readme.txt")

	_, err := Load(writeFile(t, "empty.zip", data))
	assert.ErrorIs(t, err, ErrNoROMFile)
}

func TestLoad_Gzip(t *testing.T) {
	rom, err := Load(writeFile(t, "tetris.gb.gz", gzipBytes(t, testROM)))
	require.NoError(t, err)
	assert.Equal(t, testROM, rom.Data)
	assert.Equal(t, "tetris.gb", rom.Name)
	assert.Equal(t, FormatGzip, rom.Format)
}

func TestLoad_TarGz(t *testing.T) {
	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "roms/", Typeflag: tar.TypeDir, Mode: 0755}))
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "roms/kirby.gbc", Typeflag: tar.TypeReg, Mode: 0644, Size: int64(len(testROM))}))
	_, err := tw.Write(testROM)
	require.NoError(t, err)
	require.NoError(t, tw.Close())

	rom, err := Load(writeFile(t, "kirby.tar.gz", gzipBytes(t, tarBuf.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, testROM, rom.Data)
	assert.Equal(t, "kirby.gbc", rom.Name)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.gb"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "notes.txt", []byte("plain text")))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := Load(writeFile(t, "huge.gb", make([]byte, MaxROMSize+1)))
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("corrupt 7z", func(t *testing.T) {
		data := append([]byte{}, magic7z...)
		data = append(data, 0x00, 0x04, 0xFF, 0xFF)
		_, err := Load(writeFile(t, "broken.7z", data))
		assert.Error(t, err)
	})

	t.Run("corrupt rar", func(t *testing.T) {
		_, err := Load(writeFile(t, "broken.rar", []byte("Rar!\x1a\x07\x00garbage")))
		assert.Error(t, err)
	})
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		path   string
		want   Format
	}{
		{"zip magic", magicZIP, "rom.bin", FormatZIP},
		{"empty zip magic", magicZIPEmpty, "rom.bin", FormatZIP},
		{"7z magic", magic7z, "rom.bin", Format7z},
		{"gzip magic", magicGzip, "rom.bin", FormatGzip},
		{"rar magic", magicRAR, "rom.bin", FormatRAR},
		{"zip extension", nil, "rom.ZIP", FormatZIP},
		{"7z extension", nil, "rom.7z", Format7z},
		{"tgz extension", nil, "rom.tgz", FormatGzip},
		{"rar extension", nil, "rom.rar", FormatRAR},
		{"gb extension", []byte{0x00, 0xC3}, "rom.gb", FormatRaw},
		{"unknown", []byte{0x00}, "rom.nes", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.header, tt.path))
		})
	}
}

func TestIsROMName(t *testing.T) {
	assert.True(t, IsROMName("a/b/Tetris.GB"))
	assert.True(t, IsROMName("zelda.gbc"))
	assert.False(t, IsROMName("readme.txt"))
	assert.False(t, IsROMName("gb"))
}
