package source

import (
	"errors"
	"fmt"
	"hash/crc32"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/valerio/go-jeebie-shell/jeebie/menu"
)

var (
	ErrBiosNotFound = errors.New("boot ROM not found")
	ErrBiosSize     = errors.New("boot ROM has the wrong size")
)

const (
	dmgBiosSize = 256
	cgbBiosSize = 2304
)

// biosFiles are the conventional names searched for in the bios directory.
var biosFiles = map[menu.Platform][]string{
	menu.PlatformDMG: {"dmg_boot.bin", "dmg.bin"},
	menu.PlatformGBP: {"mgb_boot.bin", "mgb.bin", "dmg_boot.bin"},
	menu.PlatformSGB: {"sgb_boot.bin", "sgb.bin"},
	menu.PlatformCGB: {"cgb_boot.bin", "cgb.bin"},
	menu.PlatformGBA: {"agb_boot.bin", "agb.bin", "cgb_boot.bin"},
}

// knownBios lists the CRC32 of released boot ROMs. Unknown images are
// accepted with a warning.
var knownBios = map[uint32]string{
	0x59c8598e: "DMG",
	0xc2f5cc97: "DMG0",
	0xe6920754: "MGB",
	0xec8a83b9: "SGB",
	0x53d0dd63: "SGB2",
	0x41884e46: "CGB",
	0xffad2ef5: "AGB",
}

func biosSize(p menu.Platform) int {
	if p == menu.PlatformCGB || p == menu.PlatformGBA {
		return cgbBiosSize
	}
	return dmgBiosSize
}

// LookupBios verifies c.Path, or searches the bios directory when it is empty.
func (s *PatternSource) LookupBios(c menu.BiosCriteria) (menu.BiosInfo, error) {
	if c.Path != "" {
		return verifyBios(c.Platform, c.Path)
	}

	var errs []error
	for _, name := range biosFiles[c.Platform] {
		info, err := verifyBios(c.Platform, filepath.Join(s.cfg.BiosDir, name))
		if err == nil {
			return info, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return menu.BiosInfo{}, errors.Join(errs...)
	}
	return menu.BiosInfo{}, fmt.Errorf("%w for %s in %s", ErrBiosNotFound, c.Platform, s.cfg.BiosDir)
}

func verifyBios(p menu.Platform, path string) (menu.BiosInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return menu.BiosInfo{}, err
	}
	if want := biosSize(p); len(data) != want {
		return menu.BiosInfo{}, fmt.Errorf("%w: %s is %d bytes, %s needs %d",
			ErrBiosSize, filepath.Base(path), len(data), p, want)
	}

	sum := crc32.ChecksumIEEE(data)
	if name, ok := knownBios[sum]; ok {
		slog.Debug("Boot ROM identified", "platform", p, "bios", name)
	} else {
		slog.Warn("Unknown boot ROM", "path", path, "crc32", fmt.Sprintf("%08x", sum))
	}
	return menu.BiosInfo{Platform: p, Path: path, Size: len(data), CRC32: sum}, nil
}
