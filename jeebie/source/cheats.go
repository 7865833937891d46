package source

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/valerio/go-jeebie-shell/jeebie/menu"
)

var ErrInvalidCheat = errors.New("invalid cheat code")

// CheatKind tells the two code formats apart
type CheatKind int

const (
	GameGenie CheatKind = iota // ROM patch
	GameShark                  // RAM write
)

func (k CheatKind) String() string {
	if k == GameShark {
		return "GameShark"
	}
	return "Game Genie"
}

// Cheat is a decoded cheat code.
type Cheat struct {
	Kind    CheatKind
	Code    string
	Address uint16
	Value   uint8
	// Compare is the value a Game Genie patch expects at Address; HasCompare
	// is false for the short six digit form.
	Compare    uint8
	HasCompare bool
	// Bank is the external RAM bank of a GameShark write.
	Bank uint8
}

// ParseGameGenie decodes "ABC-DEF" or "ABC-DEF-GHI".
func ParseGameGenie(code string) (Cheat, error) {
	digits := strings.ReplaceAll(strings.TrimSpace(code), "-", "")
	if len(digits) != 6 && len(digits) != 9 {
		return Cheat{}, fmt.Errorf("%w: %q", ErrInvalidCheat, code)
	}
	n, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return Cheat{}, fmt.Errorf("%w: %q", ErrInvalidCheat, code)
	}
	nib := func(i int) uint64 {
		return (n >> (4 * uint(len(digits)-1-i))) & 0xF
	}

	c := Cheat{
		Kind:    GameGenie,
		Code:    strings.ToUpper(strings.TrimSpace(code)),
		Value:   uint8(nib(0)<<4 | nib(1)),
		Address: uint16((nib(5)^0xF)<<12 | nib(2)<<8 | nib(3)<<4 | nib(4)),
	}
	if len(digits) == 9 {
		cmp := uint8(nib(6)<<4 | nib(8))
		cmp = cmp>>2 | cmp<<6
		c.Compare = cmp ^ 0xBA
		c.HasCompare = true
	}
	if c.Address >= 0x8000 {
		return Cheat{}, fmt.Errorf("%w: %q patches %#04x outside ROM", ErrInvalidCheat, code, c.Address)
	}
	return c, nil
}

// ParseGameShark decodes "BBVVLLHH": RAM bank, value and little endian address.
func ParseGameShark(code string) (Cheat, error) {
	digits := strings.TrimSpace(code)
	if len(digits) != 8 {
		return Cheat{}, fmt.Errorf("%w: %q", ErrInvalidCheat, code)
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Cheat{}, fmt.Errorf("%w: %q", ErrInvalidCheat, code)
	}
	c := Cheat{
		Kind:    GameShark,
		Code:    strings.ToUpper(digits),
		Bank:    uint8(n >> 24),
		Value:   uint8(n >> 16),
		Address: uint16(n&0xFF)<<8 | uint16(n>>8&0xFF),
	}
	if c.Address < 0xA000 {
		return Cheat{}, fmt.Errorf("%w: %q writes %#04x outside RAM", ErrInvalidCheat, code, c.Address)
	}
	return c, nil
}

// SetCheats replaces the active cheats. Codes that do not parse are logged
// and skipped.
func (s *PatternSource) SetCheats(cc menu.CheatConfig) {
	s.cheats = s.cheats[:0]
	add := func(parse func(string) (Cheat, error), codes []string) {
		for _, code := range codes {
			if strings.TrimSpace(code) == "" {
				continue
			}
			c, err := parse(code)
			if err != nil {
				slog.Warn("Skipping cheat", "error", err)
				continue
			}
			s.cheats = append(s.cheats, c)
		}
	}
	add(ParseGameGenie, cc.GameGenie)
	add(ParseGameShark, cc.GameShark)
	slog.Debug("Cheats updated", "active", len(s.cheats))
}

// Cheats returns the active cheats.
func (s *PatternSource) Cheats() []Cheat {
	return append([]Cheat(nil), s.cheats...)
}
