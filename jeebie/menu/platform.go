package menu

import "fmt"

// NewPlatformMenu returns the platform choice menu with every supported
// platform. Option ids are the platform values.
func NewPlatformMenu() *Choice[Platform] {
	c := NewChoice[Platform]("Platform")
	options := make([]Option[Platform], 0, len(Platforms))
	for _, p := range Platforms {
		options = append(options, Option[Platform]{ID: int(p), Label: p.String(), Value: p})
	}
	c.Populate(options)
	return c
}

// NewSlotMenu returns the save state slot menu, slots 0 to slots-1.
func NewSlotMenu(slots int) *Choice[int] {
	c := NewChoice[int]("State slot")
	options := make([]Option[int], 0, slots)
	for i := 0; i < slots; i++ {
		options = append(options, Option[int]{ID: i, Label: fmt.Sprintf("Slot %d", i), Value: i})
	}
	c.Populate(options)
	return c
}
