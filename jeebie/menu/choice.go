package menu

import "errors"

// ErrUnknownOption is returned when selecting an id that is not in the menu.
var ErrUnknownOption = errors.New("unknown menu option")

// NoOption is the checked id reported when no option is checked.
const NoOption = -1

// Option is one entry of an exclusive choice menu.
type Option[T comparable] struct {
	ID    int
	Label string
	Value T
}

// Presenter renders a choice menu in some toolkit. Adapters implement it.
type Presenter[T comparable] interface {
	Present(title string, options []Option[T], checkedID int)
}

// Choice is a set of mutually exclusive options mirroring one authoritative
// value. At most one option is checked at any time.
type Choice[T comparable] struct {
	title   string
	options []Option[T]
	checked int // index into options, or NoOption

	// OnSelect receives the value of an option picked by the user. The
	// owner applies it and confirms with Synchronize; a returned error is
	// passed back to the caller of Select.
	OnSelect func(T) error
}

// NewChoice returns an empty menu with the given title.
func NewChoice[T comparable](title string) *Choice[T] {
	return &Choice[T]{title: title, checked: NoOption}
}

func (c *Choice[T]) Title() string { return c.title }

// Populate replaces the options and clears the checked state. Options with a
// duplicate ID are dropped, first one wins.
func (c *Choice[T]) Populate(options []Option[T]) {
	c.options = c.options[:0]
	seen := make(map[int]bool, len(options))
	for _, o := range options {
		if seen[o.ID] {
			continue
		}
		seen[o.ID] = true
		c.options = append(c.options, o)
	}
	c.checked = NoOption
}

// Synchronize checks the option equal to v, or none if nothing matches.
func (c *Choice[T]) Synchronize(v T) {
	c.checked = NoOption
	for i, o := range c.options {
		if o.Value == v {
			c.checked = i
			return
		}
	}
}

// Select records a user pick. The option is checked right away and its value
// is handed to OnSelect. Unknown ids change nothing.
func (c *Choice[T]) Select(id int) error {
	i := c.indexOf(id)
	if i < 0 {
		return ErrUnknownOption
	}
	c.checked = i
	if c.OnSelect != nil {
		return c.OnSelect(c.options[i].Value)
	}
	return nil
}

// Clear unchecks every option.
func (c *Choice[T]) Clear() {
	c.checked = NoOption
}

// Checked returns the checked option, if any.
func (c *Choice[T]) Checked() (Option[T], bool) {
	if c.checked == NoOption {
		return Option[T]{}, false
	}
	return c.options[c.checked], true
}

// CheckedID returns the id of the checked option or NoOption.
func (c *Choice[T]) CheckedID() int {
	if o, ok := c.Checked(); ok {
		return o.ID
	}
	return NoOption
}

// Options returns a copy of the available options in menu order.
func (c *Choice[T]) Options() []Option[T] {
	out := make([]Option[T], len(c.options))
	copy(out, c.options)
	return out
}

// Lookup returns the option with the given id.
func (c *Choice[T]) Lookup(id int) (Option[T], bool) {
	i := c.indexOf(id)
	if i < 0 {
		return Option[T]{}, false
	}
	return c.options[i], true
}

// Next returns the id of the option after the checked one, wrapping around.
// With nothing checked it returns the first option.
func (c *Choice[T]) Next() (int, bool) {
	if len(c.options) == 0 {
		return NoOption, false
	}
	if c.checked == NoOption {
		return c.options[0].ID, true
	}
	return c.options[(c.checked+1)%len(c.options)].ID, true
}

// Present hands the current state to a toolkit adapter.
func (c *Choice[T]) Present(p Presenter[T]) {
	p.Present(c.title, c.Options(), c.CheckedID())
}

func (c *Choice[T]) indexOf(id int) int {
	for i, o := range c.options {
		if o.ID == id {
			return i
		}
	}
	return -1
}
