// Package native shows the operating system's file and message dialogs.
package native

import (
	"errors"
	"log/slog"

	"github.com/sqweek/dialog"
	"github.com/valerio/go-jeebie-shell/jeebie/menu"
)

// Chooser implements menu.FileChooser with native file dialogs
type Chooser struct {
	// StartDir is where the dialogs open.
	StartDir string
}

func NewChooser(startDir string) *Chooser {
	return &Chooser{StartDir: startDir}
}

func (c *Chooser) OpenFile(title string, filters ...menu.FileFilter) (string, error) {
	path, err := c.builder(title, filters).Load()
	return path, translate(err)
}

func (c *Chooser) SaveFile(title string, filters ...menu.FileFilter) (string, error) {
	path, err := c.builder(title, filters).Save()
	return path, translate(err)
}

func (c *Chooser) builder(title string, filters []menu.FileFilter) *dialog.FileBuilder {
	b := dialog.File().Title(title)
	if c.StartDir != "" {
		b = b.SetStartDir(c.StartDir)
	}
	for _, f := range filters {
		b = b.Filter(f.Description, f.Extensions...)
	}
	return b
}

func translate(err error) error {
	if errors.Is(err, dialog.ErrCancelled) {
		return menu.ErrCancelled
	}
	return err
}

// ShowError pops up a modal error message.
func ShowError(title string, err error) {
	slog.Debug("Showing error dialog", "error", err)
	dialog.Message("%s", err.Error()).Title(title).Error()
}

var _ menu.FileChooser = (*Chooser)(nil)
