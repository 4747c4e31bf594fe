package console

import (
	"os"

	"github.com/alantheprice/promptline/pkg/utils"
	"golang.org/x/term"
)

// TerminalGeometry reports the live width of the terminal behind a file.
// Nothing is cached, so resizes show up on the next redraw.
type TerminalGeometry struct {
	fd int
}

// NewTerminalGeometry creates a geometry source for f, normally os.Stdout
func NewTerminalGeometry(f *os.File) *TerminalGeometry {
	return &TerminalGeometry{fd: int(f.Fd())}
}

// Width returns the terminal width in cells
func (g *TerminalGeometry) Width() int {
	if width, _, err := term.GetSize(g.fd); err == nil && width > 0 {
		return width
	}
	size, err := utils.GetTerminalSize()
	if err != nil {
		return utils.DefaultTerminalWidth
	}
	return size.Width
}
