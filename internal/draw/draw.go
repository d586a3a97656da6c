// Package draw renders the playfield to a terminal: a scaled half-block
// colour canvas plus positioned, styled text.
package draw

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color is a palette index. ColorNone marks an empty pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorGreen
	ColorRed
	ColorBlue
	ColorYellow
	ColorGray
	ColorPurple
	ColorStarDim
	ColorStarMid
	ColorStarBright
	ColorDivider
	numColors
)

var paletteHex = [numColors]string{
	ColorWhite:      "#F0F0F0",
	ColorGreen:      "#50DC64",
	ColorRed:        "#EB5050",
	ColorBlue:       "#50B4EB",
	ColorYellow:     "#FADC5A",
	ColorGray:       "#464650",
	ColorPurple:     "#A064DC",
	ColorStarDim:    "#969696",
	ColorStarMid:    "#C8C8C8",
	ColorStarBright: "#FFFFFF",
	ColorDivider:    "#1E1E28",
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Palette turns colour pairs into styled terminal glyphs for one output.
// Each SSH session owns its own Palette so colour detection stays per client.
type Palette struct {
	renderer *lipgloss.Renderer
	cells    map[[2]Color]string
	styles   map[Color]lipgloss.Style
}

// NewPalette creates a palette rendering through r.
func NewPalette(r *lipgloss.Renderer) *Palette {
	return &Palette{
		renderer: r,
		cells:    make(map[[2]Color]string),
		styles:   make(map[Color]lipgloss.Style),
	}
}

// NewRemotePalette creates a palette for a writer that is not a local TTY,
// forcing 256-colour output since the profile cannot be detected.
func NewRemotePalette(w io.Writer) *Palette {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return NewPalette(r)
}

// NewLocalPalette creates a palette detecting the colour profile of stdout.
func NewLocalPalette() *Palette {
	return NewPalette(lipgloss.NewRenderer(os.Stdout))
}

// Style returns a foreground style for c.
func (p *Palette) Style(c Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	s := p.renderer.NewStyle()
	if c != ColorNone && c < numColors {
		s = s.Foreground(lipgloss.Color(paletteHex[c]))
	}
	p.styles[c] = s
	return s
}

// cell returns the glyph for a terminal cell whose upper sub-pixel is top
// and lower sub-pixel is bottom.
func (p *Palette) cell(top, bottom Color) string {
	key := [2]Color{top, bottom}
	if s, ok := p.cells[key]; ok {
		return s
	}

	var s string
	switch {
	case top == ColorNone && bottom == ColorNone:
		s = string(BlockEmpty)
	case top == bottom:
		s = p.Style(top).Render(string(BlockFull))
	case bottom == ColorNone:
		s = p.Style(top).Render(string(BlockUpperHalf))
	case top == ColorNone:
		s = p.Style(bottom).Render(string(BlockLowerHalf))
	default:
		s = p.Style(top).Background(lipgloss.Color(paletteHex[bottom])).Render(string(BlockUpperHalf))
	}
	p.cells[key] = s
	return s
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}
