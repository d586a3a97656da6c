package draw

import "github.com/charmbracelet/lipgloss"

// Text is a styled label at a 1-based canvas position.
type Text struct {
	Col   int
	Row   int
	Value string
	Color Color
	Bold  bool
}

// Centered returns a label whose middle sits at column col.
func Centered(col, row int, value string, c Color) Text {
	return Text{Col: col - lipgloss.Width(value)/2, Row: row, Value: value, Color: c}
}

// Width returns the label's width in terminal cells.
func (t Text) Width() int {
	return lipgloss.Width(t.Value)
}

// Draw writes the label and marks the covered cells on canvas so the next
// frame repaints them.
func (t Text) Draw(cw *ChunkWriter, p *Palette, canvas *Canvas) {
	if t.Value == "" {
		return
	}
	col := max(t.Col, 1)
	row := max(t.Row, 1)

	style := p.Style(t.Color)
	if t.Bold {
		style = style.Bold(true)
	}
	cw.WriteAt(col, row, style.Render(t.Value))
	if canvas != nil {
		canvas.MarkTextDirty(col, row, t.Width())
	}
}
