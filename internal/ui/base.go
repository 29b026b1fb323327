package ui

// Base is the drawing area of a panel. Panels embed it and read their size
// back when rendering or hit-testing.
type Base struct {
	width, height int
}

// SetSize stores the area, treating negative sizes as empty.
func (b *Base) SetSize(width, height int) {
	b.width, b.height = max(width, 0), max(height, 0)
}

// Size returns the area in cells.
func (b Base) Size() (width, height int) { return b.width, b.height }

// Height returns the number of rows.
func (b Base) Height() int { return b.height }
