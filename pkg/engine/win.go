package engine

// Direction of a winning run as seen on screen, with row 0 at the top.
// NoDirection belongs to an empty line.
type Direction int

const (
	NoDirection Direction = iota
	Horizontal
	Vertical
	Ascending  // left to right, going up
	Descending // left to right, going down
)

func (d Direction) String() string {
	switch d {
	case NoDirection:
		return "None"
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	case Ascending:
		return "Ascending"
	case Descending:
		return "Descending"
	default:
		return "Unknown"
	}
}

// WinLine is a run of same-marker cells, in scan order
type WinLine struct {
	Direction Direction
	Cells     []Coord
}

func (l WinLine) Contains(c Coord) bool {
	for _, lc := range l.Cells {
		if lc == c {
			return true
		}
	}
	return false
}

func (l WinLine) clone() WinLine {
	if l.Cells == nil {
		return l
	}
	cells := make([]Coord, len(l.Cells))
	copy(cells, l.Cells)
	return WinLine{Direction: l.Direction, Cells: cells}
}

// run checks the n cells starting at start and stepping by (dc, dr)
func (b Board) run(start Coord, dc, dr, n int, m Marker, d Direction) (WinLine, bool) {
	cells := make([]Coord, 0, n)
	for i := 0; i < n; i++ {
		c := Coord{start.Column + (i * dc), start.Row + (i * dr)}
		if !b.InBounds(c) || b.At(c.Column, c.Row) != m {
			return WinLine{}, false
		}
		cells = append(cells, c)
	}
	return WinLine{Direction: d, Cells: cells}, true
}

// CheckWin scans b for n consecutive cells holding m and returns the first
// run found. Columns are visited left to right; for each column horizontal,
// ascending and descending runs starting there are checked in that order.
// Vertical runs are checked in a separate pass afterwards.
func CheckWin(b Board, m Marker, n int) (WinLine, bool) {
	if !m.Valid() || n < 1 {
		return WinLine{}, false
	}

	for col := 0; col <= b.cols-n; col++ {
		for row := 0; row < b.rows; row++ {
			if line, ok := b.run(Coord{col, row}, 1, 0, n, m, Horizontal); ok {
				return line, true
			}
		}
		for row := n - 1; row < b.rows; row++ {
			if line, ok := b.run(Coord{col, row}, 1, -1, n, m, Ascending); ok {
				return line, true
			}
		}
		for row := 0; row <= b.rows-n; row++ {
			if line, ok := b.run(Coord{col, row}, 1, 1, n, m, Descending); ok {
				return line, true
			}
		}
	}

	for col := 0; col < b.cols; col++ {
		for row := 0; row <= b.rows-n; row++ {
			if line, ok := b.run(Coord{col, row}, 0, 1, n, m, Vertical); ok {
				return line, true
			}
		}
	}

	return WinLine{}, false
}
