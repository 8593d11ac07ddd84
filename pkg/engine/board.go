package engine

import (
	"fmt"
	"strings"
)

// Coord addresses a cell. Row 0 is the top of the board.
type Coord struct {
	Column int
	Row    int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Column, c.Row)
}

// Board is a Columns x Rows grid of markers. Columns fill from the bottom
// row upwards.
type Board struct {
	cols  int
	rows  int
	cells []Marker
}

func NewBoard(cols, rows int) Board {
	return Board{cols: cols, rows: rows, cells: make([]Marker, cols*rows)}
}

func (b Board) index(col, row int) int {
	return (row * b.cols) + col
}

func (b Board) Columns() int {
	return b.cols
}

func (b Board) Rows() int {
	return b.rows
}

func (b Board) InBounds(c Coord) bool {
	return c.Column >= 0 && c.Column < b.cols && c.Row >= 0 && c.Row < b.rows
}

// At returns the marker at the given cell, or Empty when it is out of bounds
func (b Board) At(col, row int) Marker {
	if !b.InBounds(Coord{col, row}) {
		return Empty
	}
	return b.cells[b.index(col, row)]
}

// Height returns the number of markers stacked in a column
func (b Board) Height(col int) int {
	h := 0
	for row := b.rows - 1; row >= 0; row-- {
		if b.At(col, row) == Empty {
			break
		}
		h++
	}
	return h
}

func (b Board) ColumnFull(col int) bool {
	return b.At(col, 0) != Empty
}

// OpenColumns lists the columns that can still take a marker, left to right
func (b Board) OpenColumns() []int {
	var open []int
	for col := 0; col < b.cols; col++ {
		if !b.ColumnFull(col) {
			open = append(open, col)
		}
	}
	return open
}

// IsFull reports whether the top cell of every column is occupied
func (b Board) IsFull() bool {
	for col := 0; col < b.cols; col++ {
		if !b.ColumnFull(col) {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no storage with b
func (b Board) Clone() Board {
	nb := Board{cols: b.cols, rows: b.rows, cells: make([]Marker, len(b.cells))}
	copy(nb.cells, b.cells)
	return nb
}

// drop places m in the lowest empty cell of col and returns its row, or -1
// when the column is full.
func (b *Board) drop(col int, m Marker) int {
	for row := b.rows - 1; row >= 0; row-- {
		i := b.index(col, row)
		if b.cells[i] == Empty {
			b.cells[i] = m
			return row
		}
	}
	return -1
}

func (b *Board) set(c Coord, m Marker) {
	b.cells[b.index(c.Column, c.Row)] = m
}

func (b *Board) clear() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
}

// String renders the board top row first, using '.', 'A' and 'B'
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			switch b.At(col, row) {
			case PlayerA:
				sb.WriteRune('A')
			case PlayerB:
				sb.WriteRune('B')
			default:
				sb.WriteRune('.')
			}
		}
		if row != b.rows-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
