package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

// Grid is the toroidal game board: a fixed rows x cols matrix of cell states
type Grid struct {
	rows  int
	cols  int
	cells [][]bool

	// Optional source of back buffers for Advance
	pool *GridPool
}

// NewGrid creates a grid with every cell dead. Non-positive dimensions panic.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(errors.Errorf("[NewGrid] invalid dimensions %dx%d", rows, cols))
	}
	g := &Grid{}
	g.Reset(rows, cols)
	return g
}

// UsePool makes Advance draw its back buffers from pool
func (g *Grid) UsePool(pool *GridPool) *Grid {
	g.pool = pool
	return g
}

// Rows returns the number of rows of the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns of the grid
func (g *Grid) Cols() int {
	return g.cols
}

// Reset resizes the grid and kills every cell. Only the pool reshapes grids.
func (g *Grid) Reset(rows, cols int) {
	g.rows = rows
	g.cols = cols

	// Resize cells if needed
	if len(g.cells) != rows {
		g.cells = make([][]bool, rows)
	}
	for i := range g.cells {
		if len(g.cells[i]) != cols {
			g.cells[i] = make([]bool, cols)
		} else {
			clear(g.cells[i])
		}
	}
}

func (g *Grid) mustContain(op string, row, col int) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(errors.Errorf("[%s] cell (%d,%d) outside %dx%d grid", op, row, col, g.rows, g.cols))
	}
}

// Get returns the state of a cell. Out-of-range coordinates panic.
func (g *Grid) Get(row, col int) bool {
	g.mustContain("Grid.Get", row, col)
	return g.cells[row][col]
}

// Set sets a cell to alive (true) or dead (false). Out-of-range coordinates panic.
func (g *Grid) Set(row, col int, alive bool) {
	g.mustContain("Grid.Set", row, col)
	g.cells[row][col] = alive
}

// Toggle flips a single cell
func (g *Grid) Toggle(row, col int) {
	g.mustContain("Grid.Toggle", row, col)
	g.cells[row][col] = !g.cells[row][col]
}

// Clear kills every cell. The generation counter lives with the controller.
func (g *Grid) Clear() {
	for y := range g.rows {
		clear(g.cells[y])
	}
}

// Randomize gives every cell an independent fair coin flip from src
func (g *Grid) Randomize(src Source) {
	for y := range g.rows {
		for x := range g.cols {
			g.cells[y][x] = src.IntN(2) == 1
		}
	}
}

// wrap maps any integer onto [0, n), negatives included
func wrap(v, n int) int {
	return ((v % n) + n) % n
}

// CountLiveNeighbors counts the live cells among the 8 wrapped neighbors of (row, col)
func (g *Grid) CountLiveNeighbors(row, col int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		r := g.cells[wrap(row+dy, g.rows)]
		for dx := -1; dx <= 1; dx++ {
			if dy == 0 && dx == 0 {
				continue // Skip the cell itself
			}
			if r[wrap(col+dx, g.cols)] {
				count++
			}
		}
	}
	return count
}

// Step computes the next generation into a freshly allocated grid, leaving g
// untouched. The result never comes from the pool.
func (g *Grid) Step() *Grid {
	next := NewGrid(g.rows, g.cols)
	g.stepInto(next)
	return next
}

// stepInto writes the next generation of g into dst, which must match its size
func (g *Grid) stepInto(dst *Grid) {
	for y := range g.rows {
		for x := range g.cols {
			dst.cells[y][x] = rules.ApplyConwayRules(g.CountLiveNeighbors(y, x), g.cells[y][x])
		}
	}
}

// Advance replaces the grid with its next generation. Neighbor counts only
// ever read the previous generation; the new one is swapped in whole. The
// back buffer comes from, and goes back to, the pool when one is attached.
func (g *Grid) Advance() {
	var next *Grid
	if g.pool != nil {
		next = g.pool.Get(g.rows, g.cols)
	} else {
		next = NewGrid(g.rows, g.cols)
	}
	g.stepInto(next)
	g.cells, next.cells = next.cells, g.cells
	GridToPool(next, g.pool)
}

// CopyCells returns a deep copy of the cell matrix
func (g *Grid) CopyCells() [][]bool {
	out := make([][]bool, g.rows)
	for y := range g.rows {
		out[y] = append([]bool(nil), g.cells[y]...)
	}
	return out
}

// CountLiving returns the total number of living cells
func (g *Grid) CountLiving() (count int) {
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// Hash returns an MD5 fingerprint of the current grid state
func (g *Grid) Hash() string {
	return hashCells(g.cells)
}

func hashCells(cells [][]bool) string {
	h := md5.New()
	for _, row := range cells {
		for _, alive := range row {
			if alive {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
