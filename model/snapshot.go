package model

// RunState says whether the simulation is advancing on its own
type RunState int

const (
	Stopped RunState = iota
	Running
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Snapshot is a read-only view of the simulation handed to displays.
// Cells is a private copy; changing it does not touch the live grid.
type Snapshot struct {
	Cells      [][]bool
	Generation int
	State      RunState
}

// Take captures the current grid together with its generation and run state
func Take(g *Grid, generation int, state RunState) Snapshot {
	return Snapshot{
		Cells:      g.CopyCells(),
		Generation: generation,
		State:      state,
	}
}

// Rows returns the number of rows in the snapshot
func (s Snapshot) Rows() int {
	return len(s.Cells)
}

// Cols returns the number of columns in the snapshot
func (s Snapshot) Cols() int {
	if len(s.Cells) == 0 {
		return 0
	}
	return len(s.Cells[0])
}

// Alive reports whether (row, col) is alive; coordinates outside the snapshot are dead
func (s Snapshot) Alive(row, col int) bool {
	if row < 0 || row >= s.Rows() || col < 0 || col >= s.Cols() {
		return false
	}
	return s.Cells[row][col]
}

// Population returns the number of living cells
func (s Snapshot) Population() (count int) {
	for _, row := range s.Cells {
		for _, alive := range row {
			if alive {
				count++
			}
		}
	}
	return
}

// Hash returns an MD5 fingerprint of the captured cells
func (s Snapshot) Hash() string {
	return hashCells(s.Cells)
}
