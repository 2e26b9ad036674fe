package model

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "
)

// TextRenderer draws snapshots as block characters onto a writer
type TextRenderer struct {
	Out io.Writer
}

// Display renders the status line followed by the grid
func (r *TextRenderer) Display(s Snapshot) error {
	w := bufio.NewWriter(r.Out)
	fmt.Fprintf(w, "Gen: %d | Living: %d | State: %s\n", s.Generation, s.Population(), s.State)
	for _, row := range s.Cells {
		for _, alive := range row {
			if alive {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "[TextRenderer.Display] failed to write frame")
	}
	return nil
}
