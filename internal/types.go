package internal

import (
	"os"
	"strings"
)

// SourceCode stores the content of a source code file split into lines
// without their line terminators.
type SourceCode struct {
	Lines []string
	// offsets[i] is the rune offset at which line i starts.
	offsets []int
}

func NewSourceCode(text string) *SourceCode {
	lines := strings.Split(text, "\n")
	offsets := make([]int, len(lines))

	pos := 0
	for i, line := range lines {
		offsets[i] = pos
		pos += len([]rune(line)) + 1
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &SourceCode{Lines: lines, offsets: offsets}
}

func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(string(content)), nil
}

// Position converts a rune offset to a 1-based line and column. Offsets
// past the end map to the end of the last line.
func (s *SourceCode) Position(offset int) (line, column int) {
	if len(s.offsets) == 0 {
		return 1, 1
	}
	if offset < 0 {
		offset = 0
	}

	row := len(s.offsets) - 1
	for i := 1; i < len(s.offsets); i++ {
		if s.offsets[i] > offset {
			row = i - 1
			break
		}
	}

	col := offset - s.offsets[row]
	if width := len([]rune(s.Lines[row])); col > width {
		col = width
	}
	return row + 1, col + 1
}
