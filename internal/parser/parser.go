package parser

import (
	"bytes"
	"strconv"
	"strings"

	tt "github.com/asplogic/jshint/internal/types"
)

// Sentinel separates free-form diagnostics from the result block.
var Sentinel = []byte("*** JSHint output ***")

const fieldSeparator = " :: "

// Parse splits raw linter output on the sentinel and parses the result
// block into diagnostics, keeping input order. Lines that do not look like
// "<line> :: <column> :: <message>" are skipped.
func Parse(raw []byte) (*tt.ParsedOutput, error) {
	idx := bytes.Index(raw, Sentinel)
	if idx == -1 {
		return nil, tt.ErrInvalidOutputFormat
	}

	out := &tt.ParsedOutput{Preamble: raw[:idx]}

	block := raw[idx+len(Sentinel):]
	block = bytes.TrimPrefix(block, []byte("\r"))
	block = bytes.TrimPrefix(block, []byte("\n"))

	for _, line := range strings.Split(string(block), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		d, ok := ParseLine(line)
		if !ok {
			out.Skipped++
			continue
		}
		out.Diagnostics = append(out.Diagnostics, d)
	}

	return out, nil
}

// ParseLine parses a single result line.
func ParseLine(line string) (tt.Diagnostic, bool) {
	fields := strings.SplitN(line, fieldSeparator, 3)
	if len(fields) != 3 {
		return tt.Diagnostic{}, false
	}

	lineNo, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || lineNo < 1 {
		return tt.Diagnostic{}, false
	}
	colNo, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || colNo < 1 {
		return tt.Diagnostic{}, false
	}

	return tt.Diagnostic{Line: lineNo, Column: colNo, Message: fields[2]}, true
}
