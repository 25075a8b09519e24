package parser

import (
	"testing"

	tt "github.com/asplogic/jshint/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	raw := []byte("warning: foo\n*** JSHint output ***\n3 :: 5 :: 'x' is not defined\n7 :: 1 :: Missing semicolon.\n")

	out, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "warning: foo\n", string(out.Preamble))
	assert.Equal(t, []tt.Diagnostic{
		{Line: 3, Column: 5, Message: "'x' is not defined"},
		{Line: 7, Column: 1, Message: "Missing semicolon."},
	}, out.Diagnostics)
	assert.Zero(t, out.Skipped)
}

func TestParse_MissingSentinel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"node error", "/bin/sh: node: command not found\n"},
		{"result lines only", "3 :: 5 :: 'x' is not defined\n"},
		{"partial sentinel", "*** JSHint output **\n1 :: 1 :: a\n"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out, err := Parse([]byte(tc.raw))
			assert.ErrorIs(t, err, tt.ErrInvalidOutputFormat)
			assert.Nil(t, out)
		})
	}
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	t.Parallel()

	raw := []byte("*** JSHint output ***\n" +
		"abc :: def :: bad\n" +
		"2 :: 4 :: Expected '===' and instead saw '=='.\n" +
		"noise\n" +
		"0 :: 1 :: zero line\n" +
		"5 :: -2 :: negative column\n" +
		"\n" +
		"9 :: 3 :: Unmatched '{'.\n")

	out, err := Parse(raw)
	require.NoError(t, err)

	assert.Empty(t, out.Preamble)
	assert.Equal(t, []tt.Diagnostic{
		{Line: 2, Column: 4, Message: "Expected '===' and instead saw '=='."},
		{Line: 9, Column: 3, Message: "Unmatched '{'."},
	}, out.Diagnostics)
	assert.Equal(t, 4, out.Skipped)
}

func TestParse_KeepsInputOrder(t *testing.T) {
	t.Parallel()

	raw := []byte("*** JSHint output ***\n" +
		"10 :: 1 :: later line first\n" +
		"1 :: 1 :: first\n" +
		"1 :: 1 :: same position second\n")

	out, err := Parse(raw)
	require.NoError(t, err)

	messages := make([]string, 0, len(out.Diagnostics))
	for _, d := range out.Diagnostics {
		messages = append(messages, d.Message)
	}
	assert.Equal(t, []string{"later line first", "first", "same position second"}, messages)
}

func TestParse_CRLFAndNoTrailingNewline(t *testing.T) {
	t.Parallel()

	out, err := Parse([]byte("pre\r\n*** JSHint output ***\r\n1 :: 2 :: a\r\n3 :: 4 :: b"))
	require.NoError(t, err)

	assert.Equal(t, "pre\r\n", string(out.Preamble))
	assert.Equal(t, []tt.Diagnostic{
		{Line: 1, Column: 2, Message: "a"},
		{Line: 3, Column: 4, Message: "b"},
	}, out.Diagnostics)
}

func TestParse_EmptyResultBlock(t *testing.T) {
	t.Parallel()

	out, err := Parse([]byte("*** JSHint output ***"))
	require.NoError(t, err)
	assert.Empty(t, out.Diagnostics)
}

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line     string
		expected tt.Diagnostic
		ok       bool
	}{
		{"3 :: 5 :: 'x' is not defined", tt.Diagnostic{Line: 3, Column: 5, Message: "'x' is not defined"}, true},
		{"1 :: 1 :: a :: b", tt.Diagnostic{Line: 1, Column: 1, Message: "a :: b"}, true},
		{"1 :: 1", tt.Diagnostic{}, false},
		{"1::1::x", tt.Diagnostic{}, false},
		{"x :: 1 :: y", tt.Diagnostic{}, false},
	}

	for _, tc := range tests {
		d, ok := ParseLine(tc.line)
		assert.Equal(t, tc.ok, ok, tc.line)
		assert.Equal(t, tc.expected, d, tc.line)
	}
}
