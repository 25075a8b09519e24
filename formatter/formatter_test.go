package formatter

import (
	"testing"

	"github.com/asplogic/jshint/internal"
	tt "github.com/asplogic/jshint/internal/types"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestGenerateFormattedDiagnostics(t *testing.T) {
	t.Parallel()

	code := internal.NewSourceCode("var a = 1\nfoo(bar)\n")
	diagnostics := []tt.PresentedDiagnostic{
		{
			Diagnostic: tt.Diagnostic{Line: 1, Column: 10, Message: "Missing semicolon."},
			Region:     tt.Region{Begin: 0, End: 9},
		},
		{
			Diagnostic: tt.Diagnostic{Line: 2, Column: 5, Message: "'bar' is not defined."},
			Region:     tt.Region{Begin: 14, End: 17},
		},
	}

	expected := `warning: Missing semicolon.
 --> a.js:1:10
  |
1 | var a = 1
  | ~~~~~~~~~

warning: 'bar' is not defined.
 --> a.js:2:5
  |
2 | foo(bar)
  |     ~~~

`

	assert.Equal(t, expected, GenerateFormattedDiagnostics("a.js", diagnostics, code))
}

func TestGenerateFormattedDiagnostics_Indented(t *testing.T) {
	t.Parallel()

	code := internal.NewSourceCode("function f() {\n\tx = y\n}\n")
	diagnostics := []tt.PresentedDiagnostic{
		{
			Diagnostic: tt.Diagnostic{Line: 2, Column: 2, Message: "'x' is not defined."},
			Region:     tt.Region{Begin: 16, End: 17},
		},
		{
			Diagnostic: tt.Diagnostic{Line: 2, Column: 7, Message: "Missing semicolon."},
			Region:     tt.Region{Begin: 15, End: 21},
		},
	}

	expected := `warning: 'x' is not defined.
 --> b.js:2:2
  |
2 | x = y
  | ~

warning: Missing semicolon.
 --> b.js:2:7
  |
2 | x = y
  | ~~~~~

`

	assert.Equal(t, expected, GenerateFormattedDiagnostics("b.js", diagnostics, code))
}

func TestGenerateFormattedDiagnostics_MultipleDigitsAndEmptyRegion(t *testing.T) {
	t.Parallel()

	code := internal.NewSourceCode("a\nb\nc\nd\ne\nf\ng\nh\ni\nj = ;\n")
	diagnostics := []tt.PresentedDiagnostic{
		{
			Diagnostic: tt.Diagnostic{Line: 10, Column: 3, Message: "Expected an identifier and instead saw '='."},
			Region:     tt.Region{Begin: 20, End: 20},
		},
	}

	expected := `warning: Expected an identifier and instead saw '='.
  --> c.js:10:3
   |
10 | j = ;
   |   ~

`

	assert.Equal(t, expected, GenerateFormattedDiagnostics("c.js", diagnostics, code))
}

func TestSummary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no problems found in 2 file(s)\n", Summary(0, 2))
	assert.Equal(t, "3 problem(s) found in 1 file(s)\n", Summary(3, 1))
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line     string
		column   int
		expected int
	}{
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"\tabc", 2, 8},
		{"a\tb", 3, 8},
		{"éa", 2, 1},
		{"ab", 10, 2},
		{"ab", -1, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, calculateVisualColumn(tc.line, tc.column), "%q col %d", tc.line, tc.column)
	}
}
