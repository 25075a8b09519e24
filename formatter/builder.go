package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/asplogic/jshint/internal"
	tt "github.com/asplogic/jshint/internal/types"
	"github.com/fatih/color"
)

const tabWidth = 8

var (
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	summaryStyle = color.New(color.FgGreen, color.Bold)
)

const diagnosticTemplate = `{{header .Message .MaxLineNumWidth .Filename .Line .Column -}}
{{snippet .SnippetLine .SnippetLineNum .MaxLineNumWidth .CommonIndent .Padding -}}
{{underline .Padding .SnippetLine .StartColumn .EndColumn .CommonIndent}}
`

var tmpl = template.Must(template.New("diagnostic").Funcs(template.FuncMap{
	"header":    header,
	"snippet":   codeSnippet,
	"underline": underline,
}).Parse(diagnosticTemplate))

// GenerateFormattedDiagnostics renders diagnostics of filename with the
// highlighted part of each source line underlined.
func GenerateFormattedDiagnostics(filename string, diagnostics []tt.PresentedDiagnostic, source *internal.SourceCode) string {
	var builder strings.Builder
	for _, d := range diagnostics {
		builder.WriteString(buildDiagnostic(filename, d, source))
	}
	return builder.String()
}

// Summary returns a one line count of diagnostics and files.
func Summary(diagnostics, files int) string {
	if diagnostics == 0 {
		return summaryStyle.Sprintf("no problems found in %d file(s)\n", files)
	}
	return warningStyle.Sprintf("%d problem(s) found in %d file(s)\n", diagnostics, files)
}

type DiagnosticData struct {
	Filename        string
	Message         string
	Line            int
	Column          int
	SnippetLine     string
	SnippetLineNum  int
	StartColumn     int
	EndColumn       int
	MaxLineNumWidth int
	Padding         string
	CommonIndent    string
}

func buildDiagnostic(filename string, d tt.PresentedDiagnostic, source *internal.SourceCode) string {
	startLine, startColumn := source.Position(d.Region.Begin)
	endLine, endColumn := source.Position(d.Region.End)

	// regions are end-exclusive; the underline is inclusive
	switch {
	case endLine != startLine:
		endColumn = len([]rune(source.Lines[startLine-1]))
	case endColumn > startColumn:
		endColumn--
	default:
		endColumn = startColumn
	}

	maxLineNumWidth := len(fmt.Sprintf("%d", startLine))
	snippetLine := source.Lines[startLine-1]

	data := DiagnosticData{
		Filename:        filename,
		Message:         d.Message,
		Line:            d.Line,
		Column:          d.Column,
		SnippetLine:     snippetLine,
		SnippetLineNum:  startLine,
		StartColumn:     startColumn,
		EndColumn:       endColumn,
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         strings.Repeat(" ", maxLineNumWidth+1),
		CommonIndent:    leadingIndent(snippetLine),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting diagnostic: %v", err)
	}
	return buf.String()
}

// utils functions used in the text template

func header(message string, maxLineNumWidth int, filename string, line int, column int) string {
	endString := warningStyle.Sprint("warning: ")
	endString += messageStyle.Sprintf("%s\n", message)

	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s:%d:%d\n", filename, line, column)

	return endString
}

func codeSnippet(line string, lineNum int, maxLineNumWidth int, commonIndent string, padding string) string {
	endString := lineStyle.Sprintf("%s|\n", padding)
	endString += lineStyle.Sprintf("%*d | ", maxLineNumWidth, lineNum)
	endString += fmt.Sprintf("%s\n", strings.TrimPrefix(line, commonIndent))
	return endString
}

func underline(padding string, line string, startColumn int, endColumn int, commonIndent string) string {
	endString := lineStyle.Sprintf("%s| ", padding)

	commonIndentWidth := calculateVisualColumn(commonIndent, len([]rune(commonIndent))+1)

	underlineStart := calculateVisualColumn(line, startColumn) - commonIndentWidth
	if underlineStart < 0 {
		underlineStart = 0
	}
	underlineEnd := calculateVisualColumn(line, endColumn) - commonIndentWidth
	underlineLength := underlineEnd - underlineStart + 1
	if underlineLength < 1 {
		underlineLength = 1
	}

	endString += strings.Repeat(" ", underlineStart)
	endString += messageStyle.Sprintf("%s\n", strings.Repeat("~", underlineLength))
	return endString
}

// calculateVisualColumn returns the number of screen cells before the
// 1-based column, expanding tabs.
func calculateVisualColumn(line string, column int) int {
	if column < 0 {
		return 0
	}
	visualColumn := 0
	i := 0
	for _, ch := range line {
		i++
		if i == column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}

func leadingIndent(line string) string {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	return line[:len(line)-len(trimmed)]
}
