package host

import (
	"sort"
	"sync"
	"unicode"

	tt "github.com/asplogic/jshint/internal/types"
)

// Buffer is an in-memory View. Offsets count runes.
type Buffer struct {
	mu      sync.Mutex
	text    []rune
	path    string
	syntax  string
	sel     []tt.Region
	shown   int
	regions map[string]RegionSet
	window  Window
}

// RegionSet is a highlighted group of regions.
type RegionSet struct {
	Regions []tt.Region
	Style   Style
}

func NewBuffer(text, path, syntax string) *Buffer {
	return &Buffer{
		text:    []rune(text),
		path:    path,
		syntax:  syntax,
		sel:     []tt.Region{tt.Point(0)},
		regions: make(map[string]RegionSet),
	}
}

// Attach sets the window the buffer belongs to.
func (b *Buffer) Attach(w Window) *Buffer {
	b.mu.Lock()
	b.window = w
	b.mu.Unlock()
	return b
}

func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.text)
}

// SetText replaces the buffer content, as an edit would.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	b.text = []rune(text)
	b.mu.Unlock()
}

// Insert inserts s at offset, clamped to the buffer bounds.
func (b *Buffer) Insert(offset int, s string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	offset = clamp(offset, 0, len(b.text))
	next := make([]rune, 0, len(b.text)+len(s))
	next = append(next, b.text[:offset]...)
	next = append(next, []rune(s)...)
	next = append(next, b.text[offset:]...)
	b.text = next
}

func (b *Buffer) FileName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.path
}

func (b *Buffer) Syntax() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.syntax
}

func (b *Buffer) TextPoint(row, col int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}

	start := 0
	for r := 0; r < row; r++ {
		next := b.indexNewline(start)
		if next == -1 {
			return len(b.text)
		}
		start = next + 1
	}

	end := b.indexNewline(start)
	if end == -1 {
		end = len(b.text)
	}
	return clamp(start+col, start, end)
}

func (b *Buffer) Word(offset int) tt.Region {
	b.mu.Lock()
	defer b.mu.Unlock()

	offset = clamp(offset, 0, len(b.text))
	begin, end := offset, offset
	for begin > 0 && isWordRune(b.text[begin-1]) {
		begin--
	}
	for end < len(b.text) && isWordRune(b.text[end]) {
		end++
	}
	return tt.Region{Begin: begin, End: end}
}

func (b *Buffer) Line(offset int) tt.Region {
	b.mu.Lock()
	defer b.mu.Unlock()

	offset = clamp(offset, 0, len(b.text))
	begin := offset
	for begin > 0 && b.text[begin-1] != '\n' {
		begin--
	}
	end := b.indexNewline(offset)
	if end == -1 {
		end = len(b.text)
	}
	return tt.Region{Begin: begin, End: end}
}

func (b *Buffer) Selection() []tt.Region {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]tt.Region, len(b.sel))
	copy(out, b.sel)
	return out
}

func (b *Buffer) SetSelection(regions ...tt.Region) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sel = append([]tt.Region(nil), regions...)
}

func (b *Buffer) Show(offset int) {
	b.mu.Lock()
	b.shown = offset
	b.mu.Unlock()
}

// Shown returns the offset last scrolled into view.
func (b *Buffer) Shown() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shown
}

func (b *Buffer) AddRegions(key string, regions []tt.Region, style Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.regions[key] = RegionSet{Regions: append([]tt.Region(nil), regions...), Style: style}
}

func (b *Buffer) EraseRegions(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.regions, key)
}

// Regions returns the highlighted set stored under key.
func (b *Buffer) Regions(key string) (RegionSet, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.regions[key]
	return set, ok
}

// RegionKeys lists the keys that currently hold highlights.
func (b *Buffer) RegionKeys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.regions))
	for k := range b.regions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (b *Buffer) Window() Window {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.window
}

// RowCol converts an offset back to 0-based (row, col).
func (b *Buffer) RowCol(offset int) (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	offset = clamp(offset, 0, len(b.text))
	row, col := 0, 0
	for i := 0; i < offset; i++ {
		if b.text[i] == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return row, col
}

func (b *Buffer) indexNewline(from int) int {
	for i := from; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			return i
		}
	}
	return -1
}

func isWordRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
