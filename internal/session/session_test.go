package session

import (
	"testing"

	tt "github.com/asplogic/jshint/internal/types"
	"github.com/stretchr/testify/assert"
)

type countingTimer struct {
	cancels int
}

func (c *countingTimer) CancelPending() bool {
	c.cancels++
	return true
}

func sample() []tt.PresentedDiagnostic {
	return []tt.PresentedDiagnostic{
		{Diagnostic: tt.Diagnostic{Line: 1, Column: 5, Message: "'x' is not defined"}, Region: tt.Region{Begin: 4, End: 5}},
		{Diagnostic: tt.Diagnostic{Line: 2, Column: 1, Message: "Missing semicolon."}, Region: tt.Region{Begin: 10, End: 20}},
		{Diagnostic: tt.Diagnostic{Line: 2, Column: 3, Message: "Duplicate on line 2"}, Region: tt.Region{Begin: 10, End: 20}},
	}
}

func TestRecordRoundTrip(t *testing.T) {
	t.Parallel()

	s := New()
	seq := s.Reset()

	assert.True(t, s.Record(seq, sample()))
	assert.Equal(t, sample(), s.Current())
}

func TestRecordIsolatesCaller(t *testing.T) {
	t.Parallel()

	s := New()
	seq := s.Reset()

	in := sample()
	s.Record(seq, in)
	in[0].Message = "mutated"

	out := s.Current()
	out[1].Message = "mutated too"

	assert.Equal(t, sample(), s.Current())
}

func TestResetIdempotent(t *testing.T) {
	t.Parallel()

	timer := &countingTimer{}
	s := New()
	s.Bind(timer)

	s.Record(s.Reset(), sample())

	s.Reset()
	once := s.Current()
	s.Reset()
	twice := s.Current()

	assert.Empty(t, once)
	assert.Equal(t, once, twice)
	assert.Equal(t, 3, timer.cancels)

	_, found := s.FindAt(4)
	assert.False(t, found)
}

func TestResetWithoutTimer(t *testing.T) {
	t.Parallel()

	s := New()
	assert.NotPanics(t, func() {
		s.Reset()
		s.Reset()
	})
}

func TestRecordDiscardsStaleRun(t *testing.T) {
	t.Parallel()

	s := New()
	slow := s.Reset()
	fast := s.Reset()

	fastResult := sample()[:1]
	assert.True(t, s.Record(fast, fastResult))
	assert.False(t, s.Record(slow, sample()))

	assert.Equal(t, fastResult, s.Current())
	assert.True(t, s.IsCurrent(fast))
	assert.False(t, s.IsCurrent(slow))
}

func TestFindAt(t *testing.T) {
	t.Parallel()

	s := New()
	s.Record(s.Reset(), sample())

	tests := []struct {
		pos      int
		expected string
		found    bool
	}{
		{0, "", false},
		{4, "'x' is not defined", true},
		{5, "'x' is not defined", true},
		{6, "", false},
		{15, "Missing semicolon.", true},
		{20, "Missing semicolon.", true},
		{21, "", false},
	}

	for _, tc := range tests {
		d, found := s.FindAt(tc.pos)
		assert.Equal(t, tc.found, found, "pos %d", tc.pos)
		assert.Equal(t, tc.expected, d.Message, "pos %d", tc.pos)
	}
}

func TestFindIntersecting(t *testing.T) {
	t.Parallel()

	s := New()
	s.Record(s.Reset(), sample())

	d, found := s.FindIntersecting(tt.Region{Begin: 0, End: 4})
	assert.True(t, found)
	assert.Equal(t, "'x' is not defined", d.Message)

	_, found = s.FindIntersecting(tt.Point(7))
	assert.False(t, found)
}
