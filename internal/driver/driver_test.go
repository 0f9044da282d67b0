package driver

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetcalc/internal/cell"
	"sheetcalc/internal/diag"
	"sheetcalc/internal/formula"
	"sheetcalc/internal/grid"
	"sheetcalc/internal/token"
	"sheetcalc/internal/trace"
)

func TestReadFormulas(t *testing.T) {
	src := `# totals
=1 + 2

B2: =$A1 * 2
total: max($A1, 3)
  abs(-1)
`
	inputs, err := ReadFormulas(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, inputs, 4)

	assert.Equal(t, "#2", inputs[0].Label)
	assert.Equal(t, "1 + 2", inputs[0].Text)
	assert.Nil(t, inputs[0].Origin)

	assert.Equal(t, "B2", inputs[1].Label)
	assert.Equal(t, "$A1 * 2", inputs[1].Text)
	require.NotNil(t, inputs[1].Origin)
	assert.Equal(t, cell.Coord{Col: 1, Row: 1}, *inputs[1].Origin)

	assert.Equal(t, "total", inputs[2].Label)
	assert.Equal(t, "max($A1, 3)", inputs[2].Text)
	assert.Nil(t, inputs[2].Origin)

	assert.Equal(t, "#6", inputs[3].Label)
	assert.Equal(t, 6, inputs[3].Line)
}

func TestSplitLabelRejectsExpressions(t *testing.T) {
	_, _, ok := splitLabel("max($A1, 2): x")
	assert.False(t, ok)
	_, _, ok = splitLabel(": 1")
	assert.False(t, ok)
	label, rest, ok := splitLabel("row-1: 2")
	assert.True(t, ok)
	assert.Equal(t, "row-1", label)
	assert.Equal(t, " 2", rest)
}

func TestTokenizeStopsAtInvalid(t *testing.T) {
	res := Tokenize(Input{Label: "x", Text: "1 + foo(2)"}, cell.None, 8)
	require.NotEmpty(t, res.Tokens)
	last := res.Tokens[len(res.Tokens)-1]
	assert.Equal(t, token.Invalid, last.Kind)
	require.Equal(t, 1, res.Bag.Len())
	assert.Equal(t, diag.LexUnknownFunction, res.Bag.Items()[0].Code)
}

func TestTokenizeResolvesReferences(t *testing.T) {
	res := Tokenize(Input{Label: "x", Text: "$A1*2"}, cell.Cells(map[string]string{"A1": "21"}), 8)
	require.Len(t, res.Tokens, 4)
	assert.True(t, res.Tokens[0].IsRef())
	assert.Equal(t, 21.0, res.Tokens[0].Value)
	assert.Equal(t, token.EOF, res.Tokens[3].Kind)
	assert.Zero(t, res.Bag.Len())
}

func TestParse(t *testing.T) {
	ok := Parse(Input{Label: "x", Text: "pow(2, 10) - 24"}, cell.None, 0, 8)
	require.True(t, ok.OK())
	assert.Equal(t, 1000.0, ok.Value)

	bad := Parse(Input{Label: "x", Text: "(1 + 2"}, cell.None, 0, 8)
	assert.False(t, bad.OK())
	require.Equal(t, 1, bad.Bag.Len())
	assert.Equal(t, diag.SynUnclosedParen, bad.Bag.Items()[0].Code)
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) count(stage Stage, status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Stage == stage && ev.Status == status {
			n++
		}
	}
	return n
}

func TestEvaluateBatch(t *testing.T) {
	sheet := grid.NewSheet(grid.Options{})
	require.NoError(t, sheet.SetA1("A1", "10"))
	require.NoError(t, sheet.SetA1("B1", "=$A1/4"))

	inputs, err := ReadFormulas(strings.NewReader(`
=$A1 + $B1
C1: =sqrt($A1 * 10)
A1: =$A1 + 1
=$Z1
=1 +
`))
	require.NoError(t, err)

	sink := &recordingSink{}
	res, err := EvaluateBatch(context.Background(), BatchRequest{
		Inputs:   inputs,
		Resolver: sheet.Snapshot(),
		Jobs:     3,
		Progress: sink,
		Timings:  true,
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 5)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 3, res.Failed)

	assert.Equal(t, 12.5, res.Results[0].Value)
	assert.Equal(t, 10.0, res.Results[1].Value)
	assert.Equal(t, diag.KindCircular, formula.KindOf(res.Results[2].Err))
	assert.Equal(t, diag.KindReference, formula.KindOf(res.Results[3].Err))
	assert.Equal(t, diag.KindSyntax, formula.KindOf(res.Results[4].Err))
	for _, r := range res.Results[2:] {
		assert.ErrorIs(t, r.Err, formula.ErrIncorrectFormula)
	}

	// Spans of every result live in the shared file set.
	assert.Equal(t, 5, res.FileSet.Len())
	assert.Equal(t, "C1", res.FileSet.Get(res.Results[1].File.ID).Path)

	bag := res.Diagnostics(0)
	assert.Equal(t, 4, bag.Len()) // three errors and the timings entry
	assert.Equal(t, diag.ObsTimings, bag.Items()[3].Code)
	require.NotNil(t, res.Timing)
	assert.Len(t, res.Timing.Phases, 2)

	// the cap applies to formula diagnostics; timings always fit
	assert.Equal(t, 3, res.Diagnostics(2).Len())

	assert.Equal(t, 5, sink.count(StageLoad, StatusQueued))
	assert.Equal(t, 5, sink.count(StageEvaluate, StatusWorking))
	assert.Equal(t, 3, sink.count(StageEvaluate, StatusDone)) // two formulas and the run
	assert.Equal(t, 3, sink.count(StageEvaluate, StatusError))
}

func TestEvaluateBatchTracesCells(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	res, err := EvaluateBatch(ctx, BatchRequest{
		Inputs: []Input{{Label: "ok", Text: "1+2"}, {Label: "bad", Text: "1 +"}},
		Jobs:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ring.Failures())

	var names []string
	ends := map[string]trace.Event{}
	for _, ev := range ring.Snapshot() {
		assert.Equal(t, res.RunID, ev.RunID)
		if ev.Kind == trace.KindSpanEnd {
			names = append(names, ev.Scope.String()+":"+ev.Name)
			ends[ev.Name] = ev
		}
	}
	assert.Equal(t, []string{"pass:load", "cell:ok", "cell:bad", "pass:evaluate", "driver:batch"}, names)

	assert.Equal(t, "3", ends["ok"].Value)
	assert.Equal(t, "1+2", ends["ok"].Formula)
	assert.Equal(t, diag.KindSyntax, ends["bad"].Code.Kind())
	assert.Empty(t, ends["bad"].Value)
	assert.NotEqual(t, uint64(0), ends["bad"].ParentID)
	assert.Equal(t, ends["evaluate"].SpanID, ends["bad"].ParentID)
}

func TestEvaluateBatchEmpty(t *testing.T) {
	res, err := EvaluateBatch(context.Background(), BatchRequest{})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Zero(t, res.Failed)
}

func TestEvaluateBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := EvaluateBatch(ctx, BatchRequest{
		Inputs: []Input{{Label: "a", Text: "1"}, {Label: "b", Text: "2"}},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiagnoseSharesFileSet(t *testing.T) {
	inputs := []Input{
		{Label: "a", Text: "1 + 1"},
		{Label: "b", Text: "2 * (3"},
		{Label: "c", Text: "abs()"},
	}
	res := Diagnose(context.Background(), inputs, cell.None, DiagnoseOptions{EnableTimings: true})
	assert.Equal(t, 3, res.FileSet.Len())
	assert.NotNil(t, res.Trees[0])
	assert.Nil(t, res.Trees[1])
	assert.Nil(t, res.Trees[2])

	items := res.Bag.Items()
	require.Len(t, items, 3)
	assert.Equal(t, diag.SynUnclosedParen, items[0].Code)
	assert.Equal(t, "b", res.FileSet.Get(items[0].Primary.File).Path)
	assert.Equal(t, diag.SynExpectArgument, items[1].Code)
	assert.Equal(t, diag.ObsTimings, items[2].Code)
	assert.True(t, res.Bag.HasErrors())
}

func TestFixRepairsStepByStep(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		value   float64
		applied int
	}{
		{"ABS(0-1", "abs(0-1)", 1, 2},
		{"abs 2", "abs (2)", 2, 2},
		{"pow(2, 3", "pow(2, 3)", 8, 1},
		{"1 + 1", "1 + 1", 2, 0},
	}
	for _, tc := range cases {
		res := Fix(Input{Label: "x", Text: tc.in}, cell.None, 0, 0)
		require.True(t, res.Fixed(), tc.in)
		assert.Equal(t, tc.want, res.Text, tc.in)
		assert.Equal(t, tc.value, res.Value, tc.in)
		assert.Len(t, res.Applied, tc.applied, tc.in)
	}
}

func TestFixGivesUpWithoutSuggestion(t *testing.T) {
	res := Fix(Input{Label: "x", Text: "1 +"}, cell.None, 0, 0)
	assert.False(t, res.Fixed())
	assert.Equal(t, "1 +", res.Text)
	assert.Equal(t, diag.KindSyntax, formula.KindOf(res.Err))
}

func TestFixRespectsRoundLimit(t *testing.T) {
	res := Fix(Input{Label: "x", Text: "ABS(1"}, cell.None, 0, 1)
	assert.False(t, res.Fixed())
	assert.Equal(t, "abs(1", res.Text)
	assert.Len(t, res.Applied, 1)
}
