package ui

import (
	"errors"
	"strings"
	"testing"

	"sheetcalc/internal/driver"
)

func TestApplyEventTracksStatus(t *testing.T) {
	m := NewProgressModel("batch", []string{"A1", "#2"}, nil).(*progressModel)

	m.applyEvent(driver.Event{Label: "A1", Stage: driver.StageEvaluate, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "evaluating" {
		t.Fatalf("status = %q, want evaluating", got)
	}
	m.applyEvent(driver.Event{Label: "#2", Stage: driver.StageEvaluate, Status: driver.StatusError, Err: errors.New("boom")})
	m.applyEvent(driver.Event{Label: "unknown", Stage: driver.StageEvaluate, Status: driver.StatusDone})

	if m.failed != 1 {
		t.Fatalf("failed = %d, want 1", m.failed)
	}
	if m.items[1].detail != "boom" {
		t.Fatalf("detail = %q", m.items[1].detail)
	}

	view := m.View()
	for _, want := range []string{"evaluating", "error", "A1", "#2  boom", "2 formulas"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDoneMessageQuits(t *testing.T) {
	m := NewProgressModel("batch", []string{"x"}, nil)
	next, cmd := m.Update(doneMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !next.(*progressModel).done {
		t.Fatal("model not marked done")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 2, "ab"},
		{"中文中文", 5, "中..."},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
