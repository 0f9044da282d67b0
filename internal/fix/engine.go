package fix

import (
	"errors"
	"fmt"
	"sort"

	"sheetcalc/internal/diag"
	"sheetcalc/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID        string
	Title     string
	Code      diag.Code
	Message   string
	EditCount int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// ApplyResult is the rewritten text together with what was applied.
type ApplyResult struct {
	Text    string
	Applied []AppliedFix
	Skipped []SkippedFix
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	id    string
	order int
}

// FixID is the stable identifier of the idx-th fix of d, e.g. "LEX1002-4-0".
func FixID(d diag.Diagnostic, idx int) string {
	return fmt.Sprintf("%s-%d-%d", d.Code.ID(), d.Primary.Start, idx)
}

// Apply selects fixes of the diagnostics that target file and returns the
// rewritten text. The file itself is never modified.
func Apply(file *source.File, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	if file == nil {
		return nil, fmt.Errorf("fix: file is nil")
	}
	result := &ApplyResult{Text: string(file.Content)}

	candidates := gatherCandidates(file.ID, diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected, skipped := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skipped...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	text, applied, skipped := applyCandidates(file.Content, selected)
	result.Text = text
	result.Applied = applied
	result.Skipped = append(result.Skipped, skipped...)
	if len(applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

func gatherCandidates(id source.FileID, diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 || !editsTarget(f.Edits, id) {
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, id: FixID(d, idx), order: order})
			order++
		}
	}
	return cands
}

func editsTarget(edits []diag.FixEdit, id source.FileID) bool {
	for _, e := range edits {
		if e.Span.File != id {
			return false
		}
	}
	return true
}

// sortCandidates orders fixes by position, then by the order they were reported.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.id == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		return candidates, nil
	case ApplyModeOnce:
		return candidates[:1], nil
	default:
		return nil, nil
	}
}

// applyCandidates applies edits right to left so earlier offsets stay valid.
// A fix overlapping one already applied is skipped.
func applyCandidates(content []byte, selected []candidate) (string, []AppliedFix, []SkippedFix) {
	type staged struct {
		edit diag.FixEdit
		cand int
	}
	var edits []staged
	var taken []diag.FixEdit
	var applied []AppliedFix
	var skipped []SkippedFix

	for i, cand := range selected {
		if reason := checkEdits(content, taken, cand.fix.Edits); reason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: reason})
			continue
		}
		for _, e := range cand.fix.Edits {
			edits = append(edits, staged{edit: e, cand: i})
			taken = append(taken, e)
		}
		applied = append(applied, AppliedFix{
			ID:        cand.id,
			Title:     cand.fix.Title,
			Code:      cand.diag.Code,
			Message:   cand.diag.Message,
			EditCount: len(cand.fix.Edits),
		})
	}

	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].edit.Span.Start == edits[j].edit.Span.Start {
			return edits[i].edit.Span.End > edits[j].edit.Span.End
		}
		return edits[i].edit.Span.Start > edits[j].edit.Span.Start
	})

	out := append([]byte(nil), content...)
	for _, s := range edits {
		start, end := int(s.edit.Span.Start), int(s.edit.Span.End)
		suffix := append([]byte(nil), out[end:]...)
		out = append(append(out[:start], s.edit.NewText...), suffix...)
	}
	return string(out), applied, skipped
}

func checkEdits(content []byte, taken, edits []diag.FixEdit) string {
	for _, e := range edits {
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(content) {
			return "edit span out of range"
		}
		for _, prev := range taken {
			if overlaps(prev.Span, e.Span) {
				return "conflicts with a previously applied edit"
			}
		}
	}
	return ""
}

// overlaps treats two insertions at the same offset as conflicting.
func overlaps(a, b source.Span) bool {
	if a.Start == a.End && b.Start == b.End {
		return a.Start == b.Start
	}
	return a.Start < b.End && b.Start < a.End
}
