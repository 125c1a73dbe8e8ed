package artifact

import (
	"testing"
)

func TestParseHeadings(t *testing.T) {
	content := `# Title

## Overview

Some prose.

### Detail

####NotAHeading
#NotAHeadingEither
`

	doc := Parse(KindRequirements, "requirements.md", content)

	// The last two lines fail the grammar: the '#' run must be followed
	// by a space.
	want := []Heading{
		{Text: "Title", Level: 1, Line: 1},
		{Text: "Overview", Level: 2, Line: 3},
		{Text: "Detail", Level: 3, Line: 7},
	}

	if len(doc.Headings) != len(want) {
		t.Fatalf("expected %d headings, got %d: %+v", len(want), len(doc.Headings), doc.Headings)
	}
	for i, h := range want {
		if doc.Headings[i] != h {
			t.Errorf("heading %d = %+v, want %+v", i, doc.Headings[i], h)
		}
	}
}

func TestParseHeadingsExactText(t *testing.T) {
	doc := Parse(KindRequirements, "requirements.md", "##  Overview with leading spaces  \n")

	if len(doc.Headings) != 1 {
		t.Fatalf("expected 1 heading, got %d", len(doc.Headings))
	}
	if doc.Headings[0].Text != "Overview with leading spaces" {
		t.Errorf("heading text = %q, want trimmed text", doc.Headings[0].Text)
	}
	if doc.HasHeading("overview with leading spaces", 2) {
		t.Error("heading match must be case-sensitive")
	}
	if !doc.HasHeading("Overview with leading spaces", 2) {
		t.Error("expected exact-text heading match")
	}
}

func TestParseTaskLines(t *testing.T) {
	content := `# Tasks

## Tasks

## Phase 1: Setup

- [ ] T001: Create model
- [x] T002: Implement endpoint
- [~] T003: Wire handler
- [!] T004: Blocked on schema review
- [X] T005: Uppercase marker is completed

## Phase 2: Polish

- [ ] T006: Tidy docs
`

	doc := Parse(KindTasks, "tasks.md", content)

	if len(doc.Tasks) != 6 {
		t.Fatalf("expected 6 tasks, got %d", len(doc.Tasks))
	}

	wantStatus := []Status{
		StatusPending, StatusCompleted, StatusInProgress,
		StatusBlocked, StatusCompleted, StatusPending,
	}
	for i, want := range wantStatus {
		if doc.Tasks[i].Status != want {
			t.Errorf("task %s status = %q, want %q", doc.Tasks[i].ID, doc.Tasks[i].Status, want)
		}
	}

	if doc.Tasks[0].Phase != "Phase 1: Setup" {
		t.Errorf("task T001 phase = %q, want %q", doc.Tasks[0].Phase, "Phase 1: Setup")
	}
	if doc.Tasks[5].Phase != "Phase 2: Polish" {
		t.Errorf("task T006 phase = %q, want %q", doc.Tasks[5].Phase, "Phase 2: Polish")
	}
	if doc.Tasks[0].Description != "Create model" {
		t.Errorf("task T001 description = %q", doc.Tasks[0].Description)
	}
	if doc.Tasks[0].Line != 7 {
		t.Errorf("task T001 line = %d, want 7", doc.Tasks[0].Line)
	}
}

func TestParseTaskLinesRejectsMalformed(t *testing.T) {
	// Each of these deviates from the exact task grammar and must be
	// treated as prose, not guessed into a task.
	malformed := []string{
		"- [ ] T01: two-digit id",
		"- [ ] T0001: four-digit id",
		"- [ ] T001 missing colon",
		"- [] T001: missing marker space",
		"- [y] T001: unknown marker",
		"* [ ] T001: wrong bullet",
		"  - [ ] T001: indented",
		"### T001: heading-style task",
		"T001: bare id line",
	}

	for _, line := range malformed {
		doc := Parse(KindTasks, "tasks.md", line+"\n")
		if len(doc.Tasks) != 0 {
			t.Errorf("line %q should not parse as a task", line)
		}
	}
}

func TestParseTasksBeforeAnyPhase(t *testing.T) {
	content := "- [ ] T001: Early task\n\n## Phase 1: Setup\n\n- [ ] T002: Later task\n"

	doc := Parse(KindTasks, "tasks.md", content)

	if len(doc.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(doc.Tasks))
	}
	// A task before any phase heading belongs to the implicit unnamed phase.
	if doc.Tasks[0].Phase != "" {
		t.Errorf("pre-phase task phase = %q, want empty", doc.Tasks[0].Phase)
	}
	if doc.Tasks[1].Phase != "Phase 1: Setup" {
		t.Errorf("task T002 phase = %q", doc.Tasks[1].Phase)
	}
}

func TestParseIgnoresTasksForOtherKinds(t *testing.T) {
	doc := Parse(KindPlan, "plan.md", "- [ ] T001: looks like a task\n")
	if len(doc.Tasks) != 0 {
		t.Errorf("plan documents must not collect tasks, got %d", len(doc.Tasks))
	}
}

func TestDuplicateTaskIDs(t *testing.T) {
	content := `- [ ] T001: First
- [ ] T002: Second
- [x] T001: First again
- [ ] T001: First a third time
`

	doc := Parse(KindTasks, "tasks.md", content)

	dups := doc.DuplicateTaskIDs()
	if len(dups) != 1 || dups[0] != "T001" {
		t.Errorf("duplicates = %v, want [T001]", dups)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"in_progress", StatusInProgress, false},
		{"completed", StatusCompleted, false},
		{"blocked", StatusBlocked, false},
		{"COMPLETED", StatusCompleted, false},
		{" pending ", StatusPending, false},
		{"done", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusMarkerRoundTrip(t *testing.T) {
	for _, s := range Statuses {
		line := "- [" + s.Marker() + "] T001: Round trip\n"
		doc := Parse(KindTasks, "tasks.md", line)
		if len(doc.Tasks) != 1 {
			t.Fatalf("marker %q did not parse", s.Marker())
		}
		if doc.Tasks[0].Status != s {
			t.Errorf("marker %q parsed as %q, want %q", s.Marker(), doc.Tasks[0].Status, s)
		}
	}
}

func TestStatsFor(t *testing.T) {
	doc := Parse(KindTasks, "tasks.md", `- [ ] T001: A
- [x] T002: B
- [x] T003: C
- [~] T004: D
`)

	stats := doc.Stats()
	if stats.Total != 4 {
		t.Errorf("total = %d, want 4", stats.Total)
	}
	if stats.Completed != 2 {
		t.Errorf("completed = %d, want 2", stats.Completed)
	}
	if stats.ByStatus[StatusInProgress] != 1 {
		t.Errorf("in_progress = %d, want 1", stats.ByStatus[StatusInProgress])
	}
}
