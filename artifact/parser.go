package artifact

import (
	"fmt"
	"regexp"
	"strings"
)

// Status is the lifecycle state of a task.
type Status string

const (
	// StatusPending marks a task that has not been started.
	StatusPending Status = "pending"
	// StatusInProgress marks a task currently being worked on.
	StatusInProgress Status = "in_progress"
	// StatusCompleted marks a finished task.
	StatusCompleted Status = "completed"
	// StatusBlocked marks a task that cannot proceed.
	StatusBlocked Status = "blocked"
)

// Statuses lists all valid task statuses.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusBlocked}

// ParseStatus converts a user-supplied string to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusBlocked:
		return StatusBlocked, nil
	default:
		return "", fmt.Errorf("invalid status %q (valid: pending, in_progress, completed, blocked)", s)
	}
}

// Marker returns the single checkbox character for the status.
func (s Status) Marker() string {
	switch s {
	case StatusInProgress:
		return "~"
	case StatusCompleted:
		return "x"
	case StatusBlocked:
		return "!"
	default:
		return " "
	}
}

// statusForMarker maps a checkbox character back to a Status.
// An uppercase X is accepted as completed.
func statusForMarker(marker string) Status {
	switch marker {
	case "x", "X":
		return StatusCompleted
	case "~":
		return StatusInProgress
	case "!":
		return StatusBlocked
	default:
		return StatusPending
	}
}

// Task is one recognized checklist line in a tasks document.
type Task struct {
	// ID is the three-digit task identifier, e.g. "T001".
	ID string
	// Status is derived from the checkbox marker.
	Status Status
	// Description is the text after the colon, trimmed.
	Description string
	// Phase is the text of the nearest preceding level-2 heading, or ""
	// when the task appears before any phase heading.
	Phase string
	// Line is the 1-based line number of the task in the source document.
	Line int
}

// headingPattern matches a markdown heading: 1-6 '#' characters followed by
// a space. Matching is exact and case-sensitive on purpose: producer and
// consumer must agree on section names byte for byte, and fuzzy acceptance
// would mask real drift between them.
var headingPattern = regexp.MustCompile(`^(#{1,6}) (.*)$`)

// taskLinePattern matches the task checklist grammar:
//
//	- [ ] T001: description
//	- [x] T001: description
//
// The marker set { ,x,X,~,!} carries the four-status vocabulary. Lines that
// deviate from this shape (two-digit id, missing colon, heading-style task)
// are ordinary prose: a malformed task must be visibly absent from tracking
// rather than silently tracked under a guessed id.
var taskLinePattern = regexp.MustCompile(`^- \[([ xX~!])\] (T\d{3}):[ \t]*(.*)$`)

// TaskIDPattern validates a bare task id such as "T001".
var TaskIDPattern = regexp.MustCompile(`^T\d{3}$`)

// Parse produces a Document from raw text. Headings are extracted for every
// kind; task lines only for KindTasks.
func Parse(kind Kind, path, content string) *Document {
	doc := &Document{
		Kind:    kind,
		Path:    path,
		Content: content,
	}

	var currentPhase string
	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			h := Heading{
				Text:  strings.TrimSpace(m[2]),
				Level: len(m[1]),
				Line:  lineNo,
			}
			doc.Headings = append(doc.Headings, h)
			if kind == KindTasks && h.Level == 2 {
				currentPhase = h.Text
			}
			continue
		}

		if kind != KindTasks {
			continue
		}

		if m := taskLinePattern.FindStringSubmatch(line); m != nil {
			doc.Tasks = append(doc.Tasks, Task{
				ID:          m[2],
				Status:      statusForMarker(m[1]),
				Description: strings.TrimSpace(m[3]),
				Phase:       currentPhase,
				Line:        lineNo,
			})
		}
	}

	return doc
}

// HasHeading reports whether the document contains a heading with exactly
// the given text at the given level.
func (d *Document) HasHeading(text string, level int) bool {
	for _, h := range d.Headings {
		if h.Level == level && h.Text == text {
			return true
		}
	}
	return false
}

// TaskByID returns the first task with the given id, or nil.
func (d *Document) TaskByID(id string) *Task {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return &d.Tasks[i]
		}
	}
	return nil
}

// DuplicateTaskIDs returns ids that appear on more than one task line,
// in first-occurrence order.
func (d *Document) DuplicateTaskIDs() []string {
	seen := make(map[string]int)
	var dups []string
	for _, t := range d.Tasks {
		seen[t.ID]++
		if seen[t.ID] == 2 {
			dups = append(dups, t.ID)
		}
	}
	return dups
}

// TaskStats summarizes task completion for a document.
type TaskStats struct {
	Total     int
	ByStatus  map[Status]int
	Completed int
}

// Stats returns completion statistics for the document's tasks.
func (d *Document) Stats() TaskStats {
	return StatsFor(d.Tasks)
}

// StatsFor computes completion statistics over a task list.
func StatsFor(tasks []Task) TaskStats {
	stats := TaskStats{ByStatus: make(map[Status]int)}
	for _, t := range tasks {
		stats.Total++
		stats.ByStatus[t.Status]++
		if t.Status == StatusCompleted {
			stats.Completed++
		}
	}
	return stats
}
