// Package tracker reads and mutates the task checklist in tasks.md. It is
// the only component that writes any artifact document. A status update
// rewrites exactly one line's checkbox marker; every other byte of the file
// is preserved, because tasks.md is edited by humans as well as agents and
// a reformatting write would destroy manual edits and make diffs
// unreviewable.
package tracker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/specdriver/artifact"
)

// Sentinel errors for status updates.
var (
	// ErrTaskNotFound means no recognized task line carries the requested id.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidStatus means the requested status is not one of the four
	// enumerated values.
	ErrInvalidStatus = errors.New("invalid task status")
)

// List parses the tasks document at path and returns every recognized task
// in document order.
func List(path string) ([]artifact.Task, error) {
	doc, err := load(path)
	if err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// SetStatus updates the checkbox marker of one task and returns the full
// task list as it stands after the write.
//
// The write is atomic from the caller's point of view: the updated content
// goes to a temporary file in the same directory, which is renamed over the
// original. On any failure the original file is left untouched.
func SetStatus(path, taskID string, status artifact.Status) ([]artifact.Task, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: %q (valid: pending, in_progress, completed, blocked)", ErrInvalidStatus, status)
	}
	if !artifact.TaskIDPattern.MatchString(taskID) {
		return nil, fmt.Errorf("%w: malformed id %q (expected T followed by three digits, e.g. T001)", ErrTaskNotFound, taskID)
	}

	doc, err := load(path)
	if err != nil {
		return nil, err
	}

	task := doc.TaskByID(taskID)
	if task == nil {
		return nil, fmt.Errorf("%w: %s in %s", ErrTaskNotFound, taskID, path)
	}

	updated := rewriteLine(doc.Content, task.Line, status)
	if err := atomicWrite(path, updated); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	// Re-read rather than patching in memory, so the returned view is
	// exactly what a subsequent List would observe.
	return List(path)
}

// rewriteLine replaces the checkbox marker on the 1-based target line and
// leaves every other line byte-identical. The line is known to match the
// task grammar, so the marker is the third byte of the "- [" prefix.
func rewriteLine(content string, line int, status artifact.Status) string {
	lines := strings.Split(content, "\n")
	idx := line - 1

	old := lines[idx]
	open := strings.Index(old, "[")
	// open+1 is the single marker character, old[open+2] the closing ']'.
	lines[idx] = old[:open+1] + status.Marker() + old[open+2:]

	return strings.Join(lines, "\n")
}

// atomicWrite persists content via a temp file and rename in path's
// directory, preserving the original file's permissions when it exists.
func atomicWrite(path, content string) error {
	dir := filepath.Dir(path)

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func load(path string) (*artifact.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tasks document: %w", err)
	}
	return artifact.Parse(artifact.KindTasks, path, string(data)), nil
}

func validStatus(status artifact.Status) bool {
	for _, s := range artifact.Statuses {
		if s == status {
			return true
		}
	}
	return false
}
