package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/c360studio/specdriver/artifact"
)

// FindingKind classifies a single validation problem.
type FindingKind string

const (
	// MissingArtifact means a required document file is absent or unreadable.
	MissingArtifact FindingKind = "missing_artifact"
	// MissingSection means a required heading was not found in a document.
	MissingSection FindingKind = "missing_section"
	// NoTasks means the tasks document contains no recognized task lines.
	NoTasks FindingKind = "no_tasks"
	// DuplicateTaskID means a task id appears on more than one line.
	DuplicateTaskID FindingKind = "duplicate_task_id"
)

// Finding is one reported validation problem.
type Finding struct {
	Kind FindingKind
	// Document is the artifact the finding applies to.
	Document artifact.Kind
	// Detail names the offending section, task id, or file.
	Detail string
}

func (f Finding) String() string {
	switch f.Kind {
	case MissingArtifact:
		return fmt.Sprintf("missing required file: %s", f.Detail)
	case MissingSection:
		return fmt.Sprintf("%s is missing required section: %s", f.Document, f.Detail)
	case NoTasks:
		return fmt.Sprintf("%s contains no tasks in the expected format (- [ ] T001: ...)", f.Detail)
	case DuplicateTaskID:
		return fmt.Sprintf("duplicate task id %s in %s", f.Detail, f.Document)
	default:
		return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
	}
}

// Result is the outcome of validating one spec directory.
type Result struct {
	// RunID uniquely identifies this validation run in logs and reports.
	RunID string
	// Dir is the spec directory that was validated.
	Dir string
	// Findings lists every problem found, in document order.
	Findings []Finding
}

// Valid reports whether the artifact set passed with no findings.
func (r *Result) Valid() bool {
	return len(r.Findings) == 0
}

// Validator checks spec directories against a rule set.
type Validator struct {
	rules RuleSet
}

// New creates a Validator using the default rule table.
func New() *Validator {
	return NewWithRules(DefaultRules())
}

// NewWithRules creates a Validator with an explicit rule set.
func NewWithRules(rules RuleSet) *Validator {
	return &Validator{rules: rules}
}

// Rules returns the validator's rule set.
func (v *Validator) Rules() RuleSet {
	return v.rules
}

// Validate checks the artifact set in dir and returns all findings.
// A missing document yields one MissingArtifact finding and suppresses
// section checks for that document; it does not abort the other documents.
// The spec directory itself must exist.
func (v *Validator) Validate(dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("spec directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	result := &Result{
		RunID: uuid.NewString(),
		Dir:   dir,
	}

	for _, kind := range artifact.Kinds {
		doc, err := artifact.Load(dir, kind)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				name, _ := kind.Filename()
				result.Findings = append(result.Findings, Finding{
					Kind:     MissingArtifact,
					Document: kind,
					Detail:   name,
				})
				continue
			}
			// Unreadable for any other reason is an I/O failure,
			// not a finding.
			return nil, err
		}

		v.checkDocument(doc, result)
	}

	return result, nil
}

// checkDocument records section findings for one document, plus task
// checklist findings for the tasks document.
func (v *Validator) checkDocument(doc *artifact.Document, result *Result) {
	for _, rule := range v.rules.ByKind(doc.Kind) {
		if !doc.HasHeading(rule.Heading, rule.Level) {
			result.Findings = append(result.Findings, Finding{
				Kind:     MissingSection,
				Document: doc.Kind,
				Detail:   headingLabel(rule),
			})
		}
	}

	if doc.Kind != artifact.KindTasks {
		return
	}

	if len(doc.Tasks) == 0 {
		result.Findings = append(result.Findings, Finding{
			Kind:     NoTasks,
			Document: doc.Kind,
			Detail:   artifact.TasksFile,
		})
		return
	}

	for _, id := range doc.DuplicateTaskIDs() {
		result.Findings = append(result.Findings, Finding{
			Kind:     DuplicateTaskID,
			Document: doc.Kind,
			Detail:   id,
		})
	}
}

// headingLabel renders a rule's heading the way it appears in the file,
// e.g. "## Overview".
func headingLabel(rule SectionRule) string {
	return strings.Repeat("#", rule.Level) + " " + rule.Heading
}

// DiscoverSets finds spec directories under root: every directory that
// contains a tasks.md. Paths are returned sorted for stable output.
func DiscoverSets(root string) ([]string, error) {
	pattern := filepath.Join(root, "**", artifact.TasksFile)
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("discover spec directories: %w", err)
	}

	dirs := make(map[string]bool)
	for _, m := range matches {
		dirs[filepath.Dir(m)] = true
	}

	out := make([]string, 0, len(dirs))
	for d := range dirs {
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}
