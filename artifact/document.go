// Package artifact models the three-document spec artifact set
// (requirements.md, plan.md, tasks.md) used to drive spec-driven
// implementation, and parses each document into its structural elements.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Fixed filenames for the artifact set. The mapping is deliberately not
// configurable: producer and consumer skills agree on these names.
const (
	RequirementsFile = "requirements.md"
	PlanFile         = "plan.md"
	TasksFile        = "tasks.md"
)

// Kind identifies which of the three artifact documents a value represents.
type Kind string

const (
	// KindRequirements identifies the requirements document.
	KindRequirements Kind = "requirements"
	// KindPlan identifies the implementation plan document.
	KindPlan Kind = "plan"
	// KindTasks identifies the task checklist document.
	KindTasks Kind = "tasks"
)

// Kinds lists all document kinds in canonical order.
var Kinds = []Kind{KindRequirements, KindPlan, KindTasks}

// Filename returns the fixed filename for the kind within a spec directory.
func (k Kind) Filename() (string, error) {
	switch k {
	case KindRequirements:
		return RequirementsFile, nil
	case KindPlan:
		return PlanFile, nil
	case KindTasks:
		return TasksFile, nil
	default:
		return "", fmt.Errorf("unknown document kind: %q", string(k))
	}
}

// Heading is a markdown heading found in a document, in source order.
type Heading struct {
	// Text is the heading text with surrounding whitespace trimmed.
	Text string
	// Level is the number of leading '#' characters (1-6).
	Level int
	// Line is the 1-based line number in the source document.
	Line int
}

// Document is the parsed form of one artifact document. It is derived from
// the file on every read and never persisted separately.
type Document struct {
	Kind     Kind
	Path     string
	Content  string
	Headings []Heading

	// Tasks holds recognized task lines in document order.
	// Populated only for KindTasks.
	Tasks []Task
}

// Set is the three-document artifact set rooted at a spec directory.
// Any document may be nil while a set is being assembled; a set is complete
// only when all three are present and well-formed.
type Set struct {
	Dir          string
	Requirements *Document
	Plan         *Document
	Tasks        *Document
}

// Load reads and parses one artifact document from a spec directory.
// A missing or unreadable file is an error; callers that want to treat
// absence as a finding should check with errors.Is(err, os.ErrNotExist).
func Load(dir string, kind Kind) (*Document, error) {
	name, err := kind.Filename()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s document: %w", kind, err)
	}

	return Parse(kind, path, string(data)), nil
}

// LoadSet loads whichever artifact documents exist in dir. Missing files
// leave the corresponding field nil; any other read error aborts the load.
func LoadSet(dir string) (*Set, error) {
	set := &Set{Dir: dir}

	for _, kind := range Kinds {
		doc, err := Load(dir, kind)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		switch kind {
		case KindRequirements:
			set.Requirements = doc
		case KindPlan:
			set.Plan = doc
		case KindTasks:
			set.Tasks = doc
		}
	}

	return set, nil
}

// Complete reports whether all three documents are present.
func (s *Set) Complete() bool {
	return s.Requirements != nil && s.Plan != nil && s.Tasks != nil
}
