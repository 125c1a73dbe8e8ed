// Package validation checks that a spec artifact set is structurally sound
// before implementation begins: all three documents present, required
// sections in place, task checklist well formed. It accumulates every
// finding in one pass rather than failing fast, so a single run produces a
// complete diagnostic report. It never mutates any file.
package validation

import (
	"fmt"

	"github.com/c360studio/specdriver/artifact"
)

// SectionRule is one required heading a document kind must contain at least
// once. Rules are plain data so that an independently declared rule set
// (e.g. one extracted from a generator template) can be compared against
// this one without either side knowing about the other.
type SectionRule struct {
	// Kind is the document kind the rule applies to.
	Kind artifact.Kind `yaml:"kind"`
	// Heading is the exact, case-sensitive heading text.
	Heading string `yaml:"heading"`
	// Level is the required heading level.
	Level int `yaml:"level"`
}

// ID returns a stable identifier for the rule, used for alignment
// comparison and in findings.
func (r SectionRule) ID() string {
	return fmt.Sprintf("%s/h%d/%s", r.Kind, r.Level, r.Heading)
}

// RuleSet is a named, versionable collection of section rules.
type RuleSet struct {
	Name  string
	Rules []SectionRule
}

// ByKind returns the rules for one document kind, in declaration order.
func (rs RuleSet) ByKind(kind artifact.Kind) []SectionRule {
	var out []SectionRule
	for _, r := range rs.Rules {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// DefaultRules is the validator's rule table: the sections the implementing
// workflow requires each artifact document to contain.
func DefaultRules() RuleSet {
	return RuleSet{
		Name: "validator",
		Rules: []SectionRule{
			{Kind: artifact.KindRequirements, Heading: "Overview", Level: 2},
			{Kind: artifact.KindRequirements, Heading: "Requirements", Level: 2},
			{Kind: artifact.KindPlan, Heading: "Implementation Phases", Level: 2},
			{Kind: artifact.KindTasks, Heading: "Tasks", Level: 2},
		},
	}
}
