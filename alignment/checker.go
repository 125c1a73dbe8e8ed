package alignment

import (
	"sort"

	"github.com/c360studio/specdriver/artifact"
	"github.com/c360studio/specdriver/artifact/validation"
)

// Entry records one rule id's presence on each side of the comparison.
type Entry struct {
	RuleID string
	Rule   validation.SectionRule
	// InGenerator is true when the generator's templates promise the section.
	InGenerator bool
	// InValidator is true when the validator requires the section.
	InValidator bool
}

// Mismatch reports whether the entry is present on one side only.
func (e Entry) Mismatch() bool {
	return e.InGenerator != e.InValidator
}

// Report is the purely derived result of an alignment check. It carries no
// severity: a rule the validator requires but the generator never emits is
// typically fatal for the pipeline, while an extra generator section is
// merely unvalidated, but that classification belongs to the caller.
type Report struct {
	Entries []Entry
}

// Mismatches returns the entries present on one side only.
func (r *Report) Mismatches() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Mismatch() {
			out = append(out, e)
		}
	}
	return out
}

// MissingFromGenerator returns rules the validator requires but the
// generator does not promise.
func (r *Report) MissingFromGenerator() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.InValidator && !e.InGenerator {
			out = append(out, e)
		}
	}
	return out
}

// ExtraInGenerator returns rules the generator promises but the validator
// never checks.
func (r *Report) ExtraInGenerator() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.InGenerator && !e.InValidator {
			out = append(out, e)
		}
	}
	return out
}

// Aligned reports whether the two rule sets agree exactly.
func (r *Report) Aligned() bool {
	return len(r.Mismatches()) == 0
}

// Check compares two independently declared rule sets and records, for each
// rule id present in either, whether each side declares it. Entries are
// ordered by document kind, then rule id, for stable output.
func Check(generator, validator validation.RuleSet) *Report {
	type side struct {
		rule        validation.SectionRule
		inGenerator bool
		inValidator bool
	}

	byID := make(map[string]*side)
	for _, rule := range generator.Rules {
		byID[rule.ID()] = &side{rule: rule, inGenerator: true}
	}
	for _, rule := range validator.Rules {
		if s, ok := byID[rule.ID()]; ok {
			s.inValidator = true
			continue
		}
		byID[rule.ID()] = &side{rule: rule, inValidator: true}
	}

	report := &Report{}
	for id, s := range byID {
		report.Entries = append(report.Entries, Entry{
			RuleID:      id,
			Rule:        s.rule,
			InGenerator: s.inGenerator,
			InValidator: s.inValidator,
		})
	}

	sort.Slice(report.Entries, func(i, j int) bool {
		a, b := report.Entries[i], report.Entries[j]
		if a.Rule.Kind != b.Rule.Kind {
			return kindOrder(a.Rule.Kind) < kindOrder(b.Rule.Kind)
		}
		return a.RuleID < b.RuleID
	})

	return report
}

// CheckTaskGrammar verifies that the generator's example task lines parse
// under the validator's task grammar. Examples that do not parse would be
// emitted by the generator and then be invisible to tracking.
func CheckTaskGrammar(examples []string) []string {
	var bad []string
	for _, ex := range examples {
		line := "- [ ] " + ex
		doc := artifact.Parse(artifact.KindTasks, "", line)
		if len(doc.Tasks) == 0 {
			bad = append(bad, line)
		}
	}
	return bad
}

func kindOrder(kind artifact.Kind) int {
	for i, k := range artifact.Kinds {
		if k == kind {
			return i
		}
	}
	return len(artifact.Kinds)
}
