// Package alignment detects drift between the artifact format a generating
// skill promises to emit and the format the validating skill requires. The
// two sides are independently declared rule sets compared as plain data;
// neither side knows about the other, and severity of a mismatch is policy
// applied by the caller, not by this package.
package alignment

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/c360studio/specdriver/artifact"
	"github.com/c360studio/specdriver/artifact/validation"
)

// templateBlockFormat captures the fenced markdown block following a
// "## <file>.md Template" heading in the generator's templates document.
// The %s slot takes the quoted artifact filename.
const templateBlockFormat = "(?si)## %s Template.*?```markdown\n(.*?)```"

// templateHeadings captures "## Heading" lines inside a template block.
var templateHeadings = regexp.MustCompile(`(?m)^(#{1,6}) ([A-Za-z][A-Za-z0-9 /-]*[A-Za-z0-9])\s*$`)

// phaseHeading matches the generic phase headings promised by the tasks
// template ("## Phase 1: Setup" etc.), which are placeholders rather than
// literal required sections.
var phaseHeading = regexp.MustCompile(`^Phase\b`)

// taskExample captures example task lines inside the tasks template block.
var taskExample = regexp.MustCompile(`(?m)^- \[[ xX~!]\] (T\d+:.*)$`)

// templateSection maps a document kind to its template heading in the
// generator document.
func templateSection(kind artifact.Kind) (string, error) {
	name, err := kind.Filename()
	if err != nil {
		return "", err
	}
	return regexp.QuoteMeta(name), nil
}

// TemplateRules extracts the section rules a generator templates document
// promises to emit, one template block per artifact kind. A kind with no
// template block simply contributes no rules; the checker reports the
// resulting absences as mismatches.
func TemplateRules(content string) (validation.RuleSet, error) {
	rs := validation.RuleSet{Name: "generator"}

	for _, kind := range artifact.Kinds {
		section, err := templateSection(kind)
		if err != nil {
			return validation.RuleSet{}, err
		}

		blockRe, err := regexp.Compile(fmt.Sprintf(templateBlockFormat, section))
		if err != nil {
			return validation.RuleSet{}, fmt.Errorf("compile template pattern for %s: %w", kind, err)
		}

		m := blockRe.FindStringSubmatch(content)
		if m == nil {
			continue
		}

		for _, h := range templateHeadings.FindAllStringSubmatch(m[1], -1) {
			text := strings.TrimSpace(h[2])
			if kind == artifact.KindTasks && phaseHeading.MatchString(text) {
				// Phase headings are per-spec placeholders, not a
				// fixed section name the validator could require.
				continue
			}
			rs.Rules = append(rs.Rules, validation.SectionRule{
				Kind:    kind,
				Heading: text,
				Level:   len(h[1]),
			})
		}
	}

	return rs, nil
}

// TemplateTaskExamples returns the example task lines found in the tasks
// template block, with their leading checkbox stripped.
func TemplateTaskExamples(content string) []string {
	section, err := templateSection(artifact.KindTasks)
	if err != nil {
		return nil
	}
	blockRe, err := regexp.Compile(fmt.Sprintf(templateBlockFormat, section))
	if err != nil {
		return nil
	}
	m := blockRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	var examples []string
	for _, e := range taskExample.FindAllStringSubmatch(m[1], -1) {
		examples = append(examples, e[1])
	}
	return examples
}

// LoadTemplateRules reads the generator templates document from disk and
// extracts its promised rule set.
func LoadTemplateRules(path string) (validation.RuleSet, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return validation.RuleSet{}, nil, fmt.Errorf("read templates document: %w", err)
	}
	content := string(data)

	rules, err := TemplateRules(content)
	if err != nil {
		return validation.RuleSet{}, nil, err
	}
	return rules, TemplateTaskExamples(content), nil
}
