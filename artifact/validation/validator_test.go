package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/specdriver/artifact"
)

const (
	goodRequirements = "# Feature\n\n## Overview\n\nWhat it is.\n\n## Requirements\n\n1. It works.\n"
	goodPlan         = "# Plan\n\n## Implementation Phases\n\nPhase 1 does things.\n"
	goodTasks        = "# Tasks\n\n## Tasks\n\n## Phase 1: Setup\n\n- [ ] T001: Create model\n- [ ] T002: Wire handler\n"
)

func writeSpecDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func findingsOfKind(result *Result, kind FindingKind) []Finding {
	var out []Finding
	for _, f := range result.Findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func TestValidateWellFormedSet(t *testing.T) {
	dir := writeSpecDir(t, map[string]string{
		artifact.RequirementsFile: goodRequirements,
		artifact.PlanFile:         goodPlan,
		artifact.TasksFile:        goodTasks,
	})

	result, err := New().Validate(dir)
	require.NoError(t, err)

	assert.True(t, result.Valid())
	assert.Empty(t, result.Findings)
	assert.NotEmpty(t, result.RunID)
}

func TestValidateMissingArtifact(t *testing.T) {
	dir := writeSpecDir(t, map[string]string{
		artifact.RequirementsFile: goodRequirements,
		artifact.TasksFile:        goodTasks,
	})

	result, err := New().Validate(dir)
	require.NoError(t, err)

	assert.False(t, result.Valid())

	// Exactly one MissingArtifact for plan.md and no section findings
	// for the absent document.
	missing := findingsOfKind(result, MissingArtifact)
	require.Len(t, missing, 1)
	assert.Equal(t, artifact.KindPlan, missing[0].Document)
	assert.Equal(t, artifact.PlanFile, missing[0].Detail)

	for _, f := range findingsOfKind(result, MissingSection) {
		assert.NotEqual(t, artifact.KindPlan, f.Document,
			"missing document must not also produce section findings")
	}
}

func TestValidateAllArtifactsMissing(t *testing.T) {
	result, err := New().Validate(t.TempDir())
	require.NoError(t, err)

	missing := findingsOfKind(result, MissingArtifact)
	assert.Len(t, missing, 3)
	assert.Len(t, result.Findings, 3)
}

func TestValidateMissingSections(t *testing.T) {
	dir := writeSpecDir(t, map[string]string{
		artifact.RequirementsFile: "# Feature\n\nNo required sections here.\n",
		artifact.PlanFile:         goodPlan,
		artifact.TasksFile:        goodTasks,
	})

	result, err := New().Validate(dir)
	require.NoError(t, err)

	sections := findingsOfKind(result, MissingSection)
	require.Len(t, sections, 2)
	assert.Equal(t, "## Overview", sections[0].Detail)
	assert.Equal(t, "## Requirements", sections[1].Detail)
}

func TestValidateSectionMatchingIsExact(t *testing.T) {
	// Wrong case and wrong level must both fail: the contract between
	// generator and validator is byte-exact heading names.
	dir := writeSpecDir(t, map[string]string{
		artifact.RequirementsFile: "## overview\n\n### Requirements\n",
		artifact.PlanFile:         goodPlan,
		artifact.TasksFile:        goodTasks,
	})

	result, err := New().Validate(dir)
	require.NoError(t, err)

	sections := findingsOfKind(result, MissingSection)
	assert.Len(t, sections, 2)
}

func TestValidateNoTasks(t *testing.T) {
	dir := writeSpecDir(t, map[string]string{
		artifact.RequirementsFile: goodRequirements,
		artifact.PlanFile:         goodPlan,
		artifact.TasksFile:        "# Tasks\n\n## Tasks\n\nNothing checked in yet.\n",
	})

	result, err := New().Validate(dir)
	require.NoError(t, err)

	require.Len(t, findingsOfKind(result, NoTasks), 1)
}

func TestValidateDuplicateTaskID(t *testing.T) {
	dir := writeSpecDir(t, map[string]string{
		artifact.RequirementsFile: goodRequirements,
		artifact.PlanFile:         goodPlan,
		artifact.TasksFile:        "## Tasks\n\n- [ ] T001: First\n- [x] T001: Again\n",
	})

	result, err := New().Validate(dir)
	require.NoError(t, err)

	dups := findingsOfKind(result, DuplicateTaskID)
	require.Len(t, dups, 1)
	assert.Equal(t, "T001", dups[0].Detail)
}

func TestValidateAccumulatesAcrossDocuments(t *testing.T) {
	// One pass reports every problem, not just the first.
	dir := writeSpecDir(t, map[string]string{
		artifact.RequirementsFile: "# No sections\n",
		artifact.TasksFile:        "## Tasks\n\nno tasks\n",
	})

	result, err := New().Validate(dir)
	require.NoError(t, err)

	assert.Len(t, findingsOfKind(result, MissingSection), 2)
	assert.Len(t, findingsOfKind(result, MissingArtifact), 1)
	assert.Len(t, findingsOfKind(result, NoTasks), 1)
}

func TestValidateDirMissing(t *testing.T) {
	_, err := New().Validate(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestDiscoverSets(t *testing.T) {
	root := t.TempDir()
	for _, sub := range []string{
		filepath.Join("features", "autocomplete"),
		filepath.Join("defects", "pagination-bug"),
	} {
		dir := filepath.Join(root, sub)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, artifact.TasksFile), []byte(goodTasks), 0644))
	}
	// A directory without tasks.md is not a spec directory.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "features", "empty"), 0755))

	dirs, err := DiscoverSets(root)
	require.NoError(t, err)

	require.Len(t, dirs, 2)
	assert.Equal(t, filepath.Join(root, "defects", "pagination-bug"), dirs[0])
	assert.Equal(t, filepath.Join(root, "features", "autocomplete"), dirs[1])
}
