package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/c360studio/specdriver/artifact/validation"
)

// validateCmd builds the validate command. With a directory argument it
// validates one artifact set; with --all it discovers every set under the
// configured specs root. Any finding yields a non-zero exit.
func validateCmd(configPath *string) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "validate [spec-directory]",
		Short: "Validate spec artifacts before implementation",
		Long: `Validate checks that a spec directory contains requirements.md, plan.md
and tasks.md, that each document has its required sections, and that the
task checklist is well formed (at least one task, unique ids).

All findings are reported in one pass; the command exits non-zero if any
finding is present.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				if len(args) > 0 {
					return fmt.Errorf("--all does not take a directory argument")
				}
				return validateAll(*configPath)
			}
			if len(args) != 1 {
				return fmt.Errorf("expected a spec directory (or --all)")
			}
			return validateOne(args[0])
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Validate every spec directory under the configured specs root")

	return cmd
}

func validateOne(dir string) error {
	v := validation.New()

	result, err := v.Validate(dir)
	if err != nil {
		return err
	}

	slog.Debug("validation complete",
		"run_id", result.RunID,
		"dir", result.Dir,
		"findings", len(result.Findings))

	renderResult(result)
	if !result.Valid() {
		return fmt.Errorf("%d finding(s) in %s", len(result.Findings), dir)
	}
	return nil
}

func validateAll(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	dirs, err := validation.DiscoverSets(cfg.Specs.Root)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no spec directories found under %s", cfg.Specs.Root)
	}

	v := validation.New()
	failures := 0
	for _, dir := range dirs {
		result, err := v.Validate(dir)
		if err != nil {
			return err
		}
		renderResult(result)
		if !result.Valid() {
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d spec directories failed validation", failures, len(dirs))
	}
	return nil
}
