package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/specdriver/alignment"
	"github.com/c360studio/specdriver/artifact/validation"
)

// alignCmd builds the align command. It compares the sections promised by
// the spec-driven-dev templates against the sections the validator
// requires. Severity policy lives here, not in the alignment package:
// a section the validator requires but the templates never emit breaks the
// pipeline (error, exit 1); an extra template section is merely unvalidated
// (warning, exit 0).
func alignCmd(configPath *string) *cobra.Command {
	var templatesPath string

	cmd := &cobra.Command{
		Use:   "align",
		Short: "Check generator templates against validator expectations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if templatesPath == "" {
				cfg, err := loadConfig(*configPath)
				if err != nil {
					return err
				}
				templatesPath = cfg.Skills.TemplatesPath
			}

			generator, examples, err := alignment.LoadTemplateRules(templatesPath)
			if err != nil {
				return err
			}

			validator := validation.DefaultRules()
			report := alignment.Check(generator, validator)
			badExamples := alignment.CheckTaskGrammar(examples)

			errs := 0
			for _, e := range report.MissingFromGenerator() {
				fmt.Printf("%s templates do not emit required section: %s (%s)\n",
					failStyle.Render("error:"), e.Rule.Heading, e.Rule.Kind)
				errs++
			}
			for _, line := range badExamples {
				fmt.Printf("%s template task example does not match the task grammar: %q\n",
					failStyle.Render("error:"), line)
				errs++
			}
			for _, e := range report.ExtraInGenerator() {
				fmt.Printf("%s templates emit section not checked by validator: %s (%s)\n",
					warnStyle.Render("warning:"), e.Rule.Heading, e.Rule.Kind)
			}

			if errs > 0 {
				return fmt.Errorf("%d alignment error(s) between %s and validator rules", errs, templatesPath)
			}

			if report.Aligned() && len(examples) > 0 {
				fmt.Printf("%s templates and validator rules are aligned\n", passStyle.Render("OK"))
			} else {
				fmt.Printf("%s no blocking mismatches\n", passStyle.Render("OK"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&templatesPath, "templates", "", "Path to the generator templates document (defaults to config skills.templates_path)")

	return cmd
}
