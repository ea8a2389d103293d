package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"verity-hq/scrivener/pkg/library"
)

var validateFlags struct {
	libraryDir string
	strict     bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a clause library",
	Long: `Load a clause library and report referential problems: rules that
reference unknown clauses or questions, question dependencies on
unknown questions, and reportable template syntax in clause bodies.

Parse failures are always fatal. Lint findings are reported and, with
--strict, also fail the command.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateFlags.libraryDir, "library", "", "library directory (overrides config)")
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false, "treat lint findings as errors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, nil)

	libDir := validateFlags.libraryDir
	if libDir == "" {
		libDir = cfg.Library.Dir
	}
	lib, err := library.LoadDir(libDir, logger)
	if err != nil {
		return err
	}

	problems := lib.Lint()
	for _, p := range problems {
		fmt.Println(p.String())
	}
	if len(problems) == 0 {
		fmt.Printf("library ok: %d questions, %d rules, %d clauses, %d profiles\n",
			len(lib.Questions), len(lib.Rules), len(lib.Clauses), len(lib.Profiles))
		return nil
	}
	if validateFlags.strict {
		return fmt.Errorf("%d lint finding(s)", len(problems))
	}
	return nil
}
