package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/scalpel-ui/scalpel/cmd/scalpel/internal/config"
	"github.com/scalpel-ui/scalpel/cmd/scalpel/internal/ui"
	"github.com/scalpel-ui/scalpel/pkg/lint"
	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

func newLintCommand() *cobra.Command {
	var interactive bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint [files...]",
		Short: "Check SX source files for reactivity mistakes",
		Long: `Analyzes component bodies for reads of reactive state that happen
outside a tracked scope, async work inside effects, and other patterns
that make a view silently stop updating.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(args, interactive, strict)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse findings in an interactive TUI")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any finding is reported")

	return cmd
}

func runLint(args []string, interactive, strict bool) error {
	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("⚠️  Failed to load scalpel.yaml: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	if cfg.Lint.Strict {
		strict = true
	}

	files := args
	if len(files) == 0 {
		files, err = findSources(cfg)
		if err != nil {
			return err
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files found under %s", cfg.Source.Dir)
	}

	var issues []lint.Issue
	for _, file := range files {
		found, err := lintFile(file)
		if err != nil {
			fmt.Println(ui.RenderError(err.Error()))
			return err
		}
		for _, issue := range found {
			if cfg.LintDisabled(string(issue.Kind)) {
				continue
			}
			issues = append(issues, issue)
		}
	}

	if interactive {
		return ui.RunBrowser(issues)
	}

	if len(issues) == 0 {
		fmt.Println(ui.RenderClean(fmt.Sprintf("%d files clean", len(files))))
		return nil
	}

	for _, issue := range issues {
		fmt.Println(ui.RenderIssueLine(issue.Pos.String(), string(issue.Kind), issue.Form))
	}
	fmt.Println(ui.RenderError(fmt.Sprintf("%d findings in %d files", len(issues), len(files))))

	if strict {
		os.Exit(1)
	}
	return nil
}

func lintFile(path string) ([]lint.Issue, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	forms, err := syntax.NewReader(path, string(src)).ReadAll()
	if err != nil {
		return nil, err
	}
	return lint.File(forms), nil
}
