package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/indexgen/internal/codegen"
	"github.com/roach88/indexgen/internal/render"
	"github.com/roach88/indexgen/internal/schema"
)

// ValidationIssue is one problem found by validate.
type ValidationIssue struct {
	Contract string `json:"contract,omitempty"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <project-dir>",
		Short: "Check a project without writing files",
		Long: `Lower and render every contract and entity of a project, reporting
all problems found. Nothing is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())

	_, project, err := loadProject(dir)
	if err != nil {
		return formatter.fail(ExitCommandError, err)
	}

	var result ValidationResult
	entities := project.Schema
	for _, c := range project.Contracts {
		formatter.VerboseLog("Validating contract: %s", c.Name)
		l, err := codegen.Lower(c, logger)
		if err == nil {
			_, err = codegen.Render(l, render.FieldSelection)
		}
		if err != nil {
			result.Issues = append(result.Issues, ValidationIssue{Contract: c.Name, Code: ErrorCode(err), Message: err.Error()})
			continue
		}
		if l.Entities != nil {
			entities = entities.Merge(l.Entities)
		}
	}
	if err := validateEntities(entities); err != nil {
		result.Issues = append(result.Issues, ValidationIssue{Code: ErrorCode(err), Message: err.Error()})
	}

	result.Valid = len(result.Issues) == 0
	if result.Valid {
		if formatter.Format == "json" {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "%s %s is valid (%d contract(s))\n", okMark("✓"), project.Name, len(project.Contracts))
		return nil
	}
	return outputValidationIssues(formatter, result)
}

func validateEntities(s *schema.Schema) error {
	_, err := codegen.RenderEntities(s)
	return err
}

func outputValidationIssues(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		first := result.Issues[0]
		if err := formatter.Error(first.Code, first.Message, result.Issues); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(result.Issues)))
	}

	fmt.Fprintf(formatter.Writer, "%s Validation failed\n\n", failMark("✗"))
	for _, issue := range result.Issues {
		if issue.Contract != "" {
			fmt.Fprintf(formatter.Writer, "%s\n", issue.Contract)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", issue.Code, issue.Message)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(result.Issues)))
}
