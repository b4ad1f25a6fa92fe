package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/indexgen/internal/codegen"
	"github.com/roach88/indexgen/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Cache string // generation cache database path
	Force bool   // regenerate even on a cache hit
}

// GenerateResult summarizes a generate run.
type GenerateResult struct {
	Project   string   `json:"project"`
	InputHash string   `json:"input_hash"`
	Output    string   `json:"output"`
	Cached    bool     `json:"cached"`
	Files     []string `json:"files"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <project-dir>",
		Short: "Generate code for a project",
		Long: `Generate ReScript, TypeScript and JavaScript artifacts for every
contract and entity of the project described by <project-dir>/indexgen.cue.

With --cache, runs whose inputs are unchanged reuse the cached artifacts.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Cache, "cache", "", "generation cache database path")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "regenerate even when the cache has the same inputs")

	return cmd
}

func runGenerate(opts *GenerateOptions, dir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())
	ctx := cmd.Context()

	cfg, project, err := loadProject(dir)
	if err != nil {
		return formatter.fail(ExitCommandError, err)
	}
	outDir := cfg.Path(cfg.Output)

	var cache *store.Store
	if opts.Cache != "" {
		cache, err = store.Open(opts.Cache)
		if err != nil {
			return formatter.fail(ExitCommandError, withCode(ErrCodeCache, err))
		}
		defer cache.Close()
	}

	hash, err := codegen.InputHash(project)
	if err != nil {
		return formatter.fail(ExitFailure, err)
	}

	if cache != nil && !opts.Force {
		g, err := cache.Lookup(ctx, hash)
		switch {
		case err == nil:
			formatter.VerboseLog("Cache hit for %s (generation %s)", hash, g.ID)
			return writeGenerated(formatter, cfg.Name, hash, outDir, true, g.Artifacts)
		case !errors.Is(err, store.ErrNotFound):
			return formatter.fail(ExitCommandError, withCode(ErrCodeCache, err))
		}
	}

	res, err := codegen.Generate(ctx, project, codegen.Options{
		Parallelism: cfg.Parallelism,
		Logger:      logger,
	})
	if err != nil {
		return formatter.fail(ExitFailure, err)
	}

	if cache != nil {
		if _, err := cache.Record(ctx, cfg.Name, res.InputHash, res.Artifacts); err != nil {
			return formatter.fail(ExitCommandError, withCode(ErrCodeCache, err))
		}
	}
	return writeGenerated(formatter, cfg.Name, res.InputHash, outDir, false, res.Artifacts)
}

func writeGenerated(formatter *OutputFormatter, project, hash, outDir string, cached bool, arts []codegen.Artifact) error {
	if err := codegen.WriteArtifacts(outDir, arts); err != nil {
		return formatter.fail(ExitCommandError, withCode(ErrCodeWriteFailed, err))
	}

	result := GenerateResult{Project: project, InputHash: hash, Output: outDir, Cached: cached}
	for _, a := range arts {
		result.Files = append(result.Files, a.Path)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	verb := "Generated"
	if cached {
		verb = "Restored"
	}
	fmt.Fprintf(formatter.Writer, "%s %s %d file(s) for %s in %s\n", okMark("✓"), verb, len(result.Files), project, outDir)
	for _, f := range result.Files {
		fmt.Fprintf(formatter.Writer, "  %s\n", f)
	}
	return nil
}
