package codegen

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/indexgen/internal/ir"
	"github.com/roach88/indexgen/internal/render"
	"github.com/roach88/indexgen/internal/schema"
)

// Version is folded into the input hash so cached output is regenerated
// when rendering changes.
const Version = "1"

// Project is everything one generation run reads.
type Project struct {
	Name         string
	Contracts    []Contract
	Schema       *schema.Schema // nil when the project has no schema file
	SchemaSource []byte
}

// Options tunes a generation run.
type Options struct {
	Parallelism int // <= 0 means GOMAXPROCS
	Logger      zerolog.Logger
}

// Result is the output of a generation run.
type Result struct {
	InputHash string     `json:"input_hash"`
	Artifacts []Artifact `json:"artifacts"`
	Lowered   []*Lowered `json:"-"`
}

// Generate lowers and renders every contract of p, then the entities.
// Contracts run concurrently; the first failure cancels the rest.
func Generate(ctx context.Context, p Project, opts Options) (*Result, error) {
	if err := checkContracts(p.Contracts); err != nil {
		return nil, err
	}
	hash, err := InputHash(p)
	if err != nil {
		return nil, err
	}

	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	lowered := make([]*Lowered, len(p.Contracts))
	rendered := make([][]Artifact, len(p.Contracts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range p.Contracts {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts.Logger.Debug().Str("contract", c.Name).Str("ecosystem", string(c.Ecosystem)).Msg("lowering contract")

			l, err := Lower(c, opts.Logger)
			if err != nil {
				return fmt.Errorf("contract %s: %w", c.Name, err)
			}
			arts, err := Render(l, render.FieldSelection)
			if err != nil {
				return err
			}
			lowered[i], rendered[i] = l, arts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{InputHash: hash, Lowered: lowered}
	for _, arts := range rendered {
		res.Artifacts = append(res.Artifacts, arts...)
	}

	entities := p.Schema
	for _, l := range lowered {
		if l.Entities != nil {
			entities = entities.Merge(l.Entities)
		}
	}
	entityArts, err := RenderEntities(entities)
	if err != nil {
		return nil, err
	}
	res.Artifacts = append(res.Artifacts, entityArts...)

	opts.Logger.Debug().Int("artifacts", len(res.Artifacts)).Str("input_hash", hash).Msg("generation complete")
	return res, nil
}

func checkContracts(cs []Contract) error {
	seen := make(map[string]bool, len(cs))
	for _, c := range cs {
		if c.Name == "" {
			return fmt.Errorf("contract with empty name")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate contract name %q", c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// InputHash fingerprints everything that determines a run's output.
func InputHash(p Project) (string, error) {
	inputs := map[string][]byte{
		"version": []byte(Version),
		"project": []byte(p.Name),
		"schema":  p.SchemaSource,
	}
	for i, c := range p.Contracts {
		key := fmt.Sprintf("contract/%d/%s", i, c.Name)
		inputs[key+"/abi"] = c.ABI
		inputs[key+"/options"] = []byte(string(c.Ecosystem) + "\n" + strings.Join(c.Events, ","))
	}
	return ir.InputHash(inputs)
}
