package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/roach88/indexgen/internal/ir"
	"github.com/roach88/indexgen/internal/render"
	"github.com/roach88/indexgen/internal/schema"
)

// Artifact is one generated file. Path is relative to the output directory.
type Artifact struct {
	Contract string `json:"contract,omitempty" msgpack:"contract"`
	Path     string `json:"path" msgpack:"path"`
	Content  string `json:"content" msgpack:"content"`
}

// Entity artifacts are not tied to a contract.
const (
	EntitiesFile   = "Entities.res"
	EntitiesTSFile = "Entities.ts"
	EnumsFile      = "Enums.res"
)

// Render renders a lowered contract. Event payload schemas use mode.
func Render(l *Lowered, mode render.Mode) ([]Artifact, error) {
	types, err := render.Multi(l.Decls)
	if err != nil {
		return nil, fmt.Errorf("contract %s: %w", l.Contract, err)
	}
	schemas, err := render.Schemas(l.Decls, mode)
	if err != nil {
		return nil, fmt.Errorf("contract %s: %w", l.Contract, err)
	}
	defaults, err := render.Defaults(l.Decls)
	if err != nil {
		return nil, fmt.Errorf("contract %s: %w", l.Contract, err)
	}
	defaultsJS, err := render.DefaultsJS(l.Decls)
	if err != nil {
		return nil, fmt.Errorf("contract %s: %w", l.Contract, err)
	}

	events := make([]string, len(l.Events))
	for i, ev := range l.Events {
		events[i] = eventModule(ev, mode)
	}

	res := sections(
		section{"Types", types},
		section{"Schemas", schemas},
		section{"Defaults", defaults},
		section{"Events", strings.Join(events, "\n\n")},
	)
	return []Artifact{
		{Contract: l.Contract, Path: l.Contract + ".res", Content: res},
		{Contract: l.Contract, Path: l.Contract + ".ts", Content: render.TSTypes(l.Decls) + "\n"},
		{Contract: l.Contract, Path: l.Contract + "Defaults.js", Content: defaultsJS + "\n"},
	}, nil
}

// eventModule renders the module describing one event:
//
//	module Transfer = {
//	  let name = "Transfer"
//	  type t = transferEventArgs
//	  let schema: S.t<t> = transferEventArgsSchema
//	}
func eventModule(ev Event, mode render.Mode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s = {\n", ir.Capitalize(ev.Name))
	fmt.Fprintf(&b, "  let name = %s\n", strconv.Quote(ev.Name))
	if ev.LogID != "" {
		fmt.Fprintf(&b, "  let logId = %s\n", strconv.Quote(ev.LogID))
	}
	fmt.Fprintf(&b, "  type t = %s\n", render.TypeString(ev.Data))
	fmt.Fprintf(&b, "  let schema: S.t<t> = %s\n", render.Schema(ev.Data, mode))
	fmt.Fprintf(&b, "  let default: t = %s\n", render.DefaultRescript(ev.Data))
	b.WriteString("}")
	return b.String()
}

// RenderEntities renders the entity and enum artifacts of s. Entities are
// stored, so their schemas use storage mode. Returns nil for an empty schema.
func RenderEntities(s *schema.Schema) ([]Artifact, error) {
	if s == nil || (len(s.Entities) == 0 && len(s.Enums) == 0) {
		return nil, nil
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	set, err := s.Decls()
	if err != nil {
		return nil, err
	}

	types, err := render.Multi(set)
	if err != nil {
		return nil, fmt.Errorf("entities: %w", err)
	}
	schemas, err := render.Schemas(set, render.Storage)
	if err != nil {
		return nil, fmt.Errorf("entities: %w", err)
	}
	defaults, err := render.Defaults(set)
	if err != nil {
		return nil, fmt.Errorf("entities: %w", err)
	}

	var arts []Artifact
	if len(s.Enums) > 0 {
		modules := make([]string, len(s.Enums))
		for i, e := range s.Enums {
			modules[i] = render.EnumModule(e.Name, e.Values)
		}
		arts = append(arts, Artifact{Path: EnumsFile, Content: strings.Join(modules, "\n\n") + "\n"})
	}

	ts := make([]string, 0, len(s.Enums)+1)
	for _, e := range s.Enums {
		ts = append(ts, render.EnumTS(e.Name, e.Values))
	}
	if set.Len() > 0 {
		ts = append(ts, render.TSTypes(set))
	}

	arts = append(arts,
		Artifact{Path: EntitiesFile, Content: sections(
			section{"Types", types},
			section{"Schemas", schemas},
			section{"Defaults", defaults},
		)},
		Artifact{Path: EntitiesTSFile, Content: strings.Join(ts, "\n") + "\n"},
	)
	return arts, nil
}

type section struct {
	title string
	body  string
}

// sections joins non-empty sections under comment headers.
func sections(ss ...section) string {
	var parts []string
	for _, s := range ss {
		if s.body == "" {
			continue
		}
		parts = append(parts, "// "+s.title+"\n"+s.body)
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// WriteArtifacts writes artifacts under dir, creating directories as needed.
func WriteArtifacts(dir string, arts []Artifact) error {
	for _, a := range arts {
		path := filepath.Join(dir, filepath.FromSlash(a.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create directory for %s: %w", a.Path, err)
		}
		if err := os.WriteFile(path, []byte(a.Content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", a.Path, err)
		}
	}
	return nil
}
