package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

//go:embed project.cue
var projectSchema string

// FileName is the project file looked up in a project directory.
const FileName = "indexgen.cue"

// Project is a decoded project configuration.
type Project struct {
	Name        string     `json:"name"`
	Output      string     `json:"output"`
	Schema      string     `json:"schema,omitempty"`
	Parallelism int        `json:"parallelism"`
	Contracts   []Contract `json:"contracts"`

	// Dir is the project directory. Relative paths resolve against it.
	Dir string `json:"-"`
}

// Contract is one ABI entry of a project.
type Contract struct {
	Name      string   `json:"name"`
	Ecosystem string   `json:"ecosystem"`
	ABI       string   `json:"abi"`
	Events    []string `json:"events,omitempty"`
}

// Error is a configuration error, positioned in the project file when CUE
// reports a position.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		fmt.Fprintf(&b, "%s:%d:%d: ", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column())
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Path resolves a project-relative path.
func (p *Project) Path(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Dir, rel)
}

// Load reads dir/indexgen.cue and checks it against the project definition.
func Load(dir string) (*Project, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("project directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &Error{Message: fmt.Sprintf("not a directory: %s", dir)}
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		return nil, &Error{Message: fmt.Sprintf("no %s in %s", FileName, dir)}
	}

	ctx := cuecontext.New()
	def := ctx.CompileString(projectSchema, cue.Filename("project.cue")).LookupPath(cue.ParsePath("#Project"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("compile project definition: %w", err)
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &Error{Message: "no CUE instances loaded"}
	}
	if err := instances[0].Err; err != nil {
		return nil, convertError(err)
	}
	value := ctx.BuildInstance(instances[0])
	if err := value.Err(); err != nil {
		return nil, convertError(err)
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, convertError(err)
	}

	var p Project
	if err := unified.Decode(&p); err != nil {
		return nil, convertError(err)
	}
	if err := p.check(); err != nil {
		return nil, err
	}
	p.Dir = dir
	return &p, nil
}

// check enforces what the CUE definition does not express.
func (p *Project) check() error {
	seen := make(map[string]bool, len(p.Contracts))
	for i, c := range p.Contracts {
		field := fmt.Sprintf("contracts[%d]", i)
		if seen[c.Name] {
			return &Error{Field: field + ".name", Message: fmt.Sprintf("duplicate contract name %q", c.Name)}
		}
		seen[c.Name] = true
		if c.Ecosystem == "fuel" && len(c.Events) > 0 {
			return &Error{Field: field + ".events", Message: "event selection applies to evm contracts only"}
		}
	}
	return nil
}

// convertError turns a CUE error into an Error carrying the first reported
// position.
func convertError(err error) error {
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return &Error{Message: err.Error()}
	}
	first := list[0]
	format, args := first.Msg()
	return &Error{
		Field:   strings.Join(first.Path(), "."),
		Message: fmt.Sprintf(format, args...),
		Pos:     position(first),
	}
}

// position prefers a position in the project file over one in the embedded
// definition.
func position(err cueerrors.Error) token.Pos {
	candidates := append([]token.Pos{err.Position()}, err.InputPositions()...)
	var fallback token.Pos
	for _, p := range candidates {
		if !p.IsValid() {
			continue
		}
		if filepath.Base(p.Filename()) == FileName {
			return p
		}
		if !fallback.IsValid() {
			fallback = p
		}
	}
	return fallback
}

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool {
	var cerr *Error
	return errors.As(err, &cerr)
}
