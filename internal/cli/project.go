package cli

import (
	"fmt"
	"os"

	"github.com/roach88/indexgen/internal/codegen"
	"github.com/roach88/indexgen/internal/config"
	"github.com/roach88/indexgen/internal/schema"
)

// loadProject reads the project file and every file it names.
func loadProject(dir string) (*config.Project, codegen.Project, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, codegen.Project{}, err
	}

	p := codegen.Project{Name: cfg.Name}
	for _, c := range cfg.Contracts {
		data, err := readInput(cfg.Path(c.ABI))
		if err != nil {
			return nil, codegen.Project{}, fmt.Errorf("contract %s: %w", c.Name, err)
		}
		p.Contracts = append(p.Contracts, codegen.Contract{
			Name:      c.Name,
			Ecosystem: codegen.Ecosystem(c.Ecosystem),
			ABI:       data,
			Events:    c.Events,
		})
	}

	if cfg.Schema != "" {
		data, err := readInput(cfg.Path(cfg.Schema))
		if err != nil {
			return nil, codegen.Project{}, err
		}
		s, err := schema.Parse(data)
		if err != nil {
			return nil, codegen.Project{}, fmt.Errorf("%s: %w", cfg.Schema, err)
		}
		p.Schema, p.SchemaSource = s, data
	}
	return cfg, p, nil
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, withCode(ErrCodeReadFailed, err)
	}
	return data, nil
}
