package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/roach88/indexgen/internal/codegen"
)

// ErrNotFound is returned when no generation matches a lookup.
var ErrNotFound = errors.New("generation not found")

// Generation is one cached generation run.
type Generation struct {
	ID        string             `json:"id"`
	Project   string             `json:"project"`
	InputHash string             `json:"input_hash"`
	Seq       int64              `json:"seq"`
	Artifacts []codegen.Artifact `json:"artifacts"`
}

// bundle is the msgpack payload of a generation row.
type bundle struct {
	Artifacts []codegen.Artifact `msgpack:"artifacts"`
}

// Record stores the artifacts of a run under its input hash.
// Recording a hash that is already present is a no-op returning the stored
// generation.
func (s *Store) Record(ctx context.Context, project, inputHash string, artifacts []codegen.Artifact) (Generation, error) {
	data, err := msgpack.Marshal(bundle{Artifacts: artifacts})
	if err != nil {
		return Generation{}, fmt.Errorf("record generation: encode bundle: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Generation{}, fmt.Errorf("record generation: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM generations`).Scan(&seq); err != nil {
		return Generation{}, fmt.Errorf("record generation: next seq: %w", err)
	}

	id := s.ids.Generate()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO generations
		(id, project, input_hash, seq, artifact_count, bundle)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(input_hash) DO NOTHING
	`,
		id,
		project,
		inputHash,
		seq,
		len(artifacts),
		data,
	)
	if err != nil {
		return Generation{}, fmt.Errorf("record generation: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Generation{}, fmt.Errorf("record generation: commit: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return s.Lookup(ctx, inputHash)
	}
	return Generation{ID: id, Project: project, InputHash: inputHash, Seq: seq, Artifacts: artifacts}, nil
}

// Lookup returns the generation recorded for inputHash, or ErrNotFound.
func (s *Store) Lookup(ctx context.Context, inputHash string) (Generation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, project, input_hash, seq, bundle
		FROM generations
		WHERE input_hash = ?
	`, inputHash)
	g, err := scanGeneration(row)
	if err != nil {
		return Generation{}, fmt.Errorf("lookup generation: %w", err)
	}
	return g, nil
}

// Latest returns the most recently recorded generation of project, or
// ErrNotFound.
func (s *Store) Latest(ctx context.Context, project string) (Generation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, project, input_hash, seq, bundle
		FROM generations
		WHERE project = ?
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`, project)
	g, err := scanGeneration(row)
	if err != nil {
		return Generation{}, fmt.Errorf("latest generation: %w", err)
	}
	return g, nil
}

func scanGeneration(row *sql.Row) (Generation, error) {
	var (
		g    Generation
		data []byte
	)
	if err := row.Scan(&g.ID, &g.Project, &g.InputHash, &g.Seq, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Generation{}, ErrNotFound
		}
		return Generation{}, err
	}
	var b bundle
	if err := msgpack.Unmarshal(data, &b); err != nil {
		return Generation{}, fmt.Errorf("decode bundle: %w", err)
	}
	g.Artifacts = b.Artifacts
	return g, nil
}
