// Package input reads entity files for the CLI. A file holds YAML or JSON
// in one of three shapes: a single entity, a list of entities, or a
// document with an "entities" list.
package input

import (
	"bytes"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/factmap/pkg/entity"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/reconcile"
)

// Stdin is the file name that reads from standard input.
const Stdin = "-"

type document struct {
	Entities []*entity.Entity `yaml:"entities"`
}

// LoadEntities reads and validates the entities in path.
func LoadEntities(path string) ([]*entity.Entity, error) {
	data, err := read(path)
	if err != nil {
		return nil, err
	}
	return ParseEntities(path, data)
}

// ParseEntities decodes entities from data. name is used in errors only.
func ParseEntities(name string, data []byte) ([]*entity.Entity, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.NewParseError("yaml", name, "file is empty", nil)
	}

	var probe any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}

	var entities []*entity.Entity
	var err error
	switch p := probe.(type) {
	case []any:
		err = yaml.UnmarshalWithOptions(data, &entities, yaml.Strict())
	case map[string]any:
		if _, ok := p["entities"]; ok {
			var doc document
			err = yaml.UnmarshalWithOptions(data, &doc, yaml.Strict())
			entities = doc.Entities
		} else {
			var single entity.Entity
			err = yaml.UnmarshalWithOptions(data, &single, yaml.Strict())
			entities = []*entity.Entity{&single}
		}
	default:
		return nil, errors.NewParseError("yaml", name, "expected an entity, a list of entities or an entities document", nil)
	}
	if err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}

	for i, ent := range entities {
		if ent == nil {
			return nil, errors.NewValidationError("entities", i, "entry is empty")
		}
		if ent.ID == "" {
			return nil, errors.NewValidationError("id", i, "entity id cannot be empty")
		}
		if ent.Kind != "" && !ent.Kind.IsValid() {
			return nil, errors.NewValidationError("kind", ent.Kind, "must be event or poi")
		}
		if err := ent.Validate(); err != nil {
			return nil, err
		}
	}
	return entities, nil
}

// LoadReports reads reports written by an earlier run in JSON or YAML and
// indexes them by entity ID.
func LoadReports(path string) (map[string]*reconcile.Report, error) {
	data, err := read(path)
	if err != nil {
		return nil, err
	}

	var reports []*reconcile.Report
	if err := yaml.Unmarshal(data, &reports); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	out := make(map[string]*reconcile.Report, len(reports))
	for _, r := range reports {
		if r != nil && r.EntityID != "" {
			out[r.EntityID] = r
		}
	}
	return out, nil
}

func read(path string) ([]byte, error) {
	if path == Stdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.WrapIO("read", "stdin", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return data, nil
}
