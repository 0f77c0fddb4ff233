package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/boxgrid/pkg/errors"
	"github.com/matzehuels/boxgrid/pkg/grid"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

// intDocument writes integral coordinates so files stay free of "1.0".
type intDocument struct {
	Rects [][4]int `json:"rects" toml:"rects" yaml:"rects,flow"`
}

// WriteRects encodes set to w in the given format.
// The output can be read back with [ReadRects] for round-trip processing.
func WriteRects(w io.Writer, set rect.Set, format Format) error {
	doc := intDocument{Rects: set.Tuples()}
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// ExportRects writes set to the file at path, choosing the format from its extension.
func ExportRects(set rect.Set, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := create(path)
	if err != nil {
		return err
	}
	if err := WriteRects(f, set, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportGrid writes g to the file at path in text form.
func ExportGrid(g *grid.Grid, path string) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	if err := grid.Write(f, g); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func create(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
