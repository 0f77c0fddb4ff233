package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/boxgrid/pkg/errors"
	"github.com/matzehuels/boxgrid/pkg/grid"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

// Format names a rectangle file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// document is the on-disk shape shared by all formats.
type document struct {
	Rects [][]float64 `json:"rects" toml:"rects" yaml:"rects"`
}

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported rectangle file %q (want .json, .toml, .yaml or .yml)", filepath.Base(path))
}

// ParseFormat validates a format name such as "json" or "yml".
func ParseFormat(s string) (Format, error) {
	return FormatFromPath("x." + s)
}

// ReadCoords decodes raw coordinates from r without validating them.
func ReadCoords(r io.Reader, format Format) ([][4]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var doc document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &doc)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown key %q", undecoded[0].String())
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
	}

	coords := make([][4]float64, len(doc.Rects))
	for i, r := range doc.Rects {
		if len(r) != 4 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "rect %d has %d coordinates, want 4", i+1, len(r))
		}
		copy(coords[i][:], r)
	}
	return coords, nil
}

// ReadRects decodes and validates an integral rectangle set from r.
func ReadRects(r io.Reader, format Format) (rect.Set, error) {
	coords, err := ReadCoords(r, format)
	if err != nil {
		return nil, err
	}
	return rect.FromFloats(coords)
}

// ImportCoords reads raw coordinates from the file at path.
func ImportCoords(path string) ([][4]float64, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCoords(f, format)
}

// ImportRects reads a validated rectangle set from the file at path.
func ImportRects(path string) (rect.Set, error) {
	coords, err := ImportCoords(path)
	if err != nil {
		return nil, err
	}
	set, err := rect.FromFloats(coords)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ImportGrid reads a text grid from the file at path.
func ImportGrid(path string) (*grid.Grid, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := grid.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// IsRectFile reports whether path has a rectangle file extension.
func IsRectFile(path string) bool {
	_, err := FormatFromPath(path)
	return err == nil
}

func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
