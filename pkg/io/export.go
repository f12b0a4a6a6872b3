package io

import (
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/factsmission/tlds/pkg/errors"
	"github.com/factsmission/tlds/pkg/rdf"
)

// WriteJSON encodes g as an indented JSON triple document and writes it to w.
// Triples keep the order in which g yields them. The output can be
// re-imported with [ReadJSON].
func WriteJSON(g rdf.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(encode(g)); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode json")
	}
	return nil
}

// WriteYAML encodes g as a YAML triple document and writes it to w.
func WriteYAML(g rdf.Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(encode(g)); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode yaml")
	}
	return nil
}

// ExportJSON writes g as JSON to the file at path, creating or truncating it.
func ExportJSON(g rdf.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
