package io

import (
	"encoding/json"
	stdErrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/factsmission/tlds/pkg/errors"
	"github.com/factsmission/tlds/pkg/rdf"
)

// ReadJSON decodes a JSON triple document from r into a new graph.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - A term has an unknown type, or a literal is used as subject
//   - An IRI or blank node label is invalid
//
// Duplicate triples are silently merged. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*rdf.MemGraph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return decode(doc)
}

// ReadYAML decodes a YAML triple document from r into a new graph.
// An empty stream yields an empty graph. Validation follows [ReadJSON].
func ReadYAML(r io.Reader) (*rdf.MemGraph, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !stdErrors.Is(err, io.EOF) {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
	}
	return decode(doc)
}

// ImportFile reads the triple document at path. The decoder is chosen by
// extension: .json, or .yaml / .yml.
func ImportFile(path string) (*rdf.MemGraph, error) {
	read, err := readerFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	g, err := read(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", path)
	}
	return g, nil
}

func readerFor(path string) (func(io.Reader) (*rdf.MemGraph, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON, nil
	case ".yaml", ".yml":
		return ReadYAML, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"cannot infer graph format from %q (use .json, .yaml or .yml)", path)
	}
}
