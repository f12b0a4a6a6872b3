// Package pipeline provides the load → hash → render pipeline for tlds.
//
// This package implements the steps shared by the CLI and the HTTP server so
// both produce identical bytes and share cache entries.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode a graph document, take a graph from the caller, or fetch
//     a previously stored graph by hash
//  2. Hash: Export the graph as canonical JSON and hash it
//  3. Render: Serialize through the registry, or return the cached artifact
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:  "graph.json",
//	    Format: "text/html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/factsmission/tlds/pkg/cache"
	"github.com/factsmission/tlds/pkg/errors"
	"github.com/factsmission/tlds/pkg/rdf"
	"github.com/factsmission/tlds/pkg/rdfa"
)

const (
	// DefaultFormat is the media type rendered when none is requested.
	DefaultFormat = "text/html"

	// DefaultTTL is how long artifacts and stored graphs stay cached.
	DefaultTTL = 24 * time.Hour
)

// Options contains all configuration for one pipeline run.
// Exactly one of Input, Graph and GraphHash selects the source.
type Options struct {
	// Input is a graph document path (.json, .yaml or .yml).
	Input string `json:"input,omitempty"`
	// Graph is an already loaded graph.
	Graph rdf.Graph `json:"-"`
	// GraphHash names a graph stored by an earlier run.
	GraphHash string `json:"graph_hash,omitempty"`

	Format  string        `json:"format,omitempty"`
	Raw     bool          `json:"raw,omitempty"`
	Refresh bool          `json:"refresh,omitempty"`
	TTL     time.Duration `json:"ttl,omitempty"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the rendered graph.
	Graph rdf.Graph

	// GraphHash is the SHA-256 of the graph's canonical JSON export.
	GraphHash string

	// Format is the normalized media type of Artifact.
	Format string

	// Artifact holds the serialized graph.
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TripleCount  int
	SubjectCount int
	LoadTime     time.Duration
	RenderTime   time.Duration
}

// ValidateAndSetDefaults checks the source selection, normalizes the format
// and applies defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	sources := 0
	for _, set := range []bool{o.Input != "", o.Graph != nil, o.GraphHash != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "exactly one of input, graph or graph_hash is required")
	}

	if o.Format == "" {
		o.Format = DefaultFormat
	}
	mt, err := errors.NormalizeMediaType(o.Format)
	if err != nil {
		return err
	}
	o.Format = mt

	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ttl must not be negative")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for the rendered artifact.
// Raw only changes RDFa output, so other formats ignore it.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: o.Format,
		Raw:    o.Raw && o.Format == rdfa.FormatHTML,
	}
}
