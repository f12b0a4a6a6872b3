package pipeline

import (
	"bytes"
	"context"
	stdErrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factsmission/tlds/pkg/errors"
	"github.com/factsmission/tlds/pkg/rdf"
	"github.com/factsmission/tlds/pkg/rdfa"
)

// memCache is an in-memory cache.Cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = bytes.Clone(data)
	c.ttls[key] = ttl
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

// brokenCache fails every operation.
type brokenCache struct{}

var errBackend = stdErrors.New("backend down")

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errBackend }
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errBackend
}
func (brokenCache) Delete(context.Context, string) error { return errBackend }
func (brokenCache) Close() error                         { return nil }

func quietLogger() *log.Logger { return log.New(io.Discard) }

func aliceGraph() *rdf.MemGraph {
	bob := rdf.NewBlankNode()
	return rdf.NewGraph(
		rdf.Triple{Subject: rdf.IRI("http://ex/Alice"), Predicate: "http://ex/knows", Object: bob},
		rdf.Triple{Subject: bob, Predicate: "http://ex/name", Object: rdf.NewLiteral("<Bob>", "")},
	)
}

func TestRunner_ExecuteRendersAndCaches(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil, quietLogger())
	g := aliceGraph()

	res, err := r.Execute(ctx, Options{Graph: g})
	require.NoError(t, err)
	assert.False(t, res.CacheHit)
	assert.Equal(t, "text/html", res.Format)
	assert.Len(t, res.GraphHash, 64)
	assert.Equal(t, 2, res.Stats.TripleCount)
	assert.Equal(t, 2, res.Stats.SubjectCount)

	var want bytes.Buffer
	require.NoError(t, rdfa.New().Serialize(&want, g, rdfa.FormatHTML))
	assert.Equal(t, want.String(), string(res.Artifact))

	again, err := r.Execute(ctx, Options{Graph: g})
	require.NoError(t, err)
	assert.True(t, again.CacheHit)
	assert.Equal(t, res.Artifact, again.Artifact)

	refreshed, err := r.Execute(ctx, Options{Graph: g, Refresh: true})
	require.NoError(t, err)
	assert.False(t, refreshed.CacheHit)
}

func TestRunner_ExecuteRaw(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil, quietLogger())
	g := aliceGraph()

	escaped, err := r.Execute(context.Background(), Options{Graph: g})
	require.NoError(t, err)
	raw, err := r.Execute(context.Background(), Options{Graph: g, Raw: true})
	require.NoError(t, err)

	assert.False(t, raw.CacheHit, "raw output must not be served from the escaped entry")
	assert.Contains(t, string(escaped.Artifact), "&lt;Bob&gt;")
	assert.Contains(t, string(raw.Artifact), "><Bob></span>")
}

func TestRunner_ExecuteTTL(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil, quietLogger())

	_, err := r.Execute(context.Background(), Options{Graph: aliceGraph(), TTL: time.Minute})
	require.NoError(t, err)
	require.Equal(t, 2, c.sets, "graph and artifact should both be stored")
	for key, ttl := range c.ttls {
		assert.Equal(t, time.Minute, ttl, key)
	}
}

func TestRunner_GraphHashIgnoresBlankNodeIdentity(t *testing.T) {
	r := NewRunner(nil, nil, nil, quietLogger())

	a, err := r.Execute(context.Background(), Options{Graph: aliceGraph()})
	require.NoError(t, err)
	b, err := r.Execute(context.Background(), Options{Graph: aliceGraph()})
	require.NoError(t, err)
	assert.Equal(t, a.GraphHash, b.GraphHash)
}

func TestRunner_ExecuteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.json")
	doc := `{"triples": [{"subject": {"type": "uri", "value": "http://ex/s"},
	  "predicate": "http://ex/p", "object": {"type": "literal", "value": "v"}}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	r := NewRunner(nil, nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), Options{Input: path})
	require.NoError(t, err)
	assert.Contains(t, string(res.Artifact), "<tbody about='http://ex/s'>")
}

func TestRunner_ExecuteFromFileErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil, quietLogger())

	_, err := r.Execute(context.Background(), Options{Input: filepath.Join(t.TempDir(), "missing.json")})
	assert.Equal(t, errors.ErrCodeFileNotFound, errors.GetCode(err))
}

func TestRunner_ExecuteByHash(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil, quietLogger())

	first, err := r.Execute(ctx, Options{Graph: aliceGraph()})
	require.NoError(t, err)

	dot, err := r.Execute(ctx, Options{GraphHash: first.GraphHash, Format: "text/vnd.graphviz"})
	require.NoError(t, err)
	assert.Equal(t, first.GraphHash, dot.GraphHash, "stored graph should hash the same")
	assert.True(t, strings.HasPrefix(string(dot.Artifact), "digraph G {"))

	_, err = r.Execute(ctx, Options{GraphHash: strings.Repeat("0", 64)})
	assert.Equal(t, errors.ErrCodeNotFound, errors.GetCode(err))
}

func TestRunner_ExecuteUnsupportedFormat(t *testing.T) {
	r := NewRunner(nil, nil, nil, quietLogger())

	_, err := r.Execute(context.Background(), Options{Graph: aliceGraph(), Format: "text/turtle"})
	ue, ok := errors.IsUnsupportedFormat(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "text/turtle", ue.Format)
	assert.Contains(t, ue.Supported, "text/html")
}

func TestRunner_BrokenCacheStillRenders(t *testing.T) {
	r := NewRunner(brokenCache{}, nil, nil, quietLogger())

	res, err := r.Execute(context.Background(), Options{Graph: aliceGraph()})
	require.NoError(t, err)
	assert.False(t, res.CacheHit)
	assert.NotEmpty(t, res.Artifact)
}

func TestRunner_Defaults(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	assert.NotNil(t, r.Cache)
	assert.NotNil(t, r.Keyer)
	assert.NotNil(t, r.Logger)
	assert.NotNil(t, r.Registry)
	assert.NotNil(t, r.RawRegistry)
	assert.NoError(t, r.Close())
}
