package render

import (
	"cmp"
	"io"
	"mime"
	"slices"
	"strconv"
	"strings"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/factsmission/tlds/pkg/errors"
	"github.com/factsmission/tlds/pkg/rdf"
)

// Provider serializes graphs into one or more media types.
//
// Serialize receives the normalized media type (lower-case, no parameters)
// and must reject any type not listed by SupportedFormats.
type Provider interface {
	Serialize(w io.Writer, g rdf.Graph, format string) error
	SupportedFormats() []string
}

// Registry dispatches serialization by media type. It is safe for concurrent
// use; registration is expected at startup but is not required to be.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	// formats maps each media type to its provider in registration order.
	formats *orderedmap.OrderedMap[string, Provider]
}

// NewRegistry creates a registry holding the given providers.
// When two providers claim the same format the first one wins.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{formats: orderedmap.New[string, Provider]()}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds p for each of its formats not already claimed.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers = append(r.providers, p)
	for _, f := range p.SupportedFormats() {
		mt, err := errors.NormalizeMediaType(f)
		if err != nil {
			continue
		}
		if _, ok := r.formats.Get(mt); ok {
			continue
		}
		r.formats.Set(mt, p)
	}
}

// Formats returns all registered media types, sorted.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, r.formats.Len())
	for pair := r.formats.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	slices.Sort(out)
	return out
}

// Lookup returns the provider for format. Parameters and case in format are
// ignored.
func (r *Registry) Lookup(format string) (Provider, bool) {
	mt, err := errors.NormalizeMediaType(format)
	if err != nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.formats.Get(mt)
}

// Serialize writes g to w in format using the matching provider.
// Unknown formats fail with [errors.UnsupportedFormatError] listing the
// registered types; nothing is written in that case.
func (r *Registry) Serialize(w io.Writer, g rdf.Graph, format string) error {
	mt, err := errors.NormalizeMediaType(format)
	if err != nil {
		return errors.NewUnsupportedFormat(format, r.Formats()...)
	}
	r.mu.RLock()
	p, ok := r.formats.Get(mt)
	r.mu.RUnlock()
	if !ok {
		return errors.NewUnsupportedFormat(format, r.Formats()...)
	}
	return p.Serialize(w, g, mt)
}

type acceptRange struct {
	mediaType string
	q         float64
	pos       int
}

// Negotiate picks a registered media type for an HTTP Accept header.
//
// Ranges are tried by descending q-value, ties keeping header order.
// "*/*" and "type/*" match the earliest registered type that fits.
// Ranges with q=0 are ignored. An empty header selects the first registered
// type. The second result is false when nothing matches.
func (r *Registry) Negotiate(accept string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	first := r.formats.Oldest()
	if first == nil {
		return "", false
	}
	if strings.TrimSpace(accept) == "" {
		return first.Key, true
	}

	var ranges []acceptRange
	for i, part := range strings.Split(accept, ",") {
		mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if v, ok := params["q"]; ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				q = f
			}
		}
		if q <= 0 {
			continue
		}
		ranges = append(ranges, acceptRange{mediaType: mt, q: q, pos: i})
	}
	slices.SortStableFunc(ranges, func(a, b acceptRange) int {
		return cmp.Compare(b.q, a.q)
	})

	for _, ar := range ranges {
		if mt, ok := r.match(ar.mediaType); ok {
			return mt, true
		}
	}
	return "", false
}

func (r *Registry) match(mediaRange string) (string, bool) {
	if mediaRange == "*/*" {
		return r.formats.Oldest().Key, true
	}
	if prefix, ok := strings.CutSuffix(mediaRange, "/*"); ok {
		for pair := r.formats.Oldest(); pair != nil; pair = pair.Next() {
			if strings.HasPrefix(pair.Key, prefix+"/") {
				return pair.Key, true
			}
		}
		return "", false
	}
	if _, ok := r.formats.Get(mediaRange); ok {
		return mediaRange, true
	}
	return "", false
}

// Describe returns a graph advertising the registered renderers of base.
// Each provider becomes a blank node linked from base by
// [rdf.TLDSRenderers] and carrying one [rdf.DCFormat] literal per format it
// serves.
func (r *Registry) Describe(base rdf.IRI) *rdf.MemGraph {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g := rdf.NewGraph()
	for _, p := range r.providers {
		node := rdf.NewBlankNode()
		var served bool
		for _, f := range p.SupportedFormats() {
			mt, err := errors.NormalizeMediaType(f)
			if err != nil {
				continue
			}
			if owner, _ := r.formats.Get(mt); owner != p {
				continue
			}
			served = true
			_ = g.Add(rdf.Triple{Subject: node, Predicate: rdf.DCFormat, Object: rdf.NewLiteral(mt, rdf.XSDString)})
		}
		if served {
			_ = g.Add(rdf.Triple{Subject: base, Predicate: rdf.TLDSRenderers, Object: node})
		}
	}
	return g
}
