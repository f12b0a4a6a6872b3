package server

import (
	"encoding/json"
	stdErrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/factsmission/tlds/pkg/buildinfo"
	"github.com/factsmission/tlds/pkg/errors"
	tldsio "github.com/factsmission/tlds/pkg/io"
	"github.com/factsmission/tlds/pkg/observability"
	"github.com/factsmission/tlds/pkg/pipeline"
	"github.com/factsmission/tlds/pkg/rdf"
)

// Response headers set on every rendered artifact.
const (
	HeaderGraphHash = "X-Graph-Hash"
	HeaderCache     = "X-Cache"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Supported []string `json:"supported,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleRenderers renders the registry description in the negotiated format,
// so clients can discover formats the same way they fetch any other graph.
func (s *Server) handleRenderers(w http.ResponseWriter, r *http.Request) {
	format, ok := s.negotiate(w, r)
	if !ok {
		return
	}
	g := s.runner.Registry.Describe(rdf.IRI(baseURL(r) + r.URL.Path))
	s.execute(w, r, pipeline.Options{Graph: g, Format: format})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, ok := s.negotiate(w, r)
	if !ok {
		return
	}

	read, ok := documentReader(r.Header.Get("Content-Type"))
	if !ok {
		s.writeError(w, http.StatusUnsupportedMediaType, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported request content type %q (use application/json or application/yaml)",
			r.Header.Get("Content-Type")))
		return
	}

	start := time.Now()
	g, err := read(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	n := 0
	if g != nil {
		n = g.Len()
	}
	observability.Render().OnLoadComplete(r.Context(), "http", n, time.Since(start), err)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stdErrors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, errors.Wrap(errors.ErrCodeInvalidInput, err,
				"request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.fail(w, err)
		return
	}

	s.execute(w, r, pipeline.Options{Graph: g, Format: format})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	format, ok := s.negotiate(w, r)
	if !ok {
		return
	}
	s.execute(w, r, pipeline.Options{GraphHash: chi.URLParam(r, "hash"), Format: format})
}

// execute fills in request-level options and writes the artifact.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	q := r.URL.Query()
	opts.Raw = s.opts.Raw
	if v := q.Get("raw"); v != "" {
		raw, err := strconv.ParseBool(v)
		if err != nil {
			s.fail(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid raw parameter %q", v))
			return
		}
		opts.Raw = raw
	}
	opts.Refresh = q.Has("refresh")
	opts.TTL = s.opts.TTL

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, err)
		return
	}

	contentType := res.Format
	if strings.HasPrefix(contentType, "text/") {
		contentType += "; charset=utf-8"
	}
	cacheState := "miss"
	if res.CacheHit {
		cacheState = "hit"
	}
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(res.Artifact)))
	h.Set("Vary", "Accept")
	h.Set(HeaderGraphHash, res.GraphHash)
	h.Set(HeaderCache, cacheState)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Artifact); err != nil {
		s.logger.Debug("write response", "err", err)
	}
}

// negotiate resolves the output format from the "format" query parameter or
// the Accept header. It writes a 406 and returns false when nothing matches.
func (s *Server) negotiate(w http.ResponseWriter, r *http.Request) (string, bool) {
	if f := r.URL.Query().Get("format"); f != "" {
		mt, err := errors.NormalizeMediaType(f)
		if err != nil {
			s.fail(w, err)
			return "", false
		}
		return mt, true
	}
	accept := r.Header.Get("Accept")
	if strings.TrimSpace(accept) == "" && s.opts.DefaultFormat != "" {
		accept = s.opts.DefaultFormat
	}
	if mt, ok := s.runner.Registry.Negotiate(accept); ok {
		return mt, true
	}
	s.fail(w, errors.NewUnsupportedFormat(accept, s.runner.Registry.Formats()...))
	return "", false
}

// fail maps err to a status code and writes it.
func (s *Server) fail(w http.ResponseWriter, err error) {
	s.writeError(w, statusFor(err), err)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "err", err)
	}
	detail := errorDetail{Code: string(errors.GetCode(err)), Message: err.Error()}
	if uf, ok := errors.IsUnsupportedFormat(err); ok {
		detail.Supported = uf.Supported
	}
	writeJSON(w, status, errorBody{Error: detail})
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidIRI, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupportedFormat:
		return http.StatusNotAcceptable
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// documentReader picks a graph decoder for a request Content-Type. An absent
// header is treated as JSON.
func documentReader(contentType string) (func(io.Reader) (*rdf.MemGraph, error), bool) {
	if contentType == "" {
		return tldsio.ReadJSON, true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, false
	}
	switch mt {
	case "application/json":
		return tldsio.ReadJSON, true
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return tldsio.ReadYAML, true
	default:
		return nil, false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// baseURL reconstructs scheme and host of the request as seen by the client.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host
}
