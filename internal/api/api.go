// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package api serves an strtree.Index of planar geometries over HTTP.
//
// Geometries are passed as WKT. Single-geometry operations take a geom
// query parameter; batch operations take a JSON body. Batch responses
// are JSON unless the request accepts application/x-flatbuffers, in
// which case they are encoded with pairbuf.
package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gogama/strtree"
	"github.com/gogama/strtree/internal/cache"
	"github.com/gogama/strtree/internal/metrics"
	"github.com/gogama/strtree/internal/pairbuf"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
)

const maxBodyBytes = 32 << 20

// Server holds the index and its collaborators.
type Server struct {
	ix      *strtree.Index[orb.Geometry]
	dataset string
	cache   *cache.Cache
	logger  *slog.Logger
}

// New returns a Server over ix. c may be nil to disable caching.
func New(ix *strtree.Index[orb.Geometry], c *cache.Cache, logger *slog.Logger) *Server {
	s := &Server{ix: ix, cache: c, logger: logger}
	if c != nil {
		s.dataset = Fingerprint(ix.Geometries())
	}
	return s
}

// Fingerprint identifies a geometry sequence by hashing the WKB of each
// geometry in order. Cache keys include it, so responses cached for one
// dataset are never served for another.
func Fingerprint(geoms []orb.Geometry) string {
	h := sha256.New()
	var buf bytes.Buffer
	e := wkb.NewEncoder(&buf)
	var n [8]byte
	for _, g := range geoms {
		buf.Reset()
		// Writes to a bytes.Buffer do not fail.
		_ = e.Encode(g)
		binary.LittleEndian.PutUint64(n[:], uint64(buf.Len()))
		h.Write(n[:])
		h.Write(buf.Bytes())
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Routes returns the API routes.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/query", s.instrument("query", s.query))
	mux.Handle("/nearest", s.instrument("nearest", s.nearest))
	mux.Handle("/nearest_all", s.instrument("nearest_all", s.nearestAll))
	mux.Handle("/stats", s.instrument("stats", s.stats))
	return mux
}

// handlerFunc writes a successful response or returns an error for
// instrument to report.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) instrument(op string, h handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		if err := h(sw, r); err != nil {
			code := statusOf(err)
			if code == http.StatusInternalServerError {
				s.logger.Error("request_error", "op", op, "err", err)
			}
			writeJSON(sw, code, errorResult{Error: err.Error()})
		}
		metrics.RequestsTotal.WithLabelValues(op, strconv.Itoa(sw.status)).Inc()
		metrics.RequestDurationMs.WithLabelValues(op).Observe(float64(time.Since(start).Microseconds()) / 1000)
	})
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) error {
	switch r.Method {
	case http.MethodGet:
		return s.queryOne(w, r)
	case http.MethodPost:
		var req bulkRequest
		if err := decodeBody(r, &req); err != nil {
			return err
		}
		gs, err := parseGeometries(req.Geoms)
		if err != nil {
			return err
		}
		p, err := strtree.ParsePredicate(req.Predicate)
		if err != nil {
			return err
		}
		var opts []strtree.QueryOption
		if req.Distance != nil {
			opts = append(opts, strtree.WithDistances(req.Distance))
		}
		pairs, err := s.ix.QueryBulk(gs, p, opts...)
		if err != nil {
			return err
		}
		metrics.ResultPairs.WithLabelValues("query").Observe(float64(pairs.Len()))
		return writePairs(w, r, pairs)
	default:
		return methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) queryOne(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	key := cache.Key("query", s.dataset, q.Get("geom"), q.Get("predicate"), q.Get("distance"))
	if b, ok := s.cache.Get(r.Context(), key); ok {
		w.Header().Set("X-Cache", "hit")
		writeBody(w, http.StatusOK, b)
		return nil
	}

	g, err := parseGeometry(q.Get("geom"))
	if err != nil {
		return err
	}
	p, err := strtree.ParsePredicate(q.Get("predicate"))
	if err != nil {
		return err
	}
	var opts []strtree.QueryOption
	if d := q.Get("distance"); d != "" {
		f, err := parseFloat("distance", d)
		if err != nil {
			return err
		}
		opts = append(opts, strtree.WithDistance(f))
	}
	tree, err := s.ix.Query(g, p, opts...)
	if err != nil {
		return err
	}
	if tree == nil {
		tree = []int{}
	}
	metrics.ResultPairs.WithLabelValues("query").Observe(float64(len(tree)))

	b, err := json.Marshal(treeResult{Tree: tree})
	if err != nil {
		return err
	}
	s.cache.Set(r.Context(), key, b)
	writeBody(w, http.StatusOK, b)
	return nil
}

func (s *Server) nearest(w http.ResponseWriter, r *http.Request) error {
	switch r.Method {
	case http.MethodGet:
		g, err := parseGeometry(r.URL.Query().Get("geom"))
		if err != nil {
			return err
		}
		i, ok, err := s.ix.Nearest(g)
		if err != nil {
			return err
		}
		res := nearestResult{}
		if ok {
			res.Tree = &i
		}
		writeJSON(w, http.StatusOK, res)
		return nil
	case http.MethodPost:
		var req bulkRequest
		if err := decodeBody(r, &req); err != nil {
			return err
		}
		gs, err := parseGeometries(req.Geoms)
		if err != nil {
			return err
		}
		tree, err := s.ix.NearestBulk(gs)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, nearestBulkResult{Tree: tree})
		return nil
	default:
		return methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) nearestAll(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return methodNotAllowed(w, http.MethodPost)
	}
	var req bulkRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	gs, err := parseGeometries(req.Geoms)
	if err != nil {
		return err
	}
	opts := []strtree.NearestOption{strtree.ReturnDistance()}
	if req.MaxDistance != nil {
		opts = append(opts, strtree.MaxDistance(*req.MaxDistance))
	}
	pairs, err := s.ix.NearestAll(gs, opts...)
	if err != nil {
		return err
	}
	metrics.ResultPairs.WithLabelValues("nearest_all").Observe(float64(pairs.Len()))
	return writePairs(w, r, pairs)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return methodNotAllowed(w, http.MethodGet)
	}
	res := statsResult{
		Count:        s.ix.Len(),
		NodeCapacity: s.ix.NodeCapacity(),
		Height:       s.ix.Tree().Height(),
	}
	if res.Count > 0 {
		b := s.ix.Bounds()
		res.Bounds = &[4]float64{b.XMin, b.YMin, b.XMax, b.YMax}
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return nil
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) error {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeJSON(w, http.StatusMethodNotAllowed, errorResult{Error: "method not allowed"})
	return nil
}

func acceptsPairbuf(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), pairbuf.ContentType)
}

func writePairs(w http.ResponseWriter, r *http.Request, p strtree.Pairs) error {
	if acceptsPairbuf(r) {
		var buf bytes.Buffer
		if _, err := pairbuf.Write(&buf, p); err != nil {
			return err
		}
		w.Header().Set("Content-Type", pairbuf.ContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
		return nil
	}
	res := pairsResult{Query: p.Query, Tree: p.Tree, Distance: p.Distance}
	if res.Query == nil {
		res.Query, res.Tree = []int{}, []int{}
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		code = http.StatusInternalServerError
		b, _ = json.Marshal(errorResult{Error: err.Error()})
	}
	writeBody(w, code, b)
}

func writeBody(w http.ResponseWriter, code int, b []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_, _ = w.Write(b)
	_, _ = w.Write([]byte{'\n'})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
