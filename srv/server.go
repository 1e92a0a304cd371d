// Package srv exposes profilers over HTTP: create a profiler, feed it
// documents, finalize it, read the schema back as JSON or OpenAPI.
package srv

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/negroni"

	"github.com/siegeai/schemascope/infer"
	"github.com/siegeai/schemascope/profile"
	"github.com/siegeai/schemascope/schemastat"
)

type Server struct {
	mu        sync.Mutex
	profilers map[uuid.UUID]*profile.Profiler
	router    *mux.Router
}

func NewServer() *Server {
	s := &Server{profilers: make(map[uuid.UUID]*profile.Profiler)}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/profiles", s.createProfile).Methods("POST")
	router.HandleFunc("/profiles/{id}/documents", s.observeDocument).Methods("POST")
	router.HandleFunc("/profiles/{id}/finalize", s.finalizeProfile).Methods("POST")
	router.HandleFunc("/profiles/{id}/schema", s.getSchema).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.Use(logMiddleware)

	s.router = router
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := negroni.NewResponseWriter(w)
		next.ServeHTTP(ww, r)
		slog.Info("handled", "method", r.Method, "uri", r.RequestURI, "status", ww.Status())
	})
}

func (s *Server) lookup(r *http.Request) (*profile.Profiler, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profilers[id]
	return p, ok
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	p := profile.New()

	s.mu.Lock()
	s.profilers[p.ID] = p
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]string{"id": p.ID.String()}); err != nil {
		slog.Warn("could not write response", "err", err)
	}
}

func (s *Server) observeDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(r)
	if !ok {
		http.Error(w, "no such profile", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "could not read body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err = p.ObserveJSON(body)
	count := p.Count()
	s.mu.Unlock()

	if errors.Is(err, schemastat.ErrFinalized) {
		http.Error(w, "profile is finalized", http.StatusConflict)
		return
	}

	var mismatch *schemastat.TypeMismatchError
	switch {
	case err == nil:
		writeJSON(w, map[string]any{"count": count})
	case errors.As(err, &mismatch):
		// the document was folded in minus the conflicting fields
		writeJSON(w, map[string]any{"count": count, "warning": err.Error()})
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func (s *Server) finalizeProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(r)
	if !ok {
		http.Error(w, "no such profile", http.StatusNotFound)
		return
	}

	s.mu.Lock()
	schema := p.Finalize()
	s.mu.Unlock()

	writeJSON(w, schema)
}

func (s *Server) getSchema(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(r)
	if !ok {
		http.Error(w, "no such profile", http.StatusNotFound)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	schema := p.Schema()
	if !schema.Finalized() {
		http.Error(w, "profile is not finalized", http.StatusConflict)
		return
	}

	if r.URL.Query().Get("format") == "openapi" {
		writeJSON(w, infer.OpenAPISchema(schema))
		return
	}
	writeJSON(w, schema)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("could not write response", "err", err)
	}
}
