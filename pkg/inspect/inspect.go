// Package inspect serves the resolved state of a built scene over HTTP as
// JSON, for tooling that wants to look at a live layout.
//
// Endpoints:
//
//	GET /tree          every element in draw order
//	GET /hit?x=..&y=.. the element that receives a pointer event at (x, y)
//	GET /health        {"status":"ok"}
package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-drift/anchor/pkg/geometry"
	"github.com/go-drift/anchor/pkg/scene"
)

// Server exposes one scene.Tree. The tree can be swapped while serving; the
// engine itself is single-threaded, so every request runs under mu.
type Server struct {
	mu   sync.Mutex
	tree *scene.Tree

	server   *http.Server
	listener net.Listener
}

// New creates a Server with no tree.
func New() *Server {
	return &Server{}
}

// SetTree replaces the served tree.
func (s *Server) SetTree(tree *scene.Tree) {
	s.mu.Lock()
	s.tree = tree
	s.mu.Unlock()
}

// SafeFloat wraps a float64 to handle Inf/NaN in JSON encoding. Scene files
// may declare infinite sizes.
type SafeFloat float64

func (f SafeFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(v, -1) {
		return []byte(`"-Infinity"`), nil
	}
	if math.IsNaN(v) {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

// SafeRect is a JSON-safe version of geometry.Rect.
type SafeRect struct {
	X SafeFloat `json:"x"`
	Y SafeFloat `json:"y"`
	W SafeFloat `json:"w"`
	H SafeFloat `json:"h"`
}

func safeRect(r geometry.Rect) SafeRect {
	return SafeRect{X: SafeFloat(r.X), Y: SafeFloat(r.Y), W: SafeFloat(r.W), H: SafeFloat(r.H)}
}

// Node is the serialized form of one element.
type Node struct {
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Depth       int       `json:"depth"`
	RenderIndex uint64    `json:"renderIndex"`
	Bounds      SafeRect  `json:"bounds"`
	Clip        *SafeRect `json:"clip,omitempty"` // nil when unbounded
	Visible     bool      `json:"visible"`
	Solid       bool      `json:"solid,omitempty"`
	Focused     bool      `json:"focused,omitempty"`
}

// Nodes serializes the entries of a tree.
func Nodes(tree *scene.Tree) []Node {
	entries := tree.Entries()
	nodes := make([]Node, len(entries))
	for i, e := range entries {
		nodes[i] = Node{
			Name:        e.Name,
			Kind:        e.Kind,
			Depth:       e.Depth,
			RenderIndex: e.RenderIndex,
			Bounds:      safeRect(e.Bounds),
			Visible:     e.Visible,
			Solid:       e.Solid,
			Focused:     e.Focused,
		}
		if e.Clip != geometry.Unbounded() {
			clip := safeRect(e.Clip)
			nodes[i].Clip = &clip
		}
	}
	return nodes
}

// Handler returns the HTTP handler serving the endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tree", s.handleTree)
	mux.HandleFunc("/hit", s.handleHit)
	mux.HandleFunc("/health", handleHealth)
	return mux
}

// Start listens on addr (":0" picks a free port) and serves in the
// background. It returns the bound address.
func (s *Server) Start(addr string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().String(), nil
	}

	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("inspect server listen: %w", err)
	}
	server := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
		}
	}()

	return listener.Addr().String(), nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	tree := s.tree
	if tree == nil {
		s.mu.Unlock()
		http.Error(w, "no tree", http.StatusServiceUnavailable)
		return
	}
	nodes := Nodes(tree)
	s.mu.Unlock()

	writeJSON(w, nodes)
}

func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		http.Error(w, "x and y must be numbers", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	tree := s.tree
	if tree == nil {
		s.mu.Unlock()
		http.Error(w, "no tree", http.StatusServiceUnavailable)
		return
	}
	name := tree.Hit(geometry.Offset{X: x, Y: y})
	s.mu.Unlock()

	writeJSON(w, struct {
		X    SafeFloat `json:"x"`
		Y    SafeFloat `json:"y"`
		Name string    `json:"name,omitempty"`
	}{SafeFloat(x), SafeFloat(y), name})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// writeJSON encodes to a buffer first so encode errors become a 500.
func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
