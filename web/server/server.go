package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Parameter limits for render and inspect requests
const (
	maxImageSize = 2000
	maxDepth     = 50
	maxConsoles  = 32 // Render logs kept for /api/console
)

// Server handles web requests for the Whitted raytracer
type Server struct {
	port int
	mux  *http.ServeMux

	mu           sync.Mutex
	consoles     map[string][]ConsoleMessage // Render logs by render ID
	consoleOrder []string                    // Render IDs, oldest first
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{
		port:     port,
		mux:      http.NewServeMux(),
		consoles: make(map[string][]ConsoleMessage),
	}

	// Serve static files
	s.mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/console", s.handleConsole)

	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render or inspect request from the client
type RenderRequest struct {
	Scene    string  `json:"scene"`    // Built-in scene name
	Camera   string  `json:"camera"`   // "orthographic" or "perspective"
	Width    int     `json:"width"`    // Image width
	Height   int     `json:"height"`   // Image height
	MaxDepth int     `json:"maxDepth"` // Maximum reflection depth
	Reflect  float64 `json:"reflect"`  // Weight of reflected color
	Shadows  bool    `json:"shadows"`  // Cast hard shadows
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scenes":  scene.ListScenes(),
		"cameras": []string{"orthographic", "perspective"},
	})
}

// handleConsole returns the log messages of a finished render
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	s.mu.Lock()
	messages, ok := s.consoles[id]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Unknown render: "+id)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"renderId": id,
		"messages": messages,
	})
}

// storeConsole keeps the messages of a render, dropping the oldest render when full
func (s *Server) storeConsole(id string, messages []ConsoleMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.consoleOrder) >= maxConsoles {
		oldest := s.consoleOrder[0]
		s.consoleOrder = s.consoleOrder[1:]
		delete(s.consoles, oldest)
	}
	s.consoles[id] = messages
	s.consoleOrder = append(s.consoleOrder, id)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()
	req := &RenderRequest{
		Scene:  "default",
		Camera: "orthographic",
	}

	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}
	if camera := values.Get("camera"); camera != "" {
		req.Camera = camera
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 512, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 512, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 3, 0, maxDepth); err != nil {
		return nil, err
	}
	if req.Reflect, err = parseFloatParam(values, "reflect", 0.2, 0, 1); err != nil {
		return nil, err
	}
	if req.Shadows, err = parseBoolParam(values, "shadows", false); err != nil {
		return nil, err
	}

	return req, nil
}

// createScene creates the requested scene sized to the request
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	kind, err := scene.ParseCamera(req.Camera)
	if err != nil {
		return nil, err
	}
	sceneObj, err := scene.NewScene(req.Scene, kind)
	if err != nil {
		return nil, err
	}

	sceneObj.Config.MaxDepth = req.MaxDepth
	sceneObj.Config.ReflectionWeight = req.Reflect
	sceneObj.Config.Shadows = req.Shadows
	sceneObj.SetSize(req.Width, req.Height)
	return sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
