package server

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strconv"
	"testing"

	"github.com/google/uuid"
)

func doRequest(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	decodeJSON(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body struct {
		Scenes []struct {
			ID     string `json:"id"`
			Shapes int    `json:"shapes"`
		} `json:"scenes"`
		Cameras []string `json:"cameras"`
	}
	decodeJSON(t, rec, &body)

	ids := map[string]int{}
	for _, s := range body.Scenes {
		ids[s.ID] = s.Shapes
	}
	for _, id := range []string{"default", "sphere", "mirror", "empty"} {
		if _, ok := ids[id]; !ok {
			t.Errorf("Expected scene %q in listing", id)
		}
	}
	if ids["default"] != 6 {
		t.Errorf("Expected 6 shapes in the default scene, got %d", ids["default"])
	}
	if len(body.Cameras) != 2 {
		t.Errorf("Expected 2 cameras, got %v", body.Cameras)
	}
}

func TestHandleRender(t *testing.T) {
	s := NewServer(0)
	rec := doRequest(t, s, "/api/render?scene=sphere&width=9&height=9")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}

	renderID := rec.Header().Get("X-Render-ID")
	if _, err := uuid.Parse(renderID); err != nil {
		t.Errorf("Expected a UUID render ID, got %q", renderID)
	}
	if workers := rec.Header().Get("X-Render-Workers"); workers != strconv.Itoa(runtime.NumCPU()) {
		t.Errorf("Expected %d workers, got %q", runtime.NumCPU(), workers)
	}
	if rec.Header().Get("X-Render-Camera") != "orthographic" {
		t.Errorf("Expected orthographic camera, got %q", rec.Header().Get("X-Render-Camera"))
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Expected a PNG body: %v", err)
	}
	if img.Bounds().Dx() != 9 || img.Bounds().Dy() != 9 {
		t.Fatalf("Expected 9x9 image, got %v", img.Bounds())
	}
	r, g, b, _ := img.At(4, 4).RGBA()
	if r>>8 != 51 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("Expected center (51,0,0), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}

	// The render log is kept under the render ID
	console := doRequest(t, s, "/api/console?id="+renderID)
	if console.Code != http.StatusOK {
		t.Fatalf("Expected 200 from console, got %d", console.Code)
	}
	var body struct {
		RenderID string           `json:"renderId"`
		Messages []ConsoleMessage `json:"messages"`
	}
	decodeJSON(t, console, &body)
	if body.RenderID != renderID || len(body.Messages) == 0 {
		t.Errorf("Expected logged messages for %s, got %+v", renderID, body)
	}
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"unknown scene", "/api/render?scene=cornell", http.StatusBadRequest},
		{"unknown camera", "/api/render?camera=fisheye", http.StatusBadRequest},
		{"width too large", "/api/render?width=5000", http.StatusBadRequest},
		{"zero height", "/api/render?height=0", http.StatusBadRequest},
		{"bad depth", "/api/render?depth=abc", http.StatusBadRequest},
		{"reflect out of range", "/api/render?reflect=2", http.StatusBadRequest},
		{"bad shadows", "/api/render?shadows=maybe", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, NewServer(0), tt.target)
			if rec.Code != tt.status {
				t.Fatalf("Expected %d, got %d", tt.status, rec.Code)
			}
			var body map[string]string
			decodeJSON(t, rec, &body)
			if body["error"] == "" {
				t.Error("Expected an error message")
			}
		})
	}
}

func TestHandleConsole_Unknown(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/console?id=missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestStoreConsole_EvictsOldest(t *testing.T) {
	s := NewServer(0)
	for i := 0; i < maxConsoles+2; i++ {
		s.storeConsole(uuid.New().String(), nil)
	}
	if len(s.consoles) != maxConsoles || len(s.consoleOrder) != maxConsoles {
		t.Errorf("Expected %d stored renders, got %d / %d", maxConsoles, len(s.consoles), len(s.consoleOrder))
	}
}

func TestHandleInspect(t *testing.T) {
	s := NewServer(0)

	rec := doRequest(t, s, "/api/inspect?scene=mirror&width=9&height=9&x=4&y=4")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp InspectResponse
	decodeJSON(t, rec, &resp)
	if !resp.Hit {
		t.Fatal("Expected the center ray to hit the sphere")
	}
	if resp.GeometryType != "sphere" {
		t.Errorf("Expected sphere, got %s", resp.GeometryType)
	}
	if resp.Distance < 3.999 || resp.Distance > 4.001 {
		t.Errorf("Expected distance 4, got %f", resp.Distance)
	}
	if resp.Normal != [3]float64{0, 0, -1} {
		t.Errorf("Expected normal (0,0,-1), got %v", resp.Normal)
	}
	if resp.Color != [3]uint8{61, 7, 7} {
		t.Errorf("Expected color (61,7,7), got %v", resp.Color)
	}
	if resp.Reflections != 3 {
		t.Errorf("Expected 3 reflections, got %d", resp.Reflections)
	}

	mat, ok := resp.Properties["material"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected material properties, got %v", resp.Properties)
	}
	if mat["mirror"] != true || mat["color"] != "#ff0000" {
		t.Errorf("Unexpected material properties: %v", mat)
	}

	cam, ok := resp.Properties["camera"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected camera properties, got %v", resp.Properties)
	}
	backward, _ := cam["backward"].([]interface{})
	if cam["kind"] != "orthographic" || len(backward) != 3 ||
		backward[0] != 0.0 || backward[1] != 0.0 || backward[2] != -1.0 {
		t.Errorf("Expected orthographic camera looking down +z, got %v", cam)
	}
}

func TestHandleInspect_Miss(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/inspect?scene=sphere&width=9&height=9&x=0&y=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp InspectResponse
	decodeJSON(t, rec, &resp)
	if resp.Hit {
		t.Error("Expected the corner ray to miss")
	}
}

func TestHandleInspect_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"missing x", "/api/inspect?y=1", http.StatusBadRequest},
		{"bad y", "/api/inspect?x=1&y=top", http.StatusBadRequest},
		{"out of bounds", "/api/inspect?width=10&height=10&x=10&y=0", http.StatusBadRequest},
		{"unknown scene", "/api/inspect?scene=nope&x=0&y=0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, NewServer(0), tt.target)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}
