package server

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// handleRender renders the requested scene and responds with a PNG.
// The render ID in X-Render-ID looks up the render log at /api/console.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	renderID := uuid.New().String()
	consoleChan := make(chan ConsoleMessage, 64)
	logger := NewWebLogger(renderID, consoleChan)

	raytracer := renderer.NewRaytracer(sceneObj)
	raytracer.SetLogger(logger)
	pool := renderer.NewWorkerPool(raytracer, renderer.DefaultTileSize, 0)

	startTime := time.Now()
	buf := make([]byte, raytracer.BufferSize())
	stats, err := pool.Render(r.Context(), buf)
	s.storeConsole(renderID, drainConsole(consoleChan))
	if err != nil {
		log.Printf("[%s] Render error: %v", renderID, err)
		writeError(w, statusForError(err), fmt.Sprintf("Render error: %v", err))
		return
	}
	elapsed := time.Since(startTime)

	var encoded bytes.Buffer
	img := renderer.BufferToImage(buf, raytracer.Width(), raytracer.Height())
	if err := png.Encode(&encoded, img); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Render-ID", renderID)
	w.Header().Set("X-Render-Camera", sceneObj.CameraKind().String())
	w.Header().Set("X-Render-Workers", strconv.Itoa(pool.GetNumWorkers()))
	w.Header().Set("X-Render-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	w.Header().Set("X-Render-Reflection-Rays", strconv.Itoa(stats.ReflectionRays))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(encoded.Bytes()); err != nil {
		log.Printf("[%s] Error writing response: %v", renderID, err)
	}
}

// drainConsole collects the buffered messages of a finished render
func drainConsole(ch chan ConsoleMessage) []ConsoleMessage {
	messages := make([]ConsoleMessage, 0, len(ch))
	for {
		select {
		case msg := <-ch:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}

// statusForError maps scene and render errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, scene.ErrUnknownScene),
		errors.Is(err, scene.ErrUnknownCamera),
		errors.Is(err, renderer.ErrInvalidDimensions):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
