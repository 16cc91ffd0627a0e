package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Color        [3]uint8               `json:"color"`       // Final pixel color
	Reflections  int                    `json:"reflections"` // Reflection rays traced for the pixel
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains the nearest hit of an inspection ray and the shaded pixel
type InspectResult struct {
	Hit       bool
	HitRecord geometry.HitRecord
	Shade     renderer.ShadeResult
}

// inspectPixel casts the primary ray of pixel (row, col) and reports the first object hit
func inspectPixel(sceneObj *scene.Scene, row, col int) InspectResult {
	raytracer := renderer.NewRaytracer(sceneObj)
	ray := sceneObj.GetCamera().GetRay(row, col)

	hit, isHit := raytracer.Tracer().ClosestHit(ray, 0, math.Inf(1))
	return InspectResult{
		Hit:       isHit,
		HitRecord: hit,
		Shade:     raytracer.TracePixel(row, col),
	}
}

// extractMaterialInfo lists the shading coefficients of a material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"color":     mat.Hex(),
		"rgb":       vecToArray(mat.Color.X, mat.Color.Y, mat.Color.Z),
		"ambient":   mat.Ambient,
		"diffuse":   mat.Diffuse,
		"specular":  mat.Specular,
		"shininess": mat.Shininess,
		"mirror":    mat.Mirror,
	}
}

// extractCameraInfo describes the camera that cast the inspection ray
func extractCameraInfo(camera geometry.Camera) map[string]interface{} {
	u, v, w := camera.Basis()
	return map[string]interface{}{
		"kind":     camera.Kind().String(),
		"right":    vecToArray(u.X, u.Y, u.Z),
		"up":       vecToArray(v.X, v.Y, v.Z),
		"backward": vecToArray(w.X, w.Y, w.Z),
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecToArray(geom.Center.X, geom.Center.Y, geom.Center.Z)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vecToArray(geom.Point.X, geom.Point.Y, geom.Point.Z)
		properties["normal"] = vecToArray(geom.Normal.X, geom.Normal.Y, geom.Normal.Z)
		return "plane", properties

	case *geometry.Triangle:
		properties["v0"] = vecToArray(geom.V0.X, geom.V0.Y, geom.V0.Z)
		properties["v1"] = vecToArray(geom.V1.X, geom.V1.Y, geom.V1.Z)
		properties["v2"] = vecToArray(geom.V2.X, geom.V2.Y, geom.V2.Z)
		n := geom.GetNormal()
		properties["normal"] = vecToArray(n.X, n.Y, n.Z)
		return "triangle", properties

	case nil:
		return "unknown", properties

	default:
		return shape.Kind(), properties
	}
}

func vecToArray(x, y, z float64) [3]float64 {
	return [3]float64{x, y, z}
}

// handleInspect handles ray casting inspection requests.
// x is the pixel column and y the pixel row, counted from the top left.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	col, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	row, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	if col < 0 || col >= req.Width || row < 0 || row >= req.Height {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Pixel coordinates out of bounds for %dx%d", req.Width, req.Height))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	result := inspectPixel(sceneObj, row, col)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Distance: -1})
		return
	}

	hit := result.HitRecord
	geometryType, geometryProps := extractGeometryInfo(hit.Shape)

	response := InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        vecToArray(hit.Point.X, hit.Point.Y, hit.Point.Z),
		Normal:       vecToArray(hit.Normal.X, hit.Normal.Y, hit.Normal.Z),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Color:        renderer.ColorToRGB(result.Shade.Color),
		Reflections:  result.Shade.Reflections,
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(hit.Material()),
			"geometry": geometryProps,
			"camera":   extractCameraInfo(sceneObj.GetCamera()),
		},
	}

	writeJSON(w, http.StatusOK, response)
}
