package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/dcross/go-femvis/pkg/core"
	"github.com/dcross/go-femvis/pkg/geometry"
	"github.com/dcross/go-femvis/pkg/sampler"
	"github.com/dcross/go-femvis/pkg/scene"
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	TopColor    core.Vec3 // Background gradient top
	BottomColor core.Vec3 // Background gradient bottom
	LineShade   float64   // Darkening factor applied to mesh-line pixels
	Gamma       float64   // Output gamma
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TopColor:    core.NewVec3(0.55, 0.70, 0.90),
		BottomColor: core.NewVec3(0.95, 0.95, 0.98),
		LineShade:   0.25,
		Gamma:       2.0,
	}
}

// Raytracer renders a scene by casting one primary ray per pixel,
// resolving the nearest surface triangle via the BVH and handing the hit
// to the scene's field sampler. It holds no mutable state across calls,
// so one instance can serve every worker concurrently.
type Raytracer struct {
	scene  *scene.Scene
	camera *geometry.Camera
	width  int
	height int
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a raytracer for a preprocessed scene
func NewRaytracer(s *scene.Scene, width, height int) *Raytracer {
	cfg := s.CameraConfig
	cfg.AspectRatio = float64(width) / float64(height)

	return &Raytracer{
		scene:  s,
		camera: geometry.NewCamera(cfg),
		width:  width,
		height: height,
		config: DefaultRenderConfig(),
	}
}

// SetRenderConfig updates the rendering configuration
func (rt *Raytracer) SetRenderConfig(config RenderConfig) {
	rt.config = config
}

// SetLogger sets a logger for render progress output. Nil disables it.
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// logf logs progress if a logger is configured
func (rt *Raytracer) logf(format string, args ...interface{}) {
	if rt.logger != nil {
		rt.logger.Printf(format, args...)
	}
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return rt.config.BottomColor.Lerp(rt.config.TopColor, t)
}

// rayColor casts one primary ray and returns the pixel color plus what
// the hit produced, for statistics.
func (rt *Raytracer) rayColor(ray core.Ray) (core.Vec3, sampler.Boundary, bool) {
	var isect geometry.Intersection
	if !rt.scene.BVH.Hit(ray, 0.001, math.MaxFloat64, &isect) {
		return rt.backgroundGradient(ray), sampler.BoundaryUnset, false
	}

	hit := sampler.RayHit{
		TriangleID: isect.TriangleID,
		U:          isect.U,
		V:          isect.V,
	}
	rt.scene.Sampler(rt.scene.Snapshot, &hit)

	span := rt.scene.FieldMax - rt.scene.FieldMin
	normalized := (hit.FieldValue - rt.scene.FieldMin) / span
	pixel := coolwarm(normalized)

	// Cheap head-on shading so element faces read as 3D
	facing := math.Abs(isect.Normal.Dot(ray.Direction.Normalize()))
	pixel = pixel.Multiply(0.45 + 0.55*facing)

	if hit.NearBoundary == sampler.BoundaryNear {
		pixel = pixel.Multiply(rt.config.LineShade)
	}

	return pixel, hit.NearBoundary, true
}

// RenderBounds renders the pixels inside bounds into img. Bounds handed
// to concurrent callers must not overlap; pixel writes are the only
// mutation.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, img *image.RGBA) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			s := (float64(i) + 0.5) / float64(rt.width)
			t := (float64(rt.height-1-j) + 0.5) / float64(rt.height)

			pixel, boundary, isHit := rt.rayColor(rt.camera.GetRay(s, t))
			if isHit {
				stats.HitPixels++
			}
			if boundary == sampler.BoundaryNear {
				stats.LinePixels++
			}

			img.SetRGBA(i, j, rt.vec3ToColor(pixel))
		}
	}

	return stats
}

// RenderPass renders the full frame serially and returns the image
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	stats := rt.RenderBounds(img.Bounds(), img)
	return img, stats
}

// vec3ToColor converts a Vec3 color to RGBA with clamping and gamma correction
func (rt *Raytracer) vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(rt.config.Gamma)
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// coolwarm maps a normalized field value to a blue-white-red ramp.
// Values outside [0,1] clamp to the ramp ends.
func coolwarm(t float64) core.Vec3 {
	t = max(0, min(1, t))

	cool := core.NewVec3(0.23, 0.30, 0.75)
	white := core.NewVec3(0.86, 0.86, 0.86)
	warm := core.NewVec3(0.70, 0.02, 0.15)

	if t < 0.5 {
		return cool.Lerp(white, t*2)
	}
	return white.Lerp(warm, (t-0.5)*2)
}
