package renderer

// RenderStats contains statistics about a rendered region
type RenderStats struct {
	TotalPixels int // Number of pixels rendered
	HitPixels   int // Pixels whose primary ray struck the mesh
	LinePixels  int // Pixels classified as mesh lines
}

// Merge accumulates another region's statistics into this one
func (rs *RenderStats) Merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.HitPixels += other.HitPixels
	rs.LinePixels += other.LinePixels
}

// HitFraction returns the fraction of pixels that struck the mesh
func (rs RenderStats) HitFraction() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.HitPixels) / float64(rs.TotalPixels)
}
