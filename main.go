package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dcross/go-femvis/pkg/loaders"
	"github.com/dcross/go-femvis/pkg/renderer"
	"github.com/dcross/go-femvis/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "hexgrid", "Scene type: 'hexgrid', 'wedges', 'tets' or 'constant'")
	meshFile := flag.String("mesh", "", "Render a mesh file instead of a built-in scene")
	cells := flag.Int("cells", 6, "Grid resolution of the built-in scenes")
	width := flag.Int("width", 800, "Image width")
	height := flag.Int("height", 450, "Image height")
	workers := flag.Int("workers", 0, "Number of render workers (0 = all CPUs)")
	tileSize := flag.Int("tile", 64, "Render tile size in pixels")
	output := flag.String("out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	verbose := flag.Bool("verbose", false, "Log render progress")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Finite-element mesh raytracer")
		fmt.Println("Usage: femvis [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  hexgrid  - structured grid of 8-node hexahedra, nodal field")
		fmt.Println("  wedges   - grid cells split into 6-node wedges, nodal field")
		fmt.Println("  tets     - grid cells split into 4-node tetrahedra, nodal field")
		fmt.Println("  constant - hex grid with one field value per element")
		return
	}

	selectedScene, err := buildScene(*sceneType, *meshFile, *cells)
	if err != nil {
		fmt.Printf("Error building scene: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scene %q: %d %s elements, %d surface triangles\n",
		selectedScene.Name,
		selectedScene.Snapshot.NumElements(),
		selectedScene.Snapshot.Kind(),
		selectedScene.Snapshot.NumTriangles())

	if err := selectedScene.Preprocess(); err != nil {
		fmt.Printf("Error preprocessing scene: %v\n", err)
		os.Exit(1)
	}

	raytracer := renderer.NewRaytracer(selectedScene, *width, *height)
	if *verbose {
		raytracer.SetLogger(log.New(os.Stderr, "", log.LstdFlags))
	}

	startTime := time.Now()
	img, stats := raytracer.RenderParallel(*workers, *tileSize)
	fmt.Printf("Rendered %dx%d in %v (%.1f%% mesh coverage, %d mesh-line pixels)\n",
		*width, *height, time.Since(startTime),
		stats.HitFraction()*100, stats.LinePixels)

	outPath := *output
	if outPath == "" {
		outputDir := filepath.Join("output", selectedScene.Name)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			fmt.Printf("Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		outPath = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	}

	if err := savePNG(img, outPath); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %s\n", outPath)
}

// buildScene constructs the requested built-in scene, or loads a mesh
// file when one is given
func buildScene(sceneType, meshFile string, cells int) (*scene.Scene, error) {
	if meshFile != "" {
		snap, err := loaders.LoadMesh(meshFile)
		if err != nil {
			return nil, err
		}
		name := filepath.Base(meshFile)
		return scene.NewScene(name[:len(name)-len(filepath.Ext(name))], snap), nil
	}

	if cells < 1 {
		return nil, fmt.Errorf("cells must be positive, got %d", cells)
	}

	switch sceneType {
	case "hexgrid":
		return scene.NewHexGridScene(cells, cells, cells)
	case "wedges":
		return scene.NewWedgeColumnScene(cells, cells, cells)
	case "tets":
		return scene.NewTetBlockScene(cells, cells, cells)
	case "constant":
		return scene.NewConstantScene(cells, cells, cells)
	default:
		return nil, fmt.Errorf("unknown scene type %q", sceneType)
	}
}

func savePNG(img *image.RGBA, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
