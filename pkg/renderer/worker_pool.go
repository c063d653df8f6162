package renderer

import (
	"image"
	"runtime"
	"sync"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	TaskID int             // For deterministic ordering
	Bounds image.Rectangle // Pixel region to render
	Image  *image.RGBA     // Shared output image; tiles never overlap
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool manages parallel tile rendering. The raytracer and its
// scene are read-only during rendering, so every worker shares them;
// each in-flight ray gets its own stack-allocated hit record.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, numWorkers, maxTiles int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		stats := w.raytracer.RenderBounds(task.Bounds, task.Image)
		w.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}

// RenderParallel renders the full frame across a worker pool, splitting
// it into tileSize x tileSize tiles. The result is identical to
// RenderPass; only the scheduling differs.
func (rt *Raytracer) RenderParallel(numWorkers, tileSize int) (*image.RGBA, RenderStats) {
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))

	tilesX := (rt.width + tileSize - 1) / tileSize
	tilesY := (rt.height + tileSize - 1) / tileSize
	numTiles := tilesX * tilesY

	pool := NewWorkerPool(rt, numWorkers, numTiles)
	rt.logf("rendering %dx%d across %d tiles with %d workers", rt.width, rt.height, numTiles, pool.numWorkers)
	pool.Start()

	taskID := 0
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			bounds := image.Rect(
				tx*tileSize, ty*tileSize,
				min((tx+1)*tileSize, rt.width),
				min((ty+1)*tileSize, rt.height),
			)
			pool.SubmitTask(TileTask{TaskID: taskID, Bounds: bounds, Image: img})
			taskID++
		}
	}

	var stats RenderStats
	for i := 0; i < numTiles; i++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Merge(result.Stats)
		if done := i + 1; done%50 == 0 || done == numTiles {
			rt.logf("completed %d/%d tiles", done, numTiles)
		}
	}
	pool.Stop()

	return img, stats
}
