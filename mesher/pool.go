package mesher

import (
	"context"
	"runtime"
	"sync"
)

// MeshAll meshes independent faces on a bounded pool of workers.
//
// Each face gets its own Triangulator; nothing mutable is shared, so faces
// run fully in parallel. workers <= 0 means runtime.GOMAXPROCS(0). Results
// come back in input order. A failing face does not stop the others; once
// ctx is done, faces that pass validation report ErrCancelled.
func MeshAll(ctx context.Context, faces []Face, workers int, opts ...Option) []FaceResult {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(faces) {
		workers = len(faces)
	}
	out := make([]FaceResult, len(faces))
	opts = append(opts[:len(opts):len(opts)], WithContext(ctx))

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := Mesh(faces[i], opts...)
				out[i] = FaceResult{Index: i, Result: res, Err: err}
			}
		}()
	}
	for i := range faces {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}
