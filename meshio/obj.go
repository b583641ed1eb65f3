package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/katalvlaran/lvmesh/delaun"
)

// WriteOBJ writes res as a Wavefront OBJ mesh. Only vertices used by a
// triangle are written; OBJ indices are 1-based.
func WriteOBJ(w io.Writer, res *delaun.Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# lvmesh: %d vertices, %d triangles\n", len(res.UsedVertices()), len(res.Triangles))

	coords, indices := res.Flatten()
	for i := 0; i < len(coords); i += 2 {
		fmt.Fprintf(bw, "v %s %s 0\n", ftoa(coords[i]), ftoa(coords[i+1]))
	}
	for i := 0; i < len(indices); i += 3 {
		fmt.Fprintf(bw, "f %d %d %d\n", indices[i]+1, indices[i+1]+1, indices[i+2]+1)
	}

	// Constraint endpoints are triangle vertices, so they are in the
	// compacted list; rebuild the same numbering.
	remap := make(map[int]int, len(coords)/2)
	for i, v := range res.UsedVertices() {
		remap[v] = i + 1
	}
	for _, c := range res.Constraints {
		a, okA := remap[c[0]]
		b, okB := remap[c[1]]
		if okA && okB {
			fmt.Fprintf(bw, "l %d %d\n", a, b)
		}
	}
	return errors.Wrap(bw.Flush(), "meshio: write obj")
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
