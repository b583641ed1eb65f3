package meshio_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvmesh/mesher"
	"github.com/katalvlaran/lvmesh/meshio"
)

// ExampleReadPolygons meshes a square read from the text format.
func ExampleReadPolygons() {
	polys, err := meshio.ReadPolygons(strings.NewReader("0 0\n2 0\n2 2\n0 2\n"))
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := mesher.Mesh(meshio.FaceFromPolygons(polys))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("polygons=%d triangles=%d area=%.1f\n", len(polys), len(res.Triangles), res.Area())
	// Output: polygons=1 triangles=2 area=4.0
}
