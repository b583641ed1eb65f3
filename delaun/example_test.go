package delaun_test

import (
	"fmt"

	"github.com/katalvlaran/lvmesh/delaun"
	"github.com/katalvlaran/lvmesh/geom"
)

// ExampleTriangulator meshes a square with a square hole.
func ExampleTriangulator() {
	pts := []geom.Point{
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10),
		geom.Pt(4, 4), geom.Pt(6, 4), geom.Pt(6, 6), geom.Pt(4, 6),
	}

	// 1) Seed around the input and insert every point.
	tr := delaun.New()
	if err := tr.Seed(geom.BoxOf(pts...)); err != nil {
		fmt.Println(err)
		return
	}
	v, _ := tr.InsertPoints(pts)

	// 2) Outer loop and hole loop as constraints.
	for _, loop := range [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}} {
		for i := range loop {
			if err := tr.InsertConstraint(v[loop[i]], v[loop[(i+1)%len(loop)]]); err != nil {
				fmt.Println(err)
				return
			}
		}
	}

	// 3) Finalize drops the outside and the hole.
	res, err := tr.Finalize()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("state=%s area=%.1f constraints=%d\n", tr.State(), res.Area(), len(res.Constraints))

	// Output:
	// state=Finalized area=96.0 constraints=8
}
