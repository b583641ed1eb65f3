package meshio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesher"
)

// ErrSyntax marks malformed input.
var ErrSyntax = errors.New("meshio: syntax error")

// ReadPolygons reads the plain text polygon format from r.
//
// Consecutive blank lines count as one separator; a trailing polygon without
// a final blank line is kept. Coordinates must be finite.
func ReadPolygons(r io.Reader) ([][]geom.Point, error) {
	var (
		polys [][]geom.Point
		cur   []geom.Point
	)
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}

		// End of the current polygon
		if line == "" {
			if len(cur) > 0 {
				polys = append(polys, cur)
				cur = nil
			}
			continue
		}

		p, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		cur = append(cur, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "meshio: read polygons")
	}
	if len(cur) > 0 {
		polys = append(polys, cur)
	}
	return polys, nil
}

func parsePoint(line string) (geom.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return geom.Point{}, errors.Wrapf(ErrSyntax, "want \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return geom.Point{}, errors.Wrapf(ErrSyntax, "x: %v", err)
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return geom.Point{}, errors.Wrapf(ErrSyntax, "y: %v", err)
	}
	p := geom.Pt(x, y)
	if !p.Finite() {
		return geom.Point{}, errors.Wrapf(ErrSyntax, "non-finite point %q", line)
	}
	return p, nil
}

// FaceFromPolygons concatenates the polygons into one point set with one
// loop per polygon. The first polygon becomes the outer loop; the rest are
// holes by the even-odd rule the mesher applies. Winding is irrelevant.
func FaceFromPolygons(polys [][]geom.Point) mesher.Face {
	var face mesher.Face
	for _, poly := range polys {
		loop := mesher.Loop{Indices: make([]int, len(poly))}
		for i, p := range poly {
			loop.Indices[i] = len(face.Points)
			face.Points = append(face.Points, p)
		}
		face.Loops = append(face.Loops, loop)
	}
	return face
}
