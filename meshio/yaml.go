package meshio

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmesh/geom"
	"github.com/katalvlaran/lvmesh/mesher"
)

// Document is a decoded YAML face file.
//
//	tolerance: 1e-9   # optional, 0 derives it per face
//	spacing: 0.5      # optional refinement step
//	faces:
//	  - points: [[0, 0], [10, 0], [10, 10], [0, 10]]
//	    loops:
//	      - indices: [0, 1, 2, 3]
//	        deflection: 0.01
//	    interior: [[5, 5]]
type Document struct {
	Tolerance float64
	Spacing   float64
	Faces     []mesher.Face
}

type yamlDoc struct {
	Tolerance float64    `yaml:"tolerance"`
	Spacing   float64    `yaml:"spacing"`
	Faces     []yamlFace `yaml:"faces"`
}

type yamlFace struct {
	Points   [][]float64 `yaml:"points"`
	Loops    []yamlLoop  `yaml:"loops"`
	Interior [][]float64 `yaml:"interior"`
}

type yamlLoop struct {
	Indices    []int   `yaml:"indices"`
	Deflection float64 `yaml:"deflection"`
}

// ReadFacesYAML decodes a face document from r. Unknown keys are rejected.
// Geometry is only checked for shape here; mesher.Validate does the rest.
func ReadFacesYAML(r io.Reader) (*Document, error) {
	var raw yamlDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return &Document{}, nil
		}
		return nil, errors.Wrapf(ErrSyntax, "yaml: %v", err)
	}

	doc := &Document{Tolerance: raw.Tolerance, Spacing: raw.Spacing}
	for fi, rf := range raw.Faces {
		pts, err := points(rf.Points)
		if err != nil {
			return nil, errors.Wrapf(err, "face %d points", fi)
		}
		interior, err := points(rf.Interior)
		if err != nil {
			return nil, errors.Wrapf(err, "face %d interior", fi)
		}
		face := mesher.Face{Points: pts, Interior: interior}
		for _, rl := range rf.Loops {
			face.Loops = append(face.Loops, mesher.Loop{Indices: rl.Indices, Deflection: rl.Deflection})
		}
		doc.Faces = append(doc.Faces, face)
	}
	return doc, nil
}

func points(raw [][]float64) ([]geom.Point, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]geom.Point, len(raw))
	for i, xy := range raw {
		if len(xy) != 2 {
			return nil, errors.Wrapf(ErrSyntax, "point %d: want 2 coordinates, got %d", i, len(xy))
		}
		out[i] = geom.Pt(xy[0], xy[1])
	}
	return out, nil
}
