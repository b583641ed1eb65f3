// Command lvmesh meshes planar faces from a polygon text file or a YAML
// face document and prints a summary per face.
//
// The text format is one "x y" pair per line with a blank line between
// polygons; the first polygon is the outer boundary and the rest are holes.
// Files ending in .yaml or .yml are read as face documents.
//
//	lvmesh shape.txt --spacing 0.5 --png shape.png --obj shape.obj
//	lvmesh faces.yaml --workers 4
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/katalvlaran/lvmesh/delaun"
	"github.com/katalvlaran/lvmesh/mesher"
	"github.com/katalvlaran/lvmesh/meshio"
	"github.com/katalvlaran/lvmesh/render"
)

type config struct {
	input     string
	tolerance float64
	spacing   float64
	workers   int
	timeout   time.Duration
	png       string
	obj       string
	noColor   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run parses args, meshes every face and returns the exit status:
// 0 when all faces meshed, 1 when any face failed, 2 on usage errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cfg config
	app := kingpin.New("lvmesh", "Constrained Delaunay mesher for planar faces.")
	app.Writer(stderr)
	app.Arg("input", "Polygon text file or YAML face document ('-' for stdin).").Default("-").StringVar(&cfg.input)
	app.Flag("tolerance", "Merge tolerance; 0 derives it from each face's bounding box.").Short('t').Default("0").Float64Var(&cfg.tolerance)
	app.Flag("spacing", "Refinement step; 0 disables refinement.").Short('s').Default("0").Float64Var(&cfg.spacing)
	app.Flag("workers", "Faces meshed in parallel; 0 uses GOMAXPROCS.").Short('w').Default("0").IntVar(&cfg.workers)
	app.Flag("timeout", "Abort meshing after this long; 0 means no limit.").Default("0s").DurationVar(&cfg.timeout)
	app.Flag("png", "Write a PNG rendering (suffixed per face when several).").StringVar(&cfg.png)
	app.Flag("obj", "Write a Wavefront OBJ mesh (suffixed per face when several).").StringVar(&cfg.obj)
	app.Flag("no-color", "Disable coloured output.").BoolVar(&cfg.noColor)
	if _, err := app.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	au := aurora.NewAurora(!cfg.noColor)
	faces, err := readFaces(&cfg, stdin)
	if err != nil {
		fmt.Fprintln(stderr, au.Red(err))
		return 2
	}

	ctx := context.Background()
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	start := time.Now()
	results := mesher.MeshAll(ctx, faces, cfg.workers,
		mesher.WithTolerance(cfg.tolerance), mesher.WithSpacing(cfg.spacing))
	fmt.Fprintf(stdout, "Meshed %d faces in %v\n", len(faces), au.Bold(time.Since(start).Round(time.Microsecond)))

	status := 0
	for _, fr := range results {
		if fr.Err != nil {
			status = 1
			fmt.Fprintf(stdout, "face %d: %v\n", fr.Index, au.Red(fr.Err))
			continue
		}
		summarize(stdout, au, fr.Index, fr.Result)
		if err := write(&cfg, len(faces), fr); err != nil {
			status = 1
			fmt.Fprintf(stdout, "face %d: %v\n", fr.Index, au.Red(err))
		}
	}
	return status
}

// readFaces loads the input, letting YAML document defaults fill in flags
// left at zero.
func readFaces(cfg *config, stdin io.Reader) ([]mesher.Face, error) {
	in := stdin
	if cfg.input != "-" {
		f, err := os.Open(cfg.input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	switch strings.ToLower(filepath.Ext(cfg.input)) {
	case ".yaml", ".yml":
		doc, err := meshio.ReadFacesYAML(in)
		if err != nil {
			return nil, err
		}
		if cfg.tolerance == 0 {
			cfg.tolerance = doc.Tolerance
		}
		if cfg.spacing == 0 {
			cfg.spacing = doc.Spacing
		}
		return doc.Faces, nil
	default:
		polys, err := meshio.ReadPolygons(in)
		if err != nil {
			return nil, err
		}
		return []mesher.Face{meshio.FaceFromPolygons(polys)}, nil
	}
}

func summarize(w io.Writer, au aurora.Aurora, index int, res *delaun.Result) {
	st := res.Stats
	fmt.Fprintf(w, "face %d: %v triangles, %v vertices, area %v\n",
		index,
		au.Green(len(res.Triangles)),
		au.Green(len(res.UsedVertices())),
		au.Cyan(fmt.Sprintf("%.6g", res.Area())))
	fmt.Fprintf(w, "  flips %d  edge splits %d  steiner %d  duplicates %d  skipped %v\n",
		st.Flips, st.EdgeSplits, st.Steiner, st.Duplicates, skipped(au, st.Skipped))
}

func skipped(au aurora.Aurora, n int) aurora.Value {
	if n > 0 {
		return au.Yellow(n)
	}
	return au.Reset(n)
}

func write(cfg *config, faces int, fr mesher.FaceResult) error {
	if cfg.png != "" {
		if err := render.SavePNG(outPath(cfg.png, faces, fr.Index), fr.Result); err != nil {
			return err
		}
	}
	if cfg.obj != "" {
		f, err := os.Create(outPath(cfg.obj, faces, fr.Index))
		if err != nil {
			return err
		}
		if err = meshio.WriteOBJ(f, fr.Result); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return nil
}

// outPath inserts "-<index>" before the extension when several faces share
// one output flag.
func outPath(path string, faces, index int) string {
	if faces <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), index, ext)
}
