package delaun

import (
	"container/list"
	"fmt"

	"github.com/katalvlaran/lvmesh/mesh"
)

// Finalize discards the triangles outside the constraint loops and moves the
// triangulator to Finalized, after which it is immutable.
//
// Behavior:
//  1. Multi-source 0-1 BFS over triangles from every triangle touching a
//     super vertex (depth 0):
//     • crossing a Free edge     → cost 0
//     • crossing a Fixed edge    → cost 1
//  2. A triangle is inside when its depth is odd, so any number of nested
//     loops (outer boundary, holes, islands in holes) classify correctly.
//     Without any Fixed edge the whole hull is kept: only triangles touching
//     a super vertex go.
//  3. Remove outside triangles, then every edge left without a triangle, then
//     mark the super vertices Deleted.
//
// Complexity: O(T + E).
func (tr *Triangulator) Finalize() (*Result, error) {
	if err := tr.mutable(); err != nil {
		return nil, err
	}
	if err := tr.cancelled(); err != nil {
		return nil, err
	}
	ds := tr.ds

	keep := tr.classify()

	// 3) Trim
	for t := range ds.Triangles() {
		if keep[t] {
			continue
		}
		if err := ds.RemoveTriangle(t); err != nil {
			return nil, err
		}
		tr.stats.Removed++
	}
	for e := range ds.Edges() {
		if len(ds.TrianglesOf(e)) == 0 {
			if err := ds.RemoveEdge(e); err != nil {
				return nil, fmt.Errorf("delaun: finalize: %w", err)
			}
		}
	}
	for _, s := range tr.super {
		_ = ds.MarkVertexDeleted(s)
	}
	tr.stack = nil
	tr.lastHit = mesh.NoTriangle
	tr.state = Finalized

	return tr.result(false), nil
}

// classify returns, per triangle index, whether the triangle is inside.
func (tr *Triangulator) classify() []bool {
	ds := tr.ds
	hasConstraints := false
	for e := range ds.Edges() {
		if edge, _ := ds.Edge(e); edge.IsConstraint() {
			hasConstraints = true
			break
		}
	}

	n := 0
	for t := range ds.Triangles() {
		n = t + 1
	}
	keep := make([]bool, n)
	if !hasConstraints {
		for t := range ds.Triangles() {
			tri, _ := ds.Triangle(t)
			keep[t] = !tr.touchesSuper(tri)
		}
		return keep
	}

	const inf = int(^uint(0) >> 1)
	depth := make([]int, n)
	for i := range depth {
		depth[i] = inf
	}

	// 1) 0-1 BFS: deque processes cost0 at front, cost1 at back
	dq := list.New()
	for t := range ds.Triangles() {
		tri, _ := ds.Triangle(t)
		if tr.touchesSuper(tri) {
			depth[t] = 0
			dq.PushFront(t)
		}
	}
	for dq.Len() > 0 {
		el := dq.Front()
		dq.Remove(el)
		t := el.Value.(int)
		tri, _ := ds.Triangle(t)
		for _, e := range tri.Edges {
			nb := ds.Neighbour(t, e)
			if nb == mesh.NoTriangle {
				continue
			}
			edge, _ := ds.Edge(e)
			step := 0
			if edge.IsConstraint() {
				step = 1
			}
			if nd := depth[t] + step; nd < depth[nb] {
				depth[nb] = nd
				if step == 0 {
					dq.PushFront(nb)
				} else {
					dq.PushBack(nb)
				}
			}
		}
	}

	// 2) Parity
	for t := range ds.Triangles() {
		keep[t] = depth[t] != inf && depth[t]%2 == 1
	}
	return keep
}

// PartialResult snapshots the current triangulation without classifying it:
// every live triangle that does not touch a super vertex, tagged Cancelled.
// It is meant for callers that stopped early and still want the work done.
func (tr *Triangulator) PartialResult() *Result {
	if tr.ds == nil {
		return &Result{Cancelled: true}
	}
	return tr.result(true)
}

// result copies the live structure into a Result.
func (tr *Triangulator) result(cancelled bool) *Result {
	ds := tr.ds
	r := &Result{
		Vertices:  ds.Vertices(),
		Segments:  append([][2]int(nil), tr.constraints...),
		Stats:     tr.stats,
		Tolerance: tr.tol,
		Cancelled: cancelled,
	}
	for t := range ds.Triangles() {
		tri, _ := ds.Triangle(t)
		if tr.touchesSuper(tri) {
			continue
		}
		r.Triangles = append(r.Triangles, tri.Nodes)
	}
	for e := range ds.Edges() {
		edge, _ := ds.Edge(e)
		if edge.IsConstraint() {
			r.Constraints = append(r.Constraints, [2]int{edge.First, edge.Last})
		}
	}
	return r
}
