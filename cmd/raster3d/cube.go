package main

import (
	"github.com/mini3dgo/raster3d/pkg/math3d"
	"github.com/mini3dgo/raster3d/pkg/mesh"
)

// cubeFace describes one face of the unit cube by its four corner
// indices (clockwise as seen from outside) and its outward
// normal; texCube tiles the same 0..1 UV square onto every face.
type cubeFace struct {
	corners [4]int
	normal  [3]float64
}

var cubeCorners = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

var cubeFaces = []cubeFace{
	{[4]int{0, 1, 2, 3}, [3]float64{0, 0, -1}}, // back
	{[4]int{5, 4, 7, 6}, [3]float64{0, 0, 1}},  // front
	{[4]int{4, 0, 3, 7}, [3]float64{-1, 0, 0}}, // left
	{[4]int{1, 5, 6, 2}, [3]float64{1, 0, 0}},  // right
	{[4]int{4, 5, 1, 0}, [3]float64{0, -1, 0}}, // bottom
	{[4]int{3, 2, 6, 7}, [3]float64{0, 1, 0}},  // top
}

var cubeUV = [4][2]float64{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// newCube builds the procedural demo cube: eight corners duplicated per
// face so each face keeps its own flat normal and a full 0..1 texture
// square, triangulated as two triangles per face.
func newCube() *mesh.Mesh {
	m := mesh.New("cube")
	for _, f := range cubeFaces {
		base := len(m.Vertices)
		n := math3d.Dir(f.normal[0], f.normal[1], f.normal[2])
		for i, c := range f.corners {
			p := cubeCorners[c]
			m.Vertices = append(m.Vertices, mesh.Vertex{
				Position: math3d.Point(p[0], p[1], p[2]),
				Normal:   n,
				UV:       math3d.V2(cubeUV[i][0], cubeUV[i][1]),
			})
		}
		m.Faces = append(m.Faces,
			mesh.Face{V: [3]int{base, base + 1, base + 2}},
			mesh.Face{V: [3]int{base, base + 2, base + 3}},
		)
	}
	m.CalculateBounds()
	return m
}
