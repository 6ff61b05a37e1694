package mesh

import (
	"github.com/mini3dgo/raster3d/pkg/math3d"
	"github.com/mini3dgo/raster3d/pkg/raster"
)

// DefaultLight is the directional light used when a caller has none of
// its own: it points straight into the screen, matching a simple
// camera-mounted headlamp.
var DefaultLight = math3d.Dir(0, 0, -1).Normalize()

// AmbientFloor is the minimum fraction of baseColor a vertex keeps even
// when fully turned away from the light, so unlit faces stay visible
// instead of going pure black.
const AmbientFloor = 0.15

// shadeVertex turns a mesh vertex into a raster.Vertex, folding a simple
// Lambertian term (normal dot -lightDir) into baseColor since the core
// vertex carries color but no normal of its own.
func shadeVertex(v Vertex, lightDir math3d.Vector, baseColor raster.Color) raster.Vertex {
	ndotl := v.Normal.Dot(lightDir.Scale(-1))
	if ndotl < 0 {
		ndotl = 0
	}
	intensity := AmbientFloor + (1-AmbientFloor)*ndotl
	return raster.Vertex{
		Pos:   v.Position,
		TC:    v.UV,
		Color: baseColor.Scale(intensity),
	}
}

// DrawMesh submits every triangle of m to dev, shading each vertex with
// a single directional light and a flat base color.
func DrawMesh(dev *raster.Device, m *Mesh, lightDir math3d.Vector, baseColor raster.Color) {
	for _, f := range m.Faces {
		a := shadeVertex(m.Vertices[f.V[0]], lightDir, baseColor)
		b := shadeVertex(m.Vertices[f.V[1]], lightDir, baseColor)
		c := shadeVertex(m.Vertices[f.V[2]], lightDir, baseColor)
		dev.DrawPrimitive(a, b, c)
	}
}
