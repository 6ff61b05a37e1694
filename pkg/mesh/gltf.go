package mesh

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/qmuntal/gltf"

	"github.com/mini3dgo/raster3d/pkg/math3d"
)

// GLTFLoader loads a GLTF/GLB document into a Mesh, optionally deriving
// normals when the source has none.
type GLTFLoader struct {
	CalculateNormals bool
	SmoothNormals    bool
}

// NewGLTFLoader returns a loader that fills in smooth normals when the
// source document doesn't carry any.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{CalculateNormals: true, SmoothNormals: true}
}

// LoadGLB loads a binary GLTF (.glb) or textual (.gltf) file into a Mesh.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// LoadGLBWithTexture loads path and additionally decodes the document's
// first embedded or sibling image, if any. texImg is nil when the model
// carries none.
func LoadGLBWithTexture(path string) (m *Mesh, texImg image.Image, err error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}
	m, err = NewGLTFLoader().load(doc, path)
	if err != nil {
		return nil, nil, err
	}
	for _, img := range doc.Images {
		data, ok := imageBytes(doc, img, path)
		if !ok {
			continue
		}
		decoded, _, decErr := image.Decode(bytes.NewReader(data))
		if decErr == nil {
			texImg = decoded
			break
		}
	}
	return m, texImg, nil
}

// Load reads path and returns the mesh it contains.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.load(doc, path)
}

func (l *GLTFLoader) load(doc *gltf.Document, path string) (*Mesh, error) {
	m := New(filepath.Base(path))
	for _, gm := range doc.Meshes {
		if err := l.appendMesh(doc, gm, m); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", gm.Name, err)
		}
	}

	hasNormals := false
	for _, v := range m.Vertices {
		if v.Normal.Length() > 0.001 {
			hasNormals = true
			break
		}
	}
	if l.CalculateNormals && !hasNormals {
		if l.SmoothNormals {
			m.CalculateSmoothNormals()
		} else {
			m.CalculateNormals()
		}
	}
	m.CalculateBounds()
	return m, nil
}

// appendMesh extracts every triangle primitive of gm into m, reversing
// winding to match this package's clockwise-front convention (GLTF is
// counter-clockwise-front; the rasterizer's screen-space Y flip inverts
// the sense again, so the reversal here cancels that flip).
func (l *GLTFLoader) appendMesh(doc *gltf.Document, gm *gltf.Mesh, m *Mesh) error {
	for _, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}
		var normals []math3d.Vector
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = readVec3(doc, idx); err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}
		var uvs []math3d.Vec2
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = readVec2(doc, idx); err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		base := len(m.Vertices)
		for i, p := range positions {
			v := Vertex{Position: p}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(uvs) {
				v.UV = math3d.V2(uvs[i].U, 1-uvs[i].V)
			}
			m.Vertices = append(m.Vertices, v)
		}

		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				m.Faces = append(m.Faces, Face{V: [3]int{
					base + indices[i], base + indices[i+2], base + indices[i+1],
				}})
			}
		} else {
			for i := 0; i+2 < len(positions); i += 3 {
				m.Faces = append(m.Faces, Face{V: [3]int{base + i, base + i + 2, base + i + 1}})
			}
		}
	}
	return nil
}

func readVec3(doc *gltf.Document, accessorIdx int) ([]math3d.Vector, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}
	out := make([]math3d.Vector, len(floats))
	for i, f := range floats {
		out[i] = math3d.Point(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return out, nil
}

func readVec2(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][2]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC2")
	}
	out := make([]math3d.Vec2, len(floats))
	for i, f := range floats {
		out[i] = math3d.V2(float64(f[0]), float64(f[1]))
	}
	return out, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	switch v := data.(type) {
	case []uint8:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	case []uint16:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	case []uint32:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}
	bv := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.URI != "" && buf.Data == nil {
		return nil, fmt.Errorf("external buffers not supported")
	}
	bufData := buf.Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bv.ByteOffset + accessor.ByteOffset
	stride := bv.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12
		}
		out := make([][3]float32, count)
		for i := 0; i < count; i++ {
			offset := start + i*stride
			for j := 0; j < 3; j++ {
				out[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return out, nil
	case gltf.AccessorVec2:
		if stride == 0 {
			stride = 8
		}
		out := make([][2]float32, count)
		for i := 0; i < count; i++ {
			offset := start + i*stride
			for j := 0; j < 2; j++ {
				out[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return out, nil
	case gltf.AccessorScalar:
		if stride == 0 {
			switch accessor.ComponentType {
			case gltf.ComponentUbyte:
				stride = 1
			case gltf.ComponentUshort:
				stride = 2
			case gltf.ComponentUint:
				stride = 4
			}
		}
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			out := make([]uint8, count)
			for i := 0; i < count; i++ {
				out[i] = bufData[start+i*stride]
			}
			return out, nil
		case gltf.ComponentUshort:
			out := make([]uint16, count)
			for i := 0; i < count; i++ {
				offset := start + i*stride
				out[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return out, nil
		case gltf.ComponentUint:
			out := make([]uint32, count)
			for i := 0; i < count; i++ {
				offset := start + i*stride
				out[i] = uint32(bufData[offset]) | uint32(bufData[offset+1])<<8 |
					uint32(bufData[offset+2])<<16 | uint32(bufData[offset+3])<<24
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("unsupported accessor type: %v/%v", accessor.Type, accessor.ComponentType)
}

func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return *(*float32)(unsafe.Pointer(&bits))
}

// imageBytes resolves the raw bytes of a GLTF image, whether embedded in
// a buffer view or stored in a sibling file referenced by URI.
func imageBytes(doc *gltf.Document, img *gltf.Image, docPath string) ([]byte, bool) {
	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil {
			return nil, false
		}
		start := bv.ByteOffset
		end := start + bv.ByteLength
		return buf.Data[start:end], true
	}
	if img.URI != "" {
		data, err := os.ReadFile(filepath.Join(filepath.Dir(docPath), img.URI))
		if err != nil {
			return nil, false
		}
		return data, true
	}
	return nil, false
}
