package trc

import (
	"github.com/bearlytools/trc/internal/codec"
)

// MeshComponent is the per vertex shading data of a Mesh. It is either Normals or Lights.
type MeshComponent interface {
	// Len returns the number of entries.
	Len() int

	isMeshComponent()
}

// Normals are per vertex surface normals, for meshes lit by the engine.
type Normals []Vertex[int16]

// Len implements MeshComponent.Len().
func (n Normals) Len() int {
	return len(n)
}

func (Normals) isMeshComponent() {}

// Lights are precomputed per vertex light values.
type Lights []uint16

// Len implements MeshComponent.Len().
func (l Lights) Len() int {
	return len(l)
}

func (Lights) isMeshComponent() {}

// readMeshComponent reads a signed count: positive counts are followed by normals, zero and
// negative counts by lights.
func readMeshComponent(r *codec.Reader) (MeshComponent, error) {
	u, err := codec.Signed(r, readVertex16, codec.U16)
	if err != nil {
		return nil, err
	}
	if u.IsPos {
		return Normals(u.Pos), nil
	}
	return Lights(u.NonPos), nil
}

// MeshFace is the texture and effect data shared by MeshQuad and MeshTriangle.
type MeshFace struct {
	TextureID    uint16 // into LevelData.ObjectTextures
	LightEffects uint16
}

// MeshQuad is a four sided face. VertexIDs index Mesh.Vertices.
type MeshQuad struct {
	VertexIDs [4]uint16
	MeshFace
}

func readMeshQuad(r *codec.Reader) (MeshQuad, error) {
	var q MeshQuad
	f := codec.NewFields(r)
	codec.ArrayField(f, "vertex_ids", q.VertexIDs[:], codec.U16)
	codec.Field(f, "texture_id", &q.TextureID, codec.U16)
	codec.Field(f, "light_effects", &q.LightEffects, codec.U16)
	return q, f.Err()
}

// MeshTriangle is a three sided face. VertexIDs index Mesh.Vertices.
type MeshTriangle struct {
	VertexIDs [3]uint16
	MeshFace
}

func readMeshTriangle(r *codec.Reader) (MeshTriangle, error) {
	var t MeshTriangle
	f := codec.NewFields(r)
	codec.ArrayField(f, "vertex_ids", t.VertexIDs[:], codec.U16)
	codec.Field(f, "texture_id", &t.TextureID, codec.U16)
	codec.Field(f, "light_effects", &t.LightEffects, codec.U16)
	return t, f.Err()
}

// Mesh is a block of renderable geometry from the shared mesh pool.
type Mesh struct {
	Center    Vertex[int16]
	Radius    int32
	Vertices  []Vertex[int16]
	Component MeshComponent
	Quads     []MeshQuad
	Triangles []MeshTriangle
}

func readMesh(r *codec.Reader) (Mesh, error) {
	var m Mesh
	f := codec.NewFields(r)
	codec.Field(f, "center", &m.Center, readVertex16)
	codec.Field(f, "radius", &m.Radius, codec.I32)
	codec.Field(f, "vertices", &m.Vertices, codec.ListOf(codec.Prefix16, readVertex16))
	codec.Field(f, "component", &m.Component, readMeshComponent)
	codec.Field(f, "quads", &m.Quads, codec.ListOf(codec.Prefix16, readMeshQuad))
	codec.Field(f, "triangles", &m.Triangles, codec.ListOf(codec.Prefix16, readMeshTriangle))
	return m, f.Err()
}

// MeshNode positions a mesh of a Model relative to its parent.
type MeshNode struct {
	Flags   uint8
	X, Y, Z int8
}

func readMeshNode(r *codec.Reader) (MeshNode, error) {
	var n MeshNode
	f := codec.NewFields(r)
	codec.Field(f, "flags", &n.Flags, codec.U8)
	codec.Field(f, "x", &n.X, codec.I8)
	codec.Field(f, "y", &n.Y, codec.I8)
	codec.Field(f, "z", &n.Z, codec.I8)
	return n, f.Err()
}

// NoAnim is the Model.AnimID of a model without animations.
const NoAnim = 65535

// Model is an animated object made from consecutive meshes of the mesh pool.
type Model struct {
	ID          uint32
	NumMeshes   uint16
	MeshID      uint16 // into LevelData.MeshPointers
	MeshNodeID  uint32 // into LevelData.MeshNodes
	FrameOffset uint32 // byte offset into LevelData.Frames
	AnimID      uint16 // into LevelData.Animations
}

func readModel(r *codec.Reader) (Model, error) {
	var m Model
	f := codec.NewFields(r)
	codec.Field(f, "id", &m.ID, codec.U32)
	codec.Field(f, "num_meshes", &m.NumMeshes, codec.U16)
	codec.Field(f, "mesh_id", &m.MeshID, codec.U16)
	codec.Field(f, "mesh_node_id", &m.MeshNodeID, codec.U32)
	codec.Field(f, "frame_offset", &m.FrameOffset, codec.U32)
	codec.Field(f, "anim_id", &m.AnimID, codec.U16)
	return m, f.Err()
}

// BoundBox is an axis aligned box.
type BoundBox struct {
	XMin, XMax int16
	YMin, YMax int16
	ZMin, ZMax int16
}

func readBoundBox(r *codec.Reader) (BoundBox, error) {
	var b BoundBox
	var v [6]int16
	if err := codec.Array(r, v[:], codec.I16); err != nil {
		return b, err
	}
	b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax = v[0], v[1], v[2], v[3], v[4], v[5]
	return b, nil
}

// StaticMesh is an unanimated object made from a single mesh.
type StaticMesh struct {
	ID         uint32
	MeshID     uint16 // into LevelData.MeshPointers
	Visibility BoundBox
	Collision  BoundBox
	Flags      uint16
}

func readStaticMesh(r *codec.Reader) (StaticMesh, error) {
	var s StaticMesh
	f := codec.NewFields(r)
	codec.Field(f, "id", &s.ID, codec.U32)
	codec.Field(f, "mesh_id", &s.MeshID, codec.U16)
	codec.Field(f, "visibility", &s.Visibility, readBoundBox)
	codec.Field(f, "collision", &s.Collision, readBoundBox)
	codec.Field(f, "flags", &s.Flags, codec.U16)
	return s, f.Err()
}
