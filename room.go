package trc

import (
	"github.com/bearlytools/trc/internal/bits"
	"github.com/bearlytools/trc/internal/codec"
)

const (
	// NoRoom is the room id stored in a Sector when there is no room above or below.
	NoRoom = 255
	// NoFlipRoom is the Room.FlipRoomID value of a room without an alternate room.
	NoFlipRoom = 65535
)

// Coord is the component type of a Vertex.
type Coord interface {
	~int16 | ~int32 | ~float32
}

// Vertex is a point or direction. The coordinate space depends on where it is used.
type Vertex[T Coord] struct {
	X, Y, Z T
}

func readVertex[T Coord](dec codec.Func[T]) codec.Func[Vertex[T]] {
	return func(r *codec.Reader) (Vertex[T], error) {
		var v Vertex[T]
		var err error
		if v.X, err = dec(r); err != nil {
			return v, err
		}
		if v.Y, err = dec(r); err != nil {
			return v, err
		}
		v.Z, err = dec(r)
		return v, err
	}
}

var (
	readVertex16 = readVertex(codec.I16)
	readVertex32 = readVertex(codec.I32)
	readVertexF  = readVertex(codec.F32)
)

// RoomVertex is a vertex of a Room's geometry, relative to the room's origin.
type RoomVertex struct {
	Vertex Vertex[int16]
	Flags  uint16
	Color  uint16
}

func readRoomVertex(r *codec.Reader) (RoomVertex, error) {
	var v RoomVertex
	f := codec.NewFields(r)
	codec.Field(f, "vertex", &v.Vertex, readVertex16)
	f.Skip(2)
	codec.Field(f, "flags", &v.Flags, codec.U16)
	codec.Field(f, "color", &v.Color, codec.U16)
	return v, f.Err()
}

// RoomFace is the texture word shared by RoomQuad and RoomTriangle. Bits 0-14 are an index
// into LevelData.ObjectTextures, bit 15 marks the face as double sided.
type RoomFace uint16

// Bitfields of RoomFace and ObjectTexture.AtlasAndFlag.
var (
	indexMask = bits.Mask[uint16](0, 15)
	flagBit   = uint8(15)
)

// TextureID returns the object texture index.
func (f RoomFace) TextureID() uint16 {
	return bits.GetValue[uint16, uint16](uint16(f), indexMask, 0)
}

// DoubleSided reports if the face is drawn from both sides.
func (f RoomFace) DoubleSided() bool {
	return bits.GetBit(uint16(f), flagBit)
}

// RoomQuad is a four sided face. VertexIDs index Room.Vertices.
type RoomQuad struct {
	VertexIDs [4]uint16
	Texture   RoomFace
}

func readRoomQuad(r *codec.Reader) (RoomQuad, error) {
	var q RoomQuad
	if err := codec.Array(r, q.VertexIDs[:], codec.U16); err != nil {
		return q, err
	}
	t, err := codec.U16(r)
	q.Texture = RoomFace(t)
	return q, err
}

// RoomTriangle is a three sided face. VertexIDs index Room.Vertices.
type RoomTriangle struct {
	VertexIDs [3]uint16
	Texture   RoomFace
}

func readRoomTriangle(r *codec.Reader) (RoomTriangle, error) {
	var tri RoomTriangle
	if err := codec.Array(r, tri.VertexIDs[:], codec.U16); err != nil {
		return tri, err
	}
	t, err := codec.U16(r)
	tri.Texture = RoomFace(t)
	return tri, err
}

// Sprite is a billboard drawn at one of the room's vertices.
type Sprite struct {
	VertexID  uint16 // into Room.Vertices
	TextureID uint16 // into LevelData.SpriteTextures
}

func readSprite(r *codec.Reader) (Sprite, error) {
	var s Sprite
	f := codec.NewFields(r)
	codec.Field(f, "vertex_id", &s.VertexID, codec.U16)
	codec.Field(f, "texture_id", &s.TextureID, codec.U16)
	return s, f.Err()
}

// Portal is an opening into an adjoining room.
type Portal struct {
	AdjoiningRoomID uint16
	Normal          Vertex[int16]
	Vertices        [4]Vertex[int16]
}

func readPortal(r *codec.Reader) (Portal, error) {
	var p Portal
	f := codec.NewFields(r)
	codec.Field(f, "adjoining_room_id", &p.AdjoiningRoomID, codec.U16)
	codec.Field(f, "normal", &p.Normal, readVertex16)
	codec.ArrayField(f, "vertices", p.Vertices[:], readVertex16)
	return p, f.Err()
}

// Sector is one navigation and collision cell of a Room.
type Sector struct {
	FloorDataID uint16 // into LevelData.FloorData
	Bitfields   uint16
	RoomBelowID uint8
	Floor       int8
	RoomAboveID uint8
	Ceiling     int8
}

// HasRoomBelow reports if RoomBelowID refers to a room.
func (s Sector) HasRoomBelow() bool {
	return s.RoomBelowID != NoRoom
}

// HasRoomAbove reports if RoomAboveID refers to a room.
func (s Sector) HasRoomAbove() bool {
	return s.RoomAboveID != NoRoom
}

func readSector(r *codec.Reader) (Sector, error) {
	var s Sector
	f := codec.NewFields(r)
	codec.Field(f, "floor_data_id", &s.FloorDataID, codec.U16)
	codec.Field(f, "bitfields", &s.Bitfields, codec.U16)
	codec.Field(f, "room_below_id", &s.RoomBelowID, codec.U8)
	codec.Field(f, "floor", &s.Floor, codec.I8)
	codec.Field(f, "room_above_id", &s.RoomAboveID, codec.U8)
	codec.Field(f, "ceiling", &s.Ceiling, codec.I8)
	return s, f.Err()
}

// Light is a light source placed in world coordinates.
type Light struct {
	Pos       Vertex[int32]
	R, G, B   uint8
	LightType uint8
	Intensity uint8
	Hotspot   float32
	Falloff   float32
	Length    float32
	Cutoff    float32
	Direction Vertex[float32]
}

func readLight(r *codec.Reader) (Light, error) {
	var l Light
	f := codec.NewFields(r)
	codec.Field(f, "pos", &l.Pos, readVertex32)
	codec.Field(f, "r", &l.R, codec.U8)
	codec.Field(f, "g", &l.G, codec.U8)
	codec.Field(f, "b", &l.B, codec.U8)
	codec.Field(f, "light_type", &l.LightType, codec.U8)
	f.Skip(1)
	codec.Field(f, "intensity", &l.Intensity, codec.U8)
	codec.Field(f, "hotspot", &l.Hotspot, codec.F32)
	codec.Field(f, "falloff", &l.Falloff, codec.F32)
	codec.Field(f, "length", &l.Length, codec.F32)
	codec.Field(f, "cutoff", &l.Cutoff, codec.F32)
	codec.Field(f, "direction", &l.Direction, readVertexF)
	return l, f.Err()
}

// RoomStaticMesh places a StaticMesh in world coordinates.
type RoomStaticMesh struct {
	Pos          Vertex[int32]
	Rotation     uint16
	Color        uint16
	StaticMeshID uint16 // matched against StaticMesh.ID
}

func readRoomStaticMesh(r *codec.Reader) (RoomStaticMesh, error) {
	var m RoomStaticMesh
	f := codec.NewFields(r)
	codec.Field(f, "pos", &m.Pos, readVertex32)
	codec.Field(f, "rotation", &m.Rotation, codec.U16)
	codec.Field(f, "color", &m.Color, codec.U16)
	f.Skip(2)
	codec.Field(f, "static_mesh_id", &m.StaticMeshID, codec.U16)
	return m, f.Err()
}

// Room is a cell of the world. X, Z, YBottom and YTop are world coordinates, the geometry is
// relative to them.
type Room struct {
	X       int32
	Z       int32
	YBottom int32
	YTop    int32

	Vertices  []RoomVertex
	Quads     []RoomQuad
	Triangles []RoomTriangle
	Sprites   []Sprite
	Portals   []Portal
	// Sectors is indexed [row][column].
	Sectors [][]Sector

	Color            uint32 // argb
	Lights           []Light
	RoomStaticMeshes []RoomStaticMesh

	FlipRoomID  uint16
	Flags       uint16
	WaterEffect uint8
	Reverb      uint8
	FlipGroup   uint8
}

// HasFlipRoom reports if FlipRoomID refers to a room.
func (r *Room) HasFlipRoom() bool {
	return r.FlipRoomID != NoFlipRoom
}

// Sector returns the sector at row, col and false if that is outside the grid.
func (r *Room) Sector(row, col int) (Sector, bool) {
	if row < 0 || row >= len(r.Sectors) || col < 0 || col >= len(r.Sectors[row]) {
		return Sector{}, false
	}
	return r.Sectors[row][col], true
}

func readRoom(r *codec.Reader) (Room, error) {
	var room Room
	f := codec.NewFields(r)
	codec.Field(f, "x", &room.X, codec.I32)
	codec.Field(f, "z", &room.Z, codec.I32)
	codec.Field(f, "y_bottom", &room.YBottom, codec.I32)
	codec.Field(f, "y_top", &room.YTop, codec.I32)
	f.Skip(4)
	codec.Field(f, "vertices", &room.Vertices, codec.ListOf(codec.Prefix16, readRoomVertex))
	codec.Field(f, "quads", &room.Quads, codec.ListOf(codec.Prefix16, readRoomQuad))
	codec.Field(f, "triangles", &room.Triangles, codec.ListOf(codec.Prefix16, readRoomTriangle))
	codec.Field(f, "sprites", &room.Sprites, codec.ListOf(codec.Prefix16, readSprite))
	codec.Field(f, "portals", &room.Portals, codec.ListOf(codec.Prefix16, readPortal))
	codec.Field(f, "sectors", &room.Sectors, codec.GridOf(readSector))
	codec.Field(f, "color", &room.Color, codec.U32)
	codec.Field(f, "lights", &room.Lights, codec.ListOf(codec.Prefix16, readLight))
	codec.Field(f, "room_static_meshes", &room.RoomStaticMeshes, codec.ListOf(codec.Prefix16, readRoomStaticMesh))
	codec.Field(f, "flip_room_id", &room.FlipRoomID, codec.U16)
	codec.Field(f, "flags", &room.Flags, codec.U16)
	codec.Field(f, "water_effect", &room.WaterEffect, codec.U8)
	codec.Field(f, "reverb", &room.Reverb, codec.U8)
	codec.Field(f, "flip_group", &room.FlipGroup, codec.U8)
	return room, f.Err()
}
