package trc

import (
	"github.com/bearlytools/trc/internal/codec"
)

// Camera is a fixed camera position.
type Camera struct {
	Pos    Vertex[int32]
	RoomID uint16 // into LevelData.Rooms
	Flags  uint16
}

func readCamera(r *codec.Reader) (Camera, error) {
	var c Camera
	f := codec.NewFields(r)
	codec.Field(f, "pos", &c.Pos, readVertex32)
	codec.Field(f, "room_id", &c.RoomID, codec.U16)
	codec.Field(f, "flags", &c.Flags, codec.U16)
	return c, f.Err()
}

// FlybyCamera is one point of a scripted camera path.
type FlybyCamera struct {
	Pos       Vertex[int32]
	Direction Vertex[int32]
	Chain     uint8
	Index     uint8
	FOV       uint16
	Roll      int16
	Timer     uint16
	Speed     uint16
	Flags     uint16
	RoomID    uint32 // into LevelData.Rooms
}

func readFlybyCamera(r *codec.Reader) (FlybyCamera, error) {
	var c FlybyCamera
	f := codec.NewFields(r)
	codec.Field(f, "pos", &c.Pos, readVertex32)
	codec.Field(f, "direction", &c.Direction, readVertex32)
	codec.Field(f, "chain", &c.Chain, codec.U8)
	codec.Field(f, "index", &c.Index, codec.U8)
	codec.Field(f, "fov", &c.FOV, codec.U16)
	codec.Field(f, "roll", &c.Roll, codec.I16)
	codec.Field(f, "timer", &c.Timer, codec.U16)
	codec.Field(f, "speed", &c.Speed, codec.U16)
	codec.Field(f, "flags", &c.Flags, codec.U16)
	codec.Field(f, "room_id", &c.RoomID, codec.U32)
	return c, f.Err()
}

// SoundSource is an ambient sound emitter.
type SoundSource struct {
	Pos     Vertex[int32]
	SoundID uint16 // into LevelData.SoundMap
	Flags   uint16
}

func readSoundSource(r *codec.Reader) (SoundSource, error) {
	var s SoundSource
	f := codec.NewFields(r)
	codec.Field(f, "pos", &s.Pos, readVertex32)
	codec.Field(f, "sound_id", &s.SoundID, codec.U16)
	codec.Field(f, "flags", &s.Flags, codec.U16)
	return s, f.Err()
}

// Box is a pathfinding area. Extents are in sectors.
type Box struct {
	ZMin    uint8
	ZMax    uint8
	XMin    uint8
	XMax    uint8
	Y       int16
	Overlap uint16 // into LevelData.Overlaps
}

func readBox(r *codec.Reader) (Box, error) {
	var b Box
	f := codec.NewFields(r)
	codec.Field(f, "z_min", &b.ZMin, codec.U8)
	codec.Field(f, "z_max", &b.ZMax, codec.U8)
	codec.Field(f, "x_min", &b.XMin, codec.U8)
	codec.Field(f, "x_max", &b.XMax, codec.U8)
	codec.Field(f, "y", &b.Y, codec.I16)
	codec.Field(f, "overlap", &b.Overlap, codec.U16)
	return b, f.Err()
}

// UseMeshLight is the Entity.LightIntensity of an entity lit by its mesh lights.
const UseMeshLight = 65535

// Entity is a model placed in the world.
type Entity struct {
	ModelID        uint16 // matched against Model.ID
	RoomID         uint16 // into LevelData.Rooms
	Pos            Vertex[int32]
	Angle          int16
	LightIntensity uint16
	OCB            uint16
	Flags          uint16
}

func readEntity(r *codec.Reader) (Entity, error) {
	var e Entity
	f := codec.NewFields(r)
	codec.Field(f, "model_id", &e.ModelID, codec.U16)
	codec.Field(f, "room_id", &e.RoomID, codec.U16)
	codec.Field(f, "pos", &e.Pos, readVertex32)
	codec.Field(f, "angle", &e.Angle, codec.I16)
	codec.Field(f, "light_intensity", &e.LightIntensity, codec.U16)
	codec.Field(f, "ocb", &e.OCB, codec.U16)
	codec.Field(f, "flags", &e.Flags, codec.U16)
	return e, f.Err()
}

// Ai is an AI helper object placed in the world.
type Ai struct {
	ModelID uint16 // matched against Model.ID
	RoomID  uint16 // into LevelData.Rooms
	Pos     Vertex[int32]
	OCB     uint16
	Flags   uint16
	Angle   int32
}

func readAi(r *codec.Reader) (Ai, error) {
	var a Ai
	f := codec.NewFields(r)
	codec.Field(f, "model_id", &a.ModelID, codec.U16)
	codec.Field(f, "room_id", &a.RoomID, codec.U16)
	codec.Field(f, "pos", &a.Pos, readVertex32)
	codec.Field(f, "ocb", &a.OCB, codec.U16)
	codec.Field(f, "flags", &a.Flags, codec.U16)
	codec.Field(f, "angle", &a.Angle, codec.I32)
	return a, f.Err()
}
