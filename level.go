package trc

import (
	"golang.org/x/exp/slices"

	"github.com/bearlytools/trc/internal/codec"
)

const (
	// ZonesPerBox is the number of LevelData.Zones entries stored for every box.
	ZonesPerBox = 10

	// MeshAlign is the alignment, relative to the start of the mesh pool, of every Mesh.
	MeshAlign = 4

	boxesKey = "boxes"
)

// Level is a decoded level file.
type Level struct {
	Version       uint32
	NumRoomImages uint16
	NumObjImages  uint16
	NumBumpMaps   uint16

	// Images32 and Images16 hold NumRoomImages+NumObjImages+NumBumpMaps pages each, in that
	// order. They are the same pages at two color depths.
	Images32   []*Image32
	Images16   []*Image16
	MiscImages [NumMiscImages]*Image32

	LevelData LevelData
	Samples   []Sample
}

// NumImages returns the number of atlas pages the level declares.
func (l *Level) NumImages() int {
	return int(l.NumRoomImages) + int(l.NumObjImages) + int(l.NumBumpMaps)
}

func readLevel(r *codec.Reader) (*Level, error) {
	l := &Level{}
	f := codec.NewFields(r)
	codec.Field(f, "version", &l.Version, codec.U32)
	codec.Field(f, "num_room_images", &l.NumRoomImages, codec.U16)
	codec.Field(f, "num_obj_images", &l.NumObjImages, codec.U16)
	codec.Field(f, "num_bump_maps", &l.NumBumpMaps, codec.U16)

	images := codec.Sum(int(l.NumRoomImages), int(l.NumObjImages), int(l.NumBumpMaps))
	codec.Field(f, "images_32", &l.Images32, codec.SectionOf(codec.ListOf(images, readImage32)))
	codec.Field(f, "images_16", &l.Images16, codec.SectionOf(codec.ListOf(images, readImage16)))
	codec.Field(f, "misc_images", &l.MiscImages, codec.SectionOf(readMiscImages))
	codec.Field(f, "level_data", &l.LevelData, codec.SectionOf(readLevelData))
	codec.Field(f, "samples", &l.Samples, codec.ListOf(codec.Prefix32, readSample))
	if err := f.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

// LevelData is the world stored in the level's main compressed section.
type LevelData struct {
	Rooms     []Room
	FloorData []uint16

	// Meshes is the shared mesh pool. MeshOffsets holds the byte offset of each mesh within
	// the pool, which is what MeshPointers refer to.
	Meshes       []Mesh
	MeshOffsets  []uint32
	MeshPointers []uint32

	Animations     []Anim
	StateChanges   []StateChange
	AnimDispatches []AnimDispatch
	AnimCommands   []uint16
	MeshNodes      []MeshNode
	Frames         []uint16
	Models         []Model
	StaticMeshes   []StaticMesh

	Spr             [3]uint8
	SpriteTextures  []SpriteTexture
	SpriteSequences []SpriteSequence
	Cameras         []Camera
	FlybyCameras    []FlybyCamera
	SoundSources    []SoundSource

	Boxes    []Box
	Overlaps []uint16
	// Zones holds ZonesPerBox entries for every box.
	Zones []uint16

	AnimatedTextures        []uint16
	AnimatedTexturesUVCount uint8
	Tex                     [3]uint8
	ObjectTextures          []ObjectTexture
	Entities                []Entity
	Ais                     []Ai
	DemoData                []byte

	SoundMap      [SoundMapSize]uint16
	SoundDetails  []SoundDetail
	SampleIndices []uint32
	Zero          [6]uint8
}

// MeshIndex returns the index in Meshes of the mesh that starts at the byte offset pointer,
// as stored in MeshPointers. It returns false if no mesh starts there.
func (d *LevelData) MeshIndex(pointer uint32) (int, bool) {
	return slices.BinarySearch(d.MeshOffsets, pointer)
}

// Mesh returns the mesh that starts at the byte offset pointer.
func (d *LevelData) Mesh(pointer uint32) (*Mesh, bool) {
	i, ok := d.MeshIndex(pointer)
	if !ok {
		return nil, false
	}
	return &d.Meshes[i], true
}

type meshPool struct {
	meshes  []Mesh
	offsets []uint32
}

// readMeshPool reads the mesh pool. Its size is stored as a count of 16 bit words.
func readMeshPool(r *codec.Reader) (meshPool, error) {
	m, o, err := codec.Bounded(r, codec.Prefix32, 2, MeshAlign, readMesh)
	return meshPool{meshes: m, offsets: o}, err
}

func readLevelData(r *codec.Reader) (LevelData, error) {
	var d LevelData
	var pool meshPool

	f := codec.NewFields(r)
	f.Skip(4)
	codec.Field(f, "rooms", &d.Rooms, codec.ListOf(codec.Prefix16, readRoom))
	codec.Field(f, "floor_data", &d.FloorData, codec.ListOf(codec.Prefix32, codec.U16))
	codec.Field(f, "meshes", &pool, readMeshPool)
	d.Meshes, d.MeshOffsets = pool.meshes, pool.offsets
	codec.Field(f, "mesh_pointers", &d.MeshPointers, codec.ListOf(codec.Prefix32, codec.U32))
	codec.Field(f, "animations", &d.Animations, codec.ListOf(codec.Prefix32, readAnim))
	codec.Field(f, "state_changes", &d.StateChanges, codec.ListOf(codec.Prefix32, readStateChange))
	codec.Field(f, "anim_dispatches", &d.AnimDispatches, codec.ListOf(codec.Prefix32, readAnimDispatch))
	codec.Field(f, "anim_commands", &d.AnimCommands, codec.ListOf(codec.Prefix32, codec.U16))
	codec.Field(f, "mesh_nodes", &d.MeshNodes, codec.ListOf(codec.Prefix32, readMeshNode))
	codec.Field(f, "frames", &d.Frames, codec.ListOf(codec.Prefix32, codec.U16))
	codec.Field(f, "models", &d.Models, codec.ListOf(codec.Prefix32, readModel))
	codec.Field(f, "static_meshes", &d.StaticMeshes, codec.ListOf(codec.Prefix32, readStaticMesh))
	codec.ArrayField(f, "spr", d.Spr[:], codec.U8)
	codec.Field(f, "sprite_textures", &d.SpriteTextures, codec.ListOf(codec.Prefix32, readSpriteTexture))
	codec.Field(f, "sprite_sequences", &d.SpriteSequences, codec.ListOf(codec.Prefix32, readSpriteSequence))
	codec.Field(f, "cameras", &d.Cameras, codec.ListOf(codec.Prefix32, readCamera))
	codec.Field(f, "flyby_cameras", &d.FlybyCameras, codec.ListOf(codec.Prefix32, readFlybyCamera))
	codec.Field(f, "sound_sources", &d.SoundSources, codec.ListOf(codec.Prefix32, readSoundSource))
	codec.Field(f, "boxes", &d.Boxes, codec.ListOf(codec.Prefix32, readBox))
	f.Save(boxesKey, len(d.Boxes))
	codec.Field(f, "overlaps", &d.Overlaps, codec.ListOf(codec.Prefix32, codec.U16))
	codec.Field(f, "zones", &d.Zones, codec.ListOf(codec.Saved(boxesKey, ZonesPerBox), codec.U16))
	codec.Field(f, "animated_textures", &d.AnimatedTextures, codec.ListOf(codec.Prefix32, codec.U16))
	codec.Field(f, "animated_textures_uv_count", &d.AnimatedTexturesUVCount, codec.U8)
	codec.ArrayField(f, "tex", d.Tex[:], codec.U8)
	codec.Field(f, "object_textures", &d.ObjectTextures, codec.ListOf(codec.Prefix32, readObjectTexture))
	codec.Field(f, "entities", &d.Entities, codec.ListOf(codec.Prefix32, readEntity))
	codec.Field(f, "ais", &d.Ais, codec.ListOf(codec.Prefix32, readAi))
	codec.Field(f, "demo_data", &d.DemoData, codec.BytesOf(codec.Prefix16))
	codec.ArrayField(f, "sound_map", d.SoundMap[:], codec.U16)
	codec.Field(f, "sound_details", &d.SoundDetails, codec.ListOf(codec.Prefix32, readSoundDetail))
	codec.Field(f, "sample_indices", &d.SampleIndices, codec.ListOf(codec.Prefix32, codec.U32))
	codec.ArrayField(f, "zero", d.Zero[:], codec.U8)
	return d, f.Err()
}
