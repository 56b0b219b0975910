package trc

import (
	"bytes"
	"io"
	"testing"

	"github.com/bearlytools/trc/internal/binary"
	"github.com/bearlytools/trc/internal/compress"
)

// padByte fills padding so that tests notice if padding is decoded as data.
const padByte = 0xaa

// put appends little-endian values to b.
func put[T binary.Number](b *bytes.Buffer, vals ...T) {
	for _, v := range vals {
		if err := binary.PutBuffer(b, v); err != nil {
			panic(err)
		}
	}
}

// streamOnly hides the Len method of the wrapped reader.
type streamOnly struct {
	io.Reader
}

// section frames payload as a compressed section.
func section(t *testing.T, payload []byte) []byte {
	t.Helper()
	packed, err := compress.Get(compress.CmpZlib).Compress(payload)
	if err != nil {
		t.Fatal(err)
	}
	b := &bytes.Buffer{}
	put(b, uint32(len(payload)), uint32(len(packed)))
	b.Write(packed)
	return b.Bytes()
}

// recWriter writes level records. It is the inverse of the read* functions.
type recWriter struct {
	*bytes.Buffer
}

func (w recWriter) pad(n int) {
	w.Write(bytes.Repeat([]byte{padByte}, n))
}

func (w recWriter) v16(v Vertex[int16]) {
	put(w.Buffer, v.X, v.Y, v.Z)
}

func (w recWriter) v32(v Vertex[int32]) {
	put(w.Buffer, v.X, v.Y, v.Z)
}

func (w recWriter) vf(v Vertex[float32]) {
	put(w.Buffer, v.X, v.Y, v.Z)
}

func list16[T any](w recWriter, items []T, enc func(recWriter, T)) {
	put(w.Buffer, uint16(len(items)))
	for _, it := range items {
		enc(w, it)
	}
}

func list32[T any](w recWriter, items []T, enc func(recWriter, T)) {
	put(w.Buffer, uint32(len(items)))
	for _, it := range items {
		enc(w, it)
	}
}

func writeU16(w recWriter, v uint16) { put(w.Buffer, v) }
func writeU32(w recWriter, v uint32) { put(w.Buffer, v) }

func writeRoomVertex(w recWriter, v RoomVertex) {
	w.v16(v.Vertex)
	w.pad(2)
	put(w.Buffer, v.Flags, v.Color)
}

func writeRoomQuad(w recWriter, q RoomQuad) {
	put(w.Buffer, q.VertexIDs[:]...)
	put(w.Buffer, uint16(q.Texture))
}

func writeRoomTriangle(w recWriter, t RoomTriangle) {
	put(w.Buffer, t.VertexIDs[:]...)
	put(w.Buffer, uint16(t.Texture))
}

func writeSprite(w recWriter, s Sprite) {
	put(w.Buffer, s.VertexID, s.TextureID)
}

func writePortal(w recWriter, p Portal) {
	put(w.Buffer, p.AdjoiningRoomID)
	w.v16(p.Normal)
	for _, v := range p.Vertices {
		w.v16(v)
	}
}

func writeSector(w recWriter, s Sector) {
	put(w.Buffer, s.FloorDataID, s.Bitfields)
	put(w.Buffer, s.RoomBelowID)
	put(w.Buffer, s.Floor)
	put(w.Buffer, s.RoomAboveID)
	put(w.Buffer, s.Ceiling)
}

func writeLight(w recWriter, l Light) {
	w.v32(l.Pos)
	put(w.Buffer, l.R, l.G, l.B, l.LightType)
	w.pad(1)
	put(w.Buffer, l.Intensity)
	put(w.Buffer, l.Hotspot, l.Falloff, l.Length, l.Cutoff)
	w.vf(l.Direction)
}

func writeRoomStaticMesh(w recWriter, m RoomStaticMesh) {
	w.v32(m.Pos)
	put(w.Buffer, m.Rotation, m.Color)
	w.pad(2)
	put(w.Buffer, m.StaticMeshID)
}

func writeRoom(w recWriter, r Room) {
	put(w.Buffer, r.X, r.Z, r.YBottom, r.YTop)
	w.pad(4)
	list16(w, r.Vertices, writeRoomVertex)
	list16(w, r.Quads, writeRoomQuad)
	list16(w, r.Triangles, writeRoomTriangle)
	list16(w, r.Sprites, writeSprite)
	list16(w, r.Portals, writePortal)

	cols := 0
	if len(r.Sectors) > 0 {
		cols = len(r.Sectors[0])
	}
	put(w.Buffer, uint16(len(r.Sectors)), uint16(cols))
	for _, row := range r.Sectors {
		for _, s := range row {
			writeSector(w, s)
		}
	}

	put(w.Buffer, r.Color)
	list16(w, r.Lights, writeLight)
	list16(w, r.RoomStaticMeshes, writeRoomStaticMesh)
	put(w.Buffer, r.FlipRoomID, r.Flags)
	put(w.Buffer, r.WaterEffect, r.Reverb, r.FlipGroup)
}

func writeMeshComponent(w recWriter, c MeshComponent) {
	switch c := c.(type) {
	case Normals:
		put(w.Buffer, int16(len(c)))
		for _, v := range c {
			w.v16(v)
		}
	case Lights:
		put(w.Buffer, -int16(len(c)))
		put(w.Buffer, c...)
	default:
		put(w.Buffer, int16(0))
	}
}

func writeMesh(w recWriter, m Mesh) {
	w.v16(m.Center)
	put(w.Buffer, m.Radius)
	list16(w, m.Vertices, func(w recWriter, v Vertex[int16]) { w.v16(v) })
	writeMeshComponent(w, m.Component)
	list16(w, m.Quads, func(w recWriter, q MeshQuad) {
		put(w.Buffer, q.VertexIDs[:]...)
		put(w.Buffer, q.TextureID, q.LightEffects)
	})
	list16(w, m.Triangles, func(w recWriter, t MeshTriangle) {
		put(w.Buffer, t.VertexIDs[:]...)
		put(w.Buffer, t.TextureID, t.LightEffects)
	})
}

// writeMeshPool writes meshes aligned to MeshAlign, prefixed by the pool size in words.
func writeMeshPool(out recWriter, meshes []Mesh) {
	body := recWriter{&bytes.Buffer{}}
	for _, m := range meshes {
		writeMesh(body, m)
		if r := body.Len() % MeshAlign; r != 0 {
			body.pad(MeshAlign - r)
		}
	}
	put(out.Buffer, uint32(body.Len()/2))
	out.Write(body.Bytes())
}

func writeMeshNode(w recWriter, n MeshNode) {
	put(w.Buffer, n.Flags)
	put(w.Buffer, n.X, n.Y, n.Z)
}

func writeModel(w recWriter, m Model) {
	put(w.Buffer, m.ID)
	put(w.Buffer, m.NumMeshes, m.MeshID)
	put(w.Buffer, m.MeshNodeID, m.FrameOffset)
	put(w.Buffer, m.AnimID)
}

func writeBoundBox(w recWriter, b BoundBox) {
	put(w.Buffer, b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax)
}

func writeStaticMesh(w recWriter, s StaticMesh) {
	put(w.Buffer, s.ID)
	put(w.Buffer, s.MeshID)
	writeBoundBox(w, s.Visibility)
	writeBoundBox(w, s.Collision)
	put(w.Buffer, s.Flags)
}

func writeAnim(w recWriter, a Anim) {
	put(w.Buffer, a.FrameOffset)
	put(w.Buffer, a.FrameDuration, a.NumFrames)
	put(w.Buffer, a.State)
	put(w.Buffer, a.Speed, a.Accel, a.LateralSpeed, a.LateralAccel)
	put(w.Buffer, a.FrameStart, a.FrameEnd, a.NextAnim, a.NextFrame)
	put(w.Buffer, a.NumStateChanges, a.StateChangeID, a.NumAnimCommands, a.AnimCommandID)
}

func writeStateChange(w recWriter, s StateChange) {
	put(w.Buffer, s.State, s.NumAnimDispatches, s.AnimDispatchID)
}

func writeAnimDispatch(w recWriter, d AnimDispatch) {
	put(w.Buffer, d.LowFrame, d.HighFrame, d.NextAnimID, d.NextFrameID)
}

func writeSpriteTexture(w recWriter, s SpriteTexture) {
	put(w.Buffer, s.Atlas)
	w.pad(2)
	put(w.Buffer, s.Width, s.Height)
	put(w.Buffer, s.Left, s.Top, s.Right, s.Bottom)
}

func writeSpriteSequence(w recWriter, s SpriteSequence) {
	put(w.Buffer, s.SpriteID)
	put(w.Buffer, s.NegLength)
	put(w.Buffer, s.Offset)
}

func writeCamera(w recWriter, c Camera) {
	w.v32(c.Pos)
	put(w.Buffer, c.RoomID, c.Flags)
}

func writeFlybyCamera(w recWriter, c FlybyCamera) {
	w.v32(c.Pos)
	w.v32(c.Direction)
	put(w.Buffer, c.Chain, c.Index)
	put(w.Buffer, c.FOV)
	put(w.Buffer, c.Roll)
	put(w.Buffer, c.Timer, c.Speed, c.Flags)
	put(w.Buffer, c.RoomID)
}

func writeSoundSource(w recWriter, s SoundSource) {
	w.v32(s.Pos)
	put(w.Buffer, s.SoundID, s.Flags)
}

func writeBox(w recWriter, b Box) {
	put(w.Buffer, b.ZMin, b.ZMax, b.XMin, b.XMax)
	put(w.Buffer, b.Y)
	put(w.Buffer, b.Overlap)
}

func writeObjectTexture(w recWriter, o ObjectTexture) {
	put(w.Buffer, o.BlendMode, o.AtlasAndFlag, o.Flags)
	for _, v := range o.Vertices {
		put(w.Buffer, v.X, v.Y)
	}
	w.pad(8)
	put(w.Buffer, o.Width, o.Height)
}

func writeEntity(w recWriter, e Entity) {
	put(w.Buffer, e.ModelID, e.RoomID)
	w.v32(e.Pos)
	put(w.Buffer, e.Angle)
	put(w.Buffer, e.LightIntensity, e.OCB, e.Flags)
}

func writeAi(w recWriter, a Ai) {
	put(w.Buffer, a.ModelID, a.RoomID)
	w.v32(a.Pos)
	put(w.Buffer, a.OCB, a.Flags)
	put(w.Buffer, a.Angle)
}

func writeSoundDetail(w recWriter, s SoundDetail) {
	w.pad(2)
	put(w.Buffer, s.Volume, s.Range, s.Chance, s.Pitch)
	put(w.Buffer, s.Flags)
}

func writeLevelData(d *LevelData) []byte {
	w := recWriter{&bytes.Buffer{}}
	w.pad(4)
	list16(w, d.Rooms, writeRoom)
	list32(w, d.FloorData, writeU16)
	writeMeshPool(w, d.Meshes)
	list32(w, d.MeshPointers, writeU32)
	list32(w, d.Animations, writeAnim)
	list32(w, d.StateChanges, writeStateChange)
	list32(w, d.AnimDispatches, writeAnimDispatch)
	list32(w, d.AnimCommands, writeU16)
	list32(w, d.MeshNodes, writeMeshNode)
	list32(w, d.Frames, writeU16)
	list32(w, d.Models, writeModel)
	list32(w, d.StaticMeshes, writeStaticMesh)
	put(w.Buffer, d.Spr[:]...)
	list32(w, d.SpriteTextures, writeSpriteTexture)
	list32(w, d.SpriteSequences, writeSpriteSequence)
	list32(w, d.Cameras, writeCamera)
	list32(w, d.FlybyCameras, writeFlybyCamera)
	list32(w, d.SoundSources, writeSoundSource)
	list32(w, d.Boxes, writeBox)
	list32(w, d.Overlaps, writeU16)
	put(w.Buffer, d.Zones...) // count comes from Boxes
	list32(w, d.AnimatedTextures, writeU16)
	put(w.Buffer, d.AnimatedTexturesUVCount)
	put(w.Buffer, d.Tex[:]...)
	list32(w, d.ObjectTextures, writeObjectTexture)
	list32(w, d.Entities, writeEntity)
	list32(w, d.Ais, writeAi)
	put(w.Buffer, uint16(len(d.DemoData)))
	w.Write(d.DemoData)
	put(w.Buffer, d.SoundMap[:]...)
	list32(w, d.SoundDetails, writeSoundDetail)
	list32(w, d.SampleIndices, writeU32)
	put(w.Buffer, d.Zero[:]...)
	return w.Bytes()
}

// encoded is a level file and the offsets in it where each top level value ends.
type encoded struct {
	data  []byte
	marks []int
}

func writeLevel(t *testing.T, l *Level) encoded {
	t.Helper()

	b := &bytes.Buffer{}
	marks := []int{0}
	mark := func() { marks = append(marks, b.Len()) }

	put(b, l.Version)
	mark()
	put(b, l.NumRoomImages, l.NumObjImages, l.NumBumpMaps)
	mark()

	var img32, img16, misc []byte
	for _, img := range l.Images32 {
		img32 = append(img32, img[:]...)
	}
	for _, img := range l.Images16 {
		img16 = append(img16, img[:]...)
	}
	for _, img := range l.MiscImages {
		misc = append(misc, img[:]...)
	}
	b.Write(section(t, img32))
	mark()
	b.Write(section(t, img16))
	mark()
	b.Write(section(t, misc))
	mark()
	b.Write(section(t, writeLevelData(&l.LevelData)))
	mark()

	put(b, uint32(len(l.Samples)))
	mark()
	for _, s := range l.Samples {
		put(b, s.Uncompressed, uint32(len(s.Data)))
		b.Write(s.Data)
		mark()
	}
	return encoded{data: b.Bytes(), marks: marks}
}

func image32(seed byte) *Image32 {
	img := &Image32{}
	for i := 0; i < len(img); i += 4099 {
		img[i] = seed + byte(i)
	}
	return img
}

func image16(seed byte) *Image16 {
	img := &Image16{}
	for i := 0; i < len(img); i += 2053 {
		img[i] = seed + byte(i)
	}
	return img
}

// testLevel returns a level that uses every record type and count strategy.
func testLevel() *Level {
	var sectors [][]Sector
	for row := 0; row < 3; row++ {
		var cols []Sector
		for col := 0; col < 2; col++ {
			cols = append(cols, Sector{
				FloorDataID: uint16(row*2 + col),
				Bitfields:   0x0100,
				RoomBelowID: NoRoom,
				Floor:       int8(-row),
				RoomAboveID: uint8(col),
				Ceiling:     -20,
			})
		}
		sectors = append(sectors, cols)
	}

	boxes := []Box{
		{ZMin: 1, ZMax: 2, XMin: 3, XMax: 4, Y: -256, Overlap: 0},
		{ZMin: 5, ZMax: 6, XMin: 7, XMax: 8, Y: -512, Overlap: 1},
		{ZMin: 9, ZMax: 10, XMin: 11, XMax: 12, Y: 0, Overlap: 0x8002},
		{ZMin: 13, ZMax: 14, XMin: 15, XMax: 16, Y: 128, Overlap: 3},
	}
	zones := make([]uint16, len(boxes)*ZonesPerBox)
	for i := range zones {
		zones[i] = uint16(1000 + i)
	}

	var soundMap [SoundMapSize]uint16
	for i := range soundMap {
		soundMap[i] = NoSound
	}
	soundMap[0], soundMap[369] = 0, 1

	return &Level{
		Version:       0x00345254,
		NumRoomImages: 2,
		NumObjImages:  1,
		NumBumpMaps:   0,
		Images32:      []*Image32{image32(1), image32(2), image32(3)},
		Images16:      []*Image16{image16(4), image16(5), image16(6)},
		MiscImages:    [NumMiscImages]*Image32{image32(7), image32(8)},
		LevelData: LevelData{
			Rooms: []Room{
				{
					X: 1024, Z: 2048, YBottom: 0, YTop: -1024,
					Vertices: []RoomVertex{
						{Vertex: Vertex[int16]{1, -2, 3}, Flags: 0x10, Color: 0x7fff},
						{Vertex: Vertex[int16]{1024, 0, -1024}, Flags: 0, Color: 0x4210},
					},
					Quads:     []RoomQuad{{VertexIDs: [4]uint16{0, 1, 1, 0}, Texture: 0x8003}},
					Triangles: []RoomTriangle{{VertexIDs: [3]uint16{0, 1, 0}, Texture: 7}},
					Sprites:   []Sprite{{VertexID: 1, TextureID: 0}},
					Portals: []Portal{
						{
							AdjoiningRoomID: 1,
							Normal:          Vertex[int16]{0, 0, -1},
							Vertices: [4]Vertex[int16]{
								{0, 0, 0}, {1024, 0, 0}, {1024, -1024, 0}, {0, -1024, 0},
							},
						},
					},
					Sectors: sectors,
					Color:   0xff808080,
					Lights: []Light{
						{
							Pos: Vertex[int32]{5000, -512, 7000},
							R:   255, G: 128, B: 0, LightType: 1, Intensity: 31,
							Hotspot: 1.5, Falloff: 3.25, Length: 0, Cutoff: -1,
							Direction: Vertex[float32]{0, -1, 0.5},
						},
					},
					RoomStaticMeshes: []RoomStaticMesh{
						{Pos: Vertex[int32]{1536, 0, 2560}, Rotation: 0x4000, Color: 0x3def, StaticMeshID: 10},
					},
					FlipRoomID:  NoFlipRoom,
					Flags:       0x0001,
					WaterEffect: 2,
					Reverb:      3,
					FlipGroup:   0,
				},
				{
					X: -1024, Z: 0, YBottom: 256, YTop: -768,
					FlipRoomID: 0,
				},
			},
			FloorData: []uint16{0, 0x8001, 0x0002},
			Meshes: []Mesh{
				{
					Center:    Vertex[int16]{0, -100, 0},
					Radius:    300,
					Vertices:  []Vertex[int16]{{10, 20, 30}},
					Component: Normals{{0, -16384, 0}},
					Quads: []MeshQuad{
						{VertexIDs: [4]uint16{0, 0, 0, 0}, MeshFace: MeshFace{TextureID: 2, LightEffects: 1}},
					},
				},
				{
					Center:    Vertex[int16]{1, 2, 3},
					Radius:    -4,
					Vertices:  []Vertex[int16]{{-1, -2, -3}, {4, 5, 6}},
					Component: Lights{0x1f1f, 0x0a0a},
					Triangles: []MeshTriangle{
						{VertexIDs: [3]uint16{0, 1, 0}, MeshFace: MeshFace{TextureID: 0x8001, LightEffects: 0}},
					},
				},
				{
					Radius:    1,
					Component: Lights(nil),
				},
			},
			// Mesh sizes are 42, 44 and 18 bytes, padded to 44, 44 and 20.
			MeshOffsets:  []uint32{0, 44, 88},
			MeshPointers: []uint32{0, 44, 88},
			Animations: []Anim{
				{
					FrameOffset: 0, FrameDuration: 1, NumFrames: 10, State: 2,
					Speed: 0x00010000, Accel: 0xfffff000, LateralSpeed: 0, LateralAccel: 0,
					FrameStart: 0, FrameEnd: 9, NextAnim: 0, NextFrame: 0,
					NumStateChanges: 1, StateChangeID: 0, NumAnimCommands: 2, AnimCommandID: 0,
				},
			},
			StateChanges:   []StateChange{{State: 3, NumAnimDispatches: 1, AnimDispatchID: 0}},
			AnimDispatches: []AnimDispatch{{LowFrame: 0, HighFrame: 5, NextAnimID: 0, NextFrameID: 3}},
			AnimCommands:   []uint16{5, 1},
			MeshNodes:      []MeshNode{{Flags: 2, X: -1, Y: 0, Z: 127}},
			Frames:         []uint16{0, 1, 2, 3, 4, 5, 6, 7, 8},
			Models: []Model{
				{ID: 0, NumMeshes: 2, MeshID: 0, MeshNodeID: 0, FrameOffset: 0, AnimID: 0},
				{ID: 405, NumMeshes: 1, MeshID: 2, MeshNodeID: 1, FrameOffset: 18, AnimID: NoAnim},
			},
			StaticMeshes: []StaticMesh{
				{
					ID: 10, MeshID: 1,
					Visibility: BoundBox{-512, 512, -1024, 0, -512, 512},
					Collision:  BoundBox{-256, 256, -512, 0, -256, 256},
					Flags:      2,
				},
			},
			Spr:             [3]uint8{'S', 'P', 'R'},
			SpriteTextures:  []SpriteTexture{{Atlas: 1, Width: 0x3f00, Height: 0x1f00, Left: -64, Top: -128, Right: 64, Bottom: 0}},
			SpriteSequences: []SpriteSequence{{SpriteID: 406, NegLength: -1, Offset: 0}},
			Cameras:         []Camera{{Pos: Vertex[int32]{100, 200, 300}, RoomID: 0, Flags: 1}},
			FlybyCameras: []FlybyCamera{
				{
					Pos: Vertex[int32]{1, 2, 3}, Direction: Vertex[int32]{4, 5, 6},
					Chain: 1, Index: 2, FOV: 80, Roll: -5, Timer: 30, Speed: 10, Flags: 0x0400, RoomID: 1,
				},
			},
			SoundSources:            []SoundSource{{Pos: Vertex[int32]{-1, -2, -3}, SoundID: 0, Flags: 0x80}},
			Boxes:                   boxes,
			Overlaps:                []uint16{1, 0x8000, 2, 3},
			Zones:                   zones,
			AnimatedTextures:        []uint16{1, 1, 0},
			AnimatedTexturesUVCount: 4,
			Tex:                     [3]uint8{'T', 'E', 'X'},
			ObjectTextures: []ObjectTexture{
				{
					BlendMode: 2, AtlasAndFlag: 0x8002, Flags: 1,
					Vertices: [4]ObjectTextureVertex{{0, 0}, {0xff00, 0}, {0, 0xff00}, {0, 0}},
					Width:    0xff00, Height: 0xff00,
				},
			},
			Entities: []Entity{
				{ModelID: 0, RoomID: 0, Pos: Vertex[int32]{1536, 0, 2560}, Angle: -16384, LightIntensity: UseMeshLight, OCB: 3, Flags: 0x3e00},
			},
			Ais:           []Ai{{ModelID: 398, RoomID: 1, Pos: Vertex[int32]{-512, 0, 512}, OCB: 1, Flags: 0, Angle: 90}},
			DemoData:      []byte{9, 8, 7},
			SoundMap:      soundMap,
			SoundDetails:  []SoundDetail{{Volume: 200, Range: 8, Chance: 0, Pitch: 10, Flags: 0x0101}},
			SampleIndices: []uint32{0, 1},
			Zero:          [6]uint8{0, 0, 0, 0, 0, 0},
		},
		Samples: []Sample{
			{Uncompressed: 44, Data: []byte("RIFF\x24\x00\x00\x00WAVE")},
			{Uncompressed: 0, Data: nil},
		},
	}
}
