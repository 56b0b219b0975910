package trc

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Summary counts the contents of a Level. It is meant for inspection tools.
type Summary struct {
	Version uint32 `json:"version"`
	Images  int    `json:"images"`

	Rooms         int `json:"rooms"`
	RoomVertices  int `json:"room_vertices"`
	RoomFaces     int `json:"room_faces"`
	Sectors       int `json:"sectors"`
	Lights        int `json:"lights"`
	Portals       int `json:"portals"`
	FlipRooms     int `json:"flip_rooms"`
	FloorDataSize int `json:"floor_data_words"`

	Meshes        int `json:"meshes"`
	LitMeshes     int `json:"lit_meshes"`
	Models        int `json:"models"`
	StaticMeshes  int `json:"static_meshes"`
	Animations    int `json:"animations"`
	StateChanges  int `json:"state_changes"`
	FrameWords    int `json:"frame_words"`
	ObjectTexture int `json:"object_textures"`
	SpriteTexture int `json:"sprite_textures"`

	Cameras      int `json:"cameras"`
	FlybyCameras int `json:"flyby_cameras"`
	Entities     int `json:"entities"`
	Ais          int `json:"ais"`
	Boxes        int `json:"boxes"`
	Zones        int `json:"zones"`

	SoundSources int `json:"sound_sources"`
	SoundDetails int `json:"sound_details"`
	Samples      int `json:"samples"`
	SampleBytes  int `json:"sample_bytes"`
}

// Summary counts the contents of l.
func (l *Level) Summary() Summary {
	d := &l.LevelData
	s := Summary{
		Version:       l.Version,
		Images:        len(l.Images32),
		Rooms:         len(d.Rooms),
		FloorDataSize: len(d.FloorData),
		Meshes:        len(d.Meshes),
		Models:        len(d.Models),
		StaticMeshes:  len(d.StaticMeshes),
		Animations:    len(d.Animations),
		StateChanges:  len(d.StateChanges),
		FrameWords:    len(d.Frames),
		ObjectTexture: len(d.ObjectTextures),
		SpriteTexture: len(d.SpriteTextures),
		Cameras:       len(d.Cameras),
		FlybyCameras:  len(d.FlybyCameras),
		Entities:      len(d.Entities),
		Ais:           len(d.Ais),
		Boxes:         len(d.Boxes),
		Zones:         len(d.Zones),
		SoundSources:  len(d.SoundSources),
		SoundDetails:  len(d.SoundDetails),
		Samples:       len(l.Samples),
	}

	for i := range d.Rooms {
		r := &d.Rooms[i]
		s.RoomVertices += len(r.Vertices)
		s.RoomFaces += len(r.Quads) + len(r.Triangles)
		s.Lights += len(r.Lights)
		s.Portals += len(r.Portals)
		for _, row := range r.Sectors {
			s.Sectors += len(row)
		}
		if r.HasFlipRoom() {
			s.FlipRooms++
		}
	}
	for _, m := range d.Meshes {
		if _, ok := m.Component.(Lights); ok {
			s.LitMeshes++
		}
	}
	for _, smp := range l.Samples {
		s.SampleBytes += len(smp.Data)
	}
	return s
}

// JSON returns s as indented JSON.
func (s Summary) JSON() ([]byte, error) {
	return json.Marshal(s, jsontext.WithIndent("  "))
}
