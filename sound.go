package trc

import (
	"github.com/bearlytools/trc/internal/codec"
)

// SoundMapSize is the number of entries in LevelData.SoundMap.
const SoundMapSize = 370

// NoSound is a LevelData.SoundMap entry without a sound.
const NoSound = 65535

// SoundDetail describes how a sound effect is played.
type SoundDetail struct {
	Volume uint8
	Range  uint8 // in sectors
	Chance uint8
	Pitch  uint8
	Flags  uint16
}

func readSoundDetail(r *codec.Reader) (SoundDetail, error) {
	var s SoundDetail
	f := codec.NewFields(r)
	f.Skip(2)
	codec.Field(f, "volume", &s.Volume, codec.U8)
	codec.Field(f, "range", &s.Range, codec.U8)
	codec.Field(f, "chance", &s.Chance, codec.U8)
	codec.Field(f, "pitch", &s.Pitch, codec.U8)
	codec.Field(f, "flags", &s.Flags, codec.U16)
	return s, f.Err()
}

// Sample is an audio payload. Data is kept exactly as stored in the file.
type Sample struct {
	Uncompressed uint32
	Data         []byte
}

func readSample(r *codec.Reader) (Sample, error) {
	var s Sample
	f := codec.NewFields(r)
	codec.Field(f, "uncompressed", &s.Uncompressed, codec.U32)
	codec.Field(f, "data", &s.Data, codec.BytesOf(codec.Prefix32))
	return s, f.Err()
}
