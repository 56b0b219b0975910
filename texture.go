package trc

import (
	"github.com/bearlytools/trc/internal/bits"
	"github.com/bearlytools/trc/internal/codec"
)

const (
	// ImageDim is the width and height of every texture atlas page.
	ImageDim = 256
	// NumPixels is the number of pixels in an atlas page.
	NumPixels = ImageDim * ImageDim

	// Image32Size is the size in bytes of a 32 bit per pixel atlas page.
	Image32Size = 4 * NumPixels
	// Image16Size is the size in bytes of a 16 bit per pixel atlas page.
	Image16Size = 2 * NumPixels

	// NumMiscImages is the number of pages in Level.MiscImages.
	NumMiscImages = 2
)

// Image32 is a 256x256 atlas page with 4 bytes per pixel.
type Image32 [Image32Size]byte

// Image16 is a 256x256 atlas page with 2 bytes per pixel.
type Image16 [Image16Size]byte

func readImage32(r *codec.Reader) (*Image32, error) {
	b, err := r.Bytes(Image32Size)
	if err != nil {
		return nil, err
	}
	return (*Image32)(b), nil
}

func readImage16(r *codec.Reader) (*Image16, error) {
	b, err := r.Bytes(Image16Size)
	if err != nil {
		return nil, err
	}
	return (*Image16)(b), nil
}

func readMiscImages(r *codec.Reader) ([NumMiscImages]*Image32, error) {
	var imgs [NumMiscImages]*Image32
	err := codec.Array(r, imgs[:], readImage32)
	return imgs, err
}

// SpriteTexture is the area of an atlas page a sprite is drawn from.
type SpriteTexture struct {
	Atlas  uint16 // into the Level image lists
	Width  uint16
	Height uint16
	Left   int16
	Top    int16
	Right  int16
	Bottom int16
}

func readSpriteTexture(r *codec.Reader) (SpriteTexture, error) {
	var s SpriteTexture
	f := codec.NewFields(r)
	codec.Field(f, "atlas", &s.Atlas, codec.U16)
	f.Skip(2)
	codec.Field(f, "width", &s.Width, codec.U16)
	codec.Field(f, "height", &s.Height, codec.U16)
	codec.Field(f, "left", &s.Left, codec.I16)
	codec.Field(f, "top", &s.Top, codec.I16)
	codec.Field(f, "right", &s.Right, codec.I16)
	codec.Field(f, "bottom", &s.Bottom, codec.I16)
	return s, f.Err()
}

// SpriteSequence is a run of sprite textures used by one sprite object.
type SpriteSequence struct {
	SpriteID  uint32 // matched against Model.ID
	NegLength int16  // negated number of textures
	Offset    uint16 // into LevelData.SpriteTextures
}

func readSpriteSequence(r *codec.Reader) (SpriteSequence, error) {
	var s SpriteSequence
	f := codec.NewFields(r)
	codec.Field(f, "sprite_id", &s.SpriteID, codec.U32)
	codec.Field(f, "neg_length", &s.NegLength, codec.I16)
	codec.Field(f, "offset", &s.Offset, codec.U16)
	return s, f.Err()
}

// ObjectTextureVertex is a fixed point texture coordinate.
type ObjectTextureVertex struct {
	X, Y uint16
}

func readObjectTextureVertex(r *codec.Reader) (ObjectTextureVertex, error) {
	var v ObjectTextureVertex
	f := codec.NewFields(r)
	codec.Field(f, "x", &v.X, codec.U16)
	codec.Field(f, "y", &v.Y, codec.U16)
	return v, f.Err()
}

// ObjectTexture maps a face onto an atlas page.
type ObjectTexture struct {
	BlendMode uint16
	// AtlasAndFlag holds the atlas page in bits 0-14. Bit 15 is set for triangle faces.
	AtlasAndFlag uint16
	Flags        uint16
	// Vertices are the texture coordinates of the corners. The fourth is unused for
	// triangles.
	Vertices [4]ObjectTextureVertex
	Width    uint32
	Height   uint32
}

// Atlas returns the index of the atlas page.
func (o ObjectTexture) Atlas() uint16 {
	return bits.GetValue[uint16, uint16](o.AtlasAndFlag, indexMask, 0)
}

// Triangle reports if the texture is for a triangle face.
func (o ObjectTexture) Triangle() bool {
	return bits.GetBit(o.AtlasAndFlag, flagBit)
}

func readObjectTexture(r *codec.Reader) (ObjectTexture, error) {
	var o ObjectTexture
	f := codec.NewFields(r)
	codec.Field(f, "blend_mode", &o.BlendMode, codec.U16)
	codec.Field(f, "atlas_and_flag", &o.AtlasAndFlag, codec.U16)
	codec.Field(f, "flags", &o.Flags, codec.U16)
	codec.ArrayField(f, "vertices", o.Vertices[:], readObjectTextureVertex)
	f.Skip(8)
	codec.Field(f, "width", &o.Width, codec.U32)
	codec.Field(f, "height", &o.Height, codec.U32)
	return o, f.Err()
}
