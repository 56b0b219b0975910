package trc

import (
	"github.com/bearlytools/trc/internal/codec"
)

// Anim is an animation clip. Speeds and accelerations are 16.16 fixed point.
type Anim struct {
	FrameOffset     uint32 // byte offset into LevelData.Frames
	FrameDuration   uint8  // 30ths of a second
	NumFrames       uint8
	State           uint16
	Speed           uint32
	Accel           uint32
	LateralSpeed    uint32
	LateralAccel    uint32
	FrameStart      uint16
	FrameEnd        uint16
	NextAnim        uint16
	NextFrame       uint16
	NumStateChanges uint16
	StateChangeID   uint16 // into LevelData.StateChanges
	NumAnimCommands uint16
	AnimCommandID   uint16 // into LevelData.AnimCommands
}

func readAnim(r *codec.Reader) (Anim, error) {
	var a Anim
	f := codec.NewFields(r)
	codec.Field(f, "frame_offset", &a.FrameOffset, codec.U32)
	codec.Field(f, "frame_duration", &a.FrameDuration, codec.U8)
	codec.Field(f, "num_frames", &a.NumFrames, codec.U8)
	codec.Field(f, "state", &a.State, codec.U16)
	codec.Field(f, "speed", &a.Speed, codec.U32)
	codec.Field(f, "accel", &a.Accel, codec.U32)
	codec.Field(f, "lateral_speed", &a.LateralSpeed, codec.U32)
	codec.Field(f, "lateral_accel", &a.LateralAccel, codec.U32)
	codec.Field(f, "frame_start", &a.FrameStart, codec.U16)
	codec.Field(f, "frame_end", &a.FrameEnd, codec.U16)
	codec.Field(f, "next_anim", &a.NextAnim, codec.U16)
	codec.Field(f, "next_frame", &a.NextFrame, codec.U16)
	codec.Field(f, "num_state_changes", &a.NumStateChanges, codec.U16)
	codec.Field(f, "state_change_id", &a.StateChangeID, codec.U16)
	codec.Field(f, "num_anim_commands", &a.NumAnimCommands, codec.U16)
	codec.Field(f, "anim_command_id", &a.AnimCommandID, codec.U16)
	return a, f.Err()
}

// StateChange lists the dispatches that move an animation into another state.
type StateChange struct {
	State             uint16
	NumAnimDispatches uint16
	AnimDispatchID    uint16 // into LevelData.AnimDispatches
}

func readStateChange(r *codec.Reader) (StateChange, error) {
	var s StateChange
	f := codec.NewFields(r)
	codec.Field(f, "state", &s.State, codec.U16)
	codec.Field(f, "num_anim_dispatches", &s.NumAnimDispatches, codec.U16)
	codec.Field(f, "anim_dispatch_id", &s.AnimDispatchID, codec.U16)
	return s, f.Err()
}

// AnimDispatch moves to NextAnimID when the current frame is within [LowFrame, HighFrame].
type AnimDispatch struct {
	LowFrame    uint16
	HighFrame   uint16
	NextAnimID  uint16 // into LevelData.Animations
	NextFrameID uint16
}

func readAnimDispatch(r *codec.Reader) (AnimDispatch, error) {
	var d AnimDispatch
	f := codec.NewFields(r)
	codec.Field(f, "low_frame", &d.LowFrame, codec.U16)
	codec.Field(f, "high_frame", &d.HighFrame, codec.U16)
	codec.Field(f, "next_anim_id", &d.NextAnimID, codec.U16)
	codec.Field(f, "next_frame_id", &d.NextFrameID, codec.U16)
	return d, f.Err()
}
