package app

import (
	"github.com/dkeye/djrelay/internal/core"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to a member whose send queue rejected a frame.
type Policy interface {
	OnBackPressure(room core.RoomService, sid core.SessionID) BackpressureAction
}

// DropPolicy discards the frame and keeps the member.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(core.RoomService, core.SessionID) BackpressureAction {
	return DropFrame
}

// KickPolicy disconnects slow members.
type KickPolicy struct{}

func (KickPolicy) OnBackPressure(core.RoomService, core.SessionID) BackpressureAction {
	return KickMember
}

// PolicyFromString maps the config value to a policy; unknown values drop.
func PolicyFromString(s string) Policy {
	if s == "kick" {
		return KickPolicy{}
	}
	return DropPolicy{}
}
