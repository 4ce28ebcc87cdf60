package core

import (
	"github.com/dkeye/djrelay/internal/domain"
)

// PublishResult reports delivery stats/backpressure to orchestrator.
// Dropped members had a full queue; Closed members are already going away.
type PublishResult struct {
	SendTo  int
	Dropped []SessionID
	Closed  []SessionID
}

// RoomService is the core-facing API of a room.
// It owns the membership set but never touches transport resources.
type RoomService interface {
	Room() *domain.Room
	MemberCount() int
	Members() []SessionID
	HasMember(sid SessionID) bool

	AddMember(sid SessionID, conn SignalConnection)
	RemoveMember(sid SessionID)
	Broadcast(from SessionID, data Frame) PublishResult
}

type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	Owner       domain.Identity `json:"owner"`
	MemberCount int             `json:"members"`
}

// RoomLister is the read-only view used by the status endpoints.
type RoomLister interface {
	List() []RoomInfo
}

type RoomManager interface {
	RoomLister
	GetOrCreate(name domain.RoomName) RoomService
	Get(name domain.RoomName) (RoomService, bool)
	// Release drops the room once it has no members left.
	Release(name domain.RoomName)
}
