package core

import "github.com/dkeye/djrelay/internal/domain"

// Presence is the event port a transport drives. Every method is safe to
// call from any goroutine; the implementation serializes them.
type Presence interface {
	OnConnect(sid SessionID, conn SignalConnection)
	OnDisconnect(sid SessionID)

	OnRegister(sid SessionID, name domain.Identity)
	OnStart(sid SessionID, state domain.NowPlaying)
	OnStop(sid SessionID)
	OnChange(sid SessionID, state domain.NowPlaying)
	OnSubscribe(sid SessionID, target domain.Identity)
	OnUnsubscribe(sid SessionID)
	OnChat(sid SessionID, text string)
}

// StatsSnapshot is the read surface for status endpoints.
type StatsSnapshot struct {
	Connected       int               `json:"connected"`
	Listening       int               `json:"listening"`
	Broadcasters    int               `json:"broadcasters"`
	BroadcasterList []domain.Identity `json:"broadcaster_list"`
}

type StatsReader interface {
	Snapshot() StatsSnapshot
}
