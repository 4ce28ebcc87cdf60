package orch

import (
	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) OnStart(sid core.SessionID, state domain.NowPlaying) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.Registry.Resolve(sid)
	if !ok || sess.IsBroadcasting() {
		dropped(sid, domain.EvStart, "not registered or already broadcasting")
		return
	}
	o.startBroadcasting(sid, sess, state)
}

func (o *Orchestrator) OnStop(sid core.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.Registry.Resolve(sid)
	if !ok || !sess.IsBroadcasting() {
		dropped(sid, domain.EvStop, "not broadcasting")
		return
	}
	o.stopBroadcasting(sid, sess)
}

func (o *Orchestrator) OnChange(sid core.SessionID, state domain.NowPlaying) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.Registry.Resolve(sid)
	if !ok || !sess.IsBroadcasting() {
		dropped(sid, domain.EvChange, "not broadcasting")
		return
	}
	self := sess.Identity()
	sess.SetCurrent(state)
	o.broadcastRoom(domain.RoomOf(self), sid, domain.EvUpdate, state.WithFrom(self))
	log.Trace().Str("module", "orch").Str("identity", string(self)).Msg("state changed")
}

func (o *Orchestrator) startBroadcasting(sid core.SessionID, sess *domain.Session, state domain.NowPlaying) {
	self := sess.Identity()
	room := domain.RoomOf(self)

	sess.StartBroadcast(state)
	o.joinRoom(sid, room)
	o.broadcastRoom(room, sid, domain.EvJoin, domain.PresenceMessage{From: self})
	o.broadcastRoom(room, sid, domain.EvUpdate, state.WithFrom(self))
	o.sendTo(sid, domain.EvUsers, domain.UsersMessage{Users: o.usersOf(room)})

	o.Stats.BroadcasterAdded(self)
	log.Info().Str("module", "orch").Str("identity", string(self)).Msg("started broadcasting")
}

func (o *Orchestrator) stopBroadcasting(sid core.SessionID, sess *domain.Session) {
	self := sess.Identity()
	room := domain.RoomOf(self)

	sess.StopBroadcast()
	o.broadcastRoom(room, sid, domain.EvStop, domain.Empty{})
	o.broadcastRoom(room, sid, domain.EvPart, domain.PresenceMessage{From: self})
	o.leaveRoom(sid, sess, room)

	o.Stats.BroadcasterRemoved(self)
	log.Info().Str("module", "orch").Str("identity", string(self)).Msg("stopped broadcasting")
}
