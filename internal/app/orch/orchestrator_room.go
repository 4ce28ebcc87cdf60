package orch

import (
	"sort"

	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) OnSubscribe(sid core.SessionID, target domain.Identity) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.Registry.Resolve(sid)
	if !ok {
		dropped(sid, domain.EvSubscribe, "not registered")
		return
	}
	if target == "" {
		dropped(sid, domain.EvSubscribe, "empty target")
		return
	}
	if sess.IsListening() {
		o.stopListening(sid, sess)
	}
	o.startListening(sid, sess, target)
}

func (o *Orchestrator) OnUnsubscribe(sid core.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.Registry.Resolve(sid)
	if !ok || !sess.IsListening() {
		dropped(sid, domain.EvUnsubscribe, "not listening")
		return
	}
	o.stopListening(sid, sess)
}

// OnChat goes to the sender's own room while broadcasting, otherwise to
// the room it listens to.
func (o *Orchestrator) OnChat(sid core.SessionID, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.Registry.Resolve(sid)
	if !ok {
		dropped(sid, domain.EvChat, "not registered")
		return
	}
	var room domain.RoomName
	switch target, listening := sess.ListeningTo(); {
	case sess.IsBroadcasting():
		room = domain.RoomOf(sess.Identity())
	case listening:
		room = domain.RoomOf(target)
	default:
		dropped(sid, domain.EvChat, "no room")
		return
	}
	o.broadcastRoom(room, sid, domain.EvChat, domain.ChatMessage{Text: text, From: sess.Identity()})
	log.Trace().Str("module", "orch").Str("identity", string(sess.Identity())).Str("room", string(room)).Msg("chat")
}

func (o *Orchestrator) startListening(sid core.SessionID, sess *domain.Session, target domain.Identity) {
	self := sess.Identity()
	room := domain.RoomOf(target)

	sess.ListenTo(target)
	o.joinRoom(sid, room)
	o.broadcastRoom(room, sid, domain.EvJoin, domain.PresenceMessage{From: self})
	o.sendTo(sid, domain.EvUsers, domain.UsersMessage{Users: o.usersOf(room)})

	if host, ok := o.Registry.Lookup(target); ok && host.IsBroadcasting() {
		o.sendTo(sid, domain.EvUpdate, host.Current().WithFrom(target))
	} else {
		o.sendTo(sid, domain.EvNoDJ, domain.Empty{})
	}

	o.Stats.ListenerAdded()
	log.Debug().Str("module", "orch").Str("identity", string(self)).Str("target", string(target)).Msg("started listening")
}

func (o *Orchestrator) stopListening(sid core.SessionID, sess *domain.Session) {
	target, _ := sess.ListeningTo()
	room := domain.RoomOf(target)

	o.broadcastRoom(room, sid, domain.EvPart, domain.PresenceMessage{From: sess.Identity()})
	sess.StopListening()
	o.leaveRoom(sid, sess, room)

	o.Stats.ListenerRemoved()
	log.Debug().Str("module", "orch").Str("identity", string(sess.Identity())).Str("target", string(target)).Msg("stopped listening")
}

func (o *Orchestrator) joinRoom(sid core.SessionID, name domain.RoomName) {
	conn, ok := o.Registry.Signal(sid)
	if !ok {
		return
	}
	o.Rooms.GetOrCreate(name).AddMember(sid, conn)
}

// leaveRoom removes sid from name unless the session still needs it for
// its other role.
func (o *Orchestrator) leaveRoom(sid core.SessionID, sess *domain.Session, name domain.RoomName) {
	if sess.InRoom(name) {
		return
	}
	room, ok := o.Rooms.Get(name)
	if !ok {
		return
	}
	room.RemoveMember(sid)
	o.Rooms.Release(name)
}

// usersOf lists the identities currently joined to name.
func (o *Orchestrator) usersOf(name domain.RoomName) []domain.Identity {
	users := []domain.Identity{}
	room, ok := o.Rooms.Get(name)
	if !ok {
		return users
	}
	for _, sid := range room.Members() {
		if id, ok := o.Registry.IdentityOf(sid); ok {
			users = append(users, id)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	return users
}
