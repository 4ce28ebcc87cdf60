package orch

import (
	"errors"
	"sync"

	"github.com/dkeye/djrelay/internal/app"
	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator is the presence router. Every handler runs under mu, so
// registration, room membership and counters change as one step.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomManager
	Stats    *app.Stats
	Policy   app.Policy

	mu sync.Mutex
}

var _ core.Presence = (*Orchestrator)(nil)

func (o *Orchestrator) OnConnect(sid core.SessionID, conn core.SignalConnection) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.Registry.BindSignal(sid, conn)
	o.Stats.Connected()
	o.sendTo(sid, domain.EvRegister, domain.Empty{})
	log.Trace().Str("module", "orch").Str("sid", string(sid)).Msg("connected")
}

// OnDisconnect stops broadcasting, then listening, then frees the identity.
// Repeated calls for the same handle are ignored.
func (o *Orchestrator) OnDisconnect(sid core.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.Registry.Signal(sid); !ok {
		return
	}
	if sess, ok := o.Registry.Resolve(sid); ok {
		if sess.IsBroadcasting() {
			o.stopBroadcasting(sid, sess)
		}
		if sess.IsListening() {
			o.stopListening(sid, sess)
		}
		o.Registry.Release(sid)
		log.Trace().Str("module", "orch").Str("identity", string(sess.Identity())).Int("registered", o.Registry.Count()).Msg("disconnected")
	}
	o.Registry.Unbind(sid)
	o.Stats.Disconnected()
}

func (o *Orchestrator) OnRegister(sid core.SessionID, name domain.Identity) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.Registry.Signal(sid); !ok {
		dropped(sid, domain.EvRegister, "unknown connection")
		return
	}
	if _, ok := o.Registry.Register(sid, name); !ok {
		dropped(sid, domain.EvRegister, "already registered")
	}
}

func (o *Orchestrator) sendTo(sid core.SessionID, event string, payload any) {
	conn, ok := o.Registry.Signal(sid)
	if !ok {
		return
	}
	frame, err := core.EncodeEvent(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("event", event).Msg("encode")
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("event", event).Msg("send failed")
		if !errors.Is(err, core.ErrConnClosed) {
			o.backpressure(nil, sid)
		}
	}
}

// broadcastRoom fans an event out to every member of name except from.
func (o *Orchestrator) broadcastRoom(name domain.RoomName, from core.SessionID, event string, payload any) {
	room, ok := o.Rooms.Get(name)
	if !ok {
		return
	}
	frame, err := core.EncodeEvent(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("event", event).Msg("encode")
		return
	}
	res := room.Broadcast(from, frame)
	for _, slow := range res.Dropped {
		o.backpressure(room, slow)
	}
}

func (o *Orchestrator) backpressure(room core.RoomService, sid core.SessionID) {
	if o.Policy == nil {
		return
	}
	switch o.Policy.OnBackPressure(room, sid) {
	case app.KickMember:
		if conn, ok := o.Registry.Signal(sid); ok {
			log.Warn().Str("module", "orch").Str("sid", string(sid)).Msg("kicking slow member")
			conn.Close()
		}
	case app.DropFrame, app.NoAction:
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Msg("frame dropped")
	}
}

func dropped(sid core.SessionID, event, reason string) {
	log.Trace().Str("module", "orch").Str("sid", string(sid)).Str("event", event).Str("reason", reason).Msg("event dropped")
}
