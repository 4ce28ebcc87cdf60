package core

import (
	"errors"
	"sort"
	"sync"

	"github.com/dkeye/djrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources.
type roomImpl struct {
	room  *domain.Room
	mu    sync.RWMutex
	bySID map[SessionID]SignalConnection
}

func NewRoomService(room *domain.Room) RoomService {
	return &roomImpl{
		room:  room,
		bySID: make(map[SessionID]SignalConnection),
	}
}

func (r *roomImpl) Room() *domain.Room { return r.room }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bySID)
}

func (r *roomImpl) HasMember(sid SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.bySID[sid]
	return ok
}

func (r *roomImpl) AddMember(sid SessionID, conn SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySID[sid] = conn
	log.Debug().Str("module", "core.room").Str("room", string(r.room.Name)).Str("sid", string(sid)).Msg("member added")
}

func (r *roomImpl) RemoveMember(sid SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bySID, sid)
	log.Debug().Str("module", "core.room").Str("room", string(r.room.Name)).Str("sid", string(sid)).Msg("member removed")
}

// Members returns a sorted snapshot of the current member handles.
func (r *roomImpl) Members() []SessionID {
	r.mu.RLock()
	out := make([]SessionID, 0, len(r.bySID))
	for sid := range r.bySID {
		out = append(out, sid)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *roomImpl) Broadcast(from SessionID, data Frame) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for sid, conn := range r.bySID {
		if sid == from {
			continue
		}
		switch err := conn.TrySend(data); {
		case err == nil:
			res.SendTo++
		case errors.Is(err, ErrConnClosed):
			res.Closed = append(res.Closed, sid)
		default:
			res.Dropped = append(res.Dropped, sid)
		}
	}
	log.Trace().Str("module", "core.room").Str("room", string(r.room.Name)).Str("from", string(from)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Int("closed", len(res.Closed)).Msg("broadcast result")
	return res
}
