package app

import (
	"sort"
	"sync"

	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomTable keys rooms by broadcaster identity. A room lives while it has
// members, whether or not its owner is on air.
type RoomTable struct {
	mu    sync.RWMutex
	rooms map[domain.RoomName]core.RoomService
}

func NewRoomManager() *RoomTable {
	return &RoomTable{rooms: make(map[domain.RoomName]core.RoomService)}
}

var _ core.RoomManager = (*RoomTable)(nil)

func (t *RoomTable) GetOrCreate(name domain.RoomName) core.RoomService {
	t.mu.RLock()
	room, ok := t.rooms[name]
	t.mu.RUnlock()
	if ok {
		return room
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if room, ok = t.rooms[name]; ok {
		return room
	}
	room = core.NewRoomService(&domain.Room{Name: name, Owner: domain.Identity(name)})
	t.rooms[name] = room
	log.Debug().Str("module", "app.rooms").Str("room", string(name)).Msg("room opened")
	return room
}

func (t *RoomTable) Get(name domain.RoomName) (core.RoomService, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	room, ok := t.rooms[name]
	return room, ok
}

// List returns every open room ordered by name.
func (t *RoomTable) List() []core.RoomInfo {
	t.mu.RLock()
	out := make([]core.RoomInfo, 0, len(t.rooms))
	for name, room := range t.rooms {
		out = append(out, core.RoomInfo{Name: name, Owner: room.Room().Owner, MemberCount: room.MemberCount()})
	}
	t.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (t *RoomTable) Release(name domain.RoomName) {
	t.mu.Lock()
	defer t.mu.Unlock()
	room, ok := t.rooms[name]
	if !ok || room.MemberCount() > 0 {
		return
	}
	delete(t.rooms, name)
	log.Debug().Str("module", "app.rooms").Str("room", string(name)).Msg("room closed")
}
