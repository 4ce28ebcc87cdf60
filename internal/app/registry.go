package app

import (
	"strconv"
	"sync"

	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry maps live connections to their transport endpoint and, once
// registered, to an identity and its session record.
type Registry struct {
	mu         sync.RWMutex
	conns      map[core.SessionID]core.SignalConnection
	clients    map[core.SessionID]domain.Identity
	registered map[domain.Identity]*domain.Session
}

func NewRegistry() *Registry {
	return &Registry{
		conns:      make(map[core.SessionID]core.SignalConnection),
		clients:    make(map[core.SessionID]domain.Identity),
		registered: make(map[domain.Identity]*domain.Session),
	}
}

func (r *Registry) BindSignal(sid core.SessionID, conn core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[sid] = conn
	log.Debug().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound signal")
}

func (r *Registry) Signal(sid core.SessionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[sid]
	return conn, ok
}

// Register assigns a unique identity derived from name. It is a no-op
// returning false when sid already has one.
func (r *Registry) Register(sid core.SessionID, name domain.Identity) (domain.Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[sid]; ok {
		return "", false
	}
	if name == "" {
		name = domain.DefaultIdentity
	}
	id := r.uniqueName(name)
	if _, taken := r.registered[id]; taken {
		log.Panic().Str("module", "app.registry").Str("identity", string(id)).Msg("generated identity collides")
	}
	r.clients[sid] = id
	r.registered[id] = domain.NewSession(id)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("identity", string(id)).Msg("registered")
	return id, true
}

// uniqueName returns name if free, otherwise the first free "name#k" for k >= 2.
// The caller holds the write lock.
func (r *Registry) uniqueName(name domain.Identity) domain.Identity {
	if _, ok := r.registered[name]; !ok {
		return name
	}
	base := string(name) + "#"
	for k := 2; ; k++ {
		candidate := domain.Identity(base + strconv.Itoa(k))
		if _, ok := r.registered[candidate]; !ok {
			return candidate
		}
	}
}

// Resolve returns the session record of a registered connection.
func (r *Registry) Resolve(sid core.SessionID) (*domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.clients[sid]
	if !ok {
		return nil, false
	}
	sess, ok := r.registered[id]
	return sess, ok
}

// Lookup finds a live session record by identity.
func (r *Registry) Lookup(id domain.Identity) (*domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.registered[id]
	return sess, ok
}

func (r *Registry) IdentityOf(sid core.SessionID) (domain.Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.clients[sid]
	return id, ok
}

// Release forgets the identity and session record of sid. Unknown handles
// are ignored.
func (r *Registry) Release(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.clients[sid]
	if !ok {
		return
	}
	delete(r.clients, sid)
	delete(r.registered, id)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("identity", string(id)).Msg("released")
}

// Unbind drops the transport endpoint of sid.
func (r *Registry) Unbind(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, sid)
	log.Debug().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.registered)
}
