package domain

// Session is the per-identity presence record. Broadcasting and listening
// are independent: one record may do both at once.
type Session struct {
	identity     Identity
	broadcasting bool
	listeningTo  Identity
	current      NowPlaying
}

func NewSession(id Identity) *Session {
	return &Session{identity: id}
}

func (s *Session) Identity() Identity { return s.identity }

func (s *Session) IsBroadcasting() bool { return s.broadcasting }

func (s *Session) ListeningTo() (Identity, bool) {
	return s.listeningTo, s.listeningTo != ""
}

func (s *Session) IsListening() bool { return s.listeningTo != "" }

// Current is the last broadcast state; nil unless broadcasting.
func (s *Session) Current() NowPlaying { return s.current }

func (s *Session) StartBroadcast(state NowPlaying) {
	s.broadcasting = true
	s.current = state
}

func (s *Session) StopBroadcast() {
	s.broadcasting = false
	s.current = nil
}

func (s *Session) SetCurrent(state NowPlaying) {
	s.current = state
}

func (s *Session) ListenTo(target Identity) {
	s.listeningTo = target
}

func (s *Session) StopListening() {
	s.listeningTo = ""
}

// InRoom reports whether this session needs membership in room.
func (s *Session) InRoom(room RoomName) bool {
	if s.broadcasting && RoomOf(s.identity) == room {
		return true
	}
	return s.listeningTo != "" && RoomOf(s.listeningTo) == room
}
