package domain

// Inbound event names.
const (
	EvRegister    = "register"
	EvStart       = "start"
	EvStop        = "stop"
	EvChange      = "change"
	EvSubscribe   = "subscribe"
	EvUnsubscribe = "unsubscribe"
	EvChat        = "chat"
	EvPing        = "ping"
)

// Outbound event names not shared with inbound ones.
const (
	EvUsers  = "users"
	EvJoin   = "join"
	EvPart   = "part"
	EvUpdate = "update"
	EvNoDJ   = "no-dj"
	EvPong   = "pong"
)

type RegisterRequest struct {
	From string `json:"from"`
}

type SubscribeRequest struct {
	Target string `json:"target"`
}

type ChatRequest struct {
	Text   string `json:"text"`
	Target string `json:"target,omitempty"`
}

type Empty struct{}

type UsersMessage struct {
	Users []Identity `json:"users"`
}

type PresenceMessage struct {
	From Identity `json:"from"`
}

type ChatMessage struct {
	Text string   `json:"text"`
	From Identity `json:"from"`
}
