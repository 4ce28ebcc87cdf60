package core

// SessionID is the opaque connection handle minted by the transport.
// It lives from connect to disconnect.
type SessionID string
