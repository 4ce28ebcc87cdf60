package domain

import (
	"encoding/json"
	"errors"
)

var ErrNotAnObject = errors.New("now-playing payload must be a JSON object")

// NowPlaying is the opaque state a broadcaster publishes. Fields are kept
// as raw JSON and forwarded untouched; only "from" is owned by the relay.
type NowPlaying map[string]json.RawMessage

// ParseNowPlaying accepts a JSON object. Empty input yields an empty payload.
func ParseNowPlaying(data []byte) (NowPlaying, error) {
	np := NowPlaying{}
	if len(data) == 0 || string(data) == "null" {
		return np, nil
	}
	if err := json.Unmarshal(data, &np); err != nil {
		return nil, ErrNotAnObject
	}
	if np == nil {
		np = NowPlaying{}
	}
	return np, nil
}

// WithFrom returns a copy tagged with the broadcaster identity.
func (np NowPlaying) WithFrom(from Identity) NowPlaying {
	out := make(NowPlaying, len(np)+1)
	for k, v := range np {
		out[k] = v
	}
	b, _ := json.Marshal(string(from))
	out["from"] = b
	return out
}
