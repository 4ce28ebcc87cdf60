package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   Identity
	}{
		{name: "plain", in: "alice", maxLen: 64, want: "alice"},
		{name: "trimmed", in: "  bob\t", maxLen: 64, want: "bob"},
		{name: "empty", in: "", maxLen: 64, want: DefaultIdentity},
		{name: "whitespace only", in: "   ", maxLen: 64, want: DefaultIdentity},
		{name: "truncated by runes", in: "ёжик-в-тумане", maxLen: 4, want: "ёжик"},
		{name: "no limit", in: "a-very-long-name", maxLen: 0, want: "a-very-long-name"},
		{name: "hash kept verbatim", in: "dj#2", maxLen: 64, want: "dj#2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in, tt.maxLen))
		})
	}
}

func TestParseNowPlaying(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantLen int
		wantErr bool
	}{
		{name: "empty input", in: "", wantLen: 0},
		{name: "null", in: "null", wantLen: 0},
		{name: "empty object", in: "{}", wantLen: 0},
		{name: "fields", in: `{"track":"P","pos":12.5,"tags":["a"]}`, wantLen: 3},
		{name: "array", in: `[1]`, wantErr: true},
		{name: "string", in: `"track"`, wantErr: true},
		{name: "broken", in: `{"track":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			np, err := ParseNowPlaying([]byte(tt.in))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotAnObject)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, np)
			assert.Len(t, np, tt.wantLen)
		})
	}
}

func TestNowPlaying_WithFrom(t *testing.T) {
	np, err := ParseNowPlaying([]byte(`{"track":"P","from":"spoofed"}`))
	require.NoError(t, err)

	tagged := np.WithFrom("alice")

	assert.JSONEq(t, `"alice"`, string(tagged["from"]))
	assert.JSONEq(t, `"P"`, string(tagged["track"]))
	assert.JSONEq(t, `"spoofed"`, string(np["from"]), "receiver is left untouched")

	var empty NowPlaying
	assert.JSONEq(t, `"bob"`, string(empty.WithFrom("bob")["from"]))
}

func TestSession_Roles(t *testing.T) {
	s := NewSession("alice")
	assert.Equal(t, Identity("alice"), s.Identity())
	assert.False(t, s.IsBroadcasting())
	assert.False(t, s.IsListening())
	assert.Nil(t, s.Current())

	s.StartBroadcast(NowPlaying{})
	s.ListenTo("bob")
	target, ok := s.ListeningTo()
	assert.True(t, ok)
	assert.Equal(t, Identity("bob"), target)
	assert.True(t, s.IsBroadcasting())
	assert.True(t, s.InRoom(RoomOf("alice")))
	assert.True(t, s.InRoom(RoomOf("bob")))
	assert.False(t, s.InRoom(RoomOf("carol")))

	s.SetCurrent(NowPlaying{"track": []byte(`"X"`)})
	assert.Len(t, s.Current(), 1)

	s.StopBroadcast()
	assert.Nil(t, s.Current())
	assert.False(t, s.InRoom(RoomOf("alice")))

	s.StopListening()
	_, ok = s.ListeningTo()
	assert.False(t, ok)
	assert.False(t, s.InRoom(RoomOf("bob")))
}

func TestSession_SelfListening(t *testing.T) {
	s := NewSession("alice")
	s.StartBroadcast(nil)
	s.ListenTo("alice")

	s.StopListening()
	assert.True(t, s.InRoom(RoomOf("alice")))

	s.ListenTo("alice")
	s.StopBroadcast()
	assert.True(t, s.InRoom(RoomOf("alice")))
}
