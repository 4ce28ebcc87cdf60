// Package domain holds the relay entities: identities, session records,
// rooms and the now-playing payload, with the small rules that normalize them.
package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultIdentity   = "guest"
	DefaultMaxNameLen = 64
)

// Identity is a display name, unique among registered sessions.
type Identity string

// NormalizeName trims the requested name and cuts it to maxLen runes.
// An empty result falls back to DefaultIdentity.
func NormalizeName(name string, maxLen int) Identity {
	name = strings.TrimSpace(name)
	if maxLen > 0 && utf8.RuneCountInString(name) > maxLen {
		name = string([]rune(name)[:maxLen])
	}
	if name == "" {
		return DefaultIdentity
	}
	return Identity(name)
}
