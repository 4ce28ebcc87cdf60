package signal

import (
	"encoding/json"

	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleRegister(
	sid core.SessionID,
	data json.RawMessage,
) {
	var p domain.RegisterRequest
	if err := decodeData(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad register payload")
		return
	}
	ctl.Presence.OnRegister(sid, domain.NormalizeName(p.From, ctl.opts.MaxNameLength))
}

func (ctl *SignalWSController) handleChat(
	sid core.SessionID,
	data json.RawMessage,
) {
	var p domain.ChatRequest
	if err := decodeData(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad chat payload")
		return
	}
	if !ctl.Limiter.Allow(sid) {
		log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("chat rate limited")
		return
	}
	ctl.Presence.OnChat(sid, p.Text)
}
