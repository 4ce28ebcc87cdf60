package signal

import (
	"encoding/json"

	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleStart(
	sid core.SessionID,
	data json.RawMessage,
) {
	state, err := domain.ParseNowPlaying(data)
	if err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad start payload")
		return
	}
	ctl.Presence.OnStart(sid, state)
}

func (ctl *SignalWSController) handleChange(
	sid core.SessionID,
	data json.RawMessage,
) {
	state, err := domain.ParseNowPlaying(data)
	if err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad change payload")
		return
	}
	ctl.Presence.OnChange(sid, state)
}
