package signal

import (
	"encoding/json"
	"strings"

	"github.com/dkeye/djrelay/internal/core"
	"github.com/dkeye/djrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleSubscribe(
	sid core.SessionID,
	data json.RawMessage,
) {
	var p domain.SubscribeRequest
	if err := decodeData(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad subscribe payload")
		return
	}
	ctl.Presence.OnSubscribe(sid, domain.Identity(strings.TrimSpace(p.Target)))
}
